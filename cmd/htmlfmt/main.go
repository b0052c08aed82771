// Command htmlfmt parses HTML files and writes back the normalized
// serialization: canonical doctype, no self-closing slashes on HTML
// elements, and explicit end tags where the source omitted them.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	htmltree "github.com/dpotapov/go-htmltree"
)

type options struct {
	mode           string
	write          bool
	removeComments bool
	dump           bool
	verbose        bool
}

func main() {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "htmlfmt [files...]",
		Short: "Normalize HTML by parsing and reserializing it",
		Long: `htmlfmt parses each input and writes the normalized serialization.
With no arguments it reads from stdin and writes to stdout.

Modes:
  fragment  a sequence of sibling nodes (default)
  element   exactly one element
  document  a full document with doctype
  shadow    a fragment ending in a declarative shadow-root template`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "fragment", "parse mode: fragment|element|document|shadow")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write result back to the source file instead of stdout")
	cmd.Flags().BoolVar(&opts.removeComments, "remove-comments", false, "drop comments from the output")
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "print an indented tree outline instead of serializing")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts *options, args []string) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if len(args) == 0 {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		out, err := format(opts, "<stdin>", string(src))
		if err != nil {
			return err
		}
		_, err = io.WriteString(os.Stdout, out)
		return err
	}

	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		logger.Debug("formatting", "path", path, "bytes", len(src))
		out, err := format(opts, path, string(src))
		if err != nil {
			return err
		}
		if opts.write {
			if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
				return err
			}
			continue
		}
		if _, err := io.WriteString(os.Stdout, out); err != nil {
			return err
		}
	}
	return nil
}

func format(opts *options, path, src string) (string, error) {
	nodes, err := parse(opts.mode, src)
	if err != nil {
		var perr *htmltree.ParseError
		if errors.As(err, &perr) {
			pos := htmltree.Position(src, perr.Offset)
			return "", fmt.Errorf("%s:%d:%d: %s", path, pos.Line, pos.Column, perr.Message)
		}
		return "", fmt.Errorf("%s: %w", path, err)
	}
	if opts.dump {
		return htmltree.Outline(nodes...), nil
	}
	return htmltree.SerializeFragments(nodes, &htmltree.SerializeOptions{
		RemoveComments: opts.removeComments,
	}), nil
}

func parse(mode, src string) ([]*htmltree.Node, error) {
	switch mode {
	case "fragment":
		return htmltree.ParseFragments(src)
	case "element":
		n, err := htmltree.ParseElement(src)
		if err != nil {
			return nil, err
		}
		return []*htmltree.Node{n}, nil
	case "document":
		return htmltree.ParseHtml(src)
	case "shadow":
		return htmltree.ParseShadowRoot(src)
	}
	return nil, fmt.Errorf("unknown mode %q", mode)
}
