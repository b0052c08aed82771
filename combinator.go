package htmltree

import (
	"regexp"
	"strings"
)

// The lexical layer is built from ordinary value-returning functions over
// (input, pos). A parseFn either succeeds with a value and the position of
// the remaining input, or fails with a *ParseError carrying a byte offset.
// There is no heap allocation per token beyond the produced values, and
// repetition is iterative.
type parseFn[T any] func(input string, pos int) (T, int, *ParseError)

// Whitespace in tag context per the WHATWG syntax rules.
const whitespace = " \t\r\n\f"

func isSpace(b byte) bool {
	return strings.IndexByte(whitespace, b) >= 0
}

func skipSpace(input string, pos int) int {
	for pos < len(input) && isSpace(input[pos]) {
		pos++
	}
	return pos
}

// literal matches s exactly at the current position.
func literal(s string) parseFn[string] {
	return func(input string, pos int) (string, int, *ParseError) {
		if len(input)-pos < len(s) || input[pos:pos+len(s)] != s {
			return "", pos, failf(pos, "Expected %q", s)
		}
		return s, pos + len(s), nil
	}
}

// match applies a regexp anchored at the current position. The pattern must
// be compiled with a leading ^.
func match(re *regexp.Regexp, msg string) parseFn[string] {
	return func(input string, pos int) (string, int, *ParseError) {
		loc := re.FindStringIndex(input[pos:])
		if loc == nil || loc[0] != 0 {
			return "", pos, fail(msg, pos)
		}
		return input[pos : pos+loc[1]], pos + loc[1], nil
	}
}

// whitespace0 consumes zero or more whitespace characters. It never fails.
func whitespace0(input string, pos int) (string, int, *ParseError) {
	next := skipSpace(input, pos)
	return input[pos:next], next, nil
}

// whitespace1 consumes one or more whitespace characters.
func whitespace1(input string, pos int) (string, int, *ParseError) {
	next := skipSpace(input, pos)
	if next == pos {
		return "", pos, fail("Expected whitespace", pos)
	}
	return input[pos:next], next, nil
}

// alt tries each parser in order and returns the first success. When every
// branch fails, the failure with the maximal offset is surfaced.
func alt[T any](ps ...parseFn[T]) parseFn[T] {
	return func(input string, pos int) (T, int, *ParseError) {
		var zero T
		var deepest *ParseError
		for _, p := range ps {
			v, next, err := p(input, pos)
			if err == nil {
				return v, next, nil
			}
			deepest = deeper(deepest, err)
		}
		return zero, pos, deepest
	}
}

// many applies p greedily until it fails, collecting the results. It never
// fails itself; an immediate failure yields an empty slice.
func many[T any](p parseFn[T]) parseFn[[]T] {
	return func(input string, pos int) ([]T, int, *ParseError) {
		var out []T
		for {
			v, next, err := p(input, pos)
			if err != nil || next == pos {
				return out, pos, nil
			}
			out = append(out, v)
			pos = next
		}
	}
}

// seq applies each parser in order and collects the values. It fails with
// the failure of the first parser that does not match.
func seq[T any](ps ...parseFn[T]) parseFn[[]T] {
	return func(input string, pos int) ([]T, int, *ParseError) {
		out := make([]T, 0, len(ps))
		i := pos
		for _, p := range ps {
			v, next, err := p(input, i)
			if err != nil {
				return nil, pos, err
			}
			out = append(out, v)
			i = next
		}
		return out, i, nil
	}
}

// sepBy parses zero or more p separated by sep.
func sepBy[T, S any](p parseFn[T], sep parseFn[S]) parseFn[[]T] {
	return func(input string, pos int) ([]T, int, *ParseError) {
		var out []T
		v, next, err := p(input, pos)
		if err != nil {
			return out, pos, nil
		}
		out = append(out, v)
		pos = next
		for {
			_, afterSep, err := sep(input, pos)
			if err != nil {
				return out, pos, nil
			}
			v, next, err := p(input, afterSep)
			if err != nil {
				return out, pos, nil
			}
			out = append(out, v)
			pos = next
		}
	}
}

// between parses open, then body, then close, and yields the body value.
func between[O, T, C any](open parseFn[O], body parseFn[T], close parseFn[C]) parseFn[T] {
	return func(input string, pos int) (T, int, *ParseError) {
		var zero T
		_, pos1, err := open(input, pos)
		if err != nil {
			return zero, pos, err
		}
		v, pos2, err := body(input, pos1)
		if err != nil {
			return zero, pos, err
		}
		_, pos3, err := close(input, pos2)
		if err != nil {
			return zero, pos, err
		}
		return v, pos3, nil
	}
}

// chain is monadic bind: the continuation k receives the value of p and
// decides how to parse the remainder.
func chain[A, B any](p parseFn[A], k func(A) parseFn[B]) parseFn[B] {
	return func(input string, pos int) (B, int, *ParseError) {
		var zero B
		v, next, err := p(input, pos)
		if err != nil {
			return zero, pos, err
		}
		return k(v)(input, next)
	}
}

// mapv transforms the value of a successful parse.
func mapv[A, B any](p parseFn[A], f func(A) B) parseFn[B] {
	return func(input string, pos int) (B, int, *ParseError) {
		var zero B
		v, next, err := p(input, pos)
		if err != nil {
			return zero, pos, err
		}
		return f(v), next, nil
	}
}

// label replaces the message of a failing parse while keeping its offset.
func label[T any](p parseFn[T], msg string) parseFn[T] {
	return func(input string, pos int) (T, int, *ParseError) {
		v, next, err := p(input, pos)
		if err != nil {
			return v, pos, fail(msg, err.Offset)
		}
		return v, next, nil
	}
}

// skipTrailing consumes trailing whitespace after a successful parse.
func skipTrailing[T any](p parseFn[T]) parseFn[T] {
	return func(input string, pos int) (T, int, *ParseError) {
		v, next, err := p(input, pos)
		if err != nil {
			return v, pos, err
		}
		return v, skipSpace(input, next), nil
	}
}
