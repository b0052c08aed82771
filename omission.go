package htmltree

// An omissionRule describes when an element's end tag may be omitted: seeing
// a start tag named in open or an end tag named in closed implicitly closes
// the element, and atEOF lets it close at the end of the input. The rules
// come from the optional-tags section of the HTML standard.
// https://html.spec.whatwg.org/multipage/syntax.html#optional-tags
type omissionRule struct {
	open   []string
	closed []string
	atEOF  bool
}

var pOpenTags = []string{
	"address", "article", "aside", "blockquote", "div", "dl", "fieldset",
	"figcaption", "figure", "footer", "form", "h1", "h2", "h3", "h4", "h5",
	"h6", "header", "hgroup", "hr", "main", "menu", "nav", "ol", "p", "pre",
	"section", "table", "ul",
}

var pClosedTags = []string{
	"address", "article", "aside", "body", "blockquote", "caption",
	"details", "dialog", "div", "dd", "dt", "fieldset", "figure",
	"figcaption", "footer", "form", "header", "hgroup", "li", "main", "nav",
	"object", "search", "section", "td", "th", "template",
}

// endTagOmission is keyed by (lowercased) HTML element name. Foreign and
// custom elements never appear here, so their end tags are always required.
var endTagOmission = map[string]omissionRule{
	"body":     {closed: []string{"html"}, atEOF: true},
	"caption":  {open: []string{"colgroup", "col", "thead", "tbody", "tfoot", "tr", "th", "td"}},
	"colgroup": {open: []string{"thead", "tbody", "tfoot", "tr"}},
	"head":     {open: []string{"body"}},
	"html":     {atEOF: true},
	"li":       {open: []string{"li"}, closed: []string{"ul", "ol", "menu"}},
	"dd":       {open: []string{"dd", "dt"}, closed: []string{"dl", "div"}},
	"dt":       {open: []string{"dd", "dt"}},
	"option":   {open: []string{"option", "optgroup", "hr"}, closed: []string{"select", "datalist", "optgroup"}},
	"optgroup": {open: []string{"optgroup", "hr"}, closed: []string{"select"}},
	"p":        {open: pOpenTags, closed: pClosedTags},
	"rt":       {open: []string{"rt", "rp"}, closed: []string{"ruby"}},
	"rp":       {open: []string{"rt", "rp"}, closed: []string{"ruby"}},
	"thead":    {open: []string{"tbody", "tfoot"}},
	"tbody":    {open: []string{"tbody", "tfoot"}, closed: []string{"table"}},
	"tfoot":    {closed: []string{"table"}},
	"td":       {open: []string{"td", "th", "tr"}, closed: []string{"tr", "table"}},
	"th":       {open: []string{"td", "th", "tbody"}, closed: []string{"tr", "thead"}},
	"tr":       {open: []string{"tr", "tbody"}, closed: []string{"table", "thead"}},
}
