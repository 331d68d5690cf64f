package render

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// voidElements cannot have children and have no closing tag.
var voidElements = set(
	"area", "base", "br", "col", "embed", "hr", "img", "input",
	"link", "meta", "param", "source", "track", "wbr",
)

// inlineElements don't get newlines in pretty-printed output.
var inlineElements = set(
	"a", "abbr", "b", "br", "button", "cite", "code", "em", "i", "kbd",
	"label", "mark", "q", "s", "samp", "small", "span", "strong", "sub",
	"sup", "time", "u", "var",
)

// booleanAttrs are rendered as a bare name when true and omitted when false.
var booleanAttrs = set(
	"allowfullscreen", "async", "autofocus", "autoplay", "checked",
	"controls", "default", "defer", "disabled", "formnovalidate", "hidden",
	"ismap", "loop", "multiple", "muted", "nomodule", "novalidate", "open",
	"playsinline", "readonly", "required", "reversed", "selected",
)

// attrNames maps DOM property names to their HTML attribute names.
var attrNames = map[string]string{
	"className": "class",
	"htmlFor":   "for",
}

func isVoidElement(tag string) bool   { return voidElements[tag] }
func isInlineElement(tag string) bool { return inlineElements[tag] }
func isBooleanAttr(name string) bool  { return booleanAttrs[name] }
