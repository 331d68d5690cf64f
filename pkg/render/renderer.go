package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vango-dev/vhook/pkg/surface/memdom"
	"github.com/vango-dev/vhook/pkg/vdom"
)

// HIDAttr is the attribute carrying an element's hydration ID.
const HIDAttr = "data-hid"

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer serializes memdom trees to HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// HID returns the hydration ID of e.
func HID(e *memdom.Element) string {
	return "h" + strconv.FormatUint(e.ID(), 10)
}

// ParseHID returns the node id encoded in a hydration ID.
func ParseHID(hid string) (uint64, bool) {
	rest, ok := strings.CutPrefix(hid, "h")
	if !ok || rest == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// RenderToString renders node, including node itself, to a string.
func (r *Renderer) RenderToString(node *memdom.Element) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams node, including node itself, to w.
func (r *Renderer) RenderToWriter(w io.Writer, node *memdom.Element) error {
	return r.renderNode(w, node, 0)
}

// RenderChildrenToString renders the children of a mount point.
func (r *Renderer) RenderChildrenToString(root *memdom.Element) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderChildren(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderChildren streams the children of a mount point to w.
func (r *Renderer) RenderChildren(w io.Writer, root *memdom.Element) error {
	if root == nil {
		return nil
	}
	for _, child := range root.Children() {
		if err := r.renderNode(w, child, 0); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderNode(w io.Writer, node *memdom.Element, depth int) error {
	if node == nil {
		return nil
	}
	if node.IsText() {
		return r.renderText(w, node)
	}
	return r.renderElement(w, node, depth)
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *memdom.Element, depth int) error {
	tag := node.Tag()

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, node); err != nil {
		return err
	}
	if node.HasListeners() {
		if err := r.renderHydration(w, node); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if isVoidElement(tag) {
		if r.config.Pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	children := node.Children()
	hasBlockChildren := len(children) > 0 && !isInlineElement(tag) && !onlyText(children)
	if r.config.Pretty && hasBlockChildren {
		io.WriteString(w, "\n")
	}

	for _, child := range children {
		if err := r.renderNode(w, child, depth+1); err != nil {
			return err
		}
	}

	if r.config.Pretty && hasBlockChildren {
		r.writeIndent(w, depth)
	}
	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

// renderText renders a text node with HTML escaping.
func (r *Renderer) renderText(w io.Writer, node *memdom.Element) error {
	v, _ := node.Prop(vdom.NodeValueProp)
	if v == nil {
		return nil
	}
	_, err := io.WriteString(w, escapeHTML(fmt.Sprint(v)))
	return err
}

// renderAttributes renders plain properties in name order.
func (r *Renderer) renderAttributes(w io.Writer, node *memdom.Element) error {
	for _, key := range node.PropNames() {
		if !vdom.IsPlainProperty(key) || strings.HasPrefix(key, "_") {
			continue
		}
		value, _ := node.Prop(key)
		if value == nil {
			continue
		}
		name := key
		if mapped, ok := attrNames[key]; ok {
			name = mapped
		}

		if b, ok := value.(bool); ok && isBooleanAttr(name) {
			if b {
				if _, err := fmt.Fprintf(w, " %s", name); err != nil {
					return err
				}
			}
			continue
		}

		if _, err := fmt.Fprintf(w, ` %s="%s"`, name, escapeAttr(fmt.Sprint(value))); err != nil {
			return err
		}
	}
	return nil
}

// renderHydration writes the hydration ID and one marker per event type.
func (r *Renderer) renderHydration(w io.Writer, node *memdom.Element) error {
	if _, err := fmt.Fprintf(w, ` %s="%s"`, HIDAttr, HID(node)); err != nil {
		return err
	}
	for _, ev := range node.EventTypes() {
		if _, err := fmt.Fprintf(w, ` data-on-%s="true"`, escapeAttr(ev)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}

func onlyText(children []*memdom.Element) bool {
	for _, c := range children {
		if !c.IsText() {
			return false
		}
	}
	return true
}
