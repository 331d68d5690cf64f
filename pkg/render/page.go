package render

import (
	"fmt"
	"io"

	"github.com/vango-dev/vhook/pkg/surface/memdom"
)

// DefaultRootID is the id of the element wrapping the page body.
const DefaultRootID = "vhook-root"

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the mount point whose children make up the page content.
	Body *memdom.Element

	// Title is the page title.
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// RootID is the id of the element wrapping the body content.
	// Defaults to DefaultRootID.
	RootID string

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string

	// Styles contains inline CSS styles.
	Styles []string

	// Scripts are written at the end of the body.
	Scripts []ScriptTag
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string // src attribute
	Defer  bool   // defer attribute
	Module bool   // type="module"
	Inline string // inline script content
}

func (p PageData) withDefaults() PageData {
	if p.Lang == "" {
		p.Lang = "en"
	}
	if p.RootID == "" {
		p.RootID = DefaultRootID
	}
	return p
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	page = page.withDefaults()
	if err := r.renderPreamble(w, page); err != nil {
		return err
	}
	return r.renderBody(w, page)
}

func (r *Renderer) renderPreamble(w io.Writer, page PageData) error {
	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n", escapeAttr(page.Lang)); err != nil {
		return err
	}
	return r.renderHead(w, page)
}

func (r *Renderer) renderBody(w io.Writer, page PageData) error {
	if _, err := fmt.Fprintf(w, "<body>\n<div id=\"%s\">", escapeAttr(page.RootID)); err != nil {
		return err
	}
	if err := r.RenderChildren(w, page.Body); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "</div>\n"); err != nil {
		return err
	}
	for _, script := range page.Scripts {
		if err := r.renderScriptTag(w, script); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<head>\n"+
		`  <meta charset="utf-8">`+"\n"+
		`  <meta name="viewport" content="width=device-width, initial-scale=1">`+"\n"); err != nil {
		return err
	}

	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}

	for _, href := range page.StyleSheets {
		if _, err := fmt.Fprintf(w, `  <link rel="stylesheet" href="%s">`+"\n", escapeAttr(href)); err != nil {
			return err
		}
	}

	for _, style := range page.Styles {
		if _, err := fmt.Fprintf(w, "  <style>%s</style>\n", style); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</head>\n")
	return err
}

// renderScriptTag renders a script element.
func (r *Renderer) renderScriptTag(w io.Writer, script ScriptTag) error {
	if _, err := io.WriteString(w, "<script"); err != nil {
		return err
	}
	if script.Src != "" {
		if _, err := fmt.Fprintf(w, ` src="%s"`, escapeAttr(script.Src)); err != nil {
			return err
		}
	}
	if script.Module {
		if _, err := io.WriteString(w, ` type="module"`); err != nil {
			return err
		}
	}
	if script.Defer {
		if _, err := io.WriteString(w, " defer"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, ">%s</script>\n", script.Inline); err != nil {
		return err
	}
	return nil
}
