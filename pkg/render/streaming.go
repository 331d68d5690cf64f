package render

import (
	"io"
	"net/http"
)

// StreamingRenderer wraps Renderer with chunked output support.
// The document head is flushed before the body is serialized.
type StreamingRenderer struct {
	*Renderer
	flusher http.Flusher
	w       io.Writer
}

// NewStreamingRenderer creates a streaming renderer that writes to
// an http.ResponseWriter. If the writer implements http.Flusher,
// content is flushed after each section.
func NewStreamingRenderer(w http.ResponseWriter, config RendererConfig) *StreamingRenderer {
	return NewRenderer(config).Stream(w)
}

// Stream returns a streaming renderer sharing r's configuration.
func (r *Renderer) Stream(w http.ResponseWriter) *StreamingRenderer {
	flusher, _ := w.(http.Flusher)
	return &StreamingRenderer{Renderer: r, flusher: flusher, w: w}
}

// RenderPage renders a complete HTML document with incremental flushing.
func (s *StreamingRenderer) RenderPage(page PageData) error {
	page = page.withDefaults()
	if err := s.renderPreamble(s.w, page); err != nil {
		return err
	}
	s.flush()

	if err := s.renderBody(s.w, page); err != nil {
		return err
	}
	s.flush()
	return nil
}

func (s *StreamingRenderer) flush() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}
