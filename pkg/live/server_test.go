package live

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/goleak"

	"github.com/vango-dev/vhook/internal/errors"
	"github.com/vango-dev/vhook/pkg/engine"
	"github.com/vango-dev/vhook/pkg/hooks"
	"github.com/vango-dev/vhook/pkg/render"
	"github.com/vango-dev/vhook/pkg/surface/memdom"
	"github.com/vango-dev/vhook/pkg/vdom"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func counter() *vdom.VNode {
	count, setCount := hooks.UseState(0)
	return vdom.Div(
		vdom.Span(vdom.ID("count"), count),
		vdom.Button(vdom.ID("inc"), vdom.OnClick(func() { setCount(count + 1) }), "+"),
		vdom.Button(vdom.ID("boom"), vdom.OnClick(func() { panic("boom") }), "!"),
		vdom.Input(vdom.ID("name"), vdom.OnInput(func(string) {})),
	)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	s, err := New(counter, append([]Option{WithLogger(quietLogger())}, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

// hidOf returns the hydration id of the element with the given id attribute.
func hidOf(t *testing.T, s *Server, id string) string {
	t.Helper()
	var hid string
	s.Inspect(func(root *memdom.Element) {
		e := root.Find(func(e *memdom.Element) bool {
			v, _ := e.Prop("id")
			return v == id
		})
		if e != nil {
			hid = render.HID(e)
		}
	})
	if hid == "" {
		t.Fatalf("no element with id %q", id)
	}
	return hid
}

func TestNewReportsMountErrors(t *testing.T) {
	if _, err := New(nil, WithLogger(quietLogger())); !stderrors.Is(err, errors.New("E004")) {
		t.Errorf("New(nil) error = %v, want E004", err)
	}
}

func TestPage(t *testing.T) {
	s := newTestServer(t, WithTitle("Counter"))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	html := string(body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	for _, want := range []string{
		"<title>Counter</title>",
		`<div id="vhook-root"><div>`,
		`<span id="count">0</span>`,
		`data-hid="` + hidOf(t, s, "inc") + `"`,
		"new WebSocket",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestHandleEvent(t *testing.T) {
	s := newTestServer(t)

	html, rendered, err := s.HandleEvent(EventMessage{HID: hidOf(t, s, "inc"), Event: "click"})
	if err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}
	if !rendered || !strings.Contains(html, `<span id="count">1</span>`) {
		t.Errorf("HandleEvent() = %q, %v", html, rendered)
	}

	// A listener that does not set state leaves the tree alone.
	_, rendered, err = s.HandleEvent(EventMessage{HID: hidOf(t, s, "name"), Event: "input", Value: "x"})
	if err != nil || rendered {
		t.Errorf("input event: rendered = %v, err = %v", rendered, err)
	}

	current, _ := s.HTML()
	if !strings.Contains(current, `<span id="count">1</span>`) {
		t.Errorf("HTML() = %q", current)
	}
}

func TestHandleEventErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		ev   EventMessage
		code string
	}{
		{"missing hid", EventMessage{Event: "click"}, "E021"},
		{"missing event", EventMessage{HID: "h1"}, "E021"},
		{"malformed hid", EventMessage{HID: "button", Event: "click"}, "E020"},
		{"unknown hid", EventMessage{HID: "h999999", Event: "click"}, "E020"},
		{"handler panics", EventMessage{HID: hidOf(t, s, "boom"), Event: "click"}, "E022"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.HandleEvent(tt.ev)
			if !stderrors.Is(err, errors.New(tt.code)) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}

	// The tree is still usable after a failed event.
	if _, rendered, err := s.HandleEvent(EventMessage{HID: hidOf(t, s, "inc"), Event: "click"}); err != nil || !rendered {
		t.Errorf("click after failures: rendered = %v, err = %v", rendered, err)
	}
}

func postEvent(t *testing.T, url string, body string) (*http.Response, Message) {
	t.Helper()
	resp, err := http.Post(url+"/event", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var msg Message
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp, msg
}

func TestPostEvent(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	event := func(id, ev string) func() string {
		return func() string {
			return `{"hid":"` + hidOf(t, s, id) + `","event":"` + ev + `"}`
		}
	}
	literal := func(body string) func() string {
		return func() string { return body }
	}

	tests := []struct {
		name     string
		body     func() string
		status   int
		wantType MessageType
		wantCode string
	}{
		{"click", event("inc", "click"), http.StatusOK, MessageRender, ""},
		{"no re-render", event("name", "input"), http.StatusNoContent, "", ""},
		{"bad json", literal(`{"hid":`), http.StatusBadRequest, MessageError, "E021"},
		{"unknown hid", literal(`{"hid":"h999999","event":"click"}`), http.StatusNotFound, MessageError, "E020"},
		{"panic", event("boom", "click"), http.StatusInternalServerError, MessageError, "E022"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, msg := postEvent(t, ts.URL, tt.body())
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if msg.Type != tt.wantType || msg.Code != tt.wantCode {
				t.Errorf("message = %+v, want type %q code %q", msg, tt.wantType, tt.wantCode)
			}
		})
	}
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestWebSocketRoundTrip(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()
	defer s.Close()

	a := dial(t, ts)
	defer a.Close()
	b := dial(t, ts)
	defer b.Close()

	for _, c := range []*websocket.Conn{a, b} {
		msg := readMessage(t, c)
		if msg.Type != MessageRender || !strings.Contains(msg.HTML, `<span id="count">0</span>`) {
			t.Fatalf("initial message = %+v", msg)
		}
	}
	if n := s.Hub().ClientCount(); n != 2 {
		t.Errorf("ClientCount() = %d, want 2", n)
	}

	if err := a.WriteJSON(EventMessage{HID: hidOf(t, s, "inc"), Event: "click"}); err != nil {
		t.Fatal(err)
	}
	for name, c := range map[string]*websocket.Conn{"sender": a, "other": b} {
		msg := readMessage(t, c)
		if msg.Type != MessageRender || !strings.Contains(msg.HTML, `<span id="count">1</span>`) {
			t.Errorf("%s got %+v", name, msg)
		}
	}

	// Errors go to the sender only.
	if err := a.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatal(err)
	}
	if msg := readMessage(t, a); msg.Type != MessageError || msg.Code != "E021" {
		t.Errorf("error message = %+v", msg)
	}

	if err := b.WriteJSON(EventMessage{HID: hidOf(t, s, "inc"), Event: "click"}); err != nil {
		t.Fatal(err)
	}
	if msg := readMessage(t, b); !strings.Contains(msg.HTML, `<span id="count">2</span>`) {
		t.Errorf("b got %+v, want count 2", msg)
	}
	if msg := readMessage(t, a); !strings.Contains(msg.HTML, `<span id="count">2</span>`) {
		t.Errorf("a got %+v, want count 2 (no stray error message)", msg)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := engine.NewMetrics(engine.WithRegistry(reg))

	s := newTestServer(t, WithMetrics(reg), WithEngineOptions(engine.WithMetrics(m)))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	if _, _, err := s.HandleEvent(EventMessage{HID: hidOf(t, s, "inc"), Event: "click"}); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{
		`vhook_engine_renders_total{trigger="explicit"} 1`,
		`vhook_engine_renders_total{trigger="setter"} 1`,
		`vhook_engine_state_updates_total{result="applied"} 1`,
	} {
		if !bytes.Contains(body, []byte(want)) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestNoMetricsRouteByDefault(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /metrics status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("GET /healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	s := newTestServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String()
	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get(url + "/healthz")
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server never came up: %v", err)
	}
	resp.Body.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	readMessage(t, conn)

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	// The hub closed the websocket.
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected websocket to be closed")
	}
	http.DefaultClient.CloseIdleConnections()
}
