package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luma-dev/luma/pkg/dom"
	"github.com/luma-dev/luma/pkg/observable"
	"github.com/luma-dev/luma/pkg/protocol"
	"github.com/luma-dev/luma/pkg/vdom"
)

// clicker is a stateful test component: every click increments a count held
// in a store shared by all instances the reconciler creates.
type clicker struct {
	store *observable.Store
}

func (c *clicker) Render() *vdom.VNode {
	count := c.store.MustGet("count").(int)
	return vdom.Div(
		vdom.P(vdom.Textf("count: %d", count)),
		vdom.Button(vdom.OnClick(func() {
			_ = c.store.Set("count", count+1)
		}), vdom.Text("+")),
	)
}

func clickerFactory() vdom.Factory {
	store := observable.New(observable.Config{Data: map[string]any{"count": 0}})
	return func(props vdom.Props) vdom.Component {
		return &clicker{store: store}
	}
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(clickerFactory(), &Config{Registry: prometheus.NewRegistry()})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func TestConfigDefaults(t *testing.T) {
	config := withDefaults(nil)
	if config.Address != ":8080" {
		t.Errorf("expected default address :8080, got %q", config.Address)
	}
	if config.ReadWait == 0 || config.WriteWait == 0 {
		t.Error("expected non-zero deadlines")
	}

	partial := withDefaults(&Config{Address: ":9999"})
	if partial.Address != ":9999" {
		t.Errorf("expected explicit address kept, got %q", partial.Address)
	}
	if partial.PageTitle != "Luma App" {
		t.Errorf("expected default title filled in, got %q", partial.PageTitle)
	}
}

func TestPageRoute(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	html := string(body)
	if !strings.Contains(html, "count: 0") {
		t.Errorf("expected rendered count in page, got:\n%s", html)
	}
	if !strings.Contains(html, "<title>Luma App</title>") {
		t.Errorf("expected default title in page, got:\n%s", html)
	}
}

func TestMetricsRoute(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func dialLive(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) *protocol.Frame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	frame, err := protocol.DecodeFrame(data)
	if err != nil {
		t.Fatalf("frame decode failed: %v", err)
	}
	return frame
}

func TestWebSocketSession(t *testing.T) {
	srv, ts := newTestServer(t)
	conn := dialLive(t, ts)

	hello := readFrame(t, conn)
	if hello.Type != protocol.FrameHello {
		t.Fatalf("expected Hello frame, got %v", hello.Type)
	}

	initial := readFrame(t, conn)
	if initial.Type != protocol.FramePatches {
		t.Fatalf("expected Patches frame, got %v", initial.Type)
	}
	muts, err := protocol.DecodePatches(initial.Payload)
	if err != nil {
		t.Fatalf("patches decode failed: %v", err)
	}
	if len(muts) == 0 {
		t.Fatal("expected mount patches, got none")
	}

	if got := srv.SessionCount(); got != 1 {
		t.Errorf("expected 1 active session, got %d", got)
	}

	// The button is the node the mount registered a listener on.
	var target string
	for _, m := range muts {
		if m.Op == dom.MutAddListener {
			target = m.Target
		}
	}
	if target == "" {
		t.Fatal("expected a listener registration in mount patches")
	}

	ev, err := protocol.EncodeEvent(protocol.Event{Target: target, Name: "click"})
	if err != nil {
		t.Fatalf("event encode failed: %v", err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, ev.Encode()); err != nil {
		t.Fatalf("event write failed: %v", err)
	}

	reply := readFrame(t, conn)
	if reply.Type != protocol.FramePatches {
		t.Fatalf("expected Patches reply, got %v", reply.Type)
	}
	replyMuts, err := protocol.DecodePatches(reply.Payload)
	if err != nil {
		t.Fatalf("reply decode failed: %v", err)
	}
	// The count text changed, so the session must send a text replacement.
	var sawText bool
	for _, m := range replyMuts {
		if m.Op == dom.MutCreateText && m.Value == "count: 1" {
			sawText = true
		}
	}
	if !sawText {
		t.Errorf("expected new text node %q in patches, got %v", "count: 1", replyMuts)
	}
}

func TestEventForUnknownTargetReturnsError(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dialLive(t, ts)

	readFrame(t, conn) // Hello
	readFrame(t, conn) // initial patches

	ev, err := protocol.EncodeEvent(protocol.Event{Target: "bogus", Name: "click"})
	if err != nil {
		t.Fatalf("event encode failed: %v", err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, ev.Encode()); err != nil {
		t.Fatalf("event write failed: %v", err)
	}

	reply := readFrame(t, conn)
	if reply.Type != protocol.FrameError {
		t.Fatalf("expected Error frame, got %v", reply.Type)
	}
	msg, err := protocol.DecodeError(reply.Payload)
	if err != nil {
		t.Fatalf("error decode failed: %v", err)
	}
	if !strings.Contains(msg, "unknown node") {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func TestSessionUnregisteredOnDisconnect(t *testing.T) {
	srv, ts := newTestServer(t)
	conn := dialLive(t, ts)

	readFrame(t, conn)
	readFrame(t, conn)
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for srv.SessionCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected 0 sessions after disconnect, got %d", srv.SessionCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}
