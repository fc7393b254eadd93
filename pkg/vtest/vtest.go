// Package vtest provides helpers for testing Luma components: a harness
// that mounts virtual trees into an in-memory live document and assertions
// on rendered HTML.
package vtest

import (
	"strings"
	"testing"

	"github.com/luma-dev/luma/pkg/dom"
	"github.com/luma-dev/luma/pkg/reconcile"
	"github.com/luma-dev/luma/pkg/render"
	"github.com/luma-dev/luma/pkg/vdom"
)

// Harness mounts virtual trees into an in-memory live document and tracks
// the current tree so updates can be applied incrementally.
type Harness struct {
	Doc *dom.Document
	Rec *reconcile.Reconciler

	current *vdom.VNode
}

// NewHarness creates an empty harness.
func NewHarness() *Harness {
	doc := dom.NewDocument()
	return &Harness{
		Doc: doc,
		Rec: reconcile.New(doc),
	}
}

// Mount mounts node as the harness root and returns the mutations the mount
// produced.
func (h *Harness) Mount(node *vdom.VNode) []dom.Mutation {
	h.Rec.Mount(node)
	h.current = node
	return h.Doc.Flush()
}

// Update diffs the current tree against node and returns the resulting
// mutations.
func (h *Harness) Update(node *vdom.VNode) []dom.Mutation {
	h.Rec.Update(h.current, node)
	h.current = node
	return h.Doc.Flush()
}

// Root returns the live node of the current root, or nil before Mount.
func (h *Harness) Root() vdom.LiveNode {
	if h.current == nil {
		return nil
	}
	return h.current.Live
}

// Fire invokes the listener registered for event on the given live node.
// It fails the test if no listener is registered or the handler type is
// unsupported.
func (h *Harness) Fire(t *testing.T, live vdom.LiveNode, event string) {
	t.Helper()
	node, ok := live.(*dom.Node)
	if !ok {
		t.Fatalf("expected *dom.Node, got %T", live)
	}
	handler := node.Listener("on" + event)
	if handler == nil {
		handler = node.Listener(event)
	}
	switch fn := handler.(type) {
	case func():
		fn()
	case func(string):
		fn("")
	case nil:
		t.Fatalf("no listener for %q on node %s", event, node.ID())
	default:
		t.Fatalf("unsupported handler type %T for %q", handler, event)
	}
}

// RenderToString renders a virtual tree and returns the HTML string.
func RenderToString(node *vdom.VNode) string {
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t *testing.T, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t *testing.T, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output not to contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
