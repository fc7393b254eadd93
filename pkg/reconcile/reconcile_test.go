package reconcile

import (
	"testing"

	"github.com/luma-dev/luma/pkg/dom"
	"github.com/luma-dev/luma/pkg/vdom"
)

func mountTree(t *testing.T, node *vdom.VNode) (*dom.Document, *Reconciler) {
	t.Helper()
	doc := dom.NewDocument()
	r := New(doc)
	if r.Mount(node) == nil {
		t.Fatal("mount produced no live node")
	}
	doc.Flush()
	return doc, r
}

func TestSelfDiffProducesNoMutations(t *testing.T) {
	build := func() *vdom.VNode {
		return vdom.Div(vdom.ID("root"), vdom.Class("box"),
			vdom.Span(vdom.Text("hello")),
			vdom.Ul(
				vdom.Li(vdom.Key("a"), vdom.Text("a")),
				vdom.Li(vdom.Key("b"), vdom.Text("b")),
			),
		)
	}
	oldTree := build()
	doc, r := mountTree(t, oldTree)

	r.Update(oldTree, build())
	if muts := doc.Flush(); len(muts) != 0 {
		t.Errorf("expected zero mutations for identical trees, got %v", muts)
	}
}

func TestTagChangeReplacesSubtree(t *testing.T) {
	oldTree := vdom.Div(vdom.Span(vdom.Text("x")))
	doc, r := mountTree(t, oldTree)
	oldChildID := oldTree.Children[0].Live.(*dom.Node).ID()

	newTree := vdom.Div(vdom.P(vdom.Text("x")))
	r.Update(oldTree, newTree)

	muts := doc.Flush()
	var replaced bool
	for _, m := range muts {
		if m.Op == dom.MutReplace && m.Ref == oldChildID {
			replaced = true
		}
	}
	if !replaced {
		t.Errorf("expected a replace of the old child, got %v", muts)
	}
	if got := newTree.Children[0].Live.(*dom.Node).Tag(); got != "p" {
		t.Errorf("expected new live tag p, got %q", got)
	}
}

func TestTextChangeReplacesNode(t *testing.T) {
	oldTree := vdom.Div(vdom.Text("before"))
	doc, r := mountTree(t, oldTree)

	newTree := vdom.Div(vdom.Text("after"))
	r.Update(oldTree, newTree)
	doc.Flush()

	root := oldTree.Live.(*dom.Node)
	if got := root.TextContent(); got != "after" {
		t.Errorf("expected text %q, got %q", "after", got)
	}
}

func TestAttributeMerge(t *testing.T) {
	oldTree := vdom.Div(vdom.ID("x"), vdom.Class("a"))
	doc, r := mountTree(t, oldTree)

	newTree := vdom.Div(vdom.Class("b"))
	r.Update(oldTree, newTree)

	muts := doc.Flush()
	if len(muts) != 2 {
		t.Fatalf("expected exactly 2 mutations, got %v", muts)
	}
	var sawRemove, sawSet bool
	for _, m := range muts {
		switch m.Op {
		case dom.MutRemoveField:
			if m.Name != "id" {
				t.Errorf("expected id removed, got %q", m.Name)
			}
			sawRemove = true
		case dom.MutSetField:
			if m.Name != "class" || m.Value != "b" {
				t.Errorf("expected class=b, got %q=%v", m.Name, m.Value)
			}
			sawSet = true
		}
	}
	if !sawRemove || !sawSet {
		t.Errorf("expected one remove and one set, got %v", muts)
	}
}

func TestNewAttributeApplied(t *testing.T) {
	oldTree := vdom.Div(vdom.Class("a"))
	doc, r := mountTree(t, oldTree)

	newTree := vdom.Div(vdom.Class("a"), vdom.TitleAttr("t"))
	r.Update(oldTree, newTree)

	muts := doc.Flush()
	if len(muts) != 1 || muts[0].Op != dom.MutSetField || muts[0].Name != "title" {
		t.Errorf("expected single title set, got %v", muts)
	}
}

func TestLiveDriftIsRepaired(t *testing.T) {
	oldTree := vdom.Div(vdom.Class("a"))
	doc, r := mountTree(t, oldTree)

	// Drift the live tree behind the reconciler's back.
	live := oldTree.Live.(*dom.Node)
	live.SetField("class", "hacked")
	doc.Flush()

	// Old and new values agree, but the live field does not match.
	newTree := vdom.Div(vdom.Class("a"))
	r.Update(oldTree, newTree)

	muts := doc.Flush()
	if len(muts) != 1 || muts[0].Op != dom.MutSetField || muts[0].Value != "a" {
		t.Errorf("expected drift repair set class=a, got %v", muts)
	}
}

func TestClassNameMapsToClassField(t *testing.T) {
	tree := vdom.Div(vdom.ClassName("styled"))
	doc := dom.NewDocument()
	r := New(doc)
	live := r.Mount(tree).(*dom.Node)

	if value, ok := live.Field("class"); !ok || value != "styled" {
		t.Errorf("expected class=styled on live node, got %v (%v)", value, ok)
	}
	if _, ok := live.Field("className"); ok {
		t.Error("expected no className field on live node")
	}
}

func TestKeyIsNeverALiveField(t *testing.T) {
	tree := vdom.Li(vdom.Key("k"), vdom.Text("x"))
	doc := dom.NewDocument()
	r := New(doc)
	live := r.Mount(tree).(*dom.Node)

	if _, ok := live.Field("key"); ok {
		t.Error("expected key to never reach the live tree")
	}
}

func TestKeyedReorder(t *testing.T) {
	build := func(keys ...string) *vdom.VNode {
		items := make([]*vdom.VNode, len(keys))
		for i, k := range keys {
			items[i] = vdom.Li(vdom.Key(k), vdom.Text(k))
		}
		return vdom.Ul(items)
	}

	oldTree := build("a", "b", "c")
	doc, r := mountTree(t, oldTree)
	liveOf := func(tree *vdom.VNode, i int) *dom.Node {
		return tree.Children[i].Live.(*dom.Node)
	}
	aLive, bLive := liveOf(oldTree, 0), liveOf(oldTree, 1)

	newTree := build("c", "a")
	r.Update(oldTree, newTree)

	muts := doc.Flush()
	var removedB, inserted bool
	for _, m := range muts {
		if m.Op == dom.MutRemove && m.Child == bLive.ID() {
			removedB = true
		}
		if m.Op == dom.MutInsert {
			inserted = true
		}
		if m.Op == dom.MutAppend {
			t.Errorf("expected moves, not fresh appends: %v", m)
		}
	}
	if !removedB {
		t.Errorf("expected b removed, got %v", muts)
	}
	if !inserted {
		t.Errorf("expected c moved by insert, got %v", muts)
	}

	root := oldTree.Live.(*dom.Node)
	kids := root.Nodes()
	if len(kids) != 2 || kids[0].TextContent() != "c" || kids[1].TextContent() != "a" {
		t.Fatalf("expected live order [c a], got %v", texts(kids))
	}
	// Reused keyed nodes keep their live identity.
	if kids[1] != aLive {
		t.Error("expected keyed child a to reuse its live node")
	}
}

func TestKeyedMissReusesNothing(t *testing.T) {
	oldTree := vdom.Ul(vdom.Li(vdom.Key("a"), vdom.Text("a")))
	doc, r := mountTree(t, oldTree)

	newTree := vdom.Ul(
		vdom.Li(vdom.Key("z"), vdom.Text("z")),
		vdom.Li(vdom.Key("a"), vdom.Text("a")),
	)
	r.Update(oldTree, newTree)
	doc.Flush()

	root := oldTree.Live.(*dom.Node)
	kids := root.Nodes()
	if len(kids) != 2 || kids[0].TextContent() != "z" || kids[1].TextContent() != "a" {
		t.Errorf("expected live order [z a], got %v", texts(kids))
	}
}

func TestPositionalMerge(t *testing.T) {
	oldTree := vdom.Div(vdom.Span(vdom.Text("one")), vdom.Span(vdom.Text("two")))
	doc, r := mountTree(t, oldTree)

	newTree := vdom.Div(vdom.Span(vdom.Text("one")))
	r.Update(oldTree, newTree)

	muts := doc.Flush()
	var removes int
	for _, m := range muts {
		if m.Op == dom.MutRemove {
			removes++
		}
	}
	if removes != 1 {
		t.Errorf("expected exactly 1 removal, got %v", muts)
	}
	root := oldTree.Live.(*dom.Node)
	if got := root.TextContent(); got != "one" {
		t.Errorf("expected remaining text %q, got %q", "one", got)
	}
}

func TestChildrenCleared(t *testing.T) {
	oldTree := vdom.Div(vdom.Span(vdom.Text("a")), vdom.Span(vdom.Text("b")))
	doc, r := mountTree(t, oldTree)

	newTree := vdom.Div()
	r.Update(oldTree, newTree)

	muts := doc.Flush()
	if len(muts) != 1 || muts[0].Op != dom.MutClear {
		t.Errorf("expected single clear, got %v", muts)
	}
}

func TestEmptyTagMountsNothing(t *testing.T) {
	doc := dom.NewDocument()
	r := New(doc)
	if live := r.Mount(vdom.El("")); live != nil {
		t.Errorf("expected nil live node for empty tag, got %v", live)
	}
	if got := len(doc.Flush()); got != 0 {
		t.Errorf("expected no mutations, got %d", got)
	}
}

// lifecycle is a component recording its hook invocations.
type lifecycle struct {
	log    *[]string
	label  string
	should bool
}

func (c *lifecycle) Created()                { *c.log = append(*c.log, c.label+":created") }
func (c *lifecycle) Mounted(_ vdom.LiveNode) { *c.log = append(*c.log, c.label+":mounted") }
func (c *lifecycle) Updated()                { *c.log = append(*c.log, c.label+":updated") }

func (c *lifecycle) ShouldUpdate(_, _ vdom.Props) bool { return c.should }

func (c *lifecycle) Render() *vdom.VNode {
	*c.log = append(*c.log, c.label+":render")
	return vdom.Div(vdom.Text(c.label))
}

func TestLifecycleHookOrder(t *testing.T) {
	var log []string
	factory := func(props vdom.Props) vdom.Component {
		return &lifecycle{log: &log, label: "c", should: true}
	}

	doc := dom.NewDocument()
	r := New(doc)
	oldNode := vdom.Comp(factory, nil)
	r.Mount(oldNode)

	want := []string{"c:created", "c:render", "c:mounted"}
	if !equalStrings(log, want) {
		t.Fatalf("expected mount order %v, got %v", want, log)
	}

	log = log[:0]
	newNode := vdom.Comp(factory, nil)
	r.Update(oldNode, newNode)

	want = []string{"c:render", "c:updated"}
	if !equalStrings(log, want) {
		t.Errorf("expected update order %v, got %v", want, log)
	}
}

func TestShouldUpdateBailOut(t *testing.T) {
	var log []string
	factory := func(props vdom.Props) vdom.Component {
		return &lifecycle{log: &log, label: "c", should: false}
	}

	doc := dom.NewDocument()
	r := New(doc)
	oldNode := vdom.Comp(factory, vdom.Props{"n": 1})
	r.Mount(oldNode)
	doc.Flush()
	log = log[:0]

	newNode := vdom.Comp(factory, vdom.Props{"n": 2})
	r.Update(oldNode, newNode)

	if len(log) != 0 {
		t.Errorf("expected no hooks on bail-out, got %v", log)
	}
	if got := len(doc.Flush()); got != 0 {
		t.Errorf("expected no mutations on bail-out, got %d", got)
	}
	if newNode.Inst != oldNode.Inst || newNode.Live != oldNode.Live || newNode.Rendered != oldNode.Rendered {
		t.Error("expected mounted state transferred to the new node")
	}
}

func TestFactoryChangeReplaces(t *testing.T) {
	one := func(props vdom.Props) vdom.Component {
		return vdom.Func(func() *vdom.VNode { return vdom.Div(vdom.Text("one")) })
	}
	two := func(props vdom.Props) vdom.Component {
		return vdom.Func(func() *vdom.VNode { return vdom.Span(vdom.Text("two")) })
	}

	oldTree := vdom.Div(vdom.Comp(one, nil))
	doc, r := mountTree(t, oldTree)

	newTree := vdom.Div(vdom.Comp(two, nil))
	r.Update(oldTree, newTree)
	doc.Flush()

	root := oldTree.Live.(*dom.Node)
	if got := root.TextContent(); got != "two" {
		t.Errorf("expected replacement output %q, got %q", "two", got)
	}
}

func TestEventPropsAreListenersNotFields(t *testing.T) {
	tree := vdom.Button(vdom.OnClick(func() {}), vdom.Text("go"))
	doc := dom.NewDocument()
	r := New(doc)
	live := r.Mount(tree).(*dom.Node)

	if _, ok := live.Field("onclick"); ok {
		t.Error("expected no onclick field")
	}
	if live.Listener("onclick") == nil {
		t.Error("expected onclick listener registered")
	}
}

func TestListenersRefreshedOnUpdate(t *testing.T) {
	build := func(n int, got *int) *vdom.VNode {
		return vdom.Button(vdom.OnClick(func() { *got = n }), vdom.Text("go"))
	}

	var got int
	oldTree := build(1, &got)
	doc, r := mountTree(t, oldTree)

	newTree := build(2, &got)
	r.Update(oldTree, newTree)
	if muts := doc.Flush(); len(muts) != 0 {
		t.Errorf("expected listener swap to record nothing, got %v", muts)
	}

	live := oldTree.Live.(*dom.Node)
	live.Listener("onclick").(func())()
	if got != 2 {
		t.Errorf("expected the fresh closure to run, got %d", got)
	}
}

func texts(nodes []*dom.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.TextContent()
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
