package dom

import (
	"strings"

	"github.com/luma-dev/luma/pkg/vdom"
)

// Node is one in-memory live-tree node, either an element or a text node.
type Node struct {
	doc       *Document
	id        string
	tag       string
	text      string
	isText    bool
	fields    map[string]any
	listeners map[string]any
	parent    *Node
	children  []*Node
}

// ID returns the node's document-assigned stable ID.
func (n *Node) ID() string { return n.id }

// Tag returns the element type tag ("" for text nodes).
func (n *Node) Tag() string { return n.tag }

// IsText reports whether this is a text node.
func (n *Node) IsText() bool { return n.isText }

// SetField implements vdom.LiveNode.
func (n *Node) SetField(name string, value any) {
	n.fields[name] = value
	n.doc.record(Mutation{Op: MutSetField, Target: n.id, Name: name, Value: value})
}

// Field implements vdom.LiveNode.
func (n *Node) Field(name string) (any, bool) {
	value, ok := n.fields[name]
	return value, ok
}

// RemoveField implements vdom.LiveNode. Removing an absent field is a no-op.
func (n *Node) RemoveField(name string) {
	if _, ok := n.fields[name]; !ok {
		return
	}
	delete(n.fields, name)
	n.doc.record(Mutation{Op: MutRemoveField, Target: n.id, Name: name})
}

// AddEventListener implements vdom.LiveNode. Re-registering an event swaps
// the handler in place without recording a mutation: the client only needs
// to know the event is listened for, not which closure handles it.
func (n *Node) AddEventListener(event string, handler any) {
	_, registered := n.listeners[event]
	n.listeners[event] = handler
	if !registered {
		n.doc.record(Mutation{Op: MutAddListener, Target: n.id, Name: event})
	}
}

// Listener returns the handler registered for an event, or nil.
func (n *Node) Listener(event string) any {
	return n.listeners[event]
}

// HasListeners reports whether any event handler is registered.
func (n *Node) HasListeners() bool {
	return len(n.listeners) > 0
}

// AppendChild implements vdom.LiveNode. Appending a node that is already the
// last child is a no-op; an attached node is moved.
func (n *Node) AppendChild(child vdom.LiveNode) {
	c, ok := child.(*Node)
	if !ok || c == nil {
		return
	}
	if len(n.children) > 0 && n.children[len(n.children)-1] == c {
		return
	}
	c.detach()
	c.parent = n
	n.children = append(n.children, c)
	n.doc.record(Mutation{Op: MutAppend, Target: n.id, Child: c.id})
}

// InsertBefore implements vdom.LiveNode. A nil ref appends. Inserting a node
// directly before its current successor is a no-op; an attached node is
// moved.
func (n *Node) InsertBefore(child, ref vdom.LiveNode) {
	c, ok := child.(*Node)
	if !ok || c == nil {
		return
	}
	if ref == nil {
		n.AppendChild(child)
		return
	}
	r, ok := ref.(*Node)
	if !ok || r.parent != n || c == r {
		return
	}
	if idx := n.indexOf(r); idx > 0 && n.children[idx-1] == c {
		return
	}
	c.detach()
	c.parent = n
	idx := n.indexOf(r)
	n.children = append(n.children, nil)
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = c
	n.doc.record(Mutation{Op: MutInsert, Target: n.id, Child: c.id, Ref: r.id})
}

// RemoveChild implements vdom.LiveNode. Removing a non-child is a no-op.
func (n *Node) RemoveChild(child vdom.LiveNode) {
	c, ok := child.(*Node)
	if !ok || c == nil || c.parent != n {
		return
	}
	c.detach()
	n.doc.record(Mutation{Op: MutRemove, Target: n.id, Child: c.id})
}

// ReplaceChild implements vdom.LiveNode.
func (n *Node) ReplaceChild(newChild, oldChild vdom.LiveNode) {
	nc, ok1 := newChild.(*Node)
	oc, ok2 := oldChild.(*Node)
	if !ok1 || !ok2 || nc == nil || oc == nil || oc.parent != n {
		return
	}
	if nc == oc {
		return
	}
	nc.detach()
	idx := n.indexOf(oc)
	oc.parent = nil
	nc.parent = n
	n.children[idx] = nc
	n.doc.record(Mutation{Op: MutReplace, Target: n.id, Child: nc.id, Ref: oc.id})
}

// ClearChildren implements vdom.LiveNode.
func (n *Node) ClearChildren() {
	if len(n.children) == 0 {
		return
	}
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	n.doc.record(Mutation{Op: MutClear, Target: n.id})
}

// Parent implements vdom.LiveNode.
func (n *Node) Parent() vdom.LiveNode {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// ChildNodes implements vdom.LiveNode.
func (n *Node) ChildNodes() []vdom.LiveNode {
	out := make([]vdom.LiveNode, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// Nodes returns the children with their concrete type.
func (n *Node) Nodes() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// TextContent implements vdom.LiveNode. For elements it concatenates the
// text of all descendants in order.
func (n *Node) TextContent() string {
	if n.isText {
		return n.text
	}
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// detach removes the node from its current parent without recording a
// mutation. Moves record only the insert that follows.
func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	idx := p.indexOf(n)
	if idx >= 0 {
		p.children = append(p.children[:idx], p.children[idx+1:]...)
	}
	n.parent = nil
}

func (n *Node) indexOf(c *Node) int {
	for i, child := range n.children {
		if child == c {
			return i
		}
	}
	return -1
}

var _ vdom.LiveNode = (*Node)(nil)
var _ vdom.LiveDocument = (*Document)(nil)
