package vdom

// LiveDocument creates live-tree nodes. It is the factory half of the target
// contract; the reconciler asks it for fresh nodes during mount.
type LiveDocument interface {
	// CreateElement creates a live element of the given type tag.
	CreateElement(tag string) LiveNode

	// CreateText creates a live text node holding the given string.
	CreateText(text string) LiveNode
}

// LiveNode is one imperative live-tree node. The reconciler owns every
// mutation of a LiveNode for as long as a VNode references it; the host
// environment may read the tree at any time.
//
// Field names are live-node fields, not attribute strings: SetField("class",
// "card") is the moral equivalent of element.className = "card".
type LiveNode interface {
	// SetField assigns a named field on the node.
	SetField(name string, value any)

	// Field returns the current value of a named field and whether it is set.
	Field(name string) (any, bool)

	// RemoveField removes a named field from the node.
	RemoveField(name string)

	// AddEventListener registers a handler for the named event.
	AddEventListener(event string, handler any)

	// AppendChild appends a child, detaching it from any previous parent.
	AppendChild(child LiveNode)

	// InsertBefore inserts child before ref, detaching child from any
	// previous parent first. A nil ref appends.
	InsertBefore(child, ref LiveNode)

	// RemoveChild detaches a direct child.
	RemoveChild(child LiveNode)

	// ReplaceChild swaps oldChild for newChild in place.
	ReplaceChild(newChild, oldChild LiveNode)

	// ClearChildren detaches all children in one bulk operation.
	ClearChildren()

	// Parent returns the current parent, or nil for a detached node.
	Parent() LiveNode

	// ChildNodes returns the current children in order.
	ChildNodes() []LiveNode

	// TextContent returns the text value of a text node.
	TextContent() string
}
