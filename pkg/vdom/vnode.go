package vdom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindComponent              // Nested component
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// VNode is a virtual tree node.
//
// The first group of fields is the render-time description. The second group
// is mounted state: the reconciler attaches it during Mount and transfers it
// from the old tree to the new tree on every Update.
type VNode struct {
	Kind     VKind    // Node variant
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes and event handlers
	Children []*VNode // Child nodes
	Key      string   // Reconciliation key
	Text     string   // For KindText
	Factory  Factory  // For KindComponent

	Live     LiveNode  // Live-tree node this node rendered into
	Inst     Component // Component instance (KindComponent only)
	Rendered *VNode    // Expanded inner node (KindComponent only)
}

// Props holds attributes and event handlers. Event handlers use "on"-prefixed
// keys ("onclick", "oninput"). The "key" entry is reserved for reconciliation
// identity and is never applied to the live tree.
type Props map[string]any

// Component is anything that can render to a VNode.
type Component interface {
	Render() *VNode
}

// Factory constructs a component instance from its props. The reconciler
// invokes it once at mount and again on every non-bailed update.
type Factory func(Props) Component

// Creator is implemented by components that want a hook immediately after
// instantiation, before their first render is mounted.
type Creator interface {
	Created()
}

// Mounter is implemented by components that want the live node their output
// was mounted into.
type Mounter interface {
	Mounted(live LiveNode)
}

// UpdateGuard lets a component veto an update. Returning false leaves the
// mounted subtree untouched and skips re-instantiation entirely.
type UpdateGuard interface {
	ShouldUpdate(oldProps, newProps Props) bool
}

// Updater is implemented by components that want a hook after each applied
// update.
type Updater interface {
	Updated()
}

// Comp creates a component node.
func Comp(f Factory, props Props) *VNode {
	return &VNode{
		Kind:    KindComponent,
		Props:   props,
		Factory: f,
	}
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // Function to call
}

// KeyOf extracts the reconciliation key from a node.
func KeyOf(node *VNode) string {
	if node == nil {
		return ""
	}
	if node.Key != "" {
		return node.Key
	}
	if node.Props == nil {
		return ""
	}
	if key, ok := node.Props["key"].(string); ok {
		return key
	}
	return ""
}

// HasKeys returns true if any child carries a reconciliation key.
func HasKeys(children []*VNode) bool {
	for _, child := range children {
		if KeyOf(child) != "" {
			return true
		}
	}
	return false
}

// IsEventProp returns true if the prop key names an event handler.
// Case-insensitive to catch onclick, ONCLICK, onClick, OnLoad, etc.
func IsEventProp(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}
