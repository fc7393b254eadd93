package reconcile

import (
	"reflect"

	"github.com/luma-dev/luma/pkg/vdom"
)

// Reconciler mounts and updates virtual trees against one live document.
type Reconciler struct {
	doc vdom.LiveDocument
}

// New creates a reconciler targeting the given live document.
func New(doc vdom.LiveDocument) *Reconciler {
	return &Reconciler{doc: doc}
}

// Mount renders node into a fresh live subtree and returns its root live
// node. The node (and, for components, its expanded inner node) is annotated
// with back-references to the live tree.
//
// An element with an empty type tag mounts to nil.
func (r *Reconciler) Mount(node *vdom.VNode) vdom.LiveNode {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case vdom.KindComponent:
		return r.mountComponent(node)
	case vdom.KindText:
		live := r.doc.CreateText(node.Text)
		node.Live = live
		return live
	default:
		return r.mountElement(node)
	}
}

// mountComponent instantiates the component, expands it, and mounts the
// expansion. Hook order: Created before the inner render, Mounted after the
// live subtree exists.
func (r *Reconciler) mountComponent(node *vdom.VNode) vdom.LiveNode {
	if node.Factory == nil {
		return nil
	}
	inst := node.Factory(node.Props)
	if c, ok := inst.(vdom.Creator); ok {
		c.Created()
	}
	inner := inst.Render()
	live := r.Mount(inner)
	if m, ok := inst.(vdom.Mounter); ok {
		m.Mounted(live)
	}
	node.Inst = inst
	node.Rendered = inner
	node.Live = live
	return live
}

func (r *Reconciler) mountElement(node *vdom.VNode) vdom.LiveNode {
	if node.Tag == "" {
		// Malformed element: produce nothing rather than fail.
		return nil
	}
	live := r.doc.CreateElement(node.Tag)

	for name, value := range node.Props {
		if vdom.IsEventProp(name) {
			if isFunc(value) {
				live.AddEventListener(name, value)
			}
			continue
		}
		applyField(live, name, value)
	}

	for _, child := range node.Children {
		if child == nil {
			continue
		}
		if childLive := r.Mount(child); childLive != nil {
			live.AppendChild(childLive)
		}
	}

	node.Live = live
	return live
}

// factoryID gives a comparable identity for component factories, used to
// decide whether two component nodes are of the same type.
func factoryID(f vdom.Factory) uintptr {
	if f == nil {
		return 0
	}
	return reflect.ValueOf(f).Pointer()
}
