package reconcile

import "github.com/luma-dev/luma/pkg/vdom"

// Update diffs newNode against oldNode and applies the minimal edit set to
// the live tree. oldNode must carry the back-references Mount (or a previous
// Update) attached; newNode receives them for the next pass.
func (r *Reconciler) Update(oldNode, newNode *vdom.VNode) {
	if oldNode == nil || newNode == nil {
		return
	}

	// Structural change: mount fresh and replace wholesale.
	if changed(oldNode, newNode) {
		r.replace(oldNode, newNode)
		return
	}

	if oldNode.Kind == vdom.KindComponent {
		r.updateComponent(oldNode, newNode)
		return
	}

	// Text values already compared by the changed check.
	if oldNode.Kind == vdom.KindText {
		newNode.Live = oldNode.Live
		return
	}

	live := oldNode.Live
	newNode.Live = live
	if live == nil {
		return
	}
	r.updateFields(live, oldNode.Props, newNode.Props)
	r.updateChildren(live, oldNode.Children, newNode.Children)
}

// changed reports whether the two nodes differ structurally: exactly one is
// text, both are text with different values, or both carry different type
// tags (element tag, or component factory identity).
func changed(a, b *vdom.VNode) bool {
	if (a.Kind == vdom.KindText) != (b.Kind == vdom.KindText) {
		return true
	}
	if a.Kind == vdom.KindText {
		return a.Text != b.Text
	}
	if a.Kind != b.Kind {
		return true
	}
	if a.Kind == vdom.KindComponent {
		return factoryID(a.Factory) != factoryID(b.Factory)
	}
	return a.Tag != b.Tag
}

// replace mounts newNode fresh and swaps it in for oldNode's live node.
func (r *Reconciler) replace(oldNode, newNode *vdom.VNode) {
	oldLive := oldNode.Live
	newLive := r.Mount(newNode)
	if oldLive == nil || newLive == nil {
		return
	}
	if parent := oldLive.Parent(); parent != nil {
		parent.ReplaceChild(newLive, oldLive)
	}
}

// updateComponent resolves a component wrapper: consult ShouldUpdate, then
// re-instantiate, expand, and diff the fresh inner node against the old one.
func (r *Reconciler) updateComponent(oldNode, newNode *vdom.VNode) {
	inst := oldNode.Inst
	if g, ok := inst.(vdom.UpdateGuard); ok && !g.ShouldUpdate(oldNode.Props, newNode.Props) {
		// Bail-out: transfer references, leave the subtree untouched.
		newNode.Inst = inst
		newNode.Rendered = oldNode.Rendered
		newNode.Live = oldNode.Live
		return
	}

	newInst := newNode.Factory(newNode.Props)
	inner := newInst.Render()
	newNode.Inst = newInst
	newNode.Rendered = inner

	r.Update(oldNode.Rendered, inner)
	newNode.Live = inner.Live

	if u, ok := newInst.(vdom.Updater); ok {
		u.Updated()
	}
}

// updateFields reconciles attributes with a consumed-set merge. A value is
// rewritten when it differs from the recorded old value or from the live
// node's current value (tolerating external live mutation); unchanged values
// are left alone.
func (r *Reconciler) updateFields(live vdom.LiveNode, oldProps, newProps vdom.Props) {
	if len(newProps) == 0 {
		for name := range oldProps {
			if vdom.IsEventProp(name) {
				continue
			}
			removeField(live, name)
		}
		return
	}
	if len(oldProps) == 0 {
		for name, value := range newProps {
			if vdom.IsEventProp(name) {
				refreshListener(live, name, value)
				continue
			}
			applyField(live, name, value)
		}
		return
	}

	consumed := make(map[string]bool, len(newProps))
	for name, oldValue := range oldProps {
		if vdom.IsEventProp(name) {
			continue
		}
		newValue, ok := newProps[name]
		if !ok {
			removeField(live, name)
			continue
		}
		if !equalValues(newValue, oldValue) || !liveMatches(live, name, newValue) {
			applyField(live, name, newValue)
		}
		consumed[name] = true
	}
	for name, value := range newProps {
		if vdom.IsEventProp(name) {
			refreshListener(live, name, value)
			continue
		}
		if consumed[name] {
			continue
		}
		applyField(live, name, value)
	}
}

// refreshListener re-binds an event handler so closures captured by a
// previous render cannot go stale.
func refreshListener(live vdom.LiveNode, name string, value any) {
	if isFunc(value) {
		live.AddEventListener(name, value)
	}
}

// liveMatches reports whether the live node currently holds value under the
// canonical field for name.
func liveMatches(live vdom.LiveNode, name string, value any) bool {
	current, ok := live.Field(canonicalField(name))
	return ok && equalValues(current, value)
}

// updateChildren reconciles the child lists of one live element.
func (r *Reconciler) updateChildren(live vdom.LiveNode, oldChildren, newChildren []*vdom.VNode) {
	if len(oldChildren) > 0 && len(newChildren) == 0 {
		live.ClearChildren()
		return
	}
	if len(oldChildren) == 0 {
		for _, child := range newChildren {
			if child == nil {
				continue
			}
			if childLive := r.Mount(child); childLive != nil {
				live.AppendChild(childLive)
			}
		}
		return
	}

	// Keyed removal pass: drop old keyed children whose key has no successor,
	// and compact the survivors so the positional cursor stays coherent.
	newKeys := make(map[string]bool)
	for _, child := range newChildren {
		if k := vdom.KeyOf(child); k != "" {
			newKeys[k] = true
		}
	}
	old := make([]*vdom.VNode, 0, len(oldChildren))
	keyed := make(map[string]*vdom.VNode)
	for _, child := range oldChildren {
		if child == nil {
			continue
		}
		k := vdom.KeyOf(child)
		if k != "" && !newKeys[k] {
			if child.Live != nil {
				live.RemoveChild(child.Live)
			}
			continue
		}
		if k != "" {
			keyed[k] = child
		}
		old = append(old, child)
	}

	// Positional merge pass. Keyed matching takes precedence: a keyed new
	// child never consumes the positional cursor.
	j := 0
	for i, child := range newChildren {
		if child == nil {
			continue
		}
		key := vdom.KeyOf(child)

		if key == "" && j < len(old) && child.Kind == vdom.KindText && old[j].Kind == vdom.KindText {
			r.Update(old[j], child)
			j++
			continue
		}

		if key != "" {
			if match := keyed[key]; match != nil {
				r.Update(match, child)
				r.placeAt(live, child.Live, i)
				// Consume the matched entry so the trailing removal pass
				// cannot touch its reused live node.
				for idx, oc := range old {
					if oc == match {
						old = append(old[:idx], old[idx+1:]...)
						if idx < j {
							j--
						}
						break
					}
				}
				delete(keyed, key)
				continue
			}
			if childLive := r.Mount(child); childLive != nil {
				r.placeAt(live, childLive, i)
			}
			continue
		}

		if j < len(old) {
			prev := old[j]
			if k := vdom.KeyOf(prev); k != "" {
				delete(keyed, k)
			}
			r.Update(prev, child)
			r.placeAt(live, child.Live, i)
			j++
			continue
		}

		if childLive := r.Mount(child); childLive != nil {
			r.placeAt(live, childLive, i)
		}
	}

	// Old children the walk never consumed are gone.
	for ; j < len(old); j++ {
		if old[j].Live != nil {
			live.RemoveChild(old[j].Live)
		}
	}
}

// placeAt moves (or inserts) node to index i among parent's live children:
// before whatever currently occupies i, or appended when i is past the end.
// A node already at i stays put.
func (r *Reconciler) placeAt(parent, node vdom.LiveNode, i int) {
	if node == nil {
		return
	}
	kids := parent.ChildNodes()
	if i >= len(kids) {
		parent.AppendChild(node)
		return
	}
	if kids[i] == node {
		return
	}
	parent.InsertBefore(node, kids[i])
}
