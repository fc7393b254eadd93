package reconcile

import (
	"reflect"

	"github.com/luma-dev/luma/pkg/vdom"
)

// FieldSetter applies one attribute value onto a live node.
type FieldSetter func(live vdom.LiveNode, value any)

// fieldSetters routes attribute names that need host-specific handling.
// "className" lands on the "class" field; "key" is reconciliation identity
// and never touches the live tree.
var fieldSetters = map[string]FieldSetter{
	"className": func(live vdom.LiveNode, value any) { live.SetField("class", value) },
	"key":       func(vdom.LiveNode, any) {},
}

// applyField sets an attribute on the live node through the setter dispatch.
func applyField(live vdom.LiveNode, name string, value any) {
	if set, ok := fieldSetters[name]; ok {
		set(live, value)
		return
	}
	live.SetField(name, value)
}

// removeField removes an attribute, honoring the same special cases.
func removeField(live vdom.LiveNode, name string) {
	switch name {
	case "key":
		return
	case "className":
		live.RemoveField("class")
	default:
		live.RemoveField(name)
	}
}

// canonicalField maps a prop name to the live field it occupies.
func canonicalField(name string) string {
	if name == "className" {
		return "class"
	}
	return name
}

// isFunc reports whether a prop value is callable.
func isFunc(v any) bool {
	if v == nil {
		return false
	}
	return reflect.ValueOf(v).Kind() == reflect.Func
}

// equalValues compares two prop values, with fast paths for common types.
func equalValues(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}
