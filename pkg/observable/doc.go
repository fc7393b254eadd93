// Package observable provides the reactive store for Luma.
//
// A Store holds two kinds of properties. Source properties are plain settable
// values. Computed properties are derived from source properties by a
// read-only derivation function; they are evaluated once when defined,
// cached, and recomputed synchronously whenever a source property they read
// during that first evaluation is written. Dependency discovery is implicit:
// the store records every source read a derivation performs and registers a
// dependency edge for each one.
//
//	store := observable.New(observable.Config{
//	    Data: map[string]any{"count": 1},
//	    Computed: map[string]observable.ComputedFunc{
//	        "doubled": func(s *observable.Store) any {
//	            return s.MustGet("count").(int) * 2
//	        },
//	    },
//	})
//	store.Set("count", 5)
//	store.MustGet("doubled") // 10
//
// Dependency edges are static: they are built at definition time and never
// removed or recomputed. A derivation that reads different properties on
// later runs keeps its original edges. Writes are fully synchronous; a
// derivation or watch hook that writes a source property it (transitively)
// depends on recurses without cycle detection.
//
// Stores are not safe for concurrent use. The capture machinery is a
// per-store stack, so two stores never observe each other's evaluations and
// nested definitions are well-defined.
package observable
