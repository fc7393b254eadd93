package observable

import "sort"

// WatchFunc observes writes to one source property. It runs synchronously
// inside Set, after the value is stored and before dependents recompute.
type WatchFunc func(s *Store, newValue any)

// ComputedFunc derives a computed property's value from the store.
type ComputedFunc func(s *Store) any

// Config describes a store: initial source values, watch hooks, and computed
// derivations.
type Config struct {
	Data     map[string]any
	Watch    map[string]WatchFunc
	Computed map[string]ComputedFunc
}

// edge is one registered (source → derived) recomputation link.
type edge struct {
	name   string
	derive ComputedFunc
}

// Store is a reactive object holding source and computed properties.
//
// The dependency registry is local to the store: two stores declaring
// same-named properties never interfere.
type Store struct {
	data     map[string]any          // source property values
	computed map[string]any          // computed property caches
	derive   map[string]ComputedFunc // derivation per computed name
	watch    map[string]WatchFunc    // change-watch hooks per source name
	deps     map[string][]edge       // source name → dependents, registration order
	sources  map[string][]string     // computed name → source names it reads
	order    []string                // computed names in registration order
	track    tracker
}

// New builds a store from a configuration. Source properties are installed
// first, then watch hooks, then computed properties in sorted name order
// (registration order is observable: it fixes recomputation order, and a
// derivation reading another computed sees only computeds defined before
// it). Computed entries with a nil derivation or a name that collides with
// an existing property are skipped silently.
func New(cfg Config) *Store {
	s := &Store{
		data:     make(map[string]any),
		computed: make(map[string]any),
		derive:   make(map[string]ComputedFunc),
		watch:    make(map[string]WatchFunc),
		deps:     make(map[string][]edge),
		sources:  make(map[string][]string),
	}

	for name, value := range cfg.Data {
		s.DefineSource(name, value)
	}
	for name, fn := range cfg.Watch {
		s.Watch(name, fn)
	}

	names := make([]string, 0, len(cfg.Computed))
	for name := range cfg.Computed {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s.DefineComputed(name, cfg.Computed[name])
	}

	return s
}

// DefineSource installs (or overwrites) a source property.
func (s *Store) DefineSource(name string, initial any) {
	s.data[name] = initial
}

// Watch installs a change-watch hook for a source property. A nil fn removes
// the hook.
func (s *Store) Watch(name string, fn WatchFunc) {
	if fn == nil {
		delete(s.watch, name)
		return
	}
	s.watch[name] = fn
}

// DefineComputed installs a computed property. The derivation runs once,
// immediately, under capture; every source property it reads becomes a
// dependency edge. Edges are static for the store's lifetime.
//
// Returns false without installing anything when fn is nil or name collides
// with an existing source or computed property.
func (s *Store) DefineComputed(name string, fn ComputedFunc) bool {
	if fn == nil || s.Has(name) {
		return false
	}

	frame := s.track.begin()
	defer s.track.end()
	value := fn(s)

	s.derive[name] = fn
	s.computed[name] = value
	s.sources[name] = frame.reads
	s.order = append(s.order, name)
	for _, src := range frame.reads {
		s.deps[src] = append(s.deps[src], edge{name: name, derive: fn})
	}
	return true
}

// Get reads a property. Reading a source property during a capture records a
// dependency; reading a computed property returns its cache and, during
// capture, folds the computed's own source dependencies into the capturing
// frame so transitive dependents recompute too.
//
// Reading a name never defined on the store fails with *UndefinedKeyError.
func (s *Store) Get(name string) (any, error) {
	if _, ok := s.derive[name]; ok {
		if s.track.active() {
			for _, src := range s.sources[name] {
				s.track.record(src)
			}
		}
		return s.computed[name], nil
	}
	value, ok := s.data[name]
	if !ok {
		return nil, &UndefinedKeyError{Key: name}
	}
	s.track.record(name)
	return value, nil
}

// MustGet is Get for derivation bodies: it panics with the *UndefinedKeyError
// instead of returning it.
func (s *Store) MustGet(name string) any {
	value, err := s.Get(name)
	if err != nil {
		panic(err)
	}
	return value
}

// Set writes a source property. The write is fully synchronous: the watch
// hook (if any) runs first, then every dependent derivation re-runs in
// registration order, overwriting its cache, before Set returns. Writing a
// name with no definition installs it as a new source property.
//
// Writing a computed property fails with *ComputedPropertyImmutableError.
func (s *Store) Set(name string, value any) error {
	if _, ok := s.derive[name]; ok {
		return &ComputedPropertyImmutableError{Key: name}
	}

	s.data[name] = value
	if fn := s.watch[name]; fn != nil {
		fn(s, value)
	}
	for _, e := range s.deps[name] {
		s.computed[e.name] = e.derive(s)
	}
	return nil
}

// Has reports whether name is defined as a source or computed property.
func (s *Store) Has(name string) bool {
	if _, ok := s.data[name]; ok {
		return true
	}
	_, ok := s.derive[name]
	return ok
}

// IsComputed reports whether name is a computed property.
func (s *Store) IsComputed(name string) bool {
	_, ok := s.derive[name]
	return ok
}

// ComputedNames returns the computed property names in registration order.
func (s *Store) ComputedNames() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Dependents returns the computed property names registered under a source,
// in registration order.
func (s *Store) Dependents(source string) []string {
	edges := s.deps[source]
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = e.name
	}
	return out
}
