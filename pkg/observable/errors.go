package observable

import "fmt"

// UndefinedKeyError means a source property was read before being defined in
// this store's data set.
type UndefinedKeyError struct {
	Key string
}

func (e *UndefinedKeyError) Error() string {
	return fmt.Sprintf("observable: undefined source property %q", e.Key)
}

// ComputedPropertyImmutableError means a computed property was the target of
// a write. Computed properties are derived and never settable.
type ComputedPropertyImmutableError struct {
	Key string
}

func (e *ComputedPropertyImmutableError) Error() string {
	return fmt.Sprintf("observable: computed property %q cannot be set", e.Key)
}
