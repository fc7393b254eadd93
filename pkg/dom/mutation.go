package dom

// MutOp is the type of a live-tree mutation.
type MutOp uint8

const (
	MutCreateElement MutOp = iota // Create a detached element node
	MutCreateText                 // Create a detached text node
	MutSetField                   // Set a named field
	MutRemoveField                // Remove a named field
	MutAddListener                // Register an event listener
	MutAppend                     // Append a child
	MutInsert                     // Insert (or move) a child before a reference node
	MutRemove                     // Remove a child
	MutReplace                    // Replace a child
	MutClear                      // Remove all children
)

// String returns the string representation of the MutOp.
func (op MutOp) String() string {
	switch op {
	case MutCreateElement:
		return "CreateElement"
	case MutCreateText:
		return "CreateText"
	case MutSetField:
		return "SetField"
	case MutRemoveField:
		return "RemoveField"
	case MutAddListener:
		return "AddListener"
	case MutAppend:
		return "Append"
	case MutInsert:
		return "Insert"
	case MutRemove:
		return "Remove"
	case MutReplace:
		return "Replace"
	case MutClear:
		return "Clear"
	default:
		return "Unknown"
	}
}

// Mutation is one recorded live-tree edit.
type Mutation struct {
	Op     MutOp
	Target string // ID of the mutated node (parent for child operations)
	Name   string // Field or event name; element tag for CreateElement
	Value  any    // New field value; text for CreateText
	Child  string // ID of the child being appended/inserted/removed/replaced
	Ref    string // Insert: ID of the reference sibling; Replace: ID of the old child
}
