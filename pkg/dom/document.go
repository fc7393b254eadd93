package dom

import (
	"strconv"

	"github.com/luma-dev/luma/pkg/vdom"
)

// Document owns an in-memory live tree and its mutation log.
type Document struct {
	nextID int
	muts   []Mutation
	byID   map[string]*Node
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{byID: make(map[string]*Node)}
}

// CreateElement implements vdom.LiveDocument.
func (d *Document) CreateElement(tag string) vdom.LiveNode {
	n := &Node{
		doc:       d,
		id:        d.assignID(),
		tag:       tag,
		fields:    make(map[string]any),
		listeners: make(map[string]any),
	}
	d.byID[n.id] = n
	d.record(Mutation{Op: MutCreateElement, Target: n.id, Name: tag})
	return n
}

// CreateText implements vdom.LiveDocument.
func (d *Document) CreateText(text string) vdom.LiveNode {
	n := &Node{
		doc:    d,
		id:     d.assignID(),
		text:   text,
		isText: true,
	}
	d.byID[n.id] = n
	d.record(Mutation{Op: MutCreateText, Target: n.id, Value: text})
	return n
}

// Lookup returns the node with the given ID, or nil.
func (d *Document) Lookup(id string) *Node {
	return d.byID[id]
}

// Flush drains and returns the mutation log.
func (d *Document) Flush() []Mutation {
	muts := d.muts
	d.muts = nil
	return muts
}

// Pending returns the number of unflushed mutations.
func (d *Document) Pending() int {
	return len(d.muts)
}

func (d *Document) assignID() string {
	d.nextID++
	return "n" + strconv.Itoa(d.nextID)
}

func (d *Document) record(m Mutation) {
	d.muts = append(d.muts, m)
}
