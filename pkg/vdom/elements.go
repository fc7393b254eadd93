package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, EventHandler, *VNode, []*VNode, string.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes and children)
			continue

		case Attr:
			node.setAttr(v)

		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}

		case EventHandler:
			node.Props[v.Event] = v.Handler

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case string:
			// Shorthand for text node
			node.Children = append(node.Children, &VNode{
				Kind: KindText,
				Text: v,
			})
		}
	}

	return node
}

// setAttr applies a single builder attribute, routing "key" to the Key field.
func (v *VNode) setAttr(a Attr) {
	if a.Key == "" {
		return
	}
	if a.Key == "key" {
		if s, ok := a.Value.(string); ok {
			v.Key = s
		}
		return
	}
	v.Props[a.Key] = a.Value
}

// Document structure

// Div creates a <div> element.
func Div(args ...any) *VNode { return createElement("div", args) }

// Span creates a <span> element.
func Span(args ...any) *VNode { return createElement("span", args) }

// P creates a <p> element.
func P(args ...any) *VNode { return createElement("p", args) }

// Section creates a <section> element.
func Section(args ...any) *VNode { return createElement("section", args) }

// Header creates a <header> element.
func Header(args ...any) *VNode { return createElement("header", args) }

// Footer creates a <footer> element.
func Footer(args ...any) *VNode { return createElement("footer", args) }

// Main creates a <main> element.
func Main(args ...any) *VNode { return createElement("main", args) }

// Nav creates a <nav> element.
func Nav(args ...any) *VNode { return createElement("nav", args) }

// Article creates an <article> element.
func Article(args ...any) *VNode { return createElement("article", args) }

// Headings

// H1 creates an <h1> element.
func H1(args ...any) *VNode { return createElement("h1", args) }

// H2 creates an <h2> element.
func H2(args ...any) *VNode { return createElement("h2", args) }

// H3 creates an <h3> element.
func H3(args ...any) *VNode { return createElement("h3", args) }

// Lists

// Ul creates a <ul> element.
func Ul(args ...any) *VNode { return createElement("ul", args) }

// Ol creates an <ol> element.
func Ol(args ...any) *VNode { return createElement("ol", args) }

// Li creates a <li> element.
func Li(args ...any) *VNode { return createElement("li", args) }

// Forms

// Form creates a <form> element.
func Form(args ...any) *VNode { return createElement("form", args) }

// Input creates an <input> element.
func Input(args ...any) *VNode { return createElement("input", args) }

// Button creates a <button> element.
func Button(args ...any) *VNode { return createElement("button", args) }

// Label creates a <label> element.
func Label(args ...any) *VNode { return createElement("label", args) }

// Select creates a <select> element.
func Select(args ...any) *VNode { return createElement("select", args) }

// Option creates an <option> element.
func Option(args ...any) *VNode { return createElement("option", args) }

// Textarea creates a <textarea> element.
func Textarea(args ...any) *VNode { return createElement("textarea", args) }

// Inline and media

// A creates an <a> element.
func A(args ...any) *VNode { return createElement("a", args) }

// Img creates an <img> element.
func Img(args ...any) *VNode { return createElement("img", args) }

// Strong creates a <strong> element.
func Strong(args ...any) *VNode { return createElement("strong", args) }

// Em creates an <em> element.
func Em(args ...any) *VNode { return createElement("em", args) }

// Code creates a <code> element.
func Code(args ...any) *VNode { return createElement("code", args) }

// Pre creates a <pre> element.
func Pre(args ...any) *VNode { return createElement("pre", args) }

// Br creates a <br> element.
func Br(args ...any) *VNode { return createElement("br", args) }

// Hr creates an <hr> element.
func Hr(args ...any) *VNode { return createElement("hr", args) }

// Tables

// Table creates a <table> element.
func Table(args ...any) *VNode { return createElement("table", args) }

// Thead creates a <thead> element.
func Thead(args ...any) *VNode { return createElement("thead", args) }

// Tbody creates a <tbody> element.
func Tbody(args ...any) *VNode { return createElement("tbody", args) }

// Tr creates a <tr> element.
func Tr(args ...any) *VNode { return createElement("tr", args) }

// Th creates a <th> element.
func Th(args ...any) *VNode { return createElement("th", args) }

// Td creates a <td> element.
func Td(args ...any) *VNode { return createElement("td", args) }

// El creates an element with an arbitrary tag.
func El(tag string, args ...any) *VNode { return createElement(tag, args) }
