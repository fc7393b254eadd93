// Package vdom provides the virtual node model for Luma.
//
// A VNode describes one of three things: an element, a piece of text, or a
// component. Virtual trees are cheap throwaway values: a render pass builds a
// fresh tree, the reconciler (pkg/reconcile) compares it against the previous
// tree, and the minimal set of edits is applied to a live tree.
//
// # Core Types
//
// VNode is the tagged union over the three node variants. Props holds
// attributes and event handlers. Attr and EventHandler are used to build
// Props. Component and Factory define the component contract consumed by the
// reconciler; the lifecycle capabilities (Creator, Mounter, UpdateGuard,
// Updater) are optional interfaces checked before invocation.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	    OnClick(handler),
//	)
//
// # Live Tree Contract
//
// LiveDocument and LiveNode describe the imperative target the reconciler
// mutates. pkg/dom ships an in-memory implementation; any host environment
// exposing the same operations can be driven instead.
package vdom
