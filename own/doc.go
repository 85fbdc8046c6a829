// Package own provides the ownership-kind handles casting works across and
// the primitive downcast each kind supports.
//
// Go has no borrow checker, so ownership is modelled explicitly:
//   - KindRef and KindMut are plain values (borrowed immutable and mutable)
//   - KindBox is *Box[T], an exclusively owned value that moves on cast
//   - KindRc is *Rc[T], a reference-counted value confined to one goroutine
//   - KindArc is *Arc[T], a reference-counted value with an atomic counter
//
// Every handle kind has three primitives: Erase (forget the static type),
// Downcast (recover an exact type, leaving the source untouched on failure)
// and Map (re-type the same allocation, e.g. from *S to an interface *S
// implements). Handles produced by these primitives share the release hook
// and, for Rc and Arc, the reference counter of their source.
package own
