// Package dyncast casts a runtime object between the views it declares: its
// concrete type, the interfaces it implements, and marker-qualified variants
// of each.
//
// A castable type carries a dispatcher (normally generated by
// cmd/dyncast-generator) that answers two questions for any view ID: can
// the object be viewed this way, and if so, which deferred cast produces
// the view. Dispatch is untyped; the caller finalizes the returned result
// with the static type it asked for.
//
//	r, ok := dyncast.CastRef[io.Reader](obj)
//	b, ok := dyncast.CastBox[io.Reader](box)   // box is moved only on success
//
// Five ownership kinds are supported, see package own.
package dyncast
