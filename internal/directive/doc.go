// Package directive reads dyncast declarations and validates their options.
//
// A declaration names a concrete type, the interfaces it should be castable
// to, and the safety markers that qualify those views. Declarations come
// from comment directives on the type:
//
//	//dyncast:views Reader io.Writer
//	//dyncast:markers transfer concurrent
//	type Widget struct{}
//
// or from a yaml declaration file:
//
//	version: "1"
//	types:
//	  - type: Widget
//	    views: [Reader, io.Writer]
//	    markers: [transfer, concurrent]
//
// Omitting markers selects view.DefaultMarkers; an empty list selects none.
package directive
