// Package gen provides deterministic Go code generation for dyncast
// dispatchers.
//
// Generation approach uses text/template + go/format. One file is emitted
// per package; it holds, for each declared type:
//   - compile-time assertions that the pointer type implements every
//     declared interface and dyncast.Castable
//   - a dyncast.Table listing every view of the type's view set
//   - the seven dyncast.Castable methods, delegating to the table
//
// Types that do not declare both transfer and concurrent get a DispatchArc
// that always returns nil.
package gen
