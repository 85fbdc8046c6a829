// Package plan turns resolved declarations into view sets, the input of
// code generation.
//
// For each declared type the view set is:
//  1. the concrete type itself, without markers;
//  2. for each base view (any, dyncast.Castable, then every declared
//     interface) and each subset of the declared markers, that view
//     qualified by the subset.
//
// A type with n interfaces and m markers therefore has 1 + (n+2)·2^m views.
package plan
