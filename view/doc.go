// Package view defines the runtime identifiers of castable views.
//
// A view is one way of looking at an object: its concrete pointer type, the
// universal any view, the dyncast.Castable view or a declared interface,
// each optionally qualified by a subset of structural safety markers.
//
// Key types:
//   - Marker: one of the five recognized structural safety markers
//   - MarkerSet: a bitmask of markers, with power-set enumeration
//   - ID: comparable (type, markers) pair used as a dispatch table key
package view
