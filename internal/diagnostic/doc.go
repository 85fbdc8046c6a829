// Package diagnostic provides structured warnings and errors for the
// dyncast generator.
//
// Key capabilities:
//   - Stable diagnostic codes for every configuration error
//   - "did you mean" suggestions for misspelled markers and options
//   - Aggregation across declarations and packages
package diagnostic
