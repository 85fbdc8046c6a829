// Package match provides name normalization, Levenshtein distance and
// candidate ranking used to build "did you mean" suggestions for misspelled
// markers, options and view names.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - Rank: ranks known names against an unknown one
//   - Suggest: returns the close candidates worth showing to a user
package match
