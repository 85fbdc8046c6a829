package diagnostic

// Configuration errors found while reading declarations.
const (
	CodeDuplicateMarker   = "duplicate_marker"
	CodeUnknownMarker     = "unknown_marker"
	CodeConflictingOption = "conflicting_option"
	CodeUnknownOption     = "unknown_option"
	CodeDuplicateType     = "duplicate_type"
	CodeMalformed         = "malformed_directive"
)

// Warnings found while reading declarations.
const (
	CodeDuplicateView = "duplicate_view"
)

// Notes found while reading declarations.
const (
	CodeMergedDeclaration = "merged_declaration"
)

// Errors found while resolving declarations against the type checker.
const (
	CodeViewNotFound       = "view_not_found"
	CodeViewNotInterface   = "view_not_interface"
	CodeViewNotImplemented = "view_not_implemented"
	CodeNotNamedType       = "not_a_named_type"
	CodeGenericUnsupported = "generic_type_unsupported"
	CodeTypeNotFound       = "type_not_found"
)
