package directive

import (
	"slices"

	"dyncast-generator/internal/common"
	"dyncast-generator/view"
)

// Option keys.
const (
	OptViews   = "views"
	OptMarkers = "markers"
)

// knownOptions lists the option keys in suggestion order.
var knownOptions = []string{OptViews, OptMarkers}

// Source tells where a declaration was read from.
type Source int

const (
	SourceComment Source = iota
	SourceFile
)

func (s Source) String() string {
	switch s {
	case SourceComment:
		return "comment"
	case SourceFile:
		return "file"
	default:
		return common.UnknownStr
	}
}

// Option is one occurrence of an option as written.
type Option struct {
	Key    string
	Values []string
	Pos    string
}

// Raw is an unvalidated declaration: the options of one type in source order.
type Raw struct {
	TypeName string
	Pos      string
	Source   Source
	Options  []Option
}

// Decl is a validated declaration.
type Decl struct {
	TypeName string
	Pos      string
	Source   Source
	// Views are the interface names as written, deduplicated, in order.
	Views []string
	// Markers is the marker set; DefaultMarkers when the option was omitted.
	Markers view.MarkerSet
	// MarkersSet reports whether the markers option was written explicitly.
	MarkersSet bool
}

// Equal reports whether two declarations describe the same views, ignoring
// where they were read from.
func (d Decl) Equal(o Decl) bool {
	return d.TypeName == o.TypeName && d.Markers == o.Markers && slices.Equal(d.Views, o.Views)
}
