package directive

import (
	"fmt"
	"slices"
	"strings"

	"dyncast-generator/internal/diagnostic"
	"dyncast-generator/internal/match"
	"dyncast-generator/view"
)

const maxSuggestions = 2

// Validate checks the options of one declaration and returns its validated
// form. The declaration is unusable when the diagnostics hold errors.
func Validate(raw Raw) (Decl, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	decl := Decl{
		TypeName: raw.TypeName,
		Pos:      raw.Pos,
		Source:   raw.Source,
		Views:    []string{},
		Markers:  view.DefaultMarkers,
	}

	seen := make(map[string]Option, len(raw.Options))

	for _, opt := range raw.Options {
		if !slices.Contains(knownOptions, opt.Key) {
			diags.AddError(diagnostic.CodeUnknownOption,
				fmt.Sprintf("unknown option %q", opt.Key),
				raw.TypeName, opt.Pos, match.Suggest(opt.Key, knownOptions, maxSuggestions)...)

			continue
		}

		if prev, ok := seen[opt.Key]; ok {
			if !sameValues(raw.TypeName, prev, opt) {
				diags.AddError(diagnostic.CodeConflictingOption,
					fmt.Sprintf("option %q given twice with different values: [%s] and [%s]",
						opt.Key, strings.Join(prev.Values, " "), strings.Join(opt.Values, " ")),
					raw.TypeName, opt.Pos)
			}

			continue
		}

		seen[opt.Key] = opt

		switch opt.Key {
		case OptViews:
			decl.Views = validateViews(raw.TypeName, opt, &diags)
		case OptMarkers:
			decl.Markers = validateMarkers(raw.TypeName, opt, &diags)
			decl.MarkersSet = true
		}
	}

	return decl, diags
}

func validateViews(typeName string, opt Option, diags *diagnostic.Diagnostics) []string {
	views := make([]string, 0, len(opt.Values))

	for _, name := range opt.Values {
		if !isViewName(name) {
			diags.AddError(diagnostic.CodeMalformed,
				fmt.Sprintf("%q is not an interface name", name), typeName, opt.Pos)

			continue
		}

		if slices.Contains(views, name) {
			diags.AddWarning(diagnostic.CodeDuplicateView,
				fmt.Sprintf("view %q listed more than once", name), typeName, opt.Pos)

			continue
		}

		views = append(views, name)
	}

	return views
}

func validateMarkers(typeName string, opt Option, diags *diagnostic.Diagnostics) view.MarkerSet {
	var set view.MarkerSet

	for _, name := range opt.Values {
		m, err := view.ParseMarker(name)
		if err != nil {
			diags.AddError(diagnostic.CodeUnknownMarker,
				fmt.Sprintf("unknown marker %q", name),
				typeName, opt.Pos, match.Suggest(name, view.MarkerNames(), maxSuggestions)...)

			continue
		}

		if set.Has(m) {
			diags.AddError(diagnostic.CodeDuplicateMarker,
				fmt.Sprintf("marker %q listed more than once", m.Name()), typeName, opt.Pos)

			continue
		}

		set = set.With(m)
	}

	return set
}

// sameValues compares two occurrences of one option. Markers compare as
// sets, so word order does not matter.
func sameValues(typeName string, a, b Option) bool {
	if a.Key != OptMarkers {
		return slices.Equal(a.Values, b.Values)
	}

	var diags diagnostic.Diagnostics

	sa, sb := validateMarkers(typeName, a, &diags), validateMarkers(typeName, b, &diags)
	if diags.HasErrors() {
		return slices.Equal(a.Values, b.Values)
	}

	return sa == sb
}

// isViewName accepts "Name" and "pkg.Name".
func isViewName(s string) bool {
	pkg, name, qualified := strings.Cut(s, ".")
	if !qualified {
		return isIdent(s)
	}

	return isIdent(pkg) && isIdent(name)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}

	return true
}

// Merge validates every declaration and folds declarations of the same type
// together. Repeating a type with an identical declaration is accepted;
// anything else is a duplicate_type error. The result keeps first-seen order.
func Merge(raws ...[]Raw) ([]Decl, diagnostic.Diagnostics) {
	var (
		diags diagnostic.Diagnostics
		decls []Decl
		index = map[string]int{}
	)

	for _, group := range raws {
		for _, raw := range group {
			decl, d := Validate(raw)
			diags.Merge(d)

			if d.HasErrors() {
				continue
			}

			i, dup := index[decl.TypeName]
			if !dup {
				index[decl.TypeName] = len(decls)
				decls = append(decls, decl)

				continue
			}

			if !decls[i].Equal(decl) {
				diags.AddError(diagnostic.CodeDuplicateType,
					fmt.Sprintf("type declared again with different options (first at %s)", decls[i].Pos),
					decl.TypeName, decl.Pos)

				continue
			}

			diags.AddInfo(diagnostic.CodeMergedDeclaration,
				fmt.Sprintf("same declaration as %s, merged", decls[i].Pos),
				decl.TypeName, decl.Pos)
		}
	}

	return decls, diags
}
