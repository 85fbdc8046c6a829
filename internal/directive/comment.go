package directive

import (
	"go/ast"
	"go/token"
	"strings"
)

const prefix = "//dyncast"

// ParseComments extracts the declaration carried by the doc comments of a
// type. ok is false when no dyncast directive is present.
//
// pos renders a token position; it may be nil.
func ParseComments(typeName string, doc *ast.CommentGroup, pos func(token.Pos) string) (raw Raw, ok bool) {
	if doc == nil {
		return Raw{}, false
	}

	if pos == nil {
		pos = func(token.Pos) string { return "" }
	}

	raw = Raw{TypeName: typeName, Source: SourceComment}

	for _, c := range doc.List {
		key, values, isDirective := parseLine(c.Text)
		if !isDirective {
			continue
		}

		if !ok {
			raw.Pos = pos(c.Slash)
			ok = true
		}

		if key == "" {
			continue
		}

		raw.Options = append(raw.Options, Option{Key: key, Values: values, Pos: pos(c.Slash)})
	}

	return raw, ok
}

// parseLine splits "//dyncast:key a, b c" into the key and its values. A
// bare "//dyncast" is a directive with no key.
func parseLine(text string) (key string, values []string, ok bool) {
	rest, found := strings.CutPrefix(text, prefix)
	if !found {
		return "", nil, false
	}

	if rest == "" || rest[0] == ' ' || rest[0] == '\t' {
		if strings.TrimSpace(rest) != "" {
			// "//dyncast something" is prose, not a directive.
			return "", nil, false
		}

		return "", nil, true
	}

	if rest[0] != ':' {
		// "//dyncastfoo"
		return "", nil, false
	}

	rest = rest[1:]

	args := ""
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		rest, args = rest[:i], rest[i:]
	}

	return rest, splitValues(args), true
}

func splitValues(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return []string{}
	}

	return fields
}
