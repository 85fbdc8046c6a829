package directive_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dyncast-generator/internal/directive"
)

const src = `package p

// Widget is annotated.
//
//dyncast:views Reader, io.Writer
//dyncast:markers transfer	concurrent
type Widget struct{}

//dyncast
type Bare struct{}

//dyncast:markers
type NoMarkers struct{}

// Plain mentions //dyncast in prose only.
// dyncast:views Reader is not a directive either.
type Plain struct{}

//dyncastic
type Other struct{}
`

func parseDocs(t *testing.T) (map[string]*ast.CommentGroup, *token.FileSet) {
	t.Helper()

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "p.go", src, parser.ParseComments)
	require.NoError(t, err)

	docs := map[string]*ast.CommentGroup{}
	for _, d := range f.Decls {
		gd := d.(*ast.GenDecl)
		docs[gd.Specs[0].(*ast.TypeSpec).Name.Name] = gd.Doc
	}

	return docs, fset
}

func TestParseComments(t *testing.T) {
	docs, fset := parseDocs(t)
	pos := func(p token.Pos) string { return fset.Position(p).String() }

	raw, ok := directive.ParseComments("Widget", docs["Widget"], pos)
	require.True(t, ok)
	assert.Equal(t, "p.go:5:1", raw.Pos)
	assert.Equal(t, directive.SourceComment, raw.Source)
	assert.Equal(t, []directive.Option{
		{Key: "views", Values: []string{"Reader", "io.Writer"}, Pos: "p.go:5:1"},
		{Key: "markers", Values: []string{"transfer", "concurrent"}, Pos: "p.go:6:1"},
	}, raw.Options)

	raw, ok = directive.ParseComments("Bare", docs["Bare"], nil)
	require.True(t, ok)
	assert.Empty(t, raw.Options)

	raw, ok = directive.ParseComments("NoMarkers", docs["NoMarkers"], nil)
	require.True(t, ok)
	require.Len(t, raw.Options, 1)
	assert.Equal(t, []string{}, raw.Options[0].Values)

	_, ok = directive.ParseComments("Plain", docs["Plain"], nil)
	assert.False(t, ok)

	_, ok = directive.ParseComments("Other", docs["Other"], nil)
	assert.False(t, ok)

	_, ok = directive.ParseComments("Nil", nil, nil)
	assert.False(t, ok)
}
