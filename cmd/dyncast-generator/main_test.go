package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"dyncast-generator/internal/diagnostic"
)

func TestRun_CheckUpToDate(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-check", "-dir", "../../examples/shapes"}, &stdout, &stderr)
	assert.Equal(t, 0, code, stderr.String())
	assert.Empty(t, stdout.String())
}

func TestRun_CheckStale(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-check", "-out", "missing_gen.go", "-dir", "../../examples/shapes"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "stale: ")
	assert.Contains(t, stderr.String(), "missing_gen.go")
}

func TestRun_InvalidSummarizesCodes(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-check", "-dir", "../../internal/analyze/testdata/bad"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "error(s): ")
	assert.Contains(t, stderr.String(), diagnostic.CodeViewNotImplemented)
}

func TestRun_BadConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-config", filepath.Join(t.TempDir(), "absent.toml")}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Error: ")
}

func TestRun_UnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 2, run([]string{"-nope"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Usage: dyncast-generator")
}
