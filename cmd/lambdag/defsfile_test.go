// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDefsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "defs.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefsParsesBindings(t *testing.T) {
	path := writeDefsFile(t, `
# the identity combinator
id = λ x => x

two = λ f => λ x => f (f x)
`)
	d, err := loadDefs(path)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())

	def, ok := d.Lookup("id")
	require.True(t, ok)
	assert.Equal(t, "λ x => x", def.Term.String())
}

func TestLoadDefsSkipsBlankAndCommentLines(t *testing.T) {
	path := writeDefsFile(t, "\n# comment only\n\nid = λ x => x\n")
	d, err := loadDefs(path)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Len())
}

func TestLoadDefsRejectsMalformedLine(t *testing.T) {
	path := writeDefsFile(t, "this line has no equals sign\n")
	_, err := loadDefs(path)
	assert.Error(t, err)
}

func TestLoadDefsRejectsUnparsableTerm(t *testing.T) {
	path := writeDefsFile(t, "broken = λ => x\n")
	_, err := loadDefs(path)
	assert.Error(t, err)
}

func TestLoadDefsMissingFile(t *testing.T) {
	_, err := loadDefs(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
