package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPDFFileReadsWithinLimit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "small.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n..."), 0o644))

	data, err := readPDFFile(path, 1024)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4\n...", string(data))
}

func TestReadPDFFileRejectsOversizedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.pdf")
	require.NoError(t, os.WriteFile(path, make([]byte, 100), 0o644))

	_, err := readPDFFile(path, 10)
	assert.Error(t, err)
}

func TestReadPDFFileRejectsDirectory(t *testing.T) {
	dir := t.TempDir()

	_, err := readPDFFile(dir, 1024)
	assert.Error(t, err)
}

func TestReadPDFFileMissingFileFails(t *testing.T) {
	_, err := readPDFFile(filepath.Join(t.TempDir(), "nope.pdf"), 1024)
	assert.Error(t, err)
}

func TestReadFieldValuesParsesJSONObject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "values.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"Ada Lovelace"}`), 0o644))

	values, err := readFieldValues(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "Ada Lovelace"}, values)
}

func TestReadFieldValuesRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "values.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := readFieldValues(path)
	assert.Error(t, err)
}
