package data

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndReadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quran_data.json")
	doc := testDocument()
	doc.Meta = &Meta{
		RunID:       "run-1",
		GeneratedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Mode:        "page",
		Source:      "http://example.test",
	}

	require.NoError(t, WriteDocument(path, doc))

	read, err := ReadDocument(path)
	require.NoError(t, err)

	assert.Len(t, read.Surahs, len(doc.Surahs))
	assert.Len(t, read.Verses, len(doc.Verses))
	assert.Equal(t, doc.Surahs, read.Surahs)
	assert.Equal(t, doc.Verses, read.Verses)
	require.NotNil(t, read.Meta)
	assert.Equal(t, "run-1", read.Meta.RunID)
}

func TestWriteDocumentFormatting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteDocument(path, testDocument()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)

	// Arabic and HTML-significant characters stay literal.
	assert.Contains(t, content, "سورة البقرة")
	assert.Contains(t, content, "<&>")
	assert.NotContains(t, content, `\u`)
	// Two-space indentation with the expected top-level keys.
	assert.True(t, strings.HasPrefix(content, "{\n  \""))
	assert.Contains(t, content, "\n  \"surahs\": [")
	assert.Contains(t, content, "\n  \"verses\": [")
	assert.NotContains(t, content, `"meta"`)
}

func TestWriteDocumentOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 1<<16)), 0644))

	doc := &Document{Surahs: []Surah{}, Verses: []Verse{}}
	require.NoError(t, WriteDocument(path, doc))

	read, err := ReadDocument(path)
	require.NoError(t, err)
	assert.Empty(t, read.Surahs)
	assert.Empty(t, read.Verses)
}

func TestWriteDocumentCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.json")
	require.NoError(t, WriteDocument(path, testDocument()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestReadDocumentMissing(t *testing.T) {
	_, err := ReadDocument(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDocumentNotFound))
}

func TestReadDocumentMalformedSajda(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	content := `{
  "surahs": [],
  "verses": [
    {"surahNumber": 1, "ayahInSurah": 1, "text": "a", "sajda": {}},
    {"surahNumber": 1, "ayahInSurah": 2, "text": "b", "sajda": true}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	doc, err := ReadDocument(path)
	require.NoError(t, err)
	require.Len(t, doc.Verses, 2)
	assert.False(t, bool(doc.Verses[0].Sajda))
	assert.True(t, bool(doc.Verses[1].Sajda))
}

func TestReadDocumentInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"surahs": [`), 0644))

	_, err := ReadDocument(path)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrDocumentNotFound))
}
