package integrations

import (
	"archive/zip"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kerbaras/qurandb/pkg/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBook() *Book {
	return &Book{
		Title:  "Test: Quran",
		Author: "tests",
		Surahs: []data.Surah{
			{Number: 1, Name: "سُورَةُ ٱلْفَاتِحَةِ", NameEn: "Al-Faatiha", RevelationType: "Meccan", NumberOfAyahs: 2},
			{Number: 2, Name: "سورة البقرة", NameEn: "Al-Baqara", RevelationType: "Medinan", NumberOfAyahs: 1},
		},
		Verses: map[int][]data.Verse{
			1: {
				{SurahNumber: 1, AyahInSurah: 1, Text: "بِسْمِ ٱللَّهِ"},
				{SurahNumber: 1, AyahInSurah: 2, Text: "<&>", Sajda: true},
			},
			2: {
				{SurahNumber: 2, AyahInSurah: 12, Text: "الم"},
			},
		},
	}
}

// readEPub returns every file in the archive keyed by name.
func readEPub(t *testing.T, path string) map[string]string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	files := map[string]string{}
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		files[f.Name] = string(body)
	}
	return files
}

func findFile(files map[string]string, suffix string) (string, bool) {
	for name, body := range files {
		if strings.HasSuffix(name, suffix) {
			return body, true
		}
	}
	return "", false
}

func TestNewEPubBuilder(t *testing.T) {
	assert.Equal(t, "/tmp/test", NewEPubBuilder("/tmp/test").outputDir)
	assert.Equal(t, ".", NewEPubBuilder("").outputDir)
}

func TestCreateEPub(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "books")
	builder := NewEPubBuilder(outputDir)

	path, err := builder.CreateEPub(testBook())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outputDir, "Test_ Quran.epub"), path)

	files := readEPub(t, path)
	assert.Equal(t, "application/epub+zip", files["mimetype"])

	first, ok := findFile(files, "surah-001.xhtml")
	require.True(t, ok, "surah 1 section missing")
	assert.Contains(t, first, `dir="rtl"`)
	assert.Contains(t, first, "بِسْمِ ٱللَّهِ ﴿١﴾")
	assert.Contains(t, first, "&lt;&amp;&gt; ﴿٢﴾ "+sajdaMark)
	assert.Contains(t, first, "Al-Faatiha")

	second, ok := findFile(files, "surah-002.xhtml")
	require.True(t, ok, "surah 2 section missing")
	assert.Contains(t, second, "﴿١٢﴾")
	assert.NotContains(t, second, sajdaMark)

	opf, ok := findFile(files, ".opf")
	require.True(t, ok)
	assert.Contains(t, opf, "<dc:language>ar</dc:language>")
	assert.Contains(t, opf, "Test: Quran")
}

func TestCreateEPubEmpty(t *testing.T) {
	builder := NewEPubBuilder(t.TempDir())

	_, err := builder.CreateEPub(&Book{Title: "empty"})
	assert.EqualError(t, err, "no surahs to compile")

	_, err = builder.Export(nil)
	assert.Error(t, err)
}

func TestArabicDigits(t *testing.T) {
	assert.Equal(t, "٠", arabicDigits(0))
	assert.Equal(t, "٧", arabicDigits(7))
	assert.Equal(t, "٢٨٦", arabicDigits(286))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Normal Title", "Normal Title"},
		{"Title: With Colon", "Title_ With Colon"},
		{"Title/With/Slashes", "Title_With_Slashes"},
		{"  Trim Spaces  ", "Trim Spaces"},
		{"...dots...", "dots"},
		{"", "quran"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeFilename(tt.input))
		})
	}
}

type fakeBookSource struct {
	surahs []data.Surah
	verses map[int][]data.Verse
	err    error
}

func (f *fakeBookSource) ListSurahs(ctx context.Context) ([]data.Surah, error) {
	return f.surahs, nil
}

func (f *fakeBookSource) GetVerses(ctx context.Context, surah int) ([]data.Verse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.verses[surah], nil
}

func TestLoadBook(t *testing.T) {
	want := testBook()
	src := &fakeBookSource{surahs: want.Surahs, verses: want.Verses}

	book, err := LoadBook(context.Background(), src, want.Title, want.Author)
	require.NoError(t, err)
	assert.Equal(t, want, book)
	assert.Equal(t, 3, book.verseCount())

	src.err = errors.New("closed")
	_, err = LoadBook(context.Background(), src, "t", "a")
	assert.EqualError(t, err, "closed")
}
