package integrations

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-shiori/go-epub"
	"github.com/kerbaras/qurandb/pkg/data"
)

const sajdaMark = "۩"

type EPubBuilder struct {
	outputDir string
}

func NewEPubBuilder(outputDir string) *EPubBuilder {
	if outputDir == "" {
		outputDir = "."
	}
	return &EPubBuilder{outputDir: outputDir}
}

func (p *EPubBuilder) Export(book *Book) (string, error) {
	return p.CreateEPub(book)
}

// CreateEPub writes one section per surah, right to left, and returns the
// path of the written file.
func (p *EPubBuilder) CreateEPub(book *Book) (string, error) {
	if book == nil || len(book.Surahs) == 0 {
		return "", fmt.Errorf("no surahs to compile")
	}

	// Ensure output directory exists
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	e, err := epub.NewEpub(book.Title)
	if err != nil {
		return "", fmt.Errorf("failed to create EPub: %w", err)
	}

	e.SetAuthor(book.Author)
	e.SetDescription(fmt.Sprintf("%d surahs, %d verses", len(book.Surahs), book.verseCount()))
	e.SetLang("ar")
	e.SetPpd("rtl")

	for _, surah := range book.Surahs {
		title := fmt.Sprintf("%d. %s", surah.Number, surah.NameEn)
		body := surahHTML(surah.Name, surah.NameEn, surah.RevelationType, book.Verses[surah.Number])
		filename := fmt.Sprintf("surah-%03d.xhtml", surah.Number)
		if _, err := e.AddSection(body, title, filename, ""); err != nil {
			return "", fmt.Errorf("failed to add surah %d: %w", surah.Number, err)
		}
	}

	outputPath := filepath.Join(p.outputDir, sanitizeFilename(book.Title)+".epub")
	if err := e.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}

	return outputPath, nil
}

func (b *Book) verseCount() int {
	n := 0
	for _, verses := range b.Verses {
		n += len(verses)
	}
	return n
}

func surahHTML(name, nameEn, revelation string, verses []data.Verse) string {
	var sb strings.Builder
	sb.WriteString(`<div dir="rtl" lang="ar">` + "\n")
	fmt.Fprintf(&sb, "<h1>%s</h1>\n", html.EscapeString(name))
	fmt.Fprintf(&sb, `<p dir="ltr" lang="en">%s · %s</p>`+"\n", html.EscapeString(nameEn), html.EscapeString(revelation))
	for _, v := range verses {
		sb.WriteString("<p>")
		sb.WriteString(html.EscapeString(v.Text))
		fmt.Fprintf(&sb, " ﴿%s﴾", arabicDigits(v.AyahInSurah))
		if v.Sajda {
			sb.WriteString(" " + sajdaMark)
		}
		sb.WriteString("</p>\n")
	}
	sb.WriteString("</div>")
	return sb.String()
}

// arabicDigits renders n with Arabic-Indic digits.
func arabicDigits(n int) string {
	var sb strings.Builder
	for _, r := range strconv.Itoa(n) {
		sb.WriteRune('٠' + (r - '0'))
	}
	return sb.String()
}

// sanitizeFilename removes characters that are invalid in filenames
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	// Trim spaces and dots from ends
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	if result == "" {
		result = "quran"
	}
	return result
}
