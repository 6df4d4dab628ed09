package validation

import (
	"fmt"

	"github.com/kerbaras/qurandb/pkg/data"
)

type Options struct {
	// Strict also requires every surah to hold exactly its expected
	// number of verse records.
	Strict bool
}

// Report lists every violation found in a document.
type Report struct {
	Errors   []string
	Warnings []string
}

func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Validate checks the surah count, the total verse count and, for each
// expected surah, the highest verse position observed.
func Validate(doc *data.Document, expected ExpectedCounts, opts Options) *Report {
	report := &Report{Errors: []string{}, Warnings: []string{}}

	if n := len(doc.Surahs); n != data.SurahCount {
		report.errorf("Expected %d surahs, found %d", data.SurahCount, n)
	}
	if n := len(doc.Verses); n != expected.Total {
		report.errorf("Expected %d ayahs, found %d", expected.Total, n)
	}

	maxAyah := make(map[int]int, data.SurahCount)
	records := make(map[int]int, data.SurahCount)
	for _, v := range doc.Verses {
		if v.AyahInSurah > maxAyah[v.SurahNumber] {
			maxAyah[v.SurahNumber] = v.AyahInSurah
		}
		records[v.SurahNumber]++
	}

	for i, want := range expected.Counts {
		surah := i + 1
		if got := maxAyah[surah]; got != want {
			report.errorf("Surah %d: expected %d ayahs, found %d", surah, want, got)
		}
		if opts.Strict {
			if got := records[surah]; got != want {
				report.errorf("Surah %d: expected %d verse records, found %d", surah, want, got)
			}
		}
	}

	return report
}
