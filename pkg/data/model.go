package data

import (
	"bytes"
	"encoding/json"
	"time"
)

const (
	SurahCount = 114
	VerseCount = 6236
	PageCount  = 604
	JuzCount   = 30
)

type Surah struct {
	Number         int    `json:"surahNumber"`
	Name           string `json:"surahName"`
	NameEn         string `json:"surahNameEn"`
	RevelationType string `json:"revelationType"` // "Meccan", "Medinan"
	NumberOfAyahs  int    `json:"numberOfAyahs"`
}

type Verse struct {
	SurahNumber      int    `json:"surahNumber"`
	AyahInSurah      int    `json:"ayahInSurah"`
	Text             string `json:"text"`
	HizbQuarter      int    `json:"hizbQuarter"`
	RukuNumber       int    `json:"rukuNumber"`
	Page             int    `json:"page"`
	Manzil           int    `json:"manzil"`
	Sajda            Sajda  `json:"sajda"`
	GlobalAyahNumber int    `json:"globalAyahNumber"`

	// Copied from the owning surah so readers never need a join.
	SurahName      string `json:"surahName"`
	SurahNameEn    string `json:"surahNameEn"`
	RevelationType string `json:"revelationType"`
	NumberOfAyahs  int    `json:"numberOfAyahs"`
}

// Sajda marks a verse of prostration. The API sends either a boolean or an
// object describing the prostration; anything that is not a JSON boolean
// decodes as false.
type Sajda bool

func (s *Sajda) UnmarshalJSON(b []byte) error {
	switch string(bytes.TrimSpace(b)) {
	case "true":
		*s = true
	default:
		*s = false
	}
	return nil
}

// Int returns the 0/1 form stored in the verses table.
func (s Sajda) Int() int {
	if s {
		return 1
	}
	return 0
}

type Meta struct {
	RunID       string    `json:"runId"`
	GeneratedAt time.Time `json:"generatedAt"`
	Mode        string    `json:"mode"`
	Source      string    `json:"source"`
	Skipped     int       `json:"skipped"`
}

// Document is the intermediate file passed from fetch to load.
type Document struct {
	Meta   *Meta   `json:"meta,omitempty"`
	Surahs []Surah `json:"surahs"`
	Verses []Verse `json:"verses"`
}

// VersesBySurah groups verses by surah number, keeping document order.
func (d *Document) VersesBySurah() map[int][]Verse {
	out := make(map[int][]Verse, SurahCount)
	for _, v := range d.Verses {
		out[v.SurahNumber] = append(out[v.SurahNumber], v)
	}
	return out
}

var _ json.Unmarshaler = (*Sajda)(nil)
