// Package testutil provides an in-process stand-in for the alquran.cloud
// API for tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/kerbaras/qurandb/pkg/data"
)

// QuranAPI serves /surah, /page/{n} and /juz/{n} with a synthetic corpus
// that has the real per-surah verse counts.
type QuranAPI struct {
	*httptest.Server

	mu sync.Mutex
	// SurahLimit truncates the /surah response when positive.
	SurahLimit int
	// FailSurahs makes /surah answer 500.
	FailSurahs bool
	// FailPages and FailJuz answer 500 for the listed units.
	FailPages map[int]bool
	FailJuz   map[int]bool
	hits      map[string]int

	ayahs []ayah
}

type surah struct {
	Number         int    `json:"number"`
	Name           string `json:"name"`
	EnglishName    string `json:"englishName"`
	RevelationType string `json:"revelationType"`
	NumberOfAyahs  int    `json:"numberOfAyahs"`
}

type ayah struct {
	Number        int    `json:"number"`
	Text          string `json:"text"`
	Surah         surah  `json:"surah"`
	NumberInSurah int    `json:"numberInSurah"`
	Juz           int    `json:"juz"`
	Manzil        int    `json:"manzil"`
	Page          int    `json:"page"`
	Ruku          int    `json:"ruku"`
	HizbQuarter   int    `json:"hizbQuarter"`
	Sajda         any    `json:"sajda"`
}

// NewQuranAPI starts the stub server; it is closed when the test ends.
func NewQuranAPI(t testing.TB) *QuranAPI {
	t.Helper()
	q := &QuranAPI{
		FailPages: map[int]bool{},
		FailJuz:   map[int]bool{},
		hits:      map[string]int{},
		ayahs:     buildCorpus(),
	}
	q.Server = httptest.NewServer(http.HandlerFunc(q.handle))
	t.Cleanup(q.Server.Close)
	return q
}

// Surahs returns the 114 synthetic surahs.
func Surahs() []data.Surah {
	out := make([]data.Surah, data.SurahCount)
	for i := range out {
		s := makeSurah(i + 1)
		out[i] = data.Surah{
			Number:         s.Number,
			Name:           s.Name,
			NameEn:         s.EnglishName,
			RevelationType: s.RevelationType,
			NumberOfAyahs:  s.NumberOfAyahs,
		}
	}
	return out
}

// Document returns a complete, valid document matching the stub corpus.
func Document() *data.Document {
	doc := &data.Document{Surahs: Surahs()}
	for _, a := range buildCorpus() {
		doc.Verses = append(doc.Verses, data.Verse{
			SurahNumber:      a.Surah.Number,
			AyahInSurah:      a.NumberInSurah,
			Text:             a.Text,
			HizbQuarter:      a.HizbQuarter,
			RukuNumber:       a.Ruku,
			Page:             a.Page,
			Manzil:           a.Manzil,
			Sajda:            data.Sajda(a.Sajda == true),
			GlobalAyahNumber: a.Number,
			SurahName:        a.Surah.Name,
			SurahNameEn:      a.Surah.EnglishName,
			RevelationType:   a.Surah.RevelationType,
			NumberOfAyahs:    a.Surah.NumberOfAyahs,
		})
	}
	return doc
}

// PageOf returns the page the stub assigns to a global verse number.
func PageOf(global int) int {
	return (global-1)*data.PageCount/data.VerseCount + 1
}

// JuzOf returns the juz the stub assigns to a global verse number.
func JuzOf(global int) int {
	return (global-1)*data.JuzCount/data.VerseCount + 1
}

// Hits returns how many requests reached path.
func (q *QuranAPI) Hits(path string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.hits[path]
}

func (q *QuranAPI) handle(w http.ResponseWriter, r *http.Request) {
	q.mu.Lock()
	q.hits[r.URL.Path]++
	q.mu.Unlock()

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case len(parts) == 1 && parts[0] == "surah":
		q.serveSurahs(w)
	case len(parts) == 2 && (parts[0] == "page" || parts[0] == "juz"):
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			writeError(w, http.StatusBadRequest)
			return
		}
		q.serveUnit(w, parts[0], n)
	default:
		writeError(w, http.StatusNotFound)
	}
}

func (q *QuranAPI) serveSurahs(w http.ResponseWriter) {
	q.mu.Lock()
	fail, limit := q.FailSurahs, q.SurahLimit
	q.mu.Unlock()
	if fail {
		writeError(w, http.StatusInternalServerError)
		return
	}

	n := data.SurahCount
	if limit > 0 && limit < n {
		n = limit
	}
	list := make([]surah, n)
	for i := range list {
		list[i] = makeSurah(i + 1)
	}
	writeData(w, list)
}

func (q *QuranAPI) serveUnit(w http.ResponseWriter, kind string, n int) {
	q.mu.Lock()
	fail := (kind == "page" && q.FailPages[n]) || (kind == "juz" && q.FailJuz[n])
	q.mu.Unlock()
	if fail {
		writeError(w, http.StatusInternalServerError)
		return
	}

	var ayahs []ayah
	for _, a := range q.ayahs {
		if (kind == "page" && a.Page == n) || (kind == "juz" && a.Juz == n) {
			ayahs = append(ayahs, a)
		}
	}
	if len(ayahs) == 0 {
		writeError(w, http.StatusNotFound)
		return
	}
	writeData(w, map[string]any{"number": n, "ayahs": ayahs})
}

func makeSurah(n int) surah {
	kind := "Meccan"
	if n%2 == 0 {
		kind = "Medinan"
	}
	return surah{
		Number:         n,
		Name:           fmt.Sprintf("سورة %d", n),
		EnglishName:    fmt.Sprintf("Surah-%d", n),
		RevelationType: kind,
		NumberOfAyahs:  data.AyahCounts[n-1],
	}
}

func buildCorpus() []ayah {
	out := make([]ayah, 0, data.VerseCount)
	global := 0
	for i, count := range data.AyahCounts {
		s := makeSurah(i + 1)
		for a := 1; a <= count; a++ {
			global++
			// The API sends false, or an object for prostration verses.
			var sajda any = false
			switch {
			case global%777 == 0:
				sajda = true
			case global%500 == 0:
				sajda = map[string]any{"id": global / 500, "recommended": true, "obligatory": false}
			}
			out = append(out, ayah{
				Number:        global,
				Text:          fmt.Sprintf("آية %d:%d", s.Number, a),
				Surah:         s,
				NumberInSurah: a,
				Juz:           JuzOf(global),
				Manzil:        i*7/data.SurahCount + 1,
				Page:          PageOf(global),
				Ruku:          (global-1)/10 + 1,
				HizbQuarter:   (global-1)*240/data.VerseCount + 1,
				Sajda:         sajda,
			})
		}
	}
	return out
}

func writeData(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"code":   http.StatusOK,
		"status": "OK",
		"data":   payload,
	})
}

func writeError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"code":   status,
		"status": http.StatusText(status),
		"data":   "error",
	})
}
