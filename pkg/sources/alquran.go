package sources

import (
	"context"
	"fmt"

	"github.com/kerbaras/qurandb/pkg/data"
	"github.com/kerbaras/qurandb/pkg/utils"
)

type Surah struct {
	Number         int    `json:"number"`
	Name           string `json:"name"`
	EnglishName    string `json:"englishName"`
	RevelationType string `json:"revelationType"`
	NumberOfAyahs  int    `json:"numberOfAyahs"`
}

func (s *Surah) ToSurah() data.Surah {
	return data.Surah{
		Number:         s.Number,
		Name:           s.Name,
		NameEn:         s.EnglishName,
		RevelationType: s.RevelationType,
		NumberOfAyahs:  s.NumberOfAyahs,
	}
}

type Ayah struct {
	Number        int        `json:"number"`
	Text          string     `json:"text"`
	Surah         Surah      `json:"surah"`
	NumberInSurah int        `json:"numberInSurah"`
	Manzil        int        `json:"manzil"`
	Page          int        `json:"page"`
	Ruku          int        `json:"ruku"`
	HizbQuarter   int        `json:"hizbQuarter"`
	Sajda         data.Sajda `json:"sajda"`
}

func (a *Ayah) ToVerse() data.Verse {
	return data.Verse{
		SurahNumber:      a.Surah.Number,
		AyahInSurah:      a.NumberInSurah,
		Text:             a.Text,
		HizbQuarter:      a.HizbQuarter,
		RukuNumber:       a.Ruku,
		Page:             a.Page,
		Manzil:           a.Manzil,
		Sajda:            a.Sajda,
		GlobalAyahNumber: a.Number,
		SurahName:        a.Surah.Name,
		SurahNameEn:      a.Surah.EnglishName,
		RevelationType:   a.Surah.RevelationType,
		NumberOfAyahs:    a.Surah.NumberOfAyahs,
	}
}

// AlQuranCloud reads the alquran.cloud v1 API.
type AlQuranCloud struct {
	api *utils.API
}

func NewAlQuranCloud(api *utils.API) *AlQuranCloud {
	return &AlQuranCloud{api: api}
}

func (q *AlQuranCloud) GetSurahs(ctx context.Context) ([]data.Surah, error) {
	var resp struct {
		Data []Surah `json:"data"`
	}
	if err := q.api.Get(ctx, "/surah", nil, &resp); err != nil {
		return nil, err
	}
	out := make([]data.Surah, len(resp.Data))
	for i, s := range resp.Data {
		out[i] = s.ToSurah()
	}
	return out, nil
}

func (q *AlQuranCloud) GetPage(ctx context.Context, page int) ([]data.Verse, error) {
	return q.getAyahs(ctx, fmt.Sprintf("/page/%d", page))
}

func (q *AlQuranCloud) GetJuz(ctx context.Context, juz int) ([]data.Verse, error) {
	return q.getAyahs(ctx, fmt.Sprintf("/juz/%d", juz))
}

func (q *AlQuranCloud) getAyahs(ctx context.Context, path string) ([]data.Verse, error) {
	var resp struct {
		Data struct {
			Number int    `json:"number"`
			Ayahs  []Ayah `json:"ayahs"`
		} `json:"data"`
	}
	if err := q.api.Get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]data.Verse, len(resp.Data.Ayahs))
	for i, ayah := range resp.Data.Ayahs {
		out[i] = ayah.ToVerse()
	}
	return out, nil
}
