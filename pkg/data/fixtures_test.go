package data

import "fmt"

// testDocument builds a small two-surah document with one sajda verse.
func testDocument() *Document {
	surahs := []Surah{
		{Number: 1, Name: "سُورَةُ ٱلْفَاتِحَةِ", NameEn: "Al-Faatiha", RevelationType: "Meccan", NumberOfAyahs: 3},
		{Number: 2, Name: "سورة البقرة", NameEn: "Al-Baqara", RevelationType: "Medinan", NumberOfAyahs: 2},
	}

	var verses []Verse
	global := 0
	for _, s := range surahs {
		for a := 1; a <= s.NumberOfAyahs; a++ {
			global++
			verses = append(verses, Verse{
				SurahNumber:      s.Number,
				AyahInSurah:      a,
				Text:             fmt.Sprintf("بِسْمِ ٱللَّهِ %d:%d <&>", s.Number, a),
				HizbQuarter:      1,
				RukuNumber:       s.Number,
				Page:             s.Number,
				Manzil:           1,
				Sajda:            Sajda(global == 4),
				GlobalAyahNumber: global,
				SurahName:        s.Name,
				SurahNameEn:      s.NameEn,
				RevelationType:   s.RevelationType,
				NumberOfAyahs:    s.NumberOfAyahs,
			})
		}
	}
	return &Document{Surahs: surahs, Verses: verses}
}
