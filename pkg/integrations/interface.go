package integrations

import (
	"context"

	"github.com/kerbaras/qurandb/pkg/data"
)

// Exporter turns a book into a file and returns its path.
type Exporter interface {
	Export(book *Book) (string, error)
}

// BookSource is the read side of the store an exporter needs.
type BookSource interface {
	ListSurahs(ctx context.Context) ([]data.Surah, error)
	GetVerses(ctx context.Context, surah int) ([]data.Verse, error)
}

// Book is the whole text in surah order.
type Book struct {
	Title  string
	Author string
	Surahs []data.Surah
	Verses map[int][]data.Verse
}

// LoadBook reads every surah and its verses from src.
func LoadBook(ctx context.Context, src BookSource, title, author string) (*Book, error) {
	surahs, err := src.ListSurahs(ctx)
	if err != nil {
		return nil, err
	}

	book := &Book{
		Title:  title,
		Author: author,
		Surahs: surahs,
		Verses: make(map[int][]data.Verse, len(surahs)),
	}
	for _, s := range surahs {
		verses, err := src.GetVerses(ctx, s.Number)
		if err != nil {
			return nil, err
		}
		book.Verses[s.Number] = verses
	}
	return book, nil
}
