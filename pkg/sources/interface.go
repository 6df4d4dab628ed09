package sources

import (
	"context"

	"github.com/kerbaras/qurandb/pkg/data"
)

type Source interface {
	GetSurahs(ctx context.Context) ([]data.Surah, error)
	GetPage(ctx context.Context, page int) ([]data.Verse, error)
	GetJuz(ctx context.Context, juz int) ([]data.Verse, error)
}
