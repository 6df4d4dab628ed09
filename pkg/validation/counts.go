// Package validation checks an assembled document against the expected
// per-surah verse counts before it is allowed near the database.
package validation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kerbaras/qurandb/pkg/data"
	"github.com/kerbaras/qurandb/pkg/utils"
)

const (
	SourceAPI      = "api"
	SourceFallback = "fallback"
)

// ExpectedCounts holds the verse count of every surah, in surah order.
type ExpectedCounts struct {
	Counts []int
	Total  int
	Source string
}

// Fallback returns the embedded counts.
func Fallback() ExpectedCounts {
	counts := make([]int, len(data.AyahCounts))
	copy(counts, data.AyahCounts[:])
	return ExpectedCounts{Counts: counts, Total: data.VerseCount, Source: SourceFallback}
}

// CountsResolver asks the API for the current per-surah counts once, and
// falls back to the embedded table on any failure.
type CountsResolver struct {
	api    *utils.API
	logger *slog.Logger
}

func NewCountsResolver(baseURL string, timeout time.Duration, logger *slog.Logger) *CountsResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &CountsResolver{
		api: utils.NewAPI(baseURL, utils.APIOptions{
			Timeout:     timeout,
			MaxAttempts: 1,
			Logger:      logger,
		}),
		logger: logger,
	}
}

func (r *CountsResolver) Resolve(ctx context.Context) ExpectedCounts {
	counts, err := r.fetch(ctx)
	if err != nil {
		r.logger.Debug("using embedded verse counts",
			slog.String("url", r.api.BaseURL()+"/surah"),
			slog.String("error", err.Error()),
		)
		return Fallback()
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	return ExpectedCounts{Counts: counts, Total: total, Source: SourceAPI}
}

func (r *CountsResolver) fetch(ctx context.Context) ([]int, error) {
	var resp struct {
		Data []struct {
			Number        int  `json:"number"`
			NumberOfAyahs *int `json:"numberOfAyahs"`
		} `json:"data"`
	}
	if err := r.api.Get(ctx, "/surah", nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("empty surah list")
	}

	counts := make([]int, len(resp.Data))
	for i, s := range resp.Data {
		if s.NumberOfAyahs == nil || *s.NumberOfAyahs <= 0 {
			return nil, fmt.Errorf("surah %d: missing or invalid numberOfAyahs", s.Number)
		}
		counts[i] = *s.NumberOfAyahs
	}
	return counts, nil
}
