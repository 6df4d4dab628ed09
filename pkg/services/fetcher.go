package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kerbaras/qurandb/pkg/data"
	"github.com/kerbaras/qurandb/pkg/sources"
)

// Mode selects how verses are requested from the API.
type Mode string

const (
	ModePage Mode = "page"
	ModeJuz  Mode = "juz"
)

// FetchProgress represents the progress of a fetch operation
type FetchProgress struct {
	Mode   Mode
	Unit   int
	Total  int
	Verses int    // verses collected so far
	Status string // "fetching", "done", "skipped"
	Error  error
}

type FetcherOptions struct {
	Pages          int
	Juz            int
	RateLimitDelay time.Duration
	// Origin is recorded in the document meta, usually the API base URL.
	Origin string
	Logger *slog.Logger
}

// Summary describes a completed fetch run.
type Summary struct {
	RunID   string
	Mode    Mode
	Output  string
	Surahs  int
	Verses  int
	Skipped int
	Elapsed time.Duration
}

// Fetcher walks the API one page or juz at a time and assembles the
// results into a document. It never issues two requests at once.
type Fetcher struct {
	source       sources.Source
	pages        int
	juz          int
	delay        time.Duration
	origin       string
	logger       *slog.Logger
	progressChan chan FetchProgress
	closeOnce    sync.Once
}

func NewFetcher(source sources.Source, opts FetcherOptions) *Fetcher {
	if opts.Pages <= 0 {
		opts.Pages = data.PageCount
	}
	if opts.Juz <= 0 {
		opts.Juz = data.JuzCount
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Fetcher{
		source:       source,
		pages:        opts.Pages,
		juz:          opts.Juz,
		delay:        opts.RateLimitDelay,
		origin:       opts.Origin,
		logger:       opts.Logger,
		progressChan: make(chan FetchProgress, 100),
	}
}

// GetProgressChannel returns the channel for receiving fetch progress updates
func (f *Fetcher) GetProgressChannel() <-chan FetchProgress {
	return f.progressChan
}

// FetchSurahs returns the surah list; there is no partial result.
func (f *Fetcher) FetchSurahs(ctx context.Context) ([]data.Surah, error) {
	surahs, err := f.source.GetSurahs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch surahs: %w", err)
	}
	f.logger.Info("Fetched surahs", slog.Int("count", len(surahs)))
	return surahs, nil
}

// FetchVersesByPage fetches every page in order. Pages that still fail
// after retries are skipped and counted.
func (f *Fetcher) FetchVersesByPage(ctx context.Context) ([]data.Verse, int, error) {
	return f.fetchUnits(ctx, ModePage, f.pages, f.source.GetPage)
}

// FetchVersesByJuz is FetchVersesByPage over juz.
func (f *Fetcher) FetchVersesByJuz(ctx context.Context) ([]data.Verse, int, error) {
	return f.fetchUnits(ctx, ModeJuz, f.juz, f.source.GetJuz)
}

func (f *Fetcher) fetchUnits(
	ctx context.Context,
	mode Mode,
	total int,
	get func(context.Context, int) ([]data.Verse, error),
) ([]data.Verse, int, error) {
	verses := make([]data.Verse, 0, data.VerseCount)
	skipped := 0

	for n := 1; n <= total; n++ {
		if err := ctx.Err(); err != nil {
			return nil, skipped, err
		}

		f.sendProgress(FetchProgress{Mode: mode, Unit: n, Total: total, Verses: len(verses), Status: "fetching"})

		batch, err := get(ctx, n)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil, skipped, ctx.Err()
		case err != nil:
			skipped++
			f.logger.Error("Skipping unit",
				slog.String("mode", string(mode)),
				slog.Int(string(mode), n),
				slog.String("error", err.Error()),
			)
			f.sendProgress(FetchProgress{Mode: mode, Unit: n, Total: total, Verses: len(verses), Status: "skipped", Error: err})
		default:
			verses = append(verses, batch...)
			f.sendProgress(FetchProgress{Mode: mode, Unit: n, Total: total, Verses: len(verses), Status: "done"})
		}

		if err := f.wait(ctx); err != nil {
			return nil, skipped, err
		}
	}

	return verses, skipped, nil
}

// Generate fetches the surah list and then every verse in the given mode.
func (f *Fetcher) Generate(ctx context.Context, mode Mode) (*data.Document, error) {
	runID := uuid.NewString()
	logger := f.logger.With(slog.String("run_id", runID))
	logger.Info("Starting fetch", slog.String("mode", string(mode)))

	surahs, err := f.FetchSurahs(ctx)
	if err != nil {
		return nil, err
	}
	if err := f.wait(ctx); err != nil {
		return nil, err
	}

	var (
		verses  []data.Verse
		skipped int
	)
	switch mode {
	case ModePage, "":
		mode = ModePage
		verses, skipped, err = f.FetchVersesByPage(ctx)
	case ModeJuz:
		verses, skipped, err = f.FetchVersesByJuz(ctx)
	default:
		return nil, fmt.Errorf("unknown fetch mode %q", mode)
	}
	if err != nil {
		return nil, err
	}

	if skipped > 0 {
		logger.Warn("Fetch incomplete", slog.Int("skipped", skipped), slog.Int("verses", len(verses)))
	}

	return &data.Document{
		Meta: &data.Meta{
			RunID:       runID,
			GeneratedAt: time.Now().UTC(),
			Mode:        string(mode),
			Source:      f.origin,
			Skipped:     skipped,
		},
		Surahs: surahs,
		Verses: verses,
	}, nil
}

// Run generates a document and writes it to output.
func (f *Fetcher) Run(ctx context.Context, mode Mode, output string) (*Summary, error) {
	started := time.Now()

	doc, err := f.Generate(ctx, mode)
	if err != nil {
		return nil, err
	}
	if err := data.WriteDocument(output, doc); err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:   doc.Meta.RunID,
		Mode:    Mode(doc.Meta.Mode),
		Output:  output,
		Surahs:  len(doc.Surahs),
		Verses:  len(doc.Verses),
		Skipped: doc.Meta.Skipped,
		Elapsed: time.Since(started),
	}
	f.logger.Info("Saved document",
		slog.String("run_id", summary.RunID),
		slog.String("path", output),
		slog.Int("surahs", summary.Surahs),
		slog.Int("verses", summary.Verses),
		slog.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

func (f *Fetcher) wait(ctx context.Context) error {
	if f.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(f.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// sendProgress sends a progress update (non-blocking)
func (f *Fetcher) sendProgress(progress FetchProgress) {
	select {
	case f.progressChan <- progress:
	default:
		// Channel full, skip this update
	}
}

// Close closes the progress channel. Call it once no fetch is running.
func (f *Fetcher) Close() {
	f.closeOnce.Do(func() {
		close(f.progressChan)
	})
}
