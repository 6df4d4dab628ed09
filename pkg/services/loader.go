package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kerbaras/qurandb/pkg/data"
	"github.com/kerbaras/qurandb/pkg/validation"
)

// ValidationError is returned by Load when the document fails validation.
// Nothing has been written when it is returned.
type ValidationError struct {
	Report *validation.Report
}

func (e *ValidationError) Error() string {
	if len(e.Report.Errors) == 1 {
		return "validation failed: " + e.Report.Errors[0]
	}
	return fmt.Sprintf("validation failed with %d errors", len(e.Report.Errors))
}

// CountsProvider supplies the expected verse counts.
type CountsProvider interface {
	Resolve(ctx context.Context) validation.ExpectedCounts
}

type LoaderOptions struct {
	Driver string
	Path   string
	Strict bool
	Counts CountsProvider
	Logger *slog.Logger
}

// CheckResult is the outcome of validating a document.
type CheckResult struct {
	Document *data.Document
	Expected validation.ExpectedCounts
	Report   *validation.Report
}

type LoadResult struct {
	CheckResult
	Surahs int
	Verses int
}

// Loader validates a document and replaces the store contents with it.
type Loader struct {
	driver string
	path   string
	strict bool
	counts CountsProvider
	logger *slog.Logger
}

func NewLoader(opts LoaderOptions) *Loader {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Loader{
		driver: opts.Driver,
		path:   opts.Path,
		strict: opts.Strict,
		counts: opts.Counts,
		logger: opts.Logger,
	}
}

// Check reads and validates input without touching the store.
func (l *Loader) Check(ctx context.Context, input string) (*CheckResult, error) {
	doc, err := data.ReadDocument(input)
	if err != nil {
		return nil, err
	}

	expected := validation.Fallback()
	if l.counts != nil {
		expected = l.counts.Resolve(ctx)
	}
	l.logger.Debug("Resolved expected counts",
		slog.String("source", expected.Source),
		slog.Int("total", expected.Total),
	)

	report := validation.Validate(doc, expected, validation.Options{Strict: l.strict})
	return &CheckResult{Document: doc, Expected: expected, Report: report}, nil
}

// Load checks input and, only if it is valid, opens the store and
// rewrites both tables in one transaction.
func (l *Loader) Load(ctx context.Context, input string) (*LoadResult, error) {
	check, err := l.Check(ctx, input)
	if err != nil {
		return nil, err
	}
	if !check.Report.OK() {
		for _, msg := range check.Report.Errors {
			l.logger.Error("Validation error", slog.String("error", msg))
		}
		return nil, &ValidationError{Report: check.Report}
	}

	attrs := []any{slog.String("driver", l.driver), slog.String("path", l.path)}
	if meta := check.Document.Meta; meta != nil {
		attrs = append(attrs, slog.String("run_id", meta.RunID))
	}
	l.logger.Info("Loading document", attrs...)

	repo, err := data.Open(l.driver, l.path)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	if err := repo.Replace(ctx, check.Document.Surahs, check.Document.Verses); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", input, err)
	}

	surahs, verses, err := repo.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}
	l.logger.Info("Load complete", slog.Int("surahs", surahs), slog.Int("verses", verses))

	return &LoadResult{CheckResult: *check, Surahs: surahs, Verses: verses}, nil
}
