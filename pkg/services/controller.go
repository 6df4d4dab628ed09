package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/kerbaras/qurandb/pkg/config"
	"github.com/kerbaras/qurandb/pkg/data"
	"github.com/kerbaras/qurandb/pkg/sources"
	"github.com/kerbaras/qurandb/pkg/utils"
	"github.com/kerbaras/qurandb/pkg/validation"
)

// Controller builds the pipeline stages from a configuration.
type Controller struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewController(cfg *config.Config, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{cfg: cfg, logger: logger}
}

func (c *Controller) Source() sources.Source {
	api := utils.NewAPI(c.cfg.API.BaseURL, utils.APIOptions{
		Timeout:     c.cfg.API.Timeout,
		MaxAttempts: c.cfg.API.MaxAttempts,
		RetryDelay:  c.cfg.API.RetryDelay,
		UserAgent:   c.cfg.API.UserAgent,
		Logger:      c.logger,
	})
	return sources.NewAlQuranCloud(api)
}

func (c *Controller) Fetcher() *Fetcher {
	return NewFetcher(c.Source(), FetcherOptions{
		Pages:          c.cfg.Fetch.Pages,
		Juz:            c.cfg.Fetch.Juz,
		RateLimitDelay: c.cfg.API.RateLimitDelay,
		Origin:         c.cfg.API.BaseURL,
		Logger:         c.logger,
	})
}

func (c *Controller) Loader() *Loader {
	return NewLoader(LoaderOptions{
		Driver: c.cfg.Store.Driver,
		Path:   c.cfg.Store.Path,
		Strict: c.cfg.Validation.Strict,
		Counts: validation.NewCountsResolver(c.cfg.API.BaseURL, c.cfg.API.CountsTimeout, c.logger),
		Logger: c.logger,
	})
}

// OpenRepository opens the configured store for reading. It never creates
// the store.
func (c *Controller) OpenRepository() (*data.Repository, error) {
	repo, err := data.OpenExisting(c.cfg.Store.Driver, c.cfg.Store.Path)
	if errors.Is(err, data.ErrStoreNotFound) {
		return nil, fmt.Errorf("%w, run `qurandb load` first", err)
	}
	return repo, err
}
