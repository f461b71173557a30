package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofrs/flock"

	"tvlog/internal/catalog"
	"tvlog/internal/config"
	"tvlog/internal/loadcache"
	"tvlog/internal/logging"
	"tvlog/internal/store"
	"tvlog/internal/textutil"
	"tvlog/internal/tracker"
)

// maxSuggestions bounds the "did you mean" list.
const maxSuggestions = 3

// Service runs tvlog workflows against one workbook.
type Service struct {
	book   store.Workbook
	cache  *loadcache.Cache
	writer *tracker.Writer
	lock   *flock.Flock
	logger *slog.Logger
}

// NewService wires a service around book using the cache, loader and lock
// settings in cfg.
func NewService(cfg *config.Config, book store.Workbook, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.NewNop()
	}
	loader := catalog.NewLoader(book, cfg.Loader.Concurrency, logger)
	return &Service{
		book: book,
		cache: loadcache.New(
			loadcache.FromLoader(loader),
			time.Duration(cfg.Cache.TTLSeconds)*time.Second,
			time.Duration(cfg.Cache.ErrorTTLSeconds)*time.Second,
		),
		writer: tracker.NewWriter(book, logger),
		lock:   flock.New(cfg.LockPath()),
		logger: logging.NewComponentLogger(logger, "api"),
	}
}

// Library returns the current snapshot, loading it when the cache is cold.
func (s *Service) Library(ctx context.Context) (*loadcache.Snapshot, error) {
	return s.cache.Get(ctx)
}

// Invalidate drops the cached library.
func (s *Service) Invalidate() {
	s.cache.Invalidate()
}

// findShow resolves name against snap or returns a *NotFoundError.
func (s *Service) findShow(snap *loadcache.Snapshot, name string) (*catalog.Show, error) {
	if show, ok := snap.Library.Find(name); ok {
		return show, nil
	}
	return nil, &NotFoundError{
		Name:        name,
		Suggestions: textutil.Suggest(name, snap.Library.Names(), maxSuggestions, textutil.DefaultSuggestThreshold),
	}
}

func warningStrings(warnings []catalog.Warning) []string {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.Error()
	}
	return out
}
