package api

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"tvlog/internal/logging"
	"tvlog/internal/tracker"
)

// MarkRequest edits the tracking fields of one episode.
type MarkRequest struct {
	Show     string
	Position int
	Edit     tracker.Edit
}

// MarkResult reports the outcome of Mark.
type MarkResult struct {
	Show      string `json:"show"`
	Position  int    `json:"position"`
	RequestID string `json:"request_id"`
	tracker.Result
}

// Mark writes req.Edit to the episode at req.Position. Writes are serialized
// across tvlog processes by the state directory lock. The cache is dropped
// whenever at least one field was written, even if others failed.
func (s *Service) Mark(ctx context.Context, req MarkRequest) (MarkResult, error) {
	result := MarkResult{Show: req.Show, Position: req.Position, RequestID: uuid.NewString()}
	if req.Edit.IsEmpty() {
		return result, fmt.Errorf("%w: nothing to change", tracker.ErrInvalidEdit)
	}
	ctx = logging.WithRequestID(ctx, result.RequestID)

	unlock, err := s.acquireLock()
	if err != nil {
		return result, err
	}
	defer unlock()

	snap, err := s.Library(ctx)
	if err != nil {
		return result, err
	}
	show, err := s.findShow(snap, req.Show)
	if err != nil {
		return result, err
	}
	result.Show = show.Name
	if req.Position < 0 || req.Position >= show.Table.Len() {
		return result, fmt.Errorf("%w: %d (%s has positions 0..%d)",
			ErrPositionOutOfRange, req.Position, show.Name, show.Table.Len()-1)
	}

	ctx = logging.WithShow(ctx, show.Name)
	res, err := s.writer.Apply(ctx, show.Sheet, req.Position, req.Edit)
	result.Result = res
	if len(res.Applied) > 0 {
		s.Invalidate()
	}
	logger := logging.WithContext(ctx, s.logger)
	if err != nil {
		logging.ErrorWithContext(logger, "episode update incomplete", "mark_failed",
			logging.Position(req.Position),
			logging.Error(err),
			logging.Hint("rerun the command for the fields that were not applied"),
		)
		return result, err
	}
	logger.Info("episode updated",
		logging.Position(req.Position),
		logging.Row(res.Row),
		logging.Int("applied", len(res.Applied)),
		logging.Int("skipped", len(res.Skipped)),
	)
	return result, nil
}

func (s *Service) acquireLock() (func(), error) {
	if err := os.MkdirAll(filepath.Dir(s.lock.Path()), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	ok, err := s.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrLocked, s.lock.Path())
	}
	return func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn("failed to release write lock",
				logging.Error(err),
				logging.String(logging.FieldEventType, "lock_release_failed"),
				logging.Hint("remove the lock file if no tvlog process is running"),
				logging.Impact("later writes may report the workbook as locked"),
			)
		}
	}, nil
}
