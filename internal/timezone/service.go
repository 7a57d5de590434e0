package timezone

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/m3rciful/summerday/core/logger"
)

// Service is the handlers' entry point to stored offsets.
type Service struct {
	store Store
}

// NewService wraps store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Zone returns the user's offset, assigning DefaultOffset on first use.
func (s *Service) Zone(ctx context.Context, userID int64) (int, error) {
	start := time.Now()
	zone, err := s.store.Get(ctx, userID)
	if err != nil {
		logger.LogEvent(ctx, logger.SVCTimezones, slog.LevelError, "zone.get",
			slog.String("status", "fail"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
			slog.Duration("duration", logger.Took(start)),
		)
		return 0, err
	}
	if logger.ShouldSampleDebug() {
		logger.LogEvent(ctx, logger.SVCTimezones, slog.LevelDebug, "zone.get",
			slog.String("status", "ok"),
			slog.Int64("user_id", userID),
			slog.Int("zone", zone),
			slog.Duration("duration", logger.Took(start)),
		)
	}
	return zone, nil
}

// SetZone stores offset for the user. Out-of-range offsets are rejected with
// ErrOutOfRange and nothing is written.
func (s *Service) SetZone(ctx context.Context, userID int64, offset int) error {
	start := time.Now()
	err := s.store.Set(ctx, userID, offset)
	attrs := []slog.Attr{
		slog.String("status", logger.Status(err)),
		slog.Int64("user_id", userID),
		slog.Int("zone", offset),
		slog.Duration("duration", logger.Took(start)),
	}
	level := slog.LevelInfo
	switch {
	case errors.Is(err, ErrOutOfRange):
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("err", err.Error()))
	case err != nil:
		level = slog.LevelError
		attrs = append(attrs, slog.String("err", err.Error()))
	}
	logger.LogEvent(ctx, logger.SVCTimezones, level, "zone.set", attrs...)
	return err
}

// Users returns how many users have a stored offset.
func (s *Service) Users(ctx context.Context) (int, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		logger.LogEvent(ctx, logger.SVCTimezones, slog.LevelError, "zone.count",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return 0, err
	}
	return n, nil
}

// Close releases the store.
func (s *Service) Close() error {
	return s.store.Close()
}
