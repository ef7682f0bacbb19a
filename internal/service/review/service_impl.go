package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hayashikun/kotoba/internal/domain"
	"github.com/hayashikun/kotoba/internal/domain/srs"
	"github.com/hayashikun/kotoba/internal/platform/logger"
	"github.com/hayashikun/kotoba/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	db         *sql.DB
	stats      store.ReviewStatStore
	srsService srs.Service
	logger     *slog.Logger
}

// NewService creates a review tracker over the given database handle and
// stat store. The get-or-create-then-update sequence in RecordResult runs in
// one transaction on the handle.
func NewService(
	db *sql.DB,
	stats store.ReviewStatStore,
	srsService srs.Service,
	log *slog.Logger,
) Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if stats == nil {
		panic("stats cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		db:         db,
		stats:      stats,
		srsService: srsService,
		logger:     log.With(slog.String("component", "review_service")),
	}
}

// RecordResult implements Service.RecordResult.
func (s *serviceImpl) RecordResult(ctx context.Context, wordID int64, correct bool) (*domain.ReviewStat, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("recording answer",
		slog.Int64("word_id", wordID),
		slog.Bool("correct", correct))

	var updated *domain.ReviewStat
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStats := s.stats.WithTx(tx)

		stat, err := txStats.GetByWordID(ctx, wordID)
		created := false
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("failed to load review stat: %w", err)
			}
			// First answer for this word: start from defaults.
			stat, err = domain.NewReviewStat(wordID)
			if err != nil {
				return err
			}
			created = true
		}

		next, err := s.srsService.Advance(stat, correct, time.Now())
		if err != nil {
			return err
		}

		if created {
			if err := txStats.Create(ctx, next); err != nil {
				return fmt.Errorf("failed to create review stat: %w", err)
			}
		} else {
			if err := txStats.Update(ctx, next); err != nil {
				return fmt.Errorf("failed to update review stat: %w", err)
			}
		}

		updated = next
		return nil
	})
	if err != nil {
		log.Error("failed to record answer",
			slog.String("error", err.Error()),
			slog.Int64("word_id", wordID))
		return nil, err
	}

	log.Debug("recorded answer",
		slog.Int64("word_id", wordID),
		slog.Bool("correct", correct),
		slog.Int("times_correct", updated.TimesCorrect),
		slog.Int("times_incorrect", updated.TimesIncorrect),
		slog.Float64("ease_factor", updated.EaseFactor))
	return updated, nil
}

// PriorityWordIDs implements Service.PriorityWordIDs.
func (s *serviceImpl) PriorityWordIDs(ctx context.Context, count int) ([]int64, error) {
	return s.stats.PriorityWordIDs(ctx, count)
}
