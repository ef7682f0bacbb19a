package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/hayashikun/kotoba/internal/domain"
	"github.com/hayashikun/kotoba/internal/platform/logger"
	"github.com/hayashikun/kotoba/internal/store"
)

// ReviewStatStore implements the store.ReviewStatStore interface on SQLite.
type ReviewStatStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewReviewStatStore creates a SQLite-backed review stat store.
func NewReviewStatStore(db store.DBTX, log *slog.Logger) *ReviewStatStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ReviewStatStore{
		db:     db,
		logger: log.With(slog.String("component", "review_stat_store")),
	}
}

// Ensure ReviewStatStore implements store.ReviewStatStore
var _ store.ReviewStatStore = (*ReviewStatStore)(nil)

// WithTx implements store.ReviewStatStore.WithTx
func (s *ReviewStatStore) WithTx(tx *sql.Tx) store.ReviewStatStore {
	return &ReviewStatStore{db: tx, logger: s.logger}
}

// lastReviewedArg converts the optional timestamp to a driver value.
func lastReviewedArg(stat *domain.ReviewStat) any {
	if stat.LastReviewedAt == nil {
		return nil
	}
	return stat.LastReviewedAt.UTC()
}

// Create implements store.ReviewStatStore.Create
func (s *ReviewStatStore) Create(ctx context.Context, stat *domain.ReviewStat) error {
	if err := stat.Validate(); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO review_stats (word_id, last_reviewed_at, times_correct, times_incorrect, ease_factor)
		 VALUES (?, ?, ?, ?, ?)`,
		stat.WordID, lastReviewedArg(stat), stat.TimesCorrect, stat.TimesIncorrect, stat.EaseFactor,
	)
	if err != nil {
		return MapError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stat.ID = id

	return nil
}

// GetByWordID implements store.ReviewStatStore.GetByWordID
func (s *ReviewStatStore) GetByWordID(ctx context.Context, wordID int64) (*domain.ReviewStat, error) {
	var stat domain.ReviewStat
	var lastReviewed sql.NullTime

	err := s.db.QueryRowContext(ctx,
		`SELECT id, word_id, last_reviewed_at, times_correct, times_incorrect, ease_factor
		 FROM review_stats WHERE word_id = ?`,
		wordID,
	).Scan(&stat.ID, &stat.WordID, &lastReviewed, &stat.TimesCorrect, &stat.TimesIncorrect, &stat.EaseFactor)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrReviewStatNotFound
		}
		return nil, MapError(err)
	}

	if lastReviewed.Valid {
		t := lastReviewed.Time
		stat.LastReviewedAt = &t
	}

	return &stat, nil
}

// Update implements store.ReviewStatStore.Update
func (s *ReviewStatStore) Update(ctx context.Context, stat *domain.ReviewStat) error {
	if err := stat.Validate(); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE review_stats
		 SET last_reviewed_at = ?, times_correct = ?, times_incorrect = ?, ease_factor = ?
		 WHERE word_id = ?`,
		lastReviewedArg(stat), stat.TimesCorrect, stat.TimesIncorrect, stat.EaseFactor, stat.WordID,
	)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(res, store.ErrReviewStatNotFound)
}

// PriorityWordIDs implements store.ReviewStatStore.PriorityWordIDs
// Ranking: mistake differential descending, then least-recently-reviewed with
// never-reviewed rows first, then insertion order for determinism.
func (s *ReviewStatStore) PriorityWordIDs(ctx context.Context, count int) ([]int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if count <= 0 {
		return []int64{}, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT word_id
		 FROM review_stats
		 ORDER BY (times_incorrect - times_correct) DESC,
		          last_reviewed_at ASC NULLS FIRST,
		          id ASC
		 LIMIT ?`,
		count)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("selected priority words",
		slog.Int("requested", count),
		slog.Int("returned", len(ids)))
	return ids, nil
}
