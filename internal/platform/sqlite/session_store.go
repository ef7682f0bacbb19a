package sqlite

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/hayashikun/kotoba/internal/domain"
	"github.com/hayashikun/kotoba/internal/platform/logger"
	"github.com/hayashikun/kotoba/internal/store"
)

// SessionStatStore implements the store.SessionStatStore interface on SQLite.
type SessionStatStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSessionStatStore creates a SQLite-backed session stat store.
func NewSessionStatStore(db store.DBTX, log *slog.Logger) *SessionStatStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &SessionStatStore{
		db:     db,
		logger: log.With(slog.String("component", "session_stat_store")),
	}
}

// Ensure SessionStatStore implements store.SessionStatStore
var _ store.SessionStatStore = (*SessionStatStore)(nil)

// WithTx implements store.SessionStatStore.WithTx
func (s *SessionStatStore) WithTx(tx *sql.Tx) store.SessionStatStore {
	return &SessionStatStore{db: tx, logger: s.logger}
}

// Insert implements store.SessionStatStore.Insert
func (s *SessionStatStore) Insert(ctx context.Context, stat *domain.SessionStat) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := stat.Validate(); err != nil {
		return err
	}

	var collectionID any
	if stat.CollectionID != nil {
		collectionID = *stat.CollectionID
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO session_stats (started_at, ended_at, total_questions, total_correct, total_incorrect, collection_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		stat.StartedAt.UTC(), stat.EndedAt.UTC(),
		stat.TotalQuestions, stat.TotalCorrect, stat.TotalIncorrect,
		collectionID,
	)
	if err != nil {
		return MapError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stat.ID = id

	log.Info("recorded session",
		slog.Int64("session_id", id),
		slog.Int("total_questions", stat.TotalQuestions),
		slog.Int("total_correct", stat.TotalCorrect))
	return nil
}

// ListAllWithCollectionName implements store.SessionStatStore.ListAllWithCollectionName
func (s *SessionStatStore) ListAllWithCollectionName(ctx context.Context) ([]*domain.SessionStat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.started_at, s.ended_at,
		        s.total_questions, s.total_correct, s.total_incorrect,
		        s.collection_id, COALESCE(c.name, '') AS collection_name
		 FROM session_stats s
		 LEFT JOIN collections c ON s.collection_id = c.id
		 ORDER BY s.started_at DESC`)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	sessions := []*domain.SessionStat{}
	for rows.Next() {
		var stat domain.SessionStat
		var collectionID sql.NullInt64

		if err := rows.Scan(
			&stat.ID, &stat.StartedAt, &stat.EndedAt,
			&stat.TotalQuestions, &stat.TotalCorrect, &stat.TotalIncorrect,
			&collectionID, &stat.CollectionName,
		); err != nil {
			return nil, err
		}

		if collectionID.Valid {
			id := collectionID.Int64
			stat.CollectionID = &id
		}

		sessions = append(sessions, &stat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
