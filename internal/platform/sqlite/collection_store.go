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

// CollectionStore implements the store.CollectionStore interface on SQLite.
type CollectionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCollectionStore creates a SQLite-backed collection store.
func NewCollectionStore(db store.DBTX, log *slog.Logger) *CollectionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &CollectionStore{
		db:     db,
		logger: log.With(slog.String("component", "collection_store")),
	}
}

// Ensure CollectionStore implements store.CollectionStore
var _ store.CollectionStore = (*CollectionStore)(nil)

// WithTx implements store.CollectionStore.WithTx
func (s *CollectionStore) WithTx(tx *sql.Tx) store.CollectionStore {
	return &CollectionStore{db: tx, logger: s.logger}
}

// Create implements store.CollectionStore.Create
// Name uniqueness is enforced by the storage layer: INSERT OR IGNORE is a
// single atomic statement, so there is no check-then-insert race and a
// duplicate name is a silent no-op.
func (s *CollectionStore) Create(ctx context.Context, collection *domain.Collection) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := collection.Validate(); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO collections (name, description) VALUES (?, ?)`,
		collection.Name, collection.Description,
	)
	if err != nil {
		return MapError(err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if inserted == 0 {
		log.Info("collection already exists, skipping",
			slog.String("name", collection.Name))
		return nil
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	collection.ID = id

	log.Info("created collection",
		slog.String("name", collection.Name),
		slog.Int64("collection_id", id))
	return nil
}

// GetByName implements store.CollectionStore.GetByName
func (s *CollectionStore) GetByName(ctx context.Context, name string) (*domain.Collection, error) {
	var c domain.Collection
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description FROM collections WHERE name = ?`, name,
	).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCollectionNotFound
		}
		return nil, MapError(err)
	}
	return &c, nil
}

// ListAll implements store.CollectionStore.ListAll
func (s *CollectionStore) ListAll(ctx context.Context) ([]*domain.Collection, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description FROM collections ORDER BY name`)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	collections := []*domain.Collection{}
	for rows.Next() {
		var c domain.Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		collections = append(collections, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return collections, nil
}

// Delete implements store.CollectionStore.Delete
// Membership links are removed by the schema's ON DELETE CASCADE.
func (s *CollectionStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	res, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE id = ?`, id)
	if err != nil {
		return MapError(err)
	}

	if err := CheckRowsAffected(res, store.ErrCollectionNotFound); err != nil {
		return err
	}

	log.Info("deleted collection", slog.Int64("collection_id", id))
	return nil
}
