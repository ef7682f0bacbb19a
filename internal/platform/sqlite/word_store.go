package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/hayashikun/kotoba/internal/domain"
	"github.com/hayashikun/kotoba/internal/platform/logger"
	"github.com/hayashikun/kotoba/internal/store"
)

// WordStore implements the store.WordStore interface on SQLite.
type WordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewWordStore creates a SQLite-backed word store. The database handle (or
// transaction) is initialized and managed by the caller. A nil logger falls
// back to the default.
func NewWordStore(db store.DBTX, log *slog.Logger) *WordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &WordStore{
		db:     db,
		logger: log.With(slog.String("component", "word_store")),
	}
}

// Ensure WordStore implements store.WordStore
var _ store.WordStore = (*WordStore)(nil)

// WithTx implements store.WordStore.WithTx
func (s *WordStore) WithTx(tx *sql.Tx) store.WordStore {
	return &WordStore{db: tx, logger: s.logger}
}

const wordColumns = `id, kanji, reading, meaning, jlpt_level, grade_level, type`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanWord(row rowScanner) (*domain.Word, error) {
	var w domain.Word
	var jlpt, grade sql.NullInt64

	if err := row.Scan(&w.ID, &w.Kanji, &w.Reading, &w.Meaning, &jlpt, &grade, &w.Type); err != nil {
		return nil, err
	}

	if jlpt.Valid {
		v := int(jlpt.Int64)
		w.JLPTLevel = &v
	}
	if grade.Valid {
		v := int(grade.Int64)
		w.GradeLevel = &v
	}

	return &w, nil
}

// nullableInt converts an optional level to a driver value.
func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

// Upsert implements store.WordStore.Upsert
func (s *WordStore) Upsert(ctx context.Context, word *domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := word.Validate(); err != nil {
		return err
	}

	var existingID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM words WHERE kanji = ? AND reading = ?`,
		word.Kanji, word.Reading,
	).Scan(&existingID)

	switch {
	case err == nil:
		// Natural key matched: overwrite the descriptive fields, keep the key
		// fields and ID untouched.
		_, err := s.db.ExecContext(ctx,
			`UPDATE words SET meaning = ?, jlpt_level = ?, grade_level = ?, type = ? WHERE id = ?`,
			word.Meaning, nullableInt(word.JLPTLevel), nullableInt(word.GradeLevel), word.Type, existingID,
		)
		if err != nil {
			return MapError(err)
		}
		word.ID = existingID
		log.Info("updated existing word",
			slog.String("kanji", word.Kanji),
			slog.String("reading", word.Reading),
			slog.Int64("word_id", existingID))
		return nil

	case errors.Is(err, sql.ErrNoRows):
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO words (kanji, reading, meaning, jlpt_level, grade_level, type)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			word.Kanji, word.Reading, word.Meaning,
			nullableInt(word.JLPTLevel), nullableInt(word.GradeLevel), word.Type,
		)
		if err != nil {
			return MapError(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		word.ID = id
		log.Info("inserted new word",
			slog.String("kanji", word.Kanji),
			slog.String("reading", word.Reading),
			slog.Int64("word_id", id))
		return nil

	default:
		return MapError(err)
	}
}

// GetByID implements store.WordStore.GetByID
func (s *WordStore) GetByID(ctx context.Context, id int64) (*domain.Word, error) {
	word, err := scanWord(s.db.QueryRowContext(ctx,
		`SELECT `+wordColumns+` FROM words WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrWordNotFound
		}
		return nil, MapError(err)
	}
	return word, nil
}

// FindByKanji implements store.WordStore.FindByKanji
func (s *WordStore) FindByKanji(ctx context.Context, kanji string) (*domain.Word, error) {
	word, err := scanWord(s.db.QueryRowContext(ctx,
		`SELECT `+wordColumns+` FROM words
		 WHERE TRIM(kanji) = ? COLLATE BINARY
		 LIMIT 1`,
		strings.TrimSpace(kanji)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrWordNotFound
		}
		return nil, MapError(err)
	}
	return word, nil
}

// Search implements store.WordStore.Search
func (s *WordStore) Search(ctx context.Context, query string) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("searching words", slog.String("query", query))

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+wordColumns+` FROM words
		 WHERE TRIM(kanji) LIKE ?
		    OR reading LIKE ?
		    OR meaning LIKE ?
		 ORDER BY id`,
		"%"+strings.TrimSpace(query)+"%", "%"+query+"%", "%"+query+"%",
	)
	if err != nil {
		return nil, MapError(err)
	}

	return collectWords(rows)
}

// RandomSample implements store.WordStore.RandomSample
func (s *WordStore) RandomSample(ctx context.Context, count int) ([]*domain.Word, error) {
	if count <= 0 {
		return []*domain.Word{}, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+wordColumns+` FROM words ORDER BY RANDOM() LIMIT ?`, count)
	if err != nil {
		return nil, MapError(err)
	}

	return collectWords(rows)
}

// RandomSampleByLevel implements store.WordStore.RandomSampleByLevel
func (s *WordStore) RandomSampleByLevel(ctx context.Context, jlptLevel, count int) ([]*domain.Word, error) {
	if count <= 0 {
		return []*domain.Word{}, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+wordColumns+` FROM words
		 WHERE jlpt_level = ?
		 ORDER BY RANDOM() LIMIT ?`,
		jlptLevel, count)
	if err != nil {
		return nil, MapError(err)
	}

	return collectWords(rows)
}

// RandomSampleByCollection implements store.WordStore.RandomSampleByCollection
func (s *WordStore) RandomSampleByCollection(ctx context.Context, collectionID int64, count int) ([]*domain.Word, error) {
	if count <= 0 {
		return []*domain.Word{}, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT w.id, w.kanji, w.reading, w.meaning, w.jlpt_level, w.grade_level, w.type
		 FROM words w
		 INNER JOIN collection_words cw ON w.id = cw.word_id
		 WHERE cw.collection_id = ?
		 ORDER BY RANDOM() LIMIT ?`,
		collectionID, count)
	if err != nil {
		return nil, MapError(err)
	}

	return collectWords(rows)
}

// GetByCollection implements store.WordStore.GetByCollection
func (s *WordStore) GetByCollection(ctx context.Context, collectionID int64) ([]*domain.Word, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT w.id, w.kanji, w.reading, w.meaning, w.jlpt_level, w.grade_level, w.type
		 FROM words w
		 INNER JOIN collection_words cw ON w.id = cw.word_id
		 WHERE cw.collection_id = ?
		 ORDER BY w.id`,
		collectionID)
	if err != nil {
		return nil, MapError(err)
	}

	return collectWords(rows)
}

// GetAll implements store.WordStore.GetAll
func (s *WordStore) GetAll(ctx context.Context) ([]*domain.Word, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+wordColumns+` FROM words ORDER BY id`)
	if err != nil {
		return nil, MapError(err)
	}

	return collectWords(rows)
}

// BulkInsert implements store.WordStore.BulkInsert
func (s *WordStore) BulkInsert(ctx context.Context, words []*domain.Word, collectionID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := time.Now().UTC()

	for _, word := range words {
		if err := word.Validate(); err != nil {
			return err
		}

		// Insert-if-absent: an existing natural key is skipped, not updated.
		if _, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO words (kanji, reading, meaning, jlpt_level, grade_level, type)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			word.Kanji, word.Reading, word.Meaning,
			nullableInt(word.JLPTLevel), nullableInt(word.GradeLevel), word.Type,
		); err != nil {
			return MapError(err)
		}

		// Link by natural key so pre-existing words are linked too.
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO collection_words (collection_id, word_id, added_at)
			 SELECT ?, id, ? FROM words WHERE kanji = ? AND reading = ?`,
			collectionID, now, word.Kanji, word.Reading,
		); err != nil {
			return MapError(err)
		}
	}

	log.Info("bulk inserted words into collection",
		slog.Int("word_count", len(words)),
		slog.Int64("collection_id", collectionID))
	return nil
}

// collectWords drains rows into a slice, always closing the rows.
func collectWords(rows *sql.Rows) ([]*domain.Word, error) {
	defer func() { _ = rows.Close() }()

	words := []*domain.Word{}
	for rows.Next() {
		word, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return words, nil
}
