package transfer

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/hayashikun/kotoba/internal/domain"
	"github.com/hayashikun/kotoba/internal/platform/logger"
	"github.com/hayashikun/kotoba/internal/store"
)

// Importer reads delimited-text decks into the catalog.
type Importer struct {
	db          *sql.DB
	words       store.WordStore
	collections store.CollectionStore
	logger      *slog.Logger
}

// NewImporter creates a deck importer.
func NewImporter(
	db *sql.DB,
	words store.WordStore,
	collections store.CollectionStore,
	log *slog.Logger,
) *Importer {
	if db == nil {
		panic("db cannot be nil")
	}
	if words == nil {
		panic("words cannot be nil")
	}
	if collections == nil {
		panic("collections cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Importer{
		db:          db,
		words:       words,
		collections: collections,
		logger:      log.With(slog.String("component", "importer")),
	}
}

// ParseWords reads word records from r. The first line is a header and is
// ignored. Each record carries kanji, reading, meaning, type and optionally
// jlpt_level and grade_level; records with fewer than four fields are skipped
// with a warning and parsing continues. Level fields that fail integer
// parsing become absent rather than erroring. Returns the parsed words and
// the number of skipped records.
func (im *Importer) ParseWords(ctx context.Context, r io.Reader) ([]*domain.Word, int, error) {
	log := logger.FromContextOrDefault(ctx, im.logger)

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	words := []*domain.Word{}
	skipped := 0
	first := true

	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, skipped, fmt.Errorf("failed to read record: %w", err)
		}

		if first {
			first = false
			continue
		}

		if len(fields) < 4 {
			skipped++
			log.Warn("skipping malformed record",
				slog.Int("field_count", len(fields)),
				slog.String("record", strings.Join(fields, ",")))
			continue
		}

		word, err := domain.NewWord(fields[0], fields[1], fields[2], fields[3])
		if err != nil {
			skipped++
			log.Warn("skipping invalid record",
				slog.String("error", err.Error()),
				slog.String("record", strings.Join(fields, ",")))
			continue
		}

		if len(fields) > 4 {
			word.JLPTLevel = parseLevel(fields[4])
		}
		if len(fields) > 5 {
			word.GradeLevel = parseLevel(fields[5])
		}

		words = append(words, word)
	}

	return words, skipped, nil
}

// ImportDeck parses word records from r and loads them into the named
// collection, creating the collection if it does not exist. Words already in
// the catalog are linked but not modified. The insert-and-link batch runs in
// a single transaction: a mid-batch failure leaves no partial state.
// Returns the number of words processed.
func (im *Importer) ImportDeck(ctx context.Context, r io.Reader, collectionName string) (int, error) {
	log := logger.FromContextOrDefault(ctx, im.logger).With(
		slog.String("correlation_id", uuid.New().String()),
		slog.String("collection", collectionName))
	ctx = logger.WithLogger(ctx, log)

	words, skipped, err := im.ParseWords(ctx, r)
	if err != nil {
		return 0, err
	}
	if len(words) == 0 {
		return 0, fmt.Errorf("no valid words to import")
	}

	collection, err := domain.NewCollection(collectionName, "")
	if err != nil {
		return 0, err
	}
	if err := im.collections.Create(ctx, collection); err != nil {
		return 0, err
	}
	// Create is a silent no-op on duplicates, so re-query for the row.
	collection, err = im.collections.GetByName(ctx, collection.Name)
	if err != nil {
		return 0, err
	}

	err = store.RunInTransaction(ctx, im.db, func(ctx context.Context, tx *sql.Tx) error {
		return im.words.WithTx(tx).BulkInsert(ctx, words, collection.ID)
	})
	if err != nil {
		return 0, err
	}

	log.Info("deck import complete",
		slog.Int("imported", len(words)),
		slog.Int("skipped", skipped))
	return len(words), nil
}

// parseLevel returns the parsed level or nil when the field is empty or not
// an integer.
func parseLevel(field string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return nil
	}
	return &v
}
