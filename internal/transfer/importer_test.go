package transfer

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayashikun/kotoba/internal/platform/sqlite"
	"github.com/hayashikun/kotoba/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.MigrateUp(db, discardLogger()))

	return db
}

func newImporter(t *testing.T, db *sql.DB) *Importer {
	t.Helper()

	log := discardLogger()
	return NewImporter(db, sqlite.NewWordStore(db, log), sqlite.NewCollectionStore(db, log), log)
}

func TestParseWords(t *testing.T) {
	db := newTestDB(t)
	importer := newImporter(t, db)
	ctx := context.Background()

	t.Run("parses a full deck", func(t *testing.T) {
		deck := strings.Join([]string{
			"kanji,reading,meaning,type,jlpt_level,grade_level",
			"食べる,たべる,to eat,word,5,2",
			"飲む,のむ,to drink,word,5,",
			"山,やま,mountain,kanji",
		}, "\n")

		words, skipped, err := importer.ParseWords(ctx, strings.NewReader(deck))
		require.NoError(t, err)
		assert.Zero(t, skipped)
		require.Len(t, words, 3)

		assert.Equal(t, "食べる", words[0].Kanji)
		require.NotNil(t, words[0].JLPTLevel)
		assert.Equal(t, 5, *words[0].JLPTLevel)
		require.NotNil(t, words[0].GradeLevel)
		assert.Equal(t, 2, *words[0].GradeLevel)

		assert.Nil(t, words[1].GradeLevel, "empty level field is absent")
		assert.Nil(t, words[2].JLPTLevel, "missing optional columns are absent")
	})

	t.Run("skips short and invalid records", func(t *testing.T) {
		deck := strings.Join([]string{
			"kanji,reading,meaning,type",
			"水,みず,water,word",
			"とても短い",
			",よみ,no kanji,word",
			"火,ひ,fire,word",
		}, "\n")

		words, skipped, err := importer.ParseWords(ctx, strings.NewReader(deck))
		require.NoError(t, err)
		assert.Equal(t, 2, skipped)
		require.Len(t, words, 2)
		assert.Equal(t, "水", words[0].Kanji)
		assert.Equal(t, "火", words[1].Kanji)
	})

	t.Run("non-numeric level becomes absent", func(t *testing.T) {
		deck := "kanji,reading,meaning,type,jlpt_level\n猫,ねこ,cat,word,N5\n"

		words, skipped, err := importer.ParseWords(ctx, strings.NewReader(deck))
		require.NoError(t, err)
		assert.Zero(t, skipped)
		require.Len(t, words, 1)
		assert.Nil(t, words[0].JLPTLevel)
	})

	t.Run("header-only input yields nothing", func(t *testing.T) {
		words, skipped, err := importer.ParseWords(ctx, strings.NewReader("kanji,reading,meaning,type\n"))
		require.NoError(t, err)
		assert.Zero(t, skipped)
		assert.Empty(t, words)
	})
}

func TestImportDeck(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the collection and loads the words", func(t *testing.T) {
		db := newTestDB(t)
		importer := newImporter(t, db)
		log := discardLogger()

		deck := strings.Join([]string{
			"kanji,reading,meaning,type",
			"犬,いぬ,dog,word",
			"猫,ねこ,cat,word",
		}, "\n")

		n, err := importer.ImportDeck(ctx, strings.NewReader(deck), "animals")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		collection, err := sqlite.NewCollectionStore(db, log).GetByName(ctx, "animals")
		require.NoError(t, err)

		members, err := sqlite.NewWordStore(db, log).GetByCollection(ctx, collection.ID)
		require.NoError(t, err)
		assert.Len(t, members, 2)
	})

	t.Run("reuses an existing collection and existing words", func(t *testing.T) {
		db := newTestDB(t)
		importer := newImporter(t, db)
		log := discardLogger()
		words := sqlite.NewWordStore(db, log)

		first := "kanji,reading,meaning,type\n犬,いぬ,dog,word\n"
		second := "kanji,reading,meaning,type\n犬,いぬ,DOG OVERRIDE,word\n猫,ねこ,cat,word\n"

		_, err := importer.ImportDeck(ctx, strings.NewReader(first), "animals")
		require.NoError(t, err)
		n, err := importer.ImportDeck(ctx, strings.NewReader(second), "animals")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		// Still one catalog entry for 犬, with its original meaning.
		dog, err := words.FindByKanji(ctx, "犬")
		require.NoError(t, err)
		assert.Equal(t, "dog", dog.Meaning)

		all, err := words.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("rejects a deck with no valid words", func(t *testing.T) {
		db := newTestDB(t)
		importer := newImporter(t, db)

		_, err := importer.ImportDeck(ctx, strings.NewReader("kanji,reading,meaning,type\nみじかい\n"), "empty")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no valid words")

		// The failed import must not leave a collection behind either.
		_, err = sqlite.NewCollectionStore(db, discardLogger()).GetByName(ctx, "empty")
		assert.ErrorIs(t, err, store.ErrCollectionNotFound)
	})
}
