package review

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayashikun/kotoba/internal/domain"
	"github.com/hayashikun/kotoba/internal/domain/srs"
	"github.com/hayashikun/kotoba/internal/platform/sqlite"
	"github.com/hayashikun/kotoba/internal/store"
)

func newTestService(t *testing.T) (Service, *sql.DB) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.MigrateUp(db, log))

	svc := NewService(db, sqlite.NewReviewStatStore(db, log), srs.NewDefaultService(), log)
	return svc, db
}

func insertWord(t *testing.T, db *sql.DB, kanji, reading string) int64 {
	t.Helper()

	word, err := domain.NewWord(kanji, reading, "", "word")
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, sqlite.NewWordStore(db, log).Upsert(context.Background(), word))
	return word.ID
}

func TestRecordResultCreatesStatsOnFirstAnswer(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	wordID := insertWord(t, db, "初めて", "はじめて")

	stat, err := svc.RecordResult(ctx, wordID, true)
	require.NoError(t, err)

	assert.NotZero(t, stat.ID)
	assert.Equal(t, wordID, stat.WordID)
	assert.Equal(t, 1, stat.TimesCorrect)
	assert.Equal(t, 0, stat.TimesIncorrect)
	assert.InDelta(t, 2.65, stat.EaseFactor, 1e-9, "the first answer already adjusts the ease factor")
	assert.NotNil(t, stat.LastReviewedAt)
}

func TestRecordResultFirstAnswerIncorrect(t *testing.T) {
	svc, db := newTestService(t)
	wordID := insertWord(t, db, "間違い", "まちがい")

	stat, err := svc.RecordResult(context.Background(), wordID, false)
	require.NoError(t, err)

	assert.Equal(t, 0, stat.TimesCorrect)
	assert.Equal(t, 1, stat.TimesIncorrect)
	assert.InDelta(t, 2.25, stat.EaseFactor, 1e-9)
}

func TestRecordResultUpdatesExistingStats(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	wordID := insertWord(t, db, "繰り返す", "くりかえす")

	first, err := svc.RecordResult(ctx, wordID, true)
	require.NoError(t, err)
	second, err := svc.RecordResult(ctx, wordID, false)
	require.NoError(t, err)
	third, err := svc.RecordResult(ctx, wordID, true)
	require.NoError(t, err)

	assert.Equal(t, first.ID, third.ID, "all answers update the same row")
	assert.Equal(t, 2, third.TimesCorrect)
	assert.Equal(t, 1, third.TimesIncorrect)
	// 2.5 +0.15 -0.25 +0.15
	assert.InDelta(t, 2.55, third.EaseFactor, 1e-9)
	assert.False(t, third.LastReviewedAt.Before(*second.LastReviewedAt))
}

func TestRecordResultUnknownWord(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RecordResult(context.Background(), 9999, true)
	require.Error(t, err, "a stat row cannot reference a missing word")
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestPriorityWordIDs(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	hard := insertWord(t, db, "難問", "なんもん")
	easy := insertWord(t, db, "楽勝", "らくしょう")
	insertWord(t, db, "未出題", "みしゅつだい") // never answered, never eligible

	_, err := svc.RecordResult(ctx, hard, false)
	require.NoError(t, err)
	_, err = svc.RecordResult(ctx, easy, true)
	require.NoError(t, err)

	got, err := svc.PriorityWordIDs(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{hard, easy}, got)

	got, err = svc.PriorityWordIDs(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
