package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayashikun/kotoba/internal/domain"
	"github.com/hayashikun/kotoba/internal/store"
)

func TestReviewStatStoreCreate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	stats := NewReviewStatStore(db, discardLogger())

	word := insertWord(t, db, "勉強", "べんきょう", "study")

	t.Run("creates fresh statistics", func(t *testing.T) {
		stat, err := domain.NewReviewStat(word.ID)
		require.NoError(t, err)

		require.NoError(t, stats.Create(ctx, stat))
		assert.NotZero(t, stat.ID)

		got, err := stats.GetByWordID(ctx, word.ID)
		require.NoError(t, err)
		assert.Equal(t, word.ID, got.WordID)
		assert.Nil(t, got.LastReviewedAt)
		assert.Zero(t, got.TimesCorrect)
		assert.Zero(t, got.TimesIncorrect)
		assert.InDelta(t, domain.DefaultEaseFactor, got.EaseFactor, 1e-9)
	})

	t.Run("second stat for the same word is rejected", func(t *testing.T) {
		stat, err := domain.NewReviewStat(word.ID)
		require.NoError(t, err)

		err = stats.Create(ctx, stat)
		require.Error(t, err)
		assert.True(t, store.IsDuplicateError(err))
	})

	t.Run("unknown word is rejected", func(t *testing.T) {
		stat, err := domain.NewReviewStat(9999)
		require.NoError(t, err)

		err = stats.Create(ctx, stat)
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func TestReviewStatStoreUpdate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	stats := NewReviewStatStore(db, discardLogger())

	word := insertWord(t, db, "漢字", "かんじ", "kanji")
	stat, err := domain.NewReviewStat(word.ID)
	require.NoError(t, err)
	require.NoError(t, stats.Create(ctx, stat))

	t.Run("persists counters, timestamp, and ease factor", func(t *testing.T) {
		reviewed := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
		stat.TimesCorrect = 3
		stat.TimesIncorrect = 1
		stat.EaseFactor = 2.3
		stat.LastReviewedAt = &reviewed

		require.NoError(t, stats.Update(ctx, stat))

		got, err := stats.GetByWordID(ctx, word.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, got.TimesCorrect)
		assert.Equal(t, 1, got.TimesIncorrect)
		assert.InDelta(t, 2.3, got.EaseFactor, 1e-9)
		require.NotNil(t, got.LastReviewedAt)
		assert.True(t, got.LastReviewedAt.Equal(reviewed))
	})

	t.Run("missing stat reports not found", func(t *testing.T) {
		orphan := &domain.ReviewStat{WordID: 9999, EaseFactor: domain.DefaultEaseFactor}

		err := stats.Update(ctx, orphan)
		assert.ErrorIs(t, err, store.ErrReviewStatNotFound)
	})
}

func TestReviewStatStoreGetByWordID(t *testing.T) {
	db := newTestDB(t)
	stats := NewReviewStatStore(db, discardLogger())

	_, err := stats.GetByWordID(context.Background(), 42)
	assert.ErrorIs(t, err, store.ErrReviewStatNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestReviewStatStorePriorityWordIDs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	stats := NewReviewStatStore(db, discardLogger())

	// addStat persists a stat row with the given history.
	addStat := func(t *testing.T, kanji, reading string, correct, incorrect int, reviewed *time.Time) int64 {
		t.Helper()
		word := insertWord(t, db, kanji, reading, "")
		stat, err := domain.NewReviewStat(word.ID)
		require.NoError(t, err)
		stat.TimesCorrect = correct
		stat.TimesIncorrect = incorrect
		stat.LastReviewedAt = reviewed
		require.NoError(t, stats.Create(ctx, stat))
		return word.ID
	}

	older := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	struggling := addStat(t, "難しい", "むずかしい", 1, 4, &newer)  // differential +3
	neverSeen := addStat(t, "新しい", "あたらしい", 0, 0, nil)        // differential 0, never reviewed
	staleEven := addStat(t, "古い", "ふるい", 2, 2, &older)          // differential 0, reviewed long ago
	freshEven := addStat(t, "最近", "さいきん", 2, 2, &newer)        // differential 0, reviewed recently
	mastered := addStat(t, "簡単", "かんたん", 5, 0, &older)          // differential -5

	t.Run("orders by differential, then oldest review with nulls first", func(t *testing.T) {
		got, err := stats.PriorityWordIDs(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []int64{struggling, neverSeen, staleEven, freshEven, mastered}, got)
	})

	t.Run("limit truncates the ranking", func(t *testing.T) {
		got, err := stats.PriorityWordIDs(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []int64{struggling, neverSeen}, got)
	})

	t.Run("non-positive count yields empty", func(t *testing.T) {
		for _, count := range []int{0, -3} {
			got, err := stats.PriorityWordIDs(ctx, count)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		}
	})
}

func TestReviewStatStorePriorityTiebreakByID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	stats := NewReviewStatStore(db, discardLogger())

	var want []int64
	for _, fixture := range []struct{ kanji, reading string }{
		{"甲", "こう"}, {"乙", "おつ"}, {"丙", "へい"},
	} {
		word := insertWord(t, db, fixture.kanji, fixture.reading, "")
		stat, err := domain.NewReviewStat(word.ID)
		require.NoError(t, err)
		require.NoError(t, stats.Create(ctx, stat))
		want = append(want, word.ID)
	}

	// Identical differentials and no timestamps: insertion order decides.
	got, err := stats.PriorityWordIDs(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
