package transfer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hayashikun/kotoba/internal/store"
)

// Column headers for the two export formats.
var (
	wordHeader    = []string{"kanji", "reading", "meaning", "type", "jlpt_level", "grade_level", "id"}
	sessionHeader = []string{"id", "started_at", "ended_at", "total_questions", "total_correct", "total_incorrect", "accuracy", "collection_name"}
)

// ExportCollection writes every word of the collection to w as delimited
// text: a header line followed by one record per word. The output
// round-trips through Importer.ParseWords.
func ExportCollection(ctx context.Context, words store.WordStore, collectionID int64, w io.Writer) error {
	list, err := words.GetByCollection(ctx, collectionID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(wordHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, word := range list {
		record := []string{
			word.Kanji,
			word.Reading,
			word.Meaning,
			word.Type,
			levelField(word.JLPTLevel),
			levelField(word.GradeLevel),
			strconv.FormatInt(word.ID, 10),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportSessionHistory writes all recorded sessions to w, most recent first:
// a header line followed by one record per session, with accuracy rounded to
// one decimal place. Commas inside a collection name are replaced with
// semicolons so the name never carries the delimiter.
func ExportSessionHistory(ctx context.Context, sessions store.SessionStatStore, w io.Writer) error {
	list, err := sessions.ListAllWithCollectionName(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(sessionHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, stat := range list {
		record := []string{
			strconv.FormatInt(stat.ID, 10),
			stat.StartedAt.UTC().Format(time.RFC3339),
			stat.EndedAt.UTC().Format(time.RFC3339),
			strconv.Itoa(stat.TotalQuestions),
			strconv.Itoa(stat.TotalCorrect),
			strconv.Itoa(stat.TotalIncorrect),
			strconv.FormatFloat(stat.Accuracy(), 'f', 1, 64),
			strings.ReplaceAll(stat.CollectionName, ",", ";"),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// levelField renders an optional level as text, empty when absent.
func levelField(level *int) string {
	if level == nil {
		return ""
	}
	return strconv.Itoa(*level)
}
