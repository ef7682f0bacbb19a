// Command kotoba is the administrative CLI for the vocabulary store: it
// initializes the database and moves decks and session history in and out.
// The interactive quiz loop lives elsewhere and drives the same library.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hayashikun/kotoba/internal/config"
	"github.com/hayashikun/kotoba/internal/domain/srs"
	"github.com/hayashikun/kotoba/internal/platform/logger"
	"github.com/hayashikun/kotoba/internal/platform/sqlite"
	"github.com/hayashikun/kotoba/internal/service/review"
	"github.com/hayashikun/kotoba/internal/transfer"
)

func main() {
	if err := run(); err != nil {
		slog.Error("kotoba failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	importFile := flag.String("import", "", "import a deck from the given delimited-text file")
	collectionName := flag.String("collection", "", "target collection name for -import")
	exportCollection := flag.Int64("export-collection", 0, "export the words of the given collection ID")
	exportSessions := flag.String("export-sessions", "", "export session history to the given file")
	out := flag.String("out", "", "output file for -export-collection")
	listWords := flag.Bool("list-words", false, "list every word in the catalog")
	listCollections := flag.Bool("list-collections", false, "list all collections")
	due := flag.Int("due", 0, "print the IDs of the N words most due for review")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Logging)
	if err != nil {
		return err
	}

	ctx := logger.WithLogger(context.Background(), log)

	db, err := sqlite.Initialize(ctx, cfg.Database.Path, cfg.Database.ResetCollectionsOnInit, log)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	words := sqlite.NewWordStore(db, log)
	collections := sqlite.NewCollectionStore(db, log)
	reviewStats := sqlite.NewReviewStatStore(db, log)
	sessions := sqlite.NewSessionStatStore(db, log)

	switch {
	case *importFile != "":
		if *collectionName == "" {
			return fmt.Errorf("-import requires -collection")
		}
		f, err := os.Open(*importFile)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()

		importer := transfer.NewImporter(db, words, collections, log)
		n, err := importer.ImportDeck(ctx, f, *collectionName)
		if err != nil {
			return err
		}
		fmt.Printf("imported %d words into %q\n", n, *collectionName)

	case *exportCollection != 0:
		if *out == "" {
			return fmt.Errorf("-export-collection requires -out")
		}
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()

		if err := transfer.ExportCollection(ctx, words, *exportCollection, f); err != nil {
			return err
		}
		fmt.Printf("exported collection %d to %s\n", *exportCollection, *out)

	case *exportSessions != "":
		f, err := os.Create(*exportSessions)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()

		if err := transfer.ExportSessionHistory(ctx, sessions, f); err != nil {
			return err
		}
		fmt.Printf("exported session history to %s\n", *exportSessions)

	case *listWords:
		all, err := words.GetAll(ctx)
		if err != nil {
			return err
		}
		for _, w := range all {
			fmt.Printf("[%d] %s (%s) %s\n", w.ID, w.Kanji, w.Reading, w.Meaning)
		}

	case *listCollections:
		all, err := collections.ListAll(ctx)
		if err != nil {
			return err
		}
		for _, c := range all {
			fmt.Printf("[%d] %s %s\n", c.ID, c.Name, c.Description)
		}

	case *due > 0:
		svc := review.NewService(db, reviewStats, srs.NewDefaultService(), log)
		ids, err := svc.PriorityWordIDs(ctx, *due)
		if err != nil {
			return err
		}
		for _, id := range ids {
			word, err := words.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("[%d] %s (%s)\n", word.ID, word.Kanji, word.Reading)
		}

	default:
		flag.Usage()
	}

	return nil
}
