package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	"github.com/bonntanname/figure-checker/internal/model"

	_ "modernc.org/sqlite"
)

const journalFileName = "journal.sqlite"

// The journal is an append-only history of every recorded choice, across
// sessions and directories. It is the durable fallback for read-only sources
// (no CSV write-back possible) and a recovery path when a results file is
// lost before an explicit save.

func (s Store) journalPath() string {
	return filepath.Join(s.Dir, journalFileName)
}

func (s Store) openJournal(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.journalPath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when a CLI invocation overlaps the TUI.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateJournal(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateJournal(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS choices (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			directory TEXT NOT NULL,
			image TEXT NOT NULL,
			choice TEXT NOT NULL,
			recorded_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_choices_directory ON choices(directory);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// AppendChoice records one labeling action. The journal is append-only:
// re-labeling an image appends a second row rather than updating the first,
// so the full history stays reconstructible.
func (s Store) AppendChoice(ctx context.Context, rec model.ChoiceRecord) error {
	db, err := s.openJournal(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO choices(directory, image, choice, recorded_at_unixms) VALUES(?, ?, ?, ?)`,
		strings.TrimSpace(rec.Directory), rec.Image, rec.Choice, ts.UnixMilli())
	return err
}

// ReadChoices returns journal records in insertion order, optionally scoped
// to one directory. limit <= 0 returns everything.
func (s Store) ReadChoices(ctx context.Context, directory string, limit int) ([]model.ChoiceRecord, error) {
	db, err := s.openJournal(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT directory, image, choice, recorded_at_unixms FROM choices`
	var args []any
	directory = strings.TrimSpace(directory)
	if directory != "" {
		q += ` WHERE directory = ?`
		args = append(args, directory)
	}
	q += ` ORDER BY id ASC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ChoiceRecord{}
	for rows.Next() {
		var rec model.ChoiceRecord
		var tsMs int64
		if err := rows.Scan(&rec.Directory, &rec.Image, &rec.Choice, &tsMs); err != nil {
			return nil, err
		}
		rec.Timestamp = time.UnixMilli(tsMs).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
