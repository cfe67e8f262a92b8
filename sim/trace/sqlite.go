package trace

import (
	"database/sql"
	"fmt"
	"os"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
)

const createRecordsTable = `
CREATE TABLE IF NOT EXISTS records (
	run         TEXT    NOT NULL,
	realization INTEGER NOT NULL,
	time        REAL    NOT NULL,
	event       TEXT    NOT NULL,
	subject     TEXT    NOT NULL,
	params      TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS records_run_realization ON records (run, realization);
`

const insertRecord = `INSERT INTO records (run, realization, time, event, subject, params) VALUES (?, ?, ?, ?, ?, ?)`

// SQLiteSink buffers records and writes them to a SQLite database in
// batched transactions. Every sink gets a unique run id so several runs can
// share one database file. Flush errors are sticky: after the first failure
// every later Write is dropped and every Flush returns that error.
type SQLiteSink struct {
	db        *sql.DB
	path      string
	runID     string
	batchSize int
	pending   []Record
	err       error
}

// NewSQLiteSink opens (or creates) the database at path. An empty path
// creates outbreak_<run id>.sqlite3 in the working directory.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	runID := xid.New().String()
	if path == "" {
		path = "outbreak_" + runID + ".sqlite3"
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("file %s already exists", path)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening record database: %w", err)
	}
	if _, err := db.Exec(createRecordsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating records table: %w", err)
	}

	return &SQLiteSink{
		db:        db,
		path:      path,
		runID:     runID,
		batchSize: 10000,
	}, nil
}

// RunID identifies the rows written by this sink.
func (s *SQLiteSink) RunID() string {
	return s.runID
}

// Path is the database file the sink writes to.
func (s *SQLiteSink) Path() string {
	return s.path
}

// Write buffers a record, flushing once the batch is full.
func (s *SQLiteSink) Write(record Record) {
	if s.err != nil {
		return
	}
	s.pending = append(s.pending, record)
	if len(s.pending) >= s.batchSize {
		s.Flush()
	}
}

// Flush writes all buffered records in a single transaction.
func (s *SQLiteSink) Flush() error {
	if s.err != nil {
		return s.err
	}
	s.err = s.flush()
	return s.err
}

// Err returns the first flush error, if any.
func (s *SQLiteSink) Err() error {
	return s.err
}

func (s *SQLiteSink) flush() error {
	if len(s.pending) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning record batch: %w", err)
	}
	stmt, err := tx.Prepare(insertRecord)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing record insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range s.pending {
		subject := r.Subject
		if subject == "" {
			subject = Missing
		}
		if _, err := stmt.Exec(s.runID, r.Realization, r.Time, r.Type, subject, r.ParamString()); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting %s record: %w", r.Type, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing record batch: %w", err)
	}

	s.pending = s.pending[:0]
	return nil
}

// Close flushes pending records and closes the database.
func (s *SQLiteSink) Close() error {
	err := s.Flush()
	if cerr := s.db.Close(); err == nil {
		err = cerr
	}
	return err
}

// Count returns the number of stored records of the given type for this run.
// An empty type counts every record.
func (s *SQLiteSink) Count(typ string) (int, error) {
	var n int
	var err error
	if typ == "" {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM records WHERE run = ?`, s.runID).Scan(&n)
	} else {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM records WHERE run = ? AND event = ?`, s.runID, typ).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}
