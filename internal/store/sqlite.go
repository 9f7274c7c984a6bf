package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/contact-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id              TEXT PRIMARY KEY,
	contact         TEXT NOT NULL,
	name            TEXT NOT NULL,
	company         TEXT NOT NULL,
	status          TEXT NOT NULL DEFAULT 'running',
	sources_checked TEXT,
	created_at      DATETIME NOT NULL DEFAULT (datetime('now')),
	completed_at    DATETIME
);

CREATE TABLE IF NOT EXISTS candidates (
	run_id     TEXT NOT NULL REFERENCES runs(id),
	position   INTEGER NOT NULL,
	email      TEXT NOT NULL,
	source     TEXT NOT NULL,
	confidence TEXT NOT NULL,
	verified   INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (run_id, position)
);

CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_runs_name_company ON runs(name, company);
CREATE INDEX IF NOT EXISTS idx_candidates_email ON candidates(email);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, contact model.Contact) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	contactJSON, err := json.Marshal(contact)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: marshal contact")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, contact, name, company, status, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, string(contactJSON), contact.Name, contact.Company, string(RunStatusRunning), now,
	)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: insert run")
	}
	return id, nil
}

func (s *SQLiteStore) CompleteRun(ctx context.Context, runID string, result *model.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`UPDATE runs SET status = ?, sources_checked = ?, completed_at = ? WHERE id = ?`,
		string(RunStatusComplete), strings.Join(result.SourcesChecked, "; "), now, runID,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: update run")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return eris.Errorf("sqlite: run %s not found", runID)
	}

	for i, cand := range result.Candidates {
		verified := 0
		if cand.Verified {
			verified = 1
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO candidates (run_id, position, email, source, confidence, verified) VALUES (?, ?, ?, ?, ?, ?)`,
			runID, i, cand.Email, string(cand.Source), string(cand.Confidence), verified,
		)
		if err != nil {
			return eris.Wrap(err, "sqlite: insert candidate")
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit")
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*Run, error) {
	var (
		run         Run
		contactJSON string
		completedAt sql.NullTime
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, contact, status, created_at, completed_at FROM runs WHERE id = ?`, runID,
	).Scan(&run.ID, &contactJSON, &run.Status, &run.CreatedAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("sqlite: run %s not found", runID)
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: select run")
	}

	if err := json.Unmarshal([]byte(contactJSON), &run.Contact); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal contact")
	}
	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}
	return &run, nil
}

func (s *SQLiteStore) ListCandidates(ctx context.Context, runID string) ([]model.Candidate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT email, source, confidence, verified FROM candidates WHERE run_id = ? ORDER BY position`, runID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: select candidates")
	}
	defer rows.Close() //nolint:errcheck

	var out []model.Candidate
	for rows.Next() {
		var (
			cand     model.Candidate
			verified int
		)
		if err := rows.Scan(&cand.Email, &cand.Source, &cand.Confidence, &verified); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan candidate")
		}
		cand.Verified = verified != 0
		out = append(out, cand)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate candidates")
}
