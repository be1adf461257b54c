package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Fixed-width UTC timestamps so created_at sorts as text.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteRepo implements Repo on an embedded SQLite file. It backs the CLI
// history and the dev archive when no Postgres is configured.
type SQLiteRepo struct {
	DB *sql.DB
}

func (r *SQLiteRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (` + analysisColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	payload, err := json.Marshal(analysis.Result)
	if err != nil {
		return err
	}
	var jdMatch sql.NullFloat64
	if analysis.JDMatchScore != nil {
		jdMatch = sql.NullFloat64{Float64: *analysis.JDMatchScore, Valid: true}
	}
	_, err = r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.FileName,
		analysis.ContentSHA256,
		analysis.AnalyzerVersion,
		analysis.ATSScore,
		jdMatch,
		nullableString(analysis.UploadKey),
		string(payload),
		analysis.CreatedAt.UTC().Format(sqliteTimeLayout),
	)
	return err
}

func (r *SQLiteRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	const query = `
SELECT ` + analysisColumns + `
FROM analyses
WHERE id = ?
LIMIT 1`

	a, err := scanSQLite(r.DB.QueryRowContext(ctx, query, analysisID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	return a, nil
}

// List returns analyses newest first.
func (r *SQLiteRepo) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	limit, offset = normalizePage(limit, offset)

	const query = `
SELECT ` + analysisColumns + `
FROM analyses
ORDER BY created_at DESC, rowid DESC
LIMIT ? OFFSET ?`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		a, err := scanSQLite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanSQLite(s rowScanner) (Analysis, error) {
	var row analysisRow
	var createdAt string
	if err := s.Scan(row.dest(&createdAt)...); err != nil {
		return Analysis{}, err
	}
	a, err := row.analysis()
	if err != nil {
		return Analysis{}, err
	}
	a.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Analysis{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	return a, nil
}

var _ Repo = (*SQLiteRepo)(nil)
