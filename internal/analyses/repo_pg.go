package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (` + analysisColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	payload, err := json.Marshal(analysis.Result)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.FileName,
		analysis.ContentSHA256,
		analysis.AnalyzerVersion,
		analysis.ATSScore,
		analysis.JDMatchScore,
		nullableString(analysis.UploadKey),
		payload,
		analysis.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	const query = `
SELECT ` + analysisColumns + `
FROM analyses
WHERE id = $1
LIMIT 1`

	a, err := scanPG(r.DB.QueryRowContext(ctx, query, analysisID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	return a, nil
}

// List returns analyses newest first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	limit, offset = normalizePage(limit, offset)

	const query = `
SELECT ` + analysisColumns + `
FROM analyses
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		a, err := scanPG(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanPG(s rowScanner) (Analysis, error) {
	var row analysisRow
	if err := s.Scan(row.dest(&row.a.CreatedAt)...); err != nil {
		return Analysis{}, err
	}
	return row.analysis()
}

var _ Repo = (*PGRepo)(nil)
