package analyses

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

const analysisColumns = `id, file_name, content_sha256, analyzer_version, ats_score, jd_match_score, upload_key, result, created_at`

// analysisRow holds the nullable columns shared by the SQL repos.
type analysisRow struct {
	a         Analysis
	jdMatch   sql.NullFloat64
	uploadKey sql.NullString
	result    []byte
}

// dest returns scan targets in column order; createdAt differs per dialect.
func (r *analysisRow) dest(createdAt any) []any {
	return []any{
		&r.a.ID,
		&r.a.FileName,
		&r.a.ContentSHA256,
		&r.a.AnalyzerVersion,
		&r.a.ATSScore,
		&r.jdMatch,
		&r.uploadKey,
		&r.result,
		createdAt,
	}
}

func (r *analysisRow) analysis() (Analysis, error) {
	a := r.a
	if r.jdMatch.Valid {
		v := r.jdMatch.Float64
		a.JDMatchScore = &v
	}
	if r.uploadKey.Valid {
		a.UploadKey = r.uploadKey.String
	}
	if len(r.result) > 0 {
		if err := json.Unmarshal(r.result, &a.Result); err != nil {
			return Analysis{}, fmt.Errorf("decode result %s: %w", a.ID, err)
		}
	}
	return a, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
