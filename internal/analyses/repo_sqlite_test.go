package analyses

import (
	"context"
	"errors"
	"testing"
	"time"

	"resume-ats/internal/ats"
	"resume-ats/internal/shared/storage/db"
)

func newSQLiteRepo(t *testing.T) *SQLiteRepo {
	t.Helper()
	database, err := db.OpenSQLite(context.Background(), db.MemorySQLite)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	if err := db.RunMigrations(context.Background(), database, db.DialectSQLite); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	return &SQLiteRepo{DB: database}
}

func TestSQLiteRepoRoundTrip(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	result := ats.Analyze(sampleResume, sampleJobDescription)
	created := time.Date(2024, 6, 2, 8, 15, 30, 123456789, time.UTC)
	in := Analysis{
		ID:              "7d3b0c1e-0000-4000-8000-000000000001",
		FileName:        "resume.txt",
		ContentSHA256:   "sha",
		AnalyzerVersion: "heuristic-v1",
		ATSScore:        result.ATSScore,
		JDMatchScore:    result.JDMatchScore,
		UploadKey:       "uploads/sh/sha/resume.txt",
		Result:          result,
		CreatedAt:       created,
	}
	if err := repo.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, in.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("expected created_at %v, got %v", created, got.CreatedAt)
	}
	if got.JDMatchScore == nil || *got.JDMatchScore != *in.JDMatchScore {
		t.Fatalf("jd match score did not round-trip: %v", got.JDMatchScore)
	}
	if got.Result.ATSScore != result.ATSScore || got.Result.Summary != result.Summary {
		t.Fatalf("result did not round-trip")
	}
	if got.Result.JDAnalysis == nil || len(got.Result.JDAnalysis.MissingSkills) != len(result.JDAnalysis.MissingSkills) {
		t.Fatalf("jd analysis did not round-trip")
	}
}

func TestSQLiteRepoListAndMissing(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"first", "second", "third"} {
		a := Analysis{
			ID:              id,
			FileName:        id + ".txt",
			ContentSHA256:   "sha-" + id,
			AnalyzerVersion: "heuristic-v1",
			ATSScore:        float64(10 * (i + 1)),
			CreatedAt:       base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("Create %s: %v", id, err)
		}
	}

	list, err := repo.List(ctx, 2, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got := ids(list); len(got) != 2 || got[0] != "third" || got[1] != "second" {
		t.Fatalf("unexpected order %v", got)
	}
	if list[0].JDMatchScore != nil || list[0].UploadKey != "" {
		t.Fatalf("expected null columns to stay empty: %+v", list[0])
	}

	if _, err := repo.GetByID(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
