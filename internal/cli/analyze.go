package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"resume-ats/internal/analyses"
	"resume-ats/internal/ats"
	"resume-ats/internal/extract"
	"resume-ats/internal/shared/storage/db"
)

type analyzeOptions struct {
	resume string
	jd     string
	jdText string
	json   bool
	save   bool
}

func newAnalyzeCmd(v *viper.Viper) *cobra.Command {
	var opts analyzeOptions
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a résumé, optionally against a job description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			return runAnalyze(cmd, cfg, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.resume, "resume", "r", "", "résumé file (pdf, docx, doc, txt)")
	cmd.Flags().StringVar(&opts.jd, "jd", "", "job description file")
	cmd.Flags().StringVar(&opts.jdText, "jd-text", "", "job description text")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&opts.save, "save", false, "save the report to the history database")
	_ = cmd.MarkFlagRequired("resume")
	cmd.MarkFlagsMutuallyExclusive("jd", "jd-text")
	return cmd
}

func runAnalyze(cmd *cobra.Command, cfg Config, opts analyzeOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	resume, err := readUpload(opts.resume)
	if err != nil {
		return err
	}
	req := analyses.Request{Resume: resume, JobDescriptionText: opts.jdText}
	if opts.jd != "" {
		jd, err := readUpload(opts.jd)
		if err != nil {
			return err
		}
		req.JobDescription = &jd
	}

	svc := &analyses.Service{MinResumeChars: cfg.MinResumeChars}
	analysis, err := svc.Analyze(ctx, req)
	if err != nil {
		return describeError(err, cfg.MinResumeChars)
	}

	if opts.save {
		repo, closeDB, err := openHistory(ctx, cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer closeDB()
		if err := repo.Create(ctx, analysis); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			AnalysisID string `json:"analysisId"`
			ats.Result
		}{analysis.ID, analysis.Result})
	}
	if err := writeReport(out, analysis); err != nil {
		return err
	}
	if opts.save {
		fmt.Fprintf(out, "\nSaved as %s in %s\n", analysis.ID, cfg.HistoryDB)
	}
	return nil
}

func readUpload(path string) (analyses.Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return analyses.Upload{}, fmt.Errorf("read %s: %w", path, err)
	}
	return analyses.Upload{FileName: filepath.Base(path), Data: data}, nil
}

// describeError turns service errors into messages fit for a terminal.
func describeError(err error, minChars int) error {
	switch {
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return errors.New("unsupported file format: use a PDF, DOCX, DOC or TXT file")
	case errors.Is(err, analyses.ErrResumeTooShort):
		if minChars <= 0 {
			minChars = analyses.DefaultMinResumeChars
		}
		return fmt.Errorf("résumé text is shorter than %d characters or could not be extracted", minChars)
	case errors.Is(err, analyses.ErrResumeRequired):
		return errors.New("résumé file is empty")
	default:
		return err
	}
}

func openHistory(ctx context.Context, path string) (*analyses.SQLiteRepo, func(), error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil, errors.New("history database path is empty")
	}
	sqlDB, err := db.OpenSQLite(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB, db.DialectSQLite); err != nil {
		sqlDB.Close()
		return nil, nil, err
	}
	return &analyses.SQLiteRepo{DB: sqlDB}, func() { _ = sqlDB.Close() }, nil
}
