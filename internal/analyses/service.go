package analyses

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"resume-ats/internal/ats"
	"resume-ats/internal/extract"
	"resume-ats/internal/shared/metrics"
	"resume-ats/internal/shared/storage/cache"
	"resume-ats/internal/shared/storage/object"
	"resume-ats/internal/shared/telemetry"
	"resume-ats/internal/shared/util"
)

const (
	DefaultMinResumeChars  = 50
	DefaultAnalyzerVersion = "heuristic-v1"
	defaultCacheTTL        = 10 * time.Minute
)

// Service runs analyses and archives their reports. Repo, Store and Cache
// are optional; a nil dependency disables that step.
type Service struct {
	Repo            Repo
	Store           object.ObjectStore
	Cache           cache.Cache
	CacheTTL        time.Duration
	MinResumeChars  int
	AnalyzerVersion string
	Analyzer        *ats.Analyzer

	Now   func() time.Time
	NewID func() string
}

// Analyze extracts the uploaded documents, scores them and archives the
// report. Cache and archive failures are logged and never fail the call.
func (s *Service) Analyze(ctx context.Context, req Request) (Analysis, error) {
	start := time.Now()
	metrics.IncAnalysisStarted()

	analysis, err := s.analyze(ctx, req)
	if err != nil {
		metrics.IncAnalysisFailed(FailureReason(err))
		return Analysis{}, err
	}

	durationMs := float64(time.Since(start).Microseconds()) / 1000.0
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(durationMs)
	metrics.ObserveATSScore(analysis.ATSScore)
	return analysis, nil
}

func (s *Service) analyze(ctx context.Context, req Request) (Analysis, error) {
	if len(req.Resume.Data) == 0 {
		return Analysis{}, ErrResumeRequired
	}

	resumeText, err := extract.ExtractTextFromBytes(ctx, req.Resume.Data, req.Resume.MimeType, req.Resume.FileName)
	if errors.Is(err, extract.ErrEmptyDocument) {
		return Analysis{}, ErrResumeTooShort
	}
	if err != nil {
		telemetry.Warn("analysis.extract_failed", map[string]any{
			"document":  "resume",
			"file_name": req.Resume.FileName,
			"err":       err,
		})
		return Analysis{}, fmt.Errorf("extract resume: %w", err)
	}
	if utf8.RuneCountInString(strings.TrimSpace(resumeText)) < s.minResumeChars() {
		return Analysis{}, ErrResumeTooShort
	}

	jdText, err := s.jobDescription(ctx, req)
	if err != nil {
		return Analysis{}, err
	}

	version := s.analyzerVersion()
	cacheKey := "analysis:" + util.CacheKey(version, resumeText, jdText)
	result, cached := s.cachedResult(ctx, cacheKey)
	if !cached {
		result = s.analyzer().Analyze(resumeText, jdText)
		s.storeResult(ctx, cacheKey, result)
	}

	analysis := Analysis{
		ID:              s.newID(),
		FileName:        strings.TrimSpace(req.Resume.FileName),
		ContentSHA256:   util.SHA256Hex(req.Resume.Data),
		AnalyzerVersion: version,
		ATSScore:        result.ATSScore,
		JDMatchScore:    result.JDMatchScore,
		Result:          result,
		CreatedAt:       s.now().UTC(),
	}
	s.archive(ctx, &analysis, req.Resume)

	fields := map[string]any{
		"analysis_id": analysis.ID,
		"ats_score":   analysis.ATSScore,
		"cached":      cached,
		"has_jd":      jdText != "",
	}
	if analysis.JDMatchScore != nil {
		fields["jd_match_score"] = *analysis.JDMatchScore
	}
	telemetry.Info("analysis.completed", fields)
	return analysis, nil
}

// jobDescription returns the job description text, or "" when none was
// supplied. Whitespace-only input counts as absent.
func (s *Service) jobDescription(ctx context.Context, req Request) (string, error) {
	if jd := req.JobDescription; jd != nil && len(jd.Data) > 0 {
		text, err := extract.ExtractTextFromBytes(ctx, jd.Data, jd.MimeType, jd.FileName)
		switch {
		case errors.Is(err, extract.ErrEmptyDocument):
			return "", nil
		case err != nil:
			telemetry.Warn("analysis.extract_failed", map[string]any{
				"document":  "job_description",
				"file_name": jd.FileName,
				"err":       err,
			})
			return "", fmt.Errorf("extract job description: %w", err)
		}
		if strings.TrimSpace(text) == "" {
			return "", nil
		}
		return text, nil
	}
	if strings.TrimSpace(req.JobDescriptionText) == "" {
		return "", nil
	}
	return req.JobDescriptionText, nil
}

func (s *Service) cachedResult(ctx context.Context, key string) (ats.Result, bool) {
	if s.Cache == nil {
		return ats.Result{}, false
	}
	var result ats.Result
	hit, err := s.Cache.GetJSON(ctx, key, &result)
	if err != nil {
		telemetry.Warn("analysis.cache_read_failed", map[string]any{"err": err})
		return ats.Result{}, false
	}
	if !hit {
		return ats.Result{}, false
	}
	metrics.IncCacheHit()
	telemetry.Info("analysis.cache_hit", map[string]any{"cache_key": key})
	return result, true
}

func (s *Service) storeResult(ctx context.Context, key string, result ats.Result) {
	if s.Cache == nil {
		return
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if err := s.Cache.SetJSON(ctx, key, result, ttl); err != nil {
		telemetry.Warn("analysis.cache_write_failed", map[string]any{"err": err})
	}
}

// archive saves the upload and the report record. The pipeline never reads
// them back.
func (s *Service) archive(ctx context.Context, analysis *Analysis, upload Upload) {
	if s.Store != nil {
		key, err := object.UploadKey(analysis.ContentSHA256, upload.FileName)
		if err == nil {
			_, err = s.Store.Put(ctx, key, upload.MimeType, bytes.NewReader(upload.Data))
		}
		if err != nil {
			s.archiveFailed(analysis.ID, "upload", err)
		} else {
			analysis.UploadKey = key
		}
	}
	if s.Repo != nil {
		if err := s.Repo.Create(ctx, *analysis); err != nil {
			s.archiveFailed(analysis.ID, "record", err)
		}
	}
}

func (s *Service) archiveFailed(analysisID, stage string, err error) {
	metrics.IncArchiveFailure()
	telemetry.Warn("analysis.archive_failed", map[string]any{
		"analysis_id": analysisID,
		"stage":       stage,
		"err":         err,
	})
}

// Get returns an archived analysis.
func (s *Service) Get(ctx context.Context, analysisID string) (Analysis, error) {
	if s.Repo == nil {
		return Analysis{}, ErrNotFound
	}
	if _, err := uuid.Parse(analysisID); err != nil {
		return Analysis{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, analysisID)
}

// List returns archived analyses newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	if s.Repo == nil {
		return []Analysis{}, nil
	}
	limit, offset = normalizePage(limit, offset)
	return s.Repo.List(ctx, limit, offset)
}

// FailureReason maps an Analyze error to a short metrics label.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrResumeRequired):
		return "validation_error"
	case errors.Is(err, ErrResumeTooShort):
		return "resume_too_short"
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, extract.ErrCorruptDocument), errors.Is(err, extract.ErrEmptyDocument):
		return "extraction_failed"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "internal_error"
	}
}

func (s *Service) minResumeChars() int {
	if s.MinResumeChars > 0 {
		return s.MinResumeChars
	}
	return DefaultMinResumeChars
}

func (s *Service) analyzerVersion() string {
	if v := strings.TrimSpace(s.AnalyzerVersion); v != "" {
		return v
	}
	return DefaultAnalyzerVersion
}

func (s *Service) analyzer() ats.Analyzer {
	if s.Analyzer == nil {
		return ats.NewAnalyzer()
	}
	return *s.Analyzer
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
