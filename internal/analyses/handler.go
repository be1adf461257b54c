package analyses

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-ats/internal/ats"
	"resume-ats/internal/extract"
	"resume-ats/internal/shared/server/middleware"
	"resume-ats/internal/shared/server/respond"
)

const (
	DefaultMaxUploadBytes = 10 << 20 // 10MB

	multipartMemory = 8 << 20
	formOverhead    = 1 << 20
)

var errUploadTooLarge = errors.New("upload too large")

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler. maxUploadBytes applies per file.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
	rg.GET("/analyses", h.list)
	rg.GET("/analyses/:id", h.get)
}

type reportResponse struct {
	AnalysisID      string     `json:"analysisId"`
	FileName        string     `json:"fileName,omitempty"`
	AnalyzerVersion string     `json:"analyzerVersion,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	ats.Result
}

type summaryResponse struct {
	AnalysisID      string    `json:"analysisId"`
	FileName        string    `json:"fileName"`
	ATSScore        float64   `json:"ats_score"`
	JDMatchScore    *float64  `json:"jd_match_score,omitempty"`
	Level           string    `json:"level"`
	AnalyzerVersion string    `json:"analyzerVersion"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (h *Handler) analyze(c *gin.Context) {
	// Two files plus form fields.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*h.MaxUploadBytes+formOverhead)
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.tooLarge(c)
			return
		}
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "request must be multipart/form-data with a resume file", nil)
		return
	}

	resumeHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "resume file is required", []map[string]string{
			{"field": "resume", "issue": "required"},
		})
		return
	}
	resume, err := h.readUpload(resumeHeader)
	if err != nil {
		h.uploadError(c, "resume", err)
		return
	}

	req := Request{
		Resume:             resume,
		JobDescriptionText: c.PostForm("job_description_text"),
	}
	if jdHeader, err := c.FormFile("job_description"); err == nil {
		jd, err := h.readUpload(jdHeader)
		if err != nil {
			h.uploadError(c, "job_description", err)
			return
		}
		req.JobDescription = &jd
	} else if !errors.Is(err, http.ErrMissingFile) {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "unable to read job_description", nil)
		return
	}

	analysis, err := h.Svc.Analyze(c.Request.Context(), req)
	if err != nil {
		h.analyzeError(c, err)
		return
	}

	c.Set(middleware.AnalysisIDKey, analysis.ID)
	respond.OK(c, reportResponse{
		AnalysisID: analysis.ID,
		Result:     analysis.Result,
	})
}

func (h *Handler) readUpload(fh *multipart.FileHeader) (Upload, error) {
	if fh.Size > h.MaxUploadBytes {
		return Upload{}, errUploadTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return Upload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.MaxUploadBytes+1))
	if err != nil {
		return Upload{}, err
	}
	if int64(len(data)) > h.MaxUploadBytes {
		return Upload{}, errUploadTooLarge
	}
	return Upload{
		FileName: strings.TrimSpace(fh.Filename),
		MimeType: fh.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}

func (h *Handler) uploadError(c *gin.Context, field string, err error) {
	if errors.Is(err, errUploadTooLarge) {
		h.tooLarge(c)
		return
	}
	respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "unable to read "+field, nil)
}

func (h *Handler) tooLarge(c *gin.Context) {
	respond.Error(c, http.StatusRequestEntityTooLarge, respond.CodePayloadTooLarge,
		fmt.Sprintf("File too large. Maximum size is %dMB.", h.MaxUploadBytes>>20),
		gin.H{"max_bytes": h.MaxUploadBytes})
}

func (h *Handler) analyzeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrResumeRequired):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "resume file is required", nil)
	case errors.Is(err, extract.ErrUnsupportedFormat):
		respond.Error(c, http.StatusBadRequest, respond.CodeUnsupportedFormat, "Unsupported file format. Upload a PDF, DOCX, DOC or TXT file.", nil)
	case errors.Is(err, ErrResumeTooShort):
		respond.Error(c, http.StatusBadRequest, respond.CodeResumeTooShort, "Resume content is too short or could not be extracted properly.", gin.H{
			"min_chars": h.Svc.minResumeChars(),
		})
	case errors.Is(err, extract.ErrCorruptDocument), errors.Is(err, extract.ErrEmptyDocument):
		respond.Error(c, http.StatusUnprocessableEntity, respond.CodeExtractionFailed, "Could not extract text from the uploaded document.", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to analyze resume", nil)
	}
}

func (h *Handler) get(c *gin.Context) {
	analysisID := strings.TrimSpace(c.Param("id"))
	if analysisID == "" {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "analysis id is required", nil)
		return
	}

	analysis, err := h.Svc.Get(c.Request.Context(), analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to fetch analysis", nil)
		}
		return
	}

	c.Set(middleware.AnalysisIDKey, analysis.ID)
	createdAt := analysis.CreatedAt
	respond.OK(c, reportResponse{
		AnalysisID:      analysis.ID,
		FileName:        analysis.FileName,
		AnalyzerVersion: analysis.AnalyzerVersion,
		CreatedAt:       &createdAt,
		Result:          analysis.Result,
	})
}

func (h *Handler) list(c *gin.Context) {
	limit := DefaultListLimit
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	analyses, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to list analyses", nil)
		return
	}

	resp := make([]summaryResponse, 0, len(analyses))
	for _, a := range analyses {
		resp = append(resp, summaryResponse{
			AnalysisID:      a.ID,
			FileName:        a.FileName,
			ATSScore:        a.ATSScore,
			JDMatchScore:    a.JDMatchScore,
			Level:           a.Result.Interpretations.ATSScore.Level,
			AnalyzerVersion: a.AnalyzerVersion,
			CreatedAt:       a.CreatedAt,
		})
	}
	respond.OK(c, resp)
}
