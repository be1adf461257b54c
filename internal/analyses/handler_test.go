package analyses

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-ats/internal/ats"
	"resume-ats/internal/shared/server/middleware"
)

type formFile struct {
	field, name string
	body        []byte
}

func multipartRequest(t *testing.T, files []formFile, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := part.Write(f.body); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func setupAnalysisRouter(t *testing.T, maxUpload int64) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _, _, _ := newTestService(t)
	h := NewHandler(svc, maxUpload)

	router := gin.New()
	router.Use(middleware.RequestID())
	h.RegisterRoutes(router.Group("/api/v1"))
	return router, svc
}

func errorCode(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error body %q: %v", resp.Body.String(), err)
	}
	return payload.Error.Code
}

func TestAnalyzeEndpointReturnsReport(t *testing.T) {
	router, _ := setupAnalysisRouter(t, 0)

	req := multipartRequest(t, []formFile{{"resume", "resume.txt", []byte(sampleResume)}}, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	id, _ := body["analysisId"].(string)
	if id == "" {
		t.Fatalf("expected analysisId in %v", body)
	}
	want := ats.Analyze(sampleResume, "")
	if body["ats_score"] != want.ATSScore {
		t.Fatalf("expected ats_score %v, got %v", want.ATSScore, body["ats_score"])
	}
	for _, key := range []string{"sections", "skills", "action_verbs", "ats_compatibility", "recommendations", "strengths", "summary", "interpretations", "score_breakdown"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("expected %q in response", key)
		}
	}
	if _, ok := body["jd_match_score"]; ok {
		t.Fatalf("expected no jd_match_score without a job description")
	}

	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+id, nil))
	if getResp.Code != http.StatusOK {
		t.Fatalf("expected 200 from get, got %d", getResp.Code)
	}
	var stored struct {
		AnalysisID string  `json:"analysisId"`
		FileName   string  `json:"fileName"`
		ATSScore   float64 `json:"ats_score"`
	}
	if err := json.Unmarshal(getResp.Body.Bytes(), &stored); err != nil {
		t.Fatalf("decode get: %v", err)
	}
	if stored.AnalysisID != id || stored.FileName != "resume.txt" || stored.ATSScore != want.ATSScore {
		t.Fatalf("unexpected stored report %+v", stored)
	}

	listResp := httptest.NewRecorder()
	router.ServeHTTP(listResp, httptest.NewRequest(http.MethodGet, "/api/v1/analyses?limit=5", nil))
	if listResp.Code != http.StatusOK {
		t.Fatalf("expected 200 from list, got %d", listResp.Code)
	}
	var items []summaryResponse
	if err := json.Unmarshal(listResp.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(items) != 1 || items[0].AnalysisID != id || items[0].Level == "" {
		t.Fatalf("unexpected list %+v", items)
	}
}

func TestAnalyzeEndpointWithJobDescriptionText(t *testing.T) {
	router, _ := setupAnalysisRouter(t, 0)

	req := multipartRequest(t,
		[]formFile{{"resume", "resume.txt", []byte(sampleResume)}},
		map[string]string{"job_description_text": sampleJobDescription},
	)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		JDMatchScore *float64 `json:"jd_match_score"`
		JDAnalysis   *struct {
			MissingSkills []string `json:"missing_skills"`
		} `json:"jd_analysis"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := ats.Analyze(sampleResume, sampleJobDescription)
	if body.JDMatchScore == nil || *body.JDMatchScore != *want.JDMatchScore {
		t.Fatalf("unexpected jd_match_score %v", body.JDMatchScore)
	}
	if body.JDAnalysis == nil || len(body.JDAnalysis.MissingSkills) != len(want.JDAnalysis.MissingSkills) {
		t.Fatalf("unexpected jd_analysis %+v", body.JDAnalysis)
	}
}

func TestAnalyzeEndpointErrors(t *testing.T) {
	cases := []struct {
		name       string
		maxUpload  int64
		files      []formFile
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing resume",
			files:      []formFile{{"job_description", "jd.txt", []byte(sampleJobDescription)}},
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_error",
		},
		{
			name:       "unsupported format",
			files:      []formFile{{"resume", "photo.png", []byte("\x89PNG\r\n\x1a\nrest")}},
			wantStatus: http.StatusBadRequest,
			wantCode:   "unsupported_format",
		},
		{
			name:       "too short",
			files:      []formFile{{"resume", "resume.txt", []byte("Skills\nGo")}},
			wantStatus: http.StatusBadRequest,
			wantCode:   "resume_too_short",
		},
		{
			name:       "corrupt docx",
			files:      []formFile{{"resume", "resume.docx", []byte("not a zip archive at all")}},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "extraction_failed",
		},
		{
			name:       "too large",
			maxUpload:  64,
			files:      []formFile{{"resume", "resume.txt", []byte(strings.Repeat("a", 200))}},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   "payload_too_large",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, _ := setupAnalysisRouter(t, tc.maxUpload)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, multipartRequest(t, tc.files, nil))

			if resp.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tc.wantStatus, resp.Code, resp.Body.String())
			}
			if code := errorCode(t, resp); code != tc.wantCode {
				t.Fatalf("expected code %q, got %q", tc.wantCode, code)
			}
		})
	}
}

func TestAnalyzeEndpointRejectsNonMultipart(t *testing.T) {
	router, _ := setupAnalysisRouter(t, 0)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(`{"resume":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if code := errorCode(t, resp); code != "validation_error" {
		t.Fatalf("unexpected code %q", code)
	}
}

func TestGetAnalysisNotFound(t *testing.T) {
	router, _ := setupAnalysisRouter(t, 0)

	for _, id := range []string{"2b1f6f0e-4c4a-4f7e-9b7a-000000000000", "not-a-uuid"} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+id, nil))
		if resp.Code != http.StatusNotFound {
			t.Fatalf("id %q: expected 404, got %d", id, resp.Code)
		}
		if code := errorCode(t, resp); code != "not_found" {
			t.Fatalf("id %q: unexpected code %q", id, code)
		}
	}
}

func TestListAnalysesEmpty(t *testing.T) {
	router, _ := setupAnalysisRouter(t, 0)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/analyses?limit=abc&offset=-4", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if strings.TrimSpace(resp.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %q", resp.Body.String())
	}
}
