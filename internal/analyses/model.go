package analyses

import (
	"time"

	"resume-ats/internal/ats"
)

// Analysis is an archived report for one uploaded résumé.
type Analysis struct {
	ID              string     `json:"analysisId"`
	FileName        string     `json:"fileName"`
	ContentSHA256   string     `json:"contentSha256"`
	AnalyzerVersion string     `json:"analyzerVersion"`
	ATSScore        float64    `json:"atsScore"`
	JDMatchScore    *float64   `json:"jdMatchScore,omitempty"`
	UploadKey       string     `json:"uploadKey,omitempty"`
	Result          ats.Result `json:"result"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// Upload is a file received from a client.
type Upload struct {
	FileName string
	MimeType string
	Data     []byte
}

// Request carries the inputs of one analysis. A job description file takes
// precedence over JobDescriptionText.
type Request struct {
	Resume             Upload
	JobDescription     *Upload
	JobDescriptionText string
}
