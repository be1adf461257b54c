package analyses

import "errors"

var (
	ErrNotFound       = errors.New("analysis not found")
	ErrResumeRequired = errors.New("resume file is required")
	ErrResumeTooShort = errors.New("resume text is too short")
)
