package models

// Lecture is one recorded class session. The four *Path fields may hold
// absolute paths minted on another device; pull translates AudioPath and
// PDFPath into this device's directories before saving.
type Lecture struct {
	ID             string  `json:"id"`
	CourseID       string  `json:"course_id"`
	Title          string  `json:"title"`
	Date           string  `json:"date"`
	Duration       int64   `json:"duration"`
	Status         string  `json:"status"`
	AudioPath      *string `json:"audio_path,omitempty"`
	TranscriptPath *string `json:"transcript_path,omitempty"`
	SummaryPath    *string `json:"summary_path,omitempty"`
	PDFPath        *string `json:"pdf_path,omitempty"`
	Keywords       *string `json:"keywords,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
	IsDeleted      bool    `json:"is_deleted,omitempty"`
}
