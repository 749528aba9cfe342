package models

// Note is the generated study note for a lecture, one per lecture.
// GeneratedAt plays the role updated_at plays for other entities.
type Note struct {
	LectureID   string `json:"lecture_id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	GeneratedAt string `json:"generated_at"`
	IsDeleted   bool   `json:"is_deleted,omitempty"`
}
