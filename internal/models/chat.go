package models

// ChatSession is an AI chat thread, optionally bound to a lecture.
type ChatSession struct {
	ID        string  `json:"id"`
	LectureID *string `json:"lecture_id,omitempty"`
	Title     string  `json:"title"`
	Summary   *string `json:"summary,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
	IsDeleted bool    `json:"is_deleted,omitempty"`
}

// ChatMessage is one turn in a session. Sources is an optional JSON string
// of retrieval citations; like subtitles, messages are replaced per session
// rather than merged row-by-row.
type ChatMessage struct {
	ID        string  `json:"id"`
	SessionID string  `json:"session_id"`
	Role      string  `json:"role"`
	Content   string  `json:"content"`
	Sources   *string `json:"sources,omitempty"`
	Timestamp string  `json:"timestamp"`
}
