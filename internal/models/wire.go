package models

// PushRequest is the full local snapshot sent to POST /api/sync/push.
// Subtitles travel grouped per lecture on push.
type PushRequest struct {
	Username     string             `json:"username"`
	Courses      []Course           `json:"courses"`
	Lectures     []Lecture          `json:"lectures"`
	Notes        []Note             `json:"notes,omitempty"`
	Subtitles    []LectureSubtitles `json:"subtitles,omitempty"`
	Settings     []Setting          `json:"settings,omitempty"`
	ChatSessions []ChatSession      `json:"chat_sessions,omitempty"`
	ChatMessages []ChatMessage      `json:"chat_messages,omitempty"`
}

// PullResponse is the server's full snapshot from GET /api/sync/pull.
// Unlike push, subtitles arrive flat; callers group them by lecture.
type PullResponse struct {
	Courses      []Course      `json:"courses"`
	Lectures     []Lecture     `json:"lectures"`
	Notes        []Note        `json:"notes"`
	Subtitles    []Subtitle    `json:"subtitles"`
	Settings     []Setting     `json:"settings"`
	ChatSessions []ChatSession `json:"chat_sessions"`
	ChatMessages []ChatMessage `json:"chat_messages"`
}

// AuthResponse answers both register and login. A replayed registration
// yields success=false with an "already exists" message, not an HTTP error.
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UploadResponse acknowledges a multipart file upload with the name the
// server stored the file under.
type UploadResponse struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
}

// PurgeRequest records a hard deletion in the server's purge registry so
// other devices do not resurrect the item on their next push.
type PurgeRequest struct {
	ID       string `json:"id"`
	ItemType string `json:"item_type"`
	Username string `json:"username"`
}
