package models

// Subtitle is one transcribed line. Subtitles carry no per-row LWW
// timestamp: the group belonging to a lecture is replaced wholesale when the
// lecture itself changes hands.
type Subtitle struct {
	ID         string   `json:"id"`
	LectureID  string   `json:"lecture_id"`
	Timestamp  float64  `json:"timestamp"`
	TextEN     string   `json:"text_en"`
	TextZH     *string  `json:"text_zh,omitempty"`
	Type       string   `json:"sub_type"`
	Confidence *float64 `json:"confidence,omitempty"`
	CreatedAt  string   `json:"created_at"`
}

// LectureSubtitles is the push-side grouping: one lecture's full subtitle
// set. Pull returns subtitles flat; the engine regroups them.
type LectureSubtitles struct {
	LectureID string     `json:"lecture_id"`
	Items     []Subtitle `json:"items"`
}
