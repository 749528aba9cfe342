// Package models defines the entities that participate in synchronization
// and the wire payloads exchanged with the ClassNote server. JSON field
// names are fixed by the server protocol; timestamps travel as RFC 3339
// strings.
package models

// Course groups lectures under one subject. SyllabusInfo carries structured
// syllabus JSON as a string; it is validated, not interpreted, by the sync
// layer.
type Course struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
	SyllabusInfo *string `json:"syllabus_info,omitempty"`
	Keywords     *string `json:"keywords,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
	IsDeleted    bool    `json:"is_deleted,omitempty"`
}
