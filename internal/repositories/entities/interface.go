package entities

import (
	"context"

	"github.com/dmitrijs2005/classnote/internal/models"
)

// Repository is the local entity store consumed by synchronization: bulk
// listings feed push snapshots, per-id gets feed merge decisions, saves are
// upserts. Get methods return (nil, nil) when no row exists. The sync
// engine is the only writer of remotely-originated data.
type Repository interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	SaveCourse(ctx context.Context, c *models.Course) error

	ListLectures(ctx context.Context) ([]models.Lecture, error)
	GetLecture(ctx context.Context, id string) (*models.Lecture, error)
	SaveLecture(ctx context.Context, l *models.Lecture) error

	ListNotes(ctx context.Context) ([]models.Note, error)
	GetNote(ctx context.Context, lectureID string) (*models.Note, error)
	SaveNote(ctx context.Context, n *models.Note) error

	// ListSubtitles returns every subtitle row; push groups them by lecture.
	ListSubtitles(ctx context.Context) ([]models.Subtitle, error)
	// ReplaceSubtitles swaps a lecture's whole subtitle group in one
	// transaction. An empty replacement clears the group.
	ReplaceSubtitles(ctx context.Context, lectureID string, subs []models.Subtitle) error

	ListSettings(ctx context.Context) ([]models.Setting, error)
	SaveSetting(ctx context.Context, s *models.Setting) error

	ListChatSessions(ctx context.Context) ([]models.ChatSession, error)
	GetChatSession(ctx context.Context, id string) (*models.ChatSession, error)
	SaveChatSession(ctx context.Context, s *models.ChatSession) error

	ListChatMessages(ctx context.Context) ([]models.ChatMessage, error)
	// ReplaceChatMessages swaps a session's whole message group in one
	// transaction.
	ReplaceChatMessages(ctx context.Context, sessionID string, msgs []models.ChatMessage) error
}
