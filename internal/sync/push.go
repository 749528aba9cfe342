package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/classnote/internal/models"
)

func (e *Engine) processPush(ctx context.Context, raw json.RawMessage) error {
	var p PushPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("failed to decode push payload: %w", err)
	}

	req, err := e.buildSnapshot(ctx, p)
	if err != nil {
		return err
	}
	return e.client.PushData(ctx, p.ServerURL, req)
}

// buildSnapshot assembles the full local state for one push. Lecture audio
// is uploaded first and the outbound copy's audio_path rewritten to the
// server-assigned name; the local row keeps its absolute path. One upload
// failing never blocks the metadata push.
func (e *Engine) buildSnapshot(ctx context.Context, p PushPayload) (*models.PushRequest, error) {
	courses, err := e.store.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	lectures, err := e.store.ListLectures(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lectures: %w", err)
	}

	outLectures := make([]models.Lecture, 0, len(lectures))
	for _, lec := range lectures {
		out := lec
		if !p.SkipFiles && lec.AudioPath != nil && filepath.IsAbs(*lec.AudioPath) {
			name, err := e.client.UploadFile(ctx, p.ServerURL, *lec.AudioPath)
			if err != nil {
				e.logger.Warn(ctx, "failed to upload lecture audio",
					"lecture_id", lec.ID, "path", *lec.AudioPath, "error", err)
			} else {
				out.AudioPath = &name
			}
		}
		outLectures = append(outLectures, out)
	}

	notes, err := e.store.ListNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	subtitles, err := e.store.ListSubtitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subtitles: %w", err)
	}

	settings, err := e.store.ListSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	var outSettings []models.Setting
	for _, s := range settings {
		if _, ok := e.allowList[s.Key]; ok {
			outSettings = append(outSettings, s)
		}
	}

	sessions, err := e.store.ListChatSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat sessions: %w", err)
	}

	messages, err := e.store.ListChatMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}

	return &models.PushRequest{
		Username:     p.Username,
		Courses:      courses,
		Lectures:     outLectures,
		Notes:        notes,
		Subtitles:    groupSubtitles(subtitles),
		Settings:     outSettings,
		ChatSessions: sessions,
		ChatMessages: messages,
	}, nil
}

// groupSubtitles folds the flat local rows into the per-lecture groups the
// push endpoint expects, in first-seen lecture order.
func groupSubtitles(subs []models.Subtitle) []models.LectureSubtitles {
	var groups []models.LectureSubtitles
	index := make(map[string]int)
	for _, s := range subs {
		i, ok := index[s.LectureID]
		if !ok {
			i = len(groups)
			index[s.LectureID] = i
			groups = append(groups, models.LectureSubtitles{LectureID: s.LectureID})
		}
		groups[i].Items = append(groups[i].Items, s)
	}
	return groups
}
