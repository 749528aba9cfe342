package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/classnote/internal/models"
)

func (e *Engine) processPull(ctx context.Context, raw json.RawMessage) error {
	var p PullPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("failed to decode pull payload: %w", err)
	}

	snap, err := e.client.PullData(ctx, p.ServerURL, p.Username)
	if err != nil {
		return err
	}
	return e.merge(ctx, p.ServerURL, snap)
}

// merge applies the server snapshot family by family. Records absent
// locally are inserted unconditionally, tombstones included; records
// present locally are overwritten only when the remote timestamp is
// strictly greater. Settings bypass the timestamp rule entirely.
func (e *Engine) merge(ctx context.Context, baseURL string, snap *models.PullResponse) error {
	if err := e.mergeCourses(ctx, snap.Courses); err != nil {
		return err
	}
	if err := e.mergeLectures(ctx, baseURL, snap.Lectures, groupByLecture(snap.Subtitles)); err != nil {
		return err
	}
	if err := e.mergeNotes(ctx, snap.Notes); err != nil {
		return err
	}
	if err := e.applySettings(ctx, snap.Settings); err != nil {
		return err
	}
	return e.mergeChatSessions(ctx, snap.ChatSessions, groupBySession(snap.ChatMessages))
}

func (e *Engine) mergeCourses(ctx context.Context, remote []models.Course) error {
	for i := range remote {
		rc := remote[i]

		local, err := e.store.GetCourse(ctx, rc.ID)
		if err != nil {
			return fmt.Errorf("failed to load course %s: %w", rc.ID, err)
		}
		if local != nil && !newerThan(rc.UpdatedAt, local.UpdatedAt) {
			continue
		}

		rc.SyllabusInfo = e.validJSONField(ctx, "course", rc.ID, "syllabus_info", rc.SyllabusInfo)
		if err := e.store.SaveCourse(ctx, &rc); err != nil {
			return fmt.Errorf("failed to save course %s: %w", rc.ID, err)
		}
	}
	return nil
}

// mergeLectures also owns the lecture-scoped subtitle groups: whenever a
// lecture is inserted or the remote copy wins, its whole local subtitle
// group is swapped for the server's (an empty server group clears it).
func (e *Engine) mergeLectures(ctx context.Context, baseURL string, remote []models.Lecture, subs map[string][]models.Subtitle) error {
	for i := range remote {
		rl := remote[i]

		local, err := e.store.GetLecture(ctx, rl.ID)
		if err != nil {
			return fmt.Errorf("failed to load lecture %s: %w", rl.ID, err)
		}
		if local != nil && !newerThan(rl.UpdatedAt, local.UpdatedAt) {
			continue
		}

		e.localizeLecturePaths(ctx, baseURL, &rl)
		if err := e.store.SaveLecture(ctx, &rl); err != nil {
			return fmt.Errorf("failed to save lecture %s: %w", rl.ID, err)
		}
		if err := e.store.ReplaceSubtitles(ctx, rl.ID, subs[rl.ID]); err != nil {
			return fmt.Errorf("failed to replace subtitles for lecture %s: %w", rl.ID, err)
		}
	}
	return nil
}

func (e *Engine) mergeNotes(ctx context.Context, remote []models.Note) error {
	for i := range remote {
		rn := remote[i]

		local, err := e.store.GetNote(ctx, rn.LectureID)
		if err != nil {
			return fmt.Errorf("failed to load note %s: %w", rn.LectureID, err)
		}
		// notes carry no updated_at; generation time stands in for it
		if local != nil && !newerThan(rn.GeneratedAt, local.GeneratedAt) {
			continue
		}

		if err := e.store.SaveNote(ctx, &rn); err != nil {
			return fmt.Errorf("failed to save note %s: %w", rn.LectureID, err)
		}
	}
	return nil
}

// applySettings overwrites key by key with no timestamp comparison: the
// last pull always wins per key. Settings are edited from one device at a
// time in practice, so the coarse rule is intentional.
func (e *Engine) applySettings(ctx context.Context, remote []models.Setting) error {
	for i := range remote {
		rs := remote[i]
		if err := e.store.SaveSetting(ctx, &rs); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", rs.Key, err)
		}
	}
	return nil
}

func (e *Engine) mergeChatSessions(ctx context.Context, remote []models.ChatSession, msgs map[string][]models.ChatMessage) error {
	for i := range remote {
		rs := remote[i]

		local, err := e.store.GetChatSession(ctx, rs.ID)
		if err != nil {
			return fmt.Errorf("failed to load chat session %s: %w", rs.ID, err)
		}
		if local != nil && !newerThan(rs.UpdatedAt, local.UpdatedAt) {
			continue
		}

		if err := e.store.SaveChatSession(ctx, &rs); err != nil {
			return fmt.Errorf("failed to save chat session %s: %w", rs.ID, err)
		}

		group := msgs[rs.ID]
		for j := range group {
			group[j].Sources = e.validJSONField(ctx, "chat_message", group[j].ID, "sources", group[j].Sources)
		}
		if err := e.store.ReplaceChatMessages(ctx, rs.ID, group); err != nil {
			return fmt.Errorf("failed to replace messages for session %s: %w", rs.ID, err)
		}
	}
	return nil
}

// newerThan reports whether remote is strictly later than local; equal
// timestamps keep the local copy. Values that do not parse as RFC 3339
// compare lexicographically so a malformed row cannot wedge the merge.
func newerThan(remote, local string) bool {
	rt, rerr := time.Parse(time.RFC3339, remote)
	lt, lerr := time.Parse(time.RFC3339, local)
	if rerr == nil && lerr == nil {
		return rt.After(lt)
	}
	return remote > local
}

// validJSONField drops an optional JSON-string field when its content does
// not parse, keeping the surrounding record mergeable.
func (e *Engine) validJSONField(ctx context.Context, entity, id, field string, value *string) *string {
	if value == nil || json.Valid([]byte(*value)) {
		return value
	}
	e.logger.Warn(ctx, "dropping malformed JSON field",
		"entity", entity, "id", id, "field", field)
	return nil
}

func groupByLecture(subs []models.Subtitle) map[string][]models.Subtitle {
	m := make(map[string][]models.Subtitle, len(subs))
	for _, s := range subs {
		m[s.LectureID] = append(m[s.LectureID], s)
	}
	return m
}

func groupBySession(msgs []models.ChatMessage) map[string][]models.ChatMessage {
	m := make(map[string][]models.ChatMessage, len(msgs))
	for _, msg := range msgs {
		m[msg.SessionID] = append(m[msg.SessionID], msg)
	}
	return m
}
