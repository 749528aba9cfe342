package sync

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/classnote/internal/models"
)

func pullPayload(t *testing.T) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(PullPayload{ServerURL: "http://srv", Username: "alice"})
	require.NoError(t, err)
	return raw
}

func lectureSubs(t *testing.T, te *testEngine, lectureID string) []models.Subtitle {
	t.Helper()
	all, err := te.store.ListSubtitles(context.Background())
	require.NoError(t, err)
	var out []models.Subtitle
	for _, s := range all {
		if s.LectureID == lectureID {
			out = append(out, s)
		}
	}
	return out
}

func sessionMessages(t *testing.T, te *testEngine, sessionID string) []models.ChatMessage {
	t.Helper()
	all, err := te.store.ListChatMessages(context.Background())
	require.NoError(t, err)
	var out []models.ChatMessage
	for _, m := range all {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	return out
}

func TestProcessPull_InsertsAbsentRecords(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()

	te.client.pullResp = &models.PullResponse{
		Courses: []models.Course{
			{ID: "c1", Username: "alice", Title: "Algorithms",
				CreatedAt: "2024-01-01T00:00:00Z", UpdatedAt: "2024-01-01T00:00:00Z"},
			{ID: "c2", Username: "alice", Title: "Dropped course", IsDeleted: true,
				CreatedAt: "2024-01-01T00:00:00Z", UpdatedAt: "2024-01-03T00:00:00Z"},
		},
		Lectures: []models.Lecture{
			{ID: "l1", CourseID: "c1", Title: "Intro", Date: "2024-01-10T09:00:00Z",
				Duration: 3600, Status: "completed",
				CreatedAt: "2024-01-10T00:00:00Z", UpdatedAt: "2024-01-10T00:00:00Z"},
		},
		Notes: []models.Note{
			{LectureID: "l1", Title: "Intro notes", Content: "...", GeneratedAt: "2024-01-10T12:00:00Z"},
		},
		Subtitles: []models.Subtitle{
			{ID: "s1", LectureID: "l1", Timestamp: 0.0, TextEN: "welcome", Type: "final",
				CreatedAt: "2024-01-10T09:00:01Z"},
		},
		Settings: []models.Setting{
			{Key: "theme", Value: "dark", UpdatedAt: "2024-01-01T00:00:00Z"},
		},
		ChatSessions: []models.ChatSession{
			{ID: "cs1", Title: "Q&A", CreatedAt: "2024-01-11T00:00:00Z", UpdatedAt: "2024-01-11T00:00:00Z"},
		},
		ChatMessages: []models.ChatMessage{
			{ID: "m1", SessionID: "cs1", Role: "user", Content: "why?", Timestamp: "2024-01-11T00:01:00Z"},
		},
	}

	require.NoError(t, te.engine.processPull(ctx, pullPayload(t)))

	course, err := te.store.GetCourse(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, course)
	assert.Equal(t, "Algorithms", course.Title)

	// tombstones are inserted like any other absent record
	dropped, err := te.store.GetCourse(ctx, "c2")
	require.NoError(t, err)
	require.NotNil(t, dropped)
	assert.True(t, dropped.IsDeleted)

	lecture, err := te.store.GetLecture(ctx, "l1")
	require.NoError(t, err)
	require.NotNil(t, lecture)

	note, err := te.store.GetNote(ctx, "l1")
	require.NoError(t, err)
	require.NotNil(t, note)

	require.Len(t, lectureSubs(t, te, "l1"), 1)

	settings, err := te.store.ListSettings(ctx)
	require.NoError(t, err)
	require.Len(t, settings, 1)
	assert.Equal(t, "dark", settings[0].Value)

	session, err := te.store.GetChatSession(ctx, "cs1")
	require.NoError(t, err)
	require.NotNil(t, session)
	require.Len(t, sessionMessages(t, te, "cs1"), 1)
}

func TestProcessPull_OlderRemoteLosesToLocal(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()

	seedCourse(t, te, "c1", "Edited on this device", "2024-01-05T00:00:00Z")

	te.client.pullResp = &models.PullResponse{
		Courses: []models.Course{
			{ID: "c1", Username: "alice", Title: "Stale copy",
				CreatedAt: "2024-01-01T00:00:00Z", UpdatedAt: "2024-01-01T00:00:00Z"},
		},
	}
	require.NoError(t, te.engine.processPull(ctx, pullPayload(t)))

	course, err := te.store.GetCourse(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Edited on this device", course.Title)
	assert.Equal(t, "2024-01-05T00:00:00Z", course.UpdatedAt)
}

func TestProcessPull_NewerRemoteOverwritesLocal(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()

	seedCourse(t, te, "c1", "Old title", "2024-01-05T00:00:00Z")

	te.client.pullResp = &models.PullResponse{
		Courses: []models.Course{
			{ID: "c1", Username: "alice", Title: "New title", Description: strPtr("refreshed"),
				CreatedAt: "2024-01-01T00:00:00Z", UpdatedAt: "2024-02-01T00:00:00Z"},
		},
	}
	require.NoError(t, te.engine.processPull(ctx, pullPayload(t)))

	course, err := te.store.GetCourse(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "New title", course.Title)
	require.NotNil(t, course.Description)
	assert.Equal(t, "refreshed", *course.Description)
}

func TestProcessPull_EqualTimestampsKeepLocal(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()

	seedCourse(t, te, "c1", "Local title", "2024-01-05T00:00:00Z")

	te.client.pullResp = &models.PullResponse{
		Courses: []models.Course{
			{ID: "c1", Username: "alice", Title: "Remote title",
				CreatedAt: "2024-01-01T00:00:00Z", UpdatedAt: "2024-01-05T00:00:00Z"},
		},
	}
	require.NoError(t, te.engine.processPull(ctx, pullPayload(t)))

	course, err := te.store.GetCourse(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Local title", course.Title)
}

func TestNewerThan(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		local  string
		want   bool
	}{
		{"remote later", "2024-01-02T00:00:00Z", "2024-01-01T00:00:00Z", true},
		{"remote earlier", "2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z", false},
		{"equal", "2024-01-01T00:00:00Z", "2024-01-01T00:00:00Z", false},
		{"offset beats z notation", "2024-01-01T03:00:00+02:00", "2024-01-01T00:30:00Z", true},
		{"malformed falls back to lexicographic", "b", "a", true},
		{"malformed equal", "x", "x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newerThan(tt.remote, tt.local))
		})
	}
}

func TestProcessPull_SubtitleGroupFollowsLecture(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()

	// l1 is newer locally and must keep its subtitles; l2 is absent and
	// arrives with a group of its own
	seedLecture(t, te, "l1", "2024-03-01T00:00:00Z", nil)
	require.NoError(t, te.store.ReplaceSubtitles(ctx, "l1", []models.Subtitle{
		{ID: "mine", LectureID: "l1", Timestamp: 0, TextEN: "local line", Type: "final",
			CreatedAt: "2024-03-01T00:00:00Z"},
	}))

	te.client.pullResp = &models.PullResponse{
		Lectures: []models.Lecture{
			{ID: "l1", CourseID: "c1", Title: "Stale", Date: "2024-01-10T09:00:00Z", Status: "completed",
				CreatedAt: "2024-01-10T00:00:00Z", UpdatedAt: "2024-01-10T00:00:00Z"},
			{ID: "l2", CourseID: "c1", Title: "Fresh", Date: "2024-01-11T09:00:00Z", Status: "completed",
				CreatedAt: "2024-01-11T00:00:00Z", UpdatedAt: "2024-01-11T00:00:00Z"},
		},
		Subtitles: []models.Subtitle{
			{ID: "theirs1", LectureID: "l1", Timestamp: 0, TextEN: "remote line", Type: "final",
				CreatedAt: "2024-01-10T09:00:01Z"},
			{ID: "theirs2", LectureID: "l2", Timestamp: 0, TextEN: "new lecture line", Type: "final",
				CreatedAt: "2024-01-11T09:00:01Z"},
		},
	}
	require.NoError(t, te.engine.processPull(ctx, pullPayload(t)))

	kept := lectureSubs(t, te, "l1")
	require.Len(t, kept, 1)
	assert.Equal(t, "mine", kept[0].ID)

	added := lectureSubs(t, te, "l2")
	require.Len(t, added, 1)
	assert.Equal(t, "theirs2", added[0].ID)
}

func TestProcessPull_WinningLectureWithNoRemoteSubsClearsGroup(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()

	seedLecture(t, te, "l1", "2024-01-01T00:00:00Z", nil)
	require.NoError(t, te.store.ReplaceSubtitles(ctx, "l1", []models.Subtitle{
		{ID: "stale", LectureID: "l1", Timestamp: 0, TextEN: "old line", Type: "final",
			CreatedAt: "2024-01-01T00:00:00Z"},
	}))

	te.client.pullResp = &models.PullResponse{
		Lectures: []models.Lecture{
			{ID: "l1", CourseID: "c1", Title: "Re-recorded", Date: "2024-01-10T09:00:00Z", Status: "recorded",
				CreatedAt: "2024-01-01T00:00:00Z", UpdatedAt: "2024-02-01T00:00:00Z"},
		},
	}
	require.NoError(t, te.engine.processPull(ctx, pullPayload(t)))

	assert.Empty(t, lectureSubs(t, te, "l1"))
}

func TestProcessPull_LocalizesForeignPaths(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()

	te.client.pullResp = &models.PullResponse{
		Lectures: []models.Lecture{
			{ID: "l1", CourseID: "c1", Title: "Mac recording", Date: "2024-01-10T09:00:00Z", Status: "completed",
				AudioPath: strPtr("/Users/deviceA/audio/lec1.wav"),
				CreatedAt: "2024-01-10T00:00:00Z", UpdatedAt: "2024-01-10T00:00:00Z"},
			{ID: "l2", CourseID: "c1", Title: "Windows recording", Date: "2024-01-11T09:00:00Z", Status: "completed",
				AudioPath: strPtr(`C:\Users\X\audio\lec.mp3`),
				PDFPath:   strPtr(`C:\Users\X\docs\slides.pdf`),
				CreatedAt: "2024-01-11T00:00:00Z", UpdatedAt: "2024-01-11T00:00:00Z"},
			{ID: "l3", CourseID: "c1", Title: "Bare name", Date: "2024-01-12T09:00:00Z", Status: "completed",
				AudioPath: strPtr("file.mp3"),
				CreatedAt: "2024-01-12T00:00:00Z", UpdatedAt: "2024-01-12T00:00:00Z"},
		},
	}
	require.NoError(t, te.engine.processPull(ctx, pullPayload(t)))

	wantAudio := map[string]string{
		"l1": filepath.Join(te.dirs.Audio(), "lec1.wav"),
		"l2": filepath.Join(te.dirs.Audio(), "lec.mp3"),
		"l3": filepath.Join(te.dirs.Audio(), "file.mp3"),
	}
	for id, want := range wantAudio {
		lec, err := te.store.GetLecture(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, lec.AudioPath, "lecture %s", id)
		assert.Equal(t, want, *lec.AudioPath, "lecture %s", id)
		assert.FileExists(t, want)
	}

	l2, err := te.store.GetLecture(ctx, "l2")
	require.NoError(t, err)
	require.NotNil(t, l2.PDFPath)
	assert.Equal(t, filepath.Join(te.dirs.Documents(), "slides.pdf"), *l2.PDFPath)

	assert.ElementsMatch(t, []string{"lec1.wav", "lec.mp3", "slides.pdf", "file.mp3"}, te.client.downloads)
}

func TestProcessPull_SkipsDownloadWhenFilePresent(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()

	local := filepath.Join(te.dirs.Audio(), "lec1.wav")
	require.NoError(t, os.WriteFile(local, []byte("already here"), 0o660))

	te.client.pullResp = &models.PullResponse{
		Lectures: []models.Lecture{
			{ID: "l1", CourseID: "c1", Title: "Intro", Date: "2024-01-10T09:00:00Z", Status: "completed",
				AudioPath: strPtr("/Users/deviceA/audio/lec1.wav"),
				CreatedAt: "2024-01-10T00:00:00Z", UpdatedAt: "2024-01-10T00:00:00Z"},
		},
	}
	require.NoError(t, te.engine.processPull(ctx, pullPayload(t)))

	assert.Empty(t, te.client.downloads)

	lec, err := te.store.GetLecture(ctx, "l1")
	require.NoError(t, err)
	require.NotNil(t, lec.AudioPath)
	assert.Equal(t, local, *lec.AudioPath)

	body, err := os.ReadFile(local)
	require.NoError(t, err)
	assert.Equal(t, "already here", string(body))
}

func TestProcessPull_DownloadFailureStillMergesLecture(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()

	te.client.downloadErr = errors.New("server unavailable: connection refused")
	te.client.pullResp = &models.PullResponse{
		Lectures: []models.Lecture{
			{ID: "l1", CourseID: "c1", Title: "Intro", Date: "2024-01-10T09:00:00Z", Status: "completed",
				AudioPath: strPtr("/Users/deviceA/audio/lec1.wav"),
				CreatedAt: "2024-01-10T00:00:00Z", UpdatedAt: "2024-01-10T00:00:00Z"},
		},
	}
	require.NoError(t, te.engine.processPull(ctx, pullPayload(t)))

	local := filepath.Join(te.dirs.Audio(), "lec1.wav")
	lec, err := te.store.GetLecture(ctx, "l1")
	require.NoError(t, err)
	require.NotNil(t, lec.AudioPath)
	assert.Equal(t, local, *lec.AudioPath)
	assert.NoFileExists(t, local)
}

func TestProcessPull_MalformedSyllabusDroppedRecordKept(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()

	te.client.pullResp = &models.PullResponse{
		Courses: []models.Course{
			{ID: "c1", Username: "alice", Title: "Algorithms",
				SyllabusInfo: strPtr(`{"weeks": 12`),
				CreatedAt:    "2024-01-01T00:00:00Z", UpdatedAt: "2024-01-01T00:00:00Z"},
		},
	}
	require.NoError(t, te.engine.processPull(ctx, pullPayload(t)))

	course, err := te.store.GetCourse(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, course)
	assert.Equal(t, "Algorithms", course.Title)
	assert.Nil(t, course.SyllabusInfo)
}

func TestProcessPull_MalformedSourcesDroppedMessageKept(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()

	te.client.pullResp = &models.PullResponse{
		ChatSessions: []models.ChatSession{
			{ID: "cs1", Title: "Q&A", CreatedAt: "2024-01-11T00:00:00Z", UpdatedAt: "2024-01-11T00:00:00Z"},
		},
		ChatMessages: []models.ChatMessage{
			{ID: "m1", SessionID: "cs1", Role: "assistant", Content: "see lecture 3",
				Sources: strPtr(`[{"id":`), Timestamp: "2024-01-11T00:01:00Z"},
			{ID: "m2", SessionID: "cs1", Role: "assistant", Content: "fine one",
				Sources: strPtr(`[{"id":"s1"}]`), Timestamp: "2024-01-11T00:02:00Z"},
		},
	}
	require.NoError(t, te.engine.processPull(ctx, pullPayload(t)))

	msgs := sessionMessages(t, te, "cs1")
	require.Len(t, msgs, 2)

	byID := map[string]models.ChatMessage{}
	for _, m := range msgs {
		byID[m.ID] = m
	}
	assert.Nil(t, byID["m1"].Sources)
	require.NotNil(t, byID["m2"].Sources)
	assert.Equal(t, `[{"id":"s1"}]`, *byID["m2"].Sources)
}

func TestProcessPull_SettingsOverwriteRegardlessOfTimestamps(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, te.store.SaveSetting(ctx, &models.Setting{
		Key: "theme", Value: "dark", UpdatedAt: "2030-01-01T00:00:00Z",
	}))

	te.client.pullResp = &models.PullResponse{
		Settings: []models.Setting{
			{Key: "theme", Value: "light", UpdatedAt: "2020-01-01T00:00:00Z"},
		},
	}
	require.NoError(t, te.engine.processPull(ctx, pullPayload(t)))

	settings, err := te.store.ListSettings(ctx)
	require.NoError(t, err)
	require.Len(t, settings, 1)
	assert.Equal(t, "light", settings[0].Value)
}

func TestProcessPull_NotesCompareGenerationTime(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, te.store.SaveNote(ctx, &models.Note{
		LectureID: "l1", Title: "Mine", Content: "local", GeneratedAt: "2024-01-05T00:00:00Z",
	}))

	te.client.pullResp = &models.PullResponse{
		Notes: []models.Note{
			{LectureID: "l1", Title: "Stale", Content: "old", GeneratedAt: "2024-01-01T00:00:00Z"},
			{LectureID: "l2", Title: "Fresh", Content: "new", GeneratedAt: "2024-01-06T00:00:00Z"},
		},
	}
	require.NoError(t, te.engine.processPull(ctx, pullPayload(t)))

	kept, err := te.store.GetNote(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "Mine", kept.Title)

	added, err := te.store.GetNote(ctx, "l2")
	require.NoError(t, err)
	require.NotNil(t, added)
	assert.Equal(t, "Fresh", added.Title)
}

func TestProcessPull_ChatMessagesFollowSession(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, te.store.SaveChatSession(ctx, &models.ChatSession{
		ID: "cs1", Title: "Mine", CreatedAt: "2024-01-01T00:00:00Z", UpdatedAt: "2024-03-01T00:00:00Z",
	}))
	require.NoError(t, te.store.ReplaceChatMessages(ctx, "cs1", []models.ChatMessage{
		{ID: "mine", SessionID: "cs1", Role: "user", Content: "local turn", Timestamp: "2024-03-01T00:00:00Z"},
	}))

	te.client.pullResp = &models.PullResponse{
		ChatSessions: []models.ChatSession{
			{ID: "cs1", Title: "Stale", CreatedAt: "2024-01-01T00:00:00Z", UpdatedAt: "2024-01-02T00:00:00Z"},
			{ID: "cs2", Title: "Other device", CreatedAt: "2024-01-03T00:00:00Z", UpdatedAt: "2024-01-03T00:00:00Z"},
		},
		ChatMessages: []models.ChatMessage{
			{ID: "theirs1", SessionID: "cs1", Role: "user", Content: "remote turn", Timestamp: "2024-01-02T00:00:00Z"},
			{ID: "theirs2", SessionID: "cs2", Role: "user", Content: "new session turn", Timestamp: "2024-01-03T00:00:00Z"},
		},
	}
	require.NoError(t, te.engine.processPull(ctx, pullPayload(t)))

	kept := sessionMessages(t, te, "cs1")
	require.Len(t, kept, 1)
	assert.Equal(t, "mine", kept[0].ID)

	session, err := te.store.GetChatSession(ctx, "cs1")
	require.NoError(t, err)
	assert.Equal(t, "Mine", session.Title)

	added := sessionMessages(t, te, "cs2")
	require.Len(t, added, 1)
	assert.Equal(t, "theirs2", added[0].ID)
}

func TestProcessPull_TransportErrorPropagates(t *testing.T) {
	te := newTestEngine(t)
	te.client.pullErr = errors.New("server unavailable: connection refused")

	err := te.engine.processPull(context.Background(), pullPayload(t))
	require.Error(t, err)
}
