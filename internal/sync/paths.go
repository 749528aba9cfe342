package sync

import (
	"context"

	"github.com/dmitrijs2005/classnote/internal/filex"
	"github.com/dmitrijs2005/classnote/internal/models"
)

// localizeLecturePaths rewrites a remote lecture's file references into
// paths on this device and fetches any file body not present yet. The
// server stores files under their canonical name, so that name doubles as
// the download key. A failed download is logged and the lecture still
// merges; the next pull retries because the local file still does not
// exist.
func (e *Engine) localizeLecturePaths(ctx context.Context, baseURL string, lec *models.Lecture) {
	lec.AudioPath = e.localizeFileField(ctx, baseURL, lec.ID, lec.AudioPath, e.dirs.Audio())
	lec.PDFPath = e.localizeFileField(ctx, baseURL, lec.ID, lec.PDFPath, e.dirs.Documents())
}

func (e *Engine) localizeFileField(ctx context.Context, baseURL, lectureID string, remote *string, localDir string) *string {
	if remote == nil || *remote == "" {
		return remote
	}

	name := filex.CanonicalFilename(*remote)
	if name == "" {
		return remote
	}

	local := filex.LocalizePath(*remote, localDir)
	if !filex.Exists(local) {
		if err := e.client.DownloadFile(ctx, baseURL, name, local); err != nil {
			e.logger.Warn(ctx, "failed to download lecture file",
				"lecture_id", lectureID, "file", name, "error", err)
		}
	}
	return &local
}
