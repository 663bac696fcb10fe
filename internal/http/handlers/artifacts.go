package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studio/internal/domain"
)

// CurrentArtifact streams the current artifact's bytes for display.
func (a *App) CurrentArtifact(w http.ResponseWriter, r *http.Request) {
	snap := a.Session.Snapshot()
	if snap.Current == nil {
		a.error(w, http.StatusNotFound, "not_found", "no artifact loaded")
		return
	}
	mime, data, err := domain.DecodeDataURI(snap.Current.Locator)
	if err != nil {
		a.error(w, http.StatusUnprocessableEntity, "precondition_failed", "artifact is not displayable")
		return
	}
	w.Header().Set("Content-Type", mime)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// maxUploadBytes caps dropped files; videos dominate so the cap is generous.
const maxUploadBytes = 64 << 20

// Upload ingests a dropped file as the current artifact and switches the
// session to the matching edit view. Uploads never enter history.
func (a *App) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "unreadable file")
		return
	}
	mime := header.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(data)
	}

	artifact := a.Session.IngestFile(mime, data)
	a.Logger.Info().
		Str("artifact_id", artifact.ID).
		Str("kind", string(artifact.Kind)).
		Int("bytes", len(data)).
		Msg("handlers: ingested upload")
	a.json(w, http.StatusOK, a.Session.Snapshot())
}

// Export writes the current artifact to the export store and returns the key.
func (a *App) Export(w http.ResponseWriter, r *http.Request) {
	key, err := a.Session.Export(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"key": key})
}

// History lists session history, most recent first.
func (a *App) History(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Session.Snapshot().History)
}

// SelectHistory makes a history entry the current artifact.
func (a *App) SelectHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.Session.SelectFromHistory(id); err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, a.Session.Snapshot())
}

// HistoryArchive streams the session history as a zip download.
func (a *App) HistoryArchive(w http.ResponseWriter, r *http.Request) {
	blob := a.Session.ArchiveHistory()
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="history.zip"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob)
}
