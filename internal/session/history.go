package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"studio/internal/domain"
	"studio/pkg/archive"
)

// push prepends an artifact to history and evicts the oldest entries beyond
// the bound. Callers must hold s.mu.
func (s *Session) push(artifact *domain.Artifact) {
	s.history = append([]*domain.Artifact{artifact}, s.history...)
	if len(s.history) > historyLimit {
		s.history = s.history[:historyLimit]
	}
}

// SelectFromHistory makes a history entry the current artifact, copies its
// originating prompt into the prompt text, and switches to the edit view
// matching its kind. This is a pure state transition with no I/O.
func (s *Session) SelectFromHistory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, artifact := range s.history {
		if artifact.ID != id {
			continue
		}
		s.current = artifact
		s.prompt = artifact.OriginPrompt
		s.view = domain.EditViewFor(artifact.Kind)
		return nil
	}
	return fmt.Errorf("%w: history entry %s", domain.ErrNotFound, id)
}

// IngestFile synthesizes an artifact from a dropped file's bytes and declared
// media type, makes it current, and switches to the matching edit view.
// Uploads never enter history; only generated outputs do.
func (s *Session) IngestFile(mime string, data []byte) *domain.Artifact {
	kind := domain.KindFromMIME(mime)
	artifact := &domain.Artifact{
		ID:           uuid.NewString(),
		Kind:         kind,
		Locator:      domain.EncodeDataURI(mime, data),
		OriginPrompt: domain.OriginUploaded,
		CreatedAt:    s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = artifact
	s.view = domain.EditViewFor(kind)
	return artifact
}

// ArchiveHistory packs every decodable history artifact into a zip for bulk
// download, newest first.
func (s *Session) ArchiveHistory() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []archive.Entry
	for i, artifact := range s.history {
		_, data, err := domain.DecodeDataURI(artifact.Locator)
		if err != nil {
			continue
		}
		entries = append(entries, archive.Entry{
			Name: fmt.Sprintf("%02d-%s.%s", i+1, artifact.ID, artifact.Kind.FileExt()),
			Data: data,
		})
	}
	return archive.Build(entries)
}

// exportName derives the deterministic download name for an artifact kind.
func exportName(now time.Time, kind domain.ArtifactKind) string {
	return fmt.Sprintf("studio-%d.%s", now.Unix(), kind.FileExt())
}
