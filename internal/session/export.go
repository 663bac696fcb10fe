package session

import (
	"context"
	"fmt"

	"studio/internal/domain"
)

// Export writes the current artifact's bytes through the artifact store under
// a deterministic timestamped name and returns the stored key. An empty
// canvas or a non-decomposable locator is a precondition failure; nothing is
// written.
func (s *Session) Export(ctx context.Context) (string, error) {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	if current == nil {
		return "", fmt.Errorf("%w: no artifact loaded", domain.ErrPreconditionFailed)
	}
	_, data, err := domain.DecodeDataURI(current.Locator)
	if err != nil {
		return "", fmt.Errorf("%w: artifact is not exportable: %v", domain.ErrPreconditionFailed, err)
	}
	if s.store == nil {
		return "", fmt.Errorf("%w: no export store configured", domain.ErrPreconditionFailed)
	}

	name := exportName(s.now(), current.Kind)
	key, err := s.store.Write(ctx, name, data)
	if err != nil {
		return "", err
	}
	s.logger.Info().Str("key", key).Msg("session: exported artifact")
	return key, nil
}
