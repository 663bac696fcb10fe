package credential

import (
	"context"
	"strings"

	"studio/internal/infra"
	"studio/internal/providers/genai"
)

// EnvHost adapts a key source into the Host capability for headless
// deployments: a non-empty resolvable key counts as selected, and the
// selection UI degrades to an operator hint in the log.
type EnvHost struct {
	keys   genai.KeySource
	logger infra.Logger
}

// NewEnvHost constructs a host backed by the given key source.
func NewEnvHost(keys genai.KeySource, logger infra.Logger) *EnvHost {
	return &EnvHost{keys: keys, logger: logger}
}

func (h *EnvHost) HasSelectedKey(ctx context.Context) (bool, error) {
	if h.keys == nil {
		return false, nil
	}
	key, err := h.keys(ctx)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(key) != "", nil
}

func (h *EnvHost) OpenSelectKey(ctx context.Context) error {
	h.logger.Info().Msg("credential: set GEMINI_API_KEY and restart to select a key")
	return nil
}

var _ Host = (*EnvHost)(nil)
