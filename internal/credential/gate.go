// Package credential tracks whether a usable API key is currently selected in
// the host environment and mediates the selection flow. The key value itself
// is owned by the host and never stored here; the gate only caches a boolean
// read of it.
package credential

import (
	"context"
	"sync"

	"studio/internal/infra"
)

// Host is the external capability that owns credential selection. It may be
// entirely absent, in which case every query answers false without error.
type Host interface {
	HasSelectedKey(ctx context.Context) (bool, error)
	OpenSelectKey(ctx context.Context) error
}

// Gate caches the host's answer to "is a usable credential selected?" for the
// orchestrator's use.
type Gate struct {
	mu         sync.Mutex
	host       Host
	logger     infra.Logger
	selected   bool
	unverified bool
}

// NewGate constructs a gate over the given host capability. A nil host is
// valid and behaves as "never selected".
func NewGate(host Host, logger infra.Logger) *Gate {
	return &Gate{host: host, logger: logger}
}

// Check queries the host for the current selection state and caches the
// answer. An absent host or a failing query both answer false.
func (g *Gate) Check(ctx context.Context) bool {
	if g.host == nil {
		return false
	}
	selected, err := g.host.HasSelectedKey(ctx)
	if err != nil {
		g.logger.Warn().Err(err).Msg("credential: host selection check failed")
		selected = false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.selected = selected
	if selected {
		g.unverified = false
	}
	return selected
}

// RequestSelection invokes the host's selection UI. Once the host signals
// completion the gate optimistically marks the credential selected without
// re-verifying; the unverified tag is cleared by the next successful
// privileged call (Confirm) or an explicit Check.
func (g *Gate) RequestSelection(ctx context.Context) error {
	if g.host == nil {
		return nil
	}
	if err := g.host.OpenSelectKey(ctx); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.selected = true
	g.unverified = true
	return nil
}

// Confirm records that a privileged call succeeded with the selected
// credential, clearing the optimistic unverified tag.
func (g *Gate) Confirm() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.selected {
		g.unverified = false
	}
}

// Invalidate resets the cached selection after the remote service rejected
// the credential.
func (g *Gate) Invalidate() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.selected = false
	g.unverified = false
}

// Selected reports the cached selection state without consulting the host.
func (g *Gate) Selected() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.selected
}

// Unverified reports whether the cached selection is an optimistic assumption
// that has not yet been confirmed by a successful privileged call.
func (g *Gate) Unverified() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.unverified
}
