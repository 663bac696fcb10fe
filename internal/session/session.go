// Package session implements the generation orchestrator: a per-session state
// machine that dispatches requests to the Gemini gateway, applies the
// credential gate before privileged calls, and maintains the current artifact,
// bounded history, and busy state across cancellable, potentially-failing
// requests.
package session

import (
	"context"
	"sync"
	"time"

	"studio/internal/domain"
	"studio/internal/infra"
	"studio/internal/providers/genai"
)

// State enumerates the orchestrator's top-level states.
type State string

const (
	StateIdle               State = "idle"
	StateAwaitingCredential State = "awaiting-credential"
	StateInFlight           State = "in-flight"
)

// historyLimit bounds the session history to the most recent entries.
const historyLimit = 20

// Gateway is the remote generation surface the session depends on.
type Gateway interface {
	GenerateImage(ctx context.Context, req genai.ImageRequest) (*genai.Payload, error)
	EditImage(ctx context.Context, prompt, sourceLocator string) (*genai.Payload, error)
	StartVideo(ctx context.Context, req genai.VideoRequest) (genai.Operation, error)
	DownloadVideo(ctx context.Context, uri string) (*genai.Payload, error)
	SuggestPrompts(ctx context.Context, keyword string) ([]string, error)
}

// CredentialGate mediates the privileged-call credential check.
type CredentialGate interface {
	Check(ctx context.Context) bool
	Selected() bool
	RequestSelection(ctx context.Context) error
	Confirm()
	Invalidate()
}

// ArtifactStore persists exported artifact bytes.
type ArtifactStore interface {
	Write(ctx context.Context, key string, data []byte) (string, error)
}

// Sleeper waits between video poll iterations. Injected so tests can run the
// poll loop against a fake clock.
type Sleeper func(ctx context.Context, d time.Duration) error

func waitInterval(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Options wires a session's collaborators and tuning.
type Options struct {
	Gateway Gateway
	Gate    CredentialGate
	Store   ArtifactStore
	Logger  infra.Logger

	// PollInterval is the wait between video operation polls.
	PollInterval time.Duration
	// PollDeadline caps one video poll loop. Zero means unbounded.
	PollDeadline time.Duration

	Sleep Sleeper
	Now   func() time.Time
}

// Session is the orchestrator's explicit context object. Each Session is
// independent; nothing is process-global. A single mutex guards state because
// the HTTP shell delivers requests on separate goroutines; the busy flag is
// the single-flight gate for orchestrated operations.
type Session struct {
	gateway      Gateway
	gate         CredentialGate
	store        ArtifactStore
	logger       infra.Logger
	pollInterval time.Duration
	pollDeadline time.Duration
	sleep        Sleeper
	now          func() time.Time

	mu       sync.Mutex
	state    State
	view     domain.View
	prompt   string
	negative string
	aspect   string
	style    string
	current  *domain.Artifact
	history  []*domain.Artifact
	busy     bool
	progress string
}

// New constructs an idle session on the image-generation view.
func New(opts Options) *Session {
	s := &Session{
		gateway:      opts.Gateway,
		gate:         opts.Gate,
		store:        opts.Store,
		logger:       opts.Logger,
		pollInterval: opts.PollInterval,
		pollDeadline: opts.PollDeadline,
		sleep:        opts.Sleep,
		now:          opts.Now,
		state:        StateIdle,
		view:         domain.ViewImageGenerate,
		aspect:       "1:1",
	}
	if s.pollInterval <= 0 {
		s.pollInterval = 10 * time.Second
	}
	if s.sleep == nil {
		s.sleep = waitInterval
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Snapshot is an immutable view of session state for the presentation shell.
type Snapshot struct {
	State              State              `json:"state"`
	View               domain.View        `json:"view"`
	Prompt             string             `json:"prompt"`
	NegativePrompt     string             `json:"negative_prompt"`
	AspectRatio        string             `json:"aspect_ratio"`
	StylePreset        string             `json:"style_preset"`
	Busy               bool               `json:"busy"`
	Progress           string             `json:"progress"`
	CredentialSelected bool               `json:"credential_selected"`
	Current            *domain.Artifact   `json:"current,omitempty"`
	History            []*domain.Artifact `json:"history"`
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := make([]*domain.Artifact, len(s.history))
	copy(history, s.history)
	return Snapshot{
		State:              s.state,
		View:               s.view,
		Prompt:             s.prompt,
		NegativePrompt:     s.negative,
		AspectRatio:        s.aspect,
		StylePreset:        s.style,
		Busy:               s.busy,
		Progress:           s.progress,
		CredentialSelected: s.gate.Selected(),
		Current:            s.current,
		History:            history,
	}
}

// SetPrompt updates the free-form prompt text. An in-flight request is
// unaffected: it captured a snapshot at dispatch.
func (s *Session) SetPrompt(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompt = text
}

// SetNegativePrompt updates the negative-prompt text.
func (s *Session) SetNegativePrompt(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.negative = text
}

// SetAspectRatio updates the aspect-ratio setting.
func (s *Session) SetAspectRatio(ratio string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aspect = ratio
}

// SetStylePreset updates the style-preset setting.
func (s *Session) SetStylePreset(style string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style = style
}

// SetView switches the active workspace view.
func (s *Session) SetView(view domain.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
}

func (s *Session) setProgress(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = label
}

// ConfirmCredential drives the host selection flow and, once the host signals
// completion, leaves the awaiting-credential state. The next dispatch proceeds
// under the optimistically selected key.
func (s *Session) ConfirmCredential(ctx context.Context) error {
	if err := s.gate.RequestSelection(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateAwaitingCredential {
		s.state = StateIdle
	}
	return nil
}

// DismissCredentialPrompt closes the selection prompt without selecting.
func (s *Session) DismissCredentialPrompt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateAwaitingCredential {
		s.state = StateIdle
	}
}
