package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"studio/internal/domain"
	"studio/internal/providers/genai"
)

// request is the immutable snapshot of prompt and settings captured at
// dispatch time. Mutating the session while the request is in flight does not
// affect it.
type request struct {
	tool     domain.Tool
	prompt   string
	negative string
	aspect   string
	style    string
	source   *domain.Artifact
}

func initialLabel(tool domain.Tool) string {
	switch tool {
	case domain.ToolImageGenerate:
		return "Forging a new vision..."
	case domain.ToolImageEdit:
		return "Re-imagining your image..."
	default:
		return genai.VideoInitMessage
	}
}

// Dispatch runs one orchestrated generation request for the given tool.
// At most one request is in flight per session: dispatching while busy is
// rejected without touching any state. Edit tools require a loaded artifact,
// checked before any network round-trip. Video tools additionally pass the
// credential gate; without a selected credential the session transitions to
// awaiting-credential and the gateway is never invoked.
func (s *Session) Dispatch(ctx context.Context, tool domain.Tool) error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return domain.ErrBusy
	}
	req := request{
		tool:     tool,
		prompt:   s.prompt,
		negative: s.negative,
		aspect:   s.aspect,
		style:    s.style,
		source:   s.current,
	}
	if (tool == domain.ToolImageEdit || tool == domain.ToolVideoEdit) && req.source == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: no artifact loaded to edit", domain.ErrPreconditionFailed)
	}
	s.busy = true
	s.mu.Unlock()

	if tool.RequiresCredential() && !s.gate.Selected() && !s.gate.Check(ctx) {
		s.mu.Lock()
		s.busy = false
		s.state = StateAwaitingCredential
		s.mu.Unlock()
		return domain.ErrCredentialRequired
	}

	s.mu.Lock()
	s.state = StateInFlight
	s.progress = initialLabel(tool)
	s.mu.Unlock()

	artifact, err := s.run(ctx, req)

	// Busy and progress are cleared on every exit path, success or failure.
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	s.progress = ""
	if err != nil {
		if errors.Is(err, domain.ErrCredentialInvalid) {
			s.gate.Invalidate()
			s.state = StateAwaitingCredential
		} else {
			s.state = StateIdle
		}
		s.logger.Error().Err(err).Str("tool", string(tool)).Msg("session: generation failed")
		return err
	}
	s.state = StateIdle
	s.current = artifact
	s.push(artifact)
	s.logger.Info().
		Str("tool", string(tool)).
		Str("artifact_id", artifact.ID).
		Str("kind", string(artifact.Kind)).
		Msg("session: generation succeeded")
	return nil
}

func (s *Session) run(ctx context.Context, req request) (*domain.Artifact, error) {
	switch req.tool {
	case domain.ToolImageGenerate:
		payload, err := s.gateway.GenerateImage(ctx, genai.ImageRequest{
			Prompt:         req.prompt,
			AspectRatio:    req.aspect,
			StylePreset:    req.style,
			NegativePrompt: req.negative,
		})
		if err != nil {
			return nil, err
		}
		return s.newArtifact(domain.ArtifactKindImage, payload, req.prompt), nil

	case domain.ToolImageEdit:
		payload, err := s.gateway.EditImage(ctx, req.prompt, req.source.Locator)
		if err != nil {
			return nil, err
		}
		return s.newArtifact(domain.ArtifactKindImage, payload, req.prompt), nil

	case domain.ToolVideoGenerate, domain.ToolVideoEdit:
		return s.runVideo(ctx, req)

	default:
		return nil, fmt.Errorf("%w: unknown tool %q", domain.ErrPreconditionFailed, req.tool)
	}
}

// runVideo drives the long-running video job: start, then consume the
// operation's lazy progress sequence — show the next rotating message, wait
// one poll interval, re-query — until the operation completes. The poll loop
// is unbounded unless a deadline is configured; context cancellation is the
// only other way out.
func (s *Session) runVideo(ctx context.Context, req request) (*domain.Artifact, error) {
	if s.pollDeadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.pollDeadline)
		defer cancel()
	}

	vreq := genai.VideoRequest{Prompt: req.prompt, AspectRatio: req.aspect}
	if req.tool == domain.ToolVideoEdit {
		mime, data, err := domain.DecodeDataURI(req.source.Locator)
		if err != nil {
			return nil, fmt.Errorf("%w: start frame: %v", domain.ErrPreconditionFailed, err)
		}
		vreq.StartImage = &genai.Payload{MIME: mime, Data: data}
	}

	op, err := s.gateway.StartVideo(ctx, vreq)
	if err != nil {
		return nil, err
	}

	for !op.Done() {
		s.setProgress(op.NextMessage())
		if err := s.sleep(ctx, s.pollInterval); err != nil {
			return nil, err
		}
		if err := op.Poll(ctx); err != nil {
			return nil, err
		}
	}
	s.setProgress(genai.VideoCompleteMessage)

	uri, err := op.Result()
	if err != nil {
		return nil, err
	}
	payload, err := s.gateway.DownloadVideo(ctx, uri)
	if err != nil {
		return nil, err
	}

	// A completed privileged call verifies the optimistically selected key.
	s.gate.Confirm()
	return s.newArtifact(domain.ArtifactKindVideo, payload, req.prompt), nil
}

// EnhancePrompt asks the gateway for enriched prompt variations and replaces
// the prompt text with the first suggestion. Enhancement is best-effort: an
// empty result or a failure leaves the prompt unchanged and surfaces no error.
// It shares the single-flight busy gate with generation dispatch.
func (s *Session) EnhancePrompt(ctx context.Context) error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return domain.ErrBusy
	}
	keyword := s.prompt
	if strings.TrimSpace(keyword) == "" {
		s.mu.Unlock()
		return nil
	}
	s.busy = true
	s.state = StateInFlight
	s.progress = "Thinking of better prompts..."
	s.mu.Unlock()

	suggestions, err := s.gateway.SuggestPrompts(ctx, keyword)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	s.progress = ""
	s.state = StateIdle
	if err != nil {
		s.logger.Debug().Err(err).Msg("session: prompt enhancement failed; keeping prompt")
		return nil
	}
	if len(suggestions) > 0 {
		s.prompt = suggestions[0]
	}
	return nil
}

func (s *Session) newArtifact(kind domain.ArtifactKind, payload *genai.Payload, prompt string) *domain.Artifact {
	return &domain.Artifact{
		ID:           uuid.NewString(),
		Kind:         kind,
		Locator:      domain.EncodeDataURI(payload.MIME, payload.Data),
		OriginPrompt: prompt,
		CreatedAt:    s.now().UTC(),
	}
}
