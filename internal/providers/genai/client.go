package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"studio/internal/domain"
	"studio/internal/infra"
)

// KeySource resolves the Gemini API key for a single call. The key is owned by
// the host environment and may rotate between calls, so it is re-resolved on
// every request rather than captured at construction time.
type KeySource func(ctx context.Context) (string, error)

// StaticKey adapts a fixed key string into a KeySource.
func StaticKey(key string) KeySource {
	return func(context.Context) (string, error) {
		return key, nil
	}
}

// Options controls how the Gemini client is configured.
type Options struct {
	Keys        KeySource
	BaseURL     string
	ImageModel  string
	EditModel   string
	VideoModel  string
	PromptModel string
	HTTPClient  *http.Client
	Logger      *infra.Logger
}

// Client is a stateless facade over the Gemini REST surface. It reads no
// session state and mutates none; every operation is a pure request/response
// (or request/poll/response) translation.
type Client struct {
	keys        KeySource
	baseURL     string
	imageModel  string
	editModel   string
	videoModel  string
	promptModel string
	httpClient  *http.Client
	logger      *infra.Logger
}

// NewClient constructs a Gemini client with sane defaults. Callers may provide
// a nil HTTP client; a reusable one with sensible timeouts will be created.
func NewClient(opts Options) (*Client, error) {
	if opts.Keys == nil {
		return nil, errors.New("genai: key source is required")
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}

	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}

	return &Client{
		keys:        opts.Keys,
		baseURL:     baseURL,
		imageModel:  defaultString(opts.ImageModel, "imagen-4.0-generate-001"),
		editModel:   defaultString(opts.EditModel, "gemini-2.5-flash-image"),
		videoModel:  defaultString(opts.VideoModel, "veo-3.1-fast-generate-preview"),
		promptModel: defaultString(opts.PromptModel, "gemini-2.5-flash"),
		httpClient:  client,
		logger:      logger,
	}, nil
}

// Payload carries raw media bytes together with their declared media type.
type Payload struct {
	MIME string
	Data []byte
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts,omitempty"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

type geminiGenerationConfig struct {
	ResponseModalities []string      `json:"responseModalities,omitempty"`
	ResponseMimeType   string        `json:"responseMimeType,omitempty"`
	ResponseSchema     *geminiSchema `json:"responseSchema,omitempty"`
}

type geminiSchema struct {
	Type       string                   `json:"type"`
	Properties map[string]*geminiSchema `json:"properties,omitempty"`
	Items      *geminiSchema            `json:"items,omitempty"`
}

type geminiGenerateContentRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

type geminiGenerateContentResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Status  string `json:"status,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

// invoke performs one authenticated Gemini call. The API key is resolved fresh
// from the key source so that credential rotation between calls (notably
// between video poll iterations) is honored.
func (c *Client) invoke(ctx context.Context, method, path string, payload, out any) error {
	key, err := c.keys(ctx)
	if err != nil {
		return fmt.Errorf("resolve credential: %w", err)
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	endpoint := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if key != "" {
		req.Header.Set("x-goog-api-key", key)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: invoke gemini: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.classifyHTTPError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode gemini response: %v", domain.ErrProviderFailure, err)
	}
	return nil
}

// classifyHTTPError maps a Gemini error response onto the domain taxonomy. An
// "entity not found" rejection means the key itself is invalid or expired.
func (c *Client) classifyHTTPError(resp *http.Response) error {
	var apiErr geminiErrorResponse
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &apiErr)

	message := strings.TrimSpace(apiErr.Error.Message)
	if message == "" {
		message = strings.TrimSpace(string(raw))
	}

	if resp.StatusCode == http.StatusNotFound ||
		apiErr.Error.Status == "NOT_FOUND" ||
		strings.Contains(message, "Requested entity was not found") {
		return fmt.Errorf("%w: gemini status %d: %s", domain.ErrCredentialInvalid, resp.StatusCode, message)
	}

	if message == "" {
		return fmt.Errorf("%w: gemini status %d", domain.ErrProviderFailure, resp.StatusCode)
	}
	return fmt.Errorf("%w: gemini status %d: %s", domain.ErrProviderFailure, resp.StatusCode, message)
}

func firstText(resp geminiGenerateContentResponse) string {
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text
			}
		}
	}
	return ""
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
