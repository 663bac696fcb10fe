package genai

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"studio/internal/domain"
)

// progressMessages is the fixed rotation shown while a video operation runs.
var progressMessages = []string{
	"Warming up the digital canvas...",
	"Teaching pixels to dance...",
	"Composing a symphony of light and motion...",
	"Almost there, adding the final touches...",
	"Rendering the masterpiece...",
}

const (
	// VideoInitMessage labels the dispatch before the operation handle exists.
	VideoInitMessage = "Initializing video generation..."
	// VideoCompleteMessage labels the terminal state of a finished poll loop.
	VideoCompleteMessage = "Video generation complete!"
)

// VideoRequest represents the information required to start a video
// generation job. StartImage optionally seeds the first frame.
type VideoRequest struct {
	Prompt      string
	AspectRatio string
	StartImage  *Payload
}

// Operation is a pollable handle for an in-progress video job. The caller
// drives the loop: consume NextMessage, wait the poll interval, then Poll,
// until Done reports true. Messages form a lazy sequence, emitted strictly in
// rotation order and only as the caller advances.
type Operation interface {
	Done() bool
	NextMessage() string
	Poll(ctx context.Context) error
	Result() (string, error)
}

type veoInstance struct {
	Prompt string    `json:"prompt"`
	Image  *veoImage `json:"image,omitempty"`
}

type veoImage struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	MimeType           string `json:"mimeType,omitempty"`
}

type veoParameters struct {
	SampleCount int    `json:"sampleCount,omitempty"`
	AspectRatio string `json:"aspectRatio,omitempty"`
	Resolution  string `json:"resolution,omitempty"`
}

type veoPredictRequest struct {
	Instances  []veoInstance  `json:"instances"`
	Parameters *veoParameters `json:"parameters,omitempty"`
}

type veoOperationResponse struct {
	Name     string `json:"name"`
	Done     bool   `json:"done"`
	Response *struct {
		GenerateVideoResponse *struct {
			GeneratedSamples []struct {
				Video struct {
					URI string `json:"uri"`
				} `json:"video"`
			} `json:"generatedSamples"`
		} `json:"generateVideoResponse"`
	} `json:"response,omitempty"`
}

func (r veoOperationResponse) videoURI() string {
	if r.Response == nil || r.Response.GenerateVideoResponse == nil {
		return ""
	}
	samples := r.Response.GenerateVideoResponse.GeneratedSamples
	if len(samples) == 0 {
		return ""
	}
	return samples[0].Video.URI
}

type videoOperation struct {
	client *Client
	name   string
	done   bool
	uri    string
	msg    int
}

// StartVideo submits the initial long-running request and returns the
// operation handle to poll.
func (c *Client) StartVideo(ctx context.Context, req VideoRequest) (Operation, error) {
	instance := veoInstance{Prompt: req.Prompt}
	if req.StartImage != nil {
		instance.Image = &veoImage{
			BytesBase64Encoded: base64.StdEncoding.EncodeToString(req.StartImage.Data),
			MimeType:           req.StartImage.MIME,
		}
	}

	payload := veoPredictRequest{
		Instances: []veoInstance{instance},
		Parameters: &veoParameters{
			SampleCount: 1,
			AspectRatio: req.AspectRatio,
			Resolution:  "720p",
		},
	}

	var resp veoOperationResponse
	path := fmt.Sprintf("/models/%s:predictLongRunning", url.PathEscape(c.videoModel))
	if err := c.invoke(ctx, http.MethodPost, path, payload, &resp); err != nil {
		return nil, err
	}
	if resp.Name == "" {
		return nil, fmt.Errorf("%w: missing operation handle", domain.ErrProviderFailure)
	}

	c.logger.Debug().
		Str("model", c.videoModel).
		Str("operation", resp.Name).
		Msg("genai: started video operation")

	op := &videoOperation{client: c, name: resp.Name}
	op.apply(resp)
	return op, nil
}

func (op *videoOperation) Done() bool {
	return op.done
}

// NextMessage returns the next progress message in the fixed rotation,
// wrapping past the end.
func (op *videoOperation) NextMessage() string {
	m := progressMessages[op.msg%len(progressMessages)]
	op.msg++
	return m
}

// Poll re-queries the operation status. The API key is resolved fresh inside
// invoke, so a key rotated mid-poll is picked up on the next iteration.
func (op *videoOperation) Poll(ctx context.Context) error {
	var resp veoOperationResponse
	if err := op.client.invoke(ctx, http.MethodGet, "/"+op.name, nil, &resp); err != nil {
		return err
	}
	op.apply(resp)
	return nil
}

// Result returns the produced video locator once the operation is done.
func (op *videoOperation) Result() (string, error) {
	if op.uri == "" {
		return "", fmt.Errorf("video generation: %w", domain.ErrGenerationEmpty)
	}
	return op.uri, nil
}

func (op *videoOperation) apply(resp veoOperationResponse) {
	op.done = resp.Done
	if uri := resp.videoURI(); uri != "" {
		op.uri = uri
	}
}

// DownloadVideo fetches the produced video bytes from the locator returned by
// a completed operation. The download endpoint authenticates with the current
// key as a query parameter.
func (c *Client) DownloadVideo(ctx context.Context, uri string) (*Payload, error) {
	key, err := c.keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve credential: %w", err)
	}

	target := uri
	if !strings.HasPrefix(uri, "http://") && !strings.HasPrefix(uri, "https://") {
		target = c.baseURL + "/" + strings.TrimLeft(uri, "/")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create download request: %w", err)
	}
	if key != "" {
		q := req.URL.Query()
		q.Set("key", key)
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: download video: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, c.classifyHTTPError(resp)
	}

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read video: %v", domain.ErrProviderFailure, err)
	}
	if len(blob) == 0 {
		return nil, fmt.Errorf("video download: %w", domain.ErrGenerationEmpty)
	}

	return &Payload{MIME: defaultString(resp.Header.Get("Content-Type"), "video/mp4"), Data: blob}, nil
}

// ProgressMessageAt exposes the rotation for callers that need to know which
// message a given poll iteration would show.
func ProgressMessageAt(i int) string {
	if i < 0 {
		return ""
	}
	return progressMessages[i%len(progressMessages)]
}

var _ Operation = (*videoOperation)(nil)
