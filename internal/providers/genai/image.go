package genai

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"studio/internal/domain"
)

// ImageRequest represents the information required to generate an image.
type ImageRequest struct {
	Prompt         string
	AspectRatio    string
	StylePreset    string
	NegativePrompt string
}

type imagenInstance struct {
	Prompt string `json:"prompt"`
}

type imagenParameters struct {
	SampleCount    int    `json:"sampleCount,omitempty"`
	AspectRatio    string `json:"aspectRatio,omitempty"`
	OutputMimeType string `json:"outputMimeType,omitempty"`
}

type imagenPredictRequest struct {
	Instances  []imagenInstance  `json:"instances"`
	Parameters *imagenParameters `json:"parameters,omitempty"`
}

type imagenPredictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType,omitempty"`
	} `json:"predictions"`
}

// GenerateImage submits a single augmented prompt to the Imagen predict
// endpoint and returns the produced image bytes. A well-formed response with
// zero predictions is a failed generation, not a transport error.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (*Payload, error) {
	payload := imagenPredictRequest{
		Instances: []imagenInstance{{Prompt: composeImagePrompt(req)}},
		Parameters: &imagenParameters{
			SampleCount:    1,
			AspectRatio:    req.AspectRatio,
			OutputMimeType: "image/jpeg",
		},
	}

	var resp imagenPredictResponse
	path := fmt.Sprintf("/models/%s:predict", url.PathEscape(c.imageModel))
	if err := c.invoke(ctx, http.MethodPost, path, payload, &resp); err != nil {
		return nil, err
	}

	if len(resp.Predictions) == 0 {
		return nil, fmt.Errorf("image generation: %w", domain.ErrGenerationEmpty)
	}

	pred := resp.Predictions[0]
	data, err := base64.StdEncoding.DecodeString(pred.BytesBase64Encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: decode image bytes: %v", domain.ErrProviderFailure, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image generation: %w", domain.ErrGenerationEmpty)
	}

	c.logger.Debug().
		Str("model", c.imageModel).
		Int("bytes", len(data)).
		Msg("genai: generated image")

	return &Payload{MIME: defaultString(pred.MimeType, "image/jpeg"), Data: data}, nil
}

// EditImage decomposes the source locator into raw bytes plus media type and
// submits them alongside the instruction text, asking for an image modality
// response.
func (c *Client) EditImage(ctx context.Context, prompt, sourceLocator string) (*Payload, error) {
	mime, data, err := domain.DecodeDataURI(sourceLocator)
	if err != nil {
		return nil, fmt.Errorf("%w: source image: %v", domain.ErrPreconditionFailed, err)
	}

	payload := geminiGenerateContentRequest{
		Contents: []geminiContent{{
			Role: "user",
			Parts: []geminiPart{
				{InlineData: &geminiInlineData{
					MimeType: mime,
					Data:     base64.StdEncoding.EncodeToString(data),
				}},
				{Text: prompt},
			},
		}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseModalities: []string{"IMAGE"},
		},
	}

	var resp geminiGenerateContentResponse
	path := fmt.Sprintf("/models/%s:generateContent", url.PathEscape(c.editModel))
	if err := c.invoke(ctx, http.MethodPost, path, payload, &resp); err != nil {
		return nil, err
	}

	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			edited, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil || len(edited) == 0 {
				continue
			}
			c.logger.Debug().
				Str("model", c.editModel).
				Int("bytes", len(edited)).
				Msg("genai: edited image")
			return &Payload{MIME: defaultString(part.InlineData.MimeType, "image/png"), Data: edited}, nil
		}
	}

	return nil, fmt.Errorf("image edit: %w", domain.ErrGenerationEmpty)
}

// composeImagePrompt folds the style preset and optional negative-prompt
// clause into one augmented prompt string.
func composeImagePrompt(req ImageRequest) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(req.Prompt))
	if style := strings.TrimSpace(req.StylePreset); style != "" {
		b.WriteString(", ")
		b.WriteString(cases.Title(language.English).String(style))
		b.WriteString(" style")
	}
	if negative := strings.TrimSpace(req.NegativePrompt); negative != "" {
		b.WriteString(", avoid ")
		b.WriteString(negative)
	}
	return b.String()
}
