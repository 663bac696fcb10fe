package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"studio/internal/domain"
)

const suggestionCount = 3

type promptSuggestions struct {
	Prompts []string `json:"prompts"`
}

// SuggestPrompts asks the model for a fixed small count of enriched prompt
// variations via a structured-output contract and returns them in order. A
// response whose JSON lacks the prompts field yields an empty slice, not an
// error.
func (c *Client) SuggestPrompts(ctx context.Context, keyword string) ([]string, error) {
	payload := geminiGenerateContentRequest{
		Contents: []geminiContent{{
			Role: "user",
			Parts: []geminiPart{{
				Text: fmt.Sprintf("Based on the keyword %q, generate %d diverse, detailed, and visually rich prompts for an AI image generator. The prompts should be creative and inspiring.", keyword, suggestionCount),
			}},
		}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: &geminiSchema{
				Type: "OBJECT",
				Properties: map[string]*geminiSchema{
					"prompts": {
						Type:  "ARRAY",
						Items: &geminiSchema{Type: "STRING"},
					},
				},
			},
		},
	}

	var resp geminiGenerateContentResponse
	path := fmt.Sprintf("/models/%s:generateContent", url.PathEscape(c.promptModel))
	if err := c.invoke(ctx, http.MethodPost, path, payload, &resp); err != nil {
		return nil, err
	}

	text := firstText(resp)
	if text == "" {
		return nil, nil
	}

	var parsed promptSuggestions
	if err := json.Unmarshal([]byte(extractJSONFragment(text)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: parse prompt suggestions: %v", domain.ErrProviderFailure, err)
	}

	c.logger.Debug().
		Str("model", c.promptModel).
		Int("count", len(parsed.Prompts)).
		Msg("genai: suggested prompts")

	return parsed.Prompts, nil
}

// extractJSONFragment strips code fences and surrounding prose from a model
// response so the embedded JSON object can be decoded.
func extractJSONFragment(raw string) string {
	text := trimCodeFence(strings.TrimSpace(raw))
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
