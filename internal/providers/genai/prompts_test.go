package genai

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestSuggestPromptsParsesStructuredOutput(t *testing.T) {
	var captured geminiGenerateContentRequest
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if !strings.Contains(r.URL.Path, "gemini-2.5-flash:generateContent") {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		decodeBody(t, r, &captured)
		return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"{\"prompts\":[\"a\",\"b\",\"c\"]}"}]}}]}`), nil
	})

	prompts, err := client.SuggestPrompts(context.Background(), "cats")
	if err != nil {
		t.Fatalf("SuggestPrompts error: %v", err)
	}
	if len(prompts) != 3 || prompts[0] != "a" || prompts[2] != "c" {
		t.Fatalf("prompts = %v", prompts)
	}

	if captured.GenerationConfig.ResponseMimeType != "application/json" {
		t.Fatalf("response mime = %q", captured.GenerationConfig.ResponseMimeType)
	}
	schema := captured.GenerationConfig.ResponseSchema
	if schema == nil || schema.Properties["prompts"] == nil || schema.Properties["prompts"].Type != "ARRAY" {
		t.Fatalf("schema = %+v", schema)
	}
	if !strings.Contains(captured.Contents[0].Parts[0].Text, `"cats"`) {
		t.Fatalf("keyword missing from prompt: %q", captured.Contents[0].Parts[0].Text)
	}
}

func TestSuggestPromptsToleratesCodeFence(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"`+"```json\\n{\\\"prompts\\\":[\\\"x\\\"]}\\n```"+`"}]}}]}`), nil
	})

	prompts, err := client.SuggestPrompts(context.Background(), "dogs")
	if err != nil {
		t.Fatalf("SuggestPrompts error: %v", err)
	}
	if len(prompts) != 1 || prompts[0] != "x" {
		t.Fatalf("prompts = %v", prompts)
	}
}

func TestSuggestPromptsMissingFieldYieldsEmpty(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"{}"}]}}]}`), nil
	})

	prompts, err := client.SuggestPrompts(context.Background(), "dogs")
	if err != nil {
		t.Fatalf("SuggestPrompts error: %v", err)
	}
	if len(prompts) != 0 {
		t.Fatalf("prompts = %v, want empty", prompts)
	}
}

func TestSuggestPromptsEmptyResponse(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"candidates":[]}`), nil
	})

	prompts, err := client.SuggestPrompts(context.Background(), "dogs")
	if err != nil {
		t.Fatalf("SuggestPrompts error: %v", err)
	}
	if prompts != nil {
		t.Fatalf("prompts = %v, want nil", prompts)
	}
}

func TestExtractJSONFragment(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"prompts":[]}`, `{"prompts":[]}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"Here you go: {\"a\":1} enjoy", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := extractJSONFragment(tc.in); got != tc.want {
			t.Fatalf("extractJSONFragment(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
