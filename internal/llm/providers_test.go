package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"google.golang.org/genai"
)

// wantErr fails unless err wraps an error of type T.
func wantErr[T error](t *testing.T, err error) {
	t.Helper()
	var target T
	if !errors.As(err, &target) {
		t.Errorf("expected %T, got %v", target, err)
	}
}

func serve(t *testing.T, status int, body any, seen *map[string]any) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func anthropicAt(t *testing.T, url string) *AnthropicProvider {
	t.Helper()
	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "fast"},
		option.WithBaseURL(url), option.WithMaxRetries(0))
	if err != nil {
		t.Fatalf("new anthropic provider: %v", err)
	}
	return p
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id": "msg_test", "type": "message", "role": "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func TestAnthropicProvider_StructuredOutput(t *testing.T) {
	var seen map[string]any
	url := serve(t, http.StatusOK, anthropicMessage(`{"question":"2+3?","answer":"5"}`, "end_turn"), &seen)

	req := Prompt("You write quiz questions.", "One question please.")
	req.Schema = answerSchema()
	req.MaxTokens = 256
	resp, err := anthropicAt(t, url).Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(resp.Content, &got); err != nil {
		t.Fatalf("content is not JSON: %s", resp.Content)
	}
	if len(got) != 2 || got["question"] != "2+3?" || got["answer"] != "5" {
		t.Errorf("content = %s", resp.Content)
	}
	if resp.Usage != (Usage{InputTokens: 50, OutputTokens: 30, TotalTokens: 80}) {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Errorf("stop reason = %q", resp.StopReason)
	}
	if seen["model"] != "claude-haiku-4-5-20251001" {
		t.Errorf("model sent = %v", seen["model"])
	}
}

func TestAnthropicProvider_Errors(t *testing.T) {
	errBody := func(kind string) map[string]any {
		return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": "nope"}}
	}

	t.Run("rate limit", func(t *testing.T) {
		url := serve(t, http.StatusTooManyRequests, errBody("rate_limit_error"), nil)
		_, err := anthropicAt(t, url).Generate(context.Background(), Prompt("", "x"))
		wantErr[*ErrRateLimit](t, err)
	})
	t.Run("server error", func(t *testing.T) {
		url := serve(t, http.StatusInternalServerError, errBody("api_error"), nil)
		_, err := anthropicAt(t, url).Generate(context.Background(), Prompt("", "x"))
		wantErr[*ErrProviderUnavailable](t, err)
	})
	t.Run("truncated", func(t *testing.T) {
		url := serve(t, http.StatusOK, anthropicMessage(`{"question":`, "max_tokens"), nil)
		_, err := anthropicAt(t, url).Generate(context.Background(), Prompt("", "x"))
		wantErr[*ErrMaxTokensExceeded](t, err)
	})
	t.Run("schema mismatch", func(t *testing.T) {
		url := serve(t, http.StatusOK, anthropicMessage(`{"question":"2+3?"}`, "end_turn"), nil)
		req := Prompt("", "x")
		req.Schema = answerSchema()
		_, err := anthropicAt(t, url).Generate(context.Background(), req)
		wantErr[*ErrInvalidResponse](t, err)
	})
}

func openaiAt(t *testing.T, url string) *OpenAIProvider {
	t.Helper()
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "fast", BaseURL: url + "/v1"})
	if err != nil {
		t.Fatalf("new openai provider: %v", err)
	}
	return p
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id": "chatcmpl-test", "object": "chat.completion", "created": 1234567890,
		"model": "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAIProvider_StructuredOutput(t *testing.T) {
	var seen map[string]any
	url := serve(t, http.StatusOK, chatCompletion(`{"question":"2+3?","answer":"5"}`, "stop"), &seen)

	req := Prompt("You write quiz questions.", "One question please.")
	req.Schema = answerSchema()
	resp, err := openaiAt(t, url).Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Usage != (Usage{InputTokens: 40, OutputTokens: 25, TotalTokens: 65}) {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Errorf("stop reason = %q", resp.StopReason)
	}

	if msgs, _ := seen["messages"].([]any); len(msgs) != 2 {
		t.Errorf("expected system prompt as the first of 2 messages, got %d", len(msgs))
	}
	format, _ := seen["response_format"].(map[string]any)
	if format["type"] != "json_schema" {
		t.Errorf("response_format = %v", format)
	}
}

func TestOpenAIProvider_Errors(t *testing.T) {
	t.Run("rate limit", func(t *testing.T) {
		url := serve(t, http.StatusTooManyRequests,
			map[string]any{"error": map[string]any{"message": "slow down", "code": "rate_limit_exceeded"}}, nil)
		_, err := openaiAt(t, url).Generate(context.Background(), Prompt("", "x"))
		wantErr[*ErrRateLimit](t, err)
	})
	t.Run("server error", func(t *testing.T) {
		url := serve(t, http.StatusBadGateway,
			map[string]any{"error": map[string]any{"message": "upstream", "type": "server_error"}}, nil)
		_, err := openaiAt(t, url).Generate(context.Background(), Prompt("", "x"))
		wantErr[*ErrProviderUnavailable](t, err)
	})
	t.Run("no choices", func(t *testing.T) {
		body := chatCompletion("", "stop")
		body["choices"] = []any{}
		url := serve(t, http.StatusOK, body, nil)
		_, err := openaiAt(t, url).Generate(context.Background(), Prompt("", "x"))
		wantErr[*ErrInvalidResponse](t, err)
	})
	t.Run("truncated", func(t *testing.T) {
		url := serve(t, http.StatusOK, chatCompletion(`{"q`, "length"), nil)
		_, err := openaiAt(t, url).Generate(context.Background(), Prompt("", "x"))
		wantErr[*ErrMaxTokensExceeded](t, err)
	})
}

func TestProviderConstructorsRequireKeys(t *testing.T) {
	if _, err := NewAnthropicProvider(AnthropicConfig{}); err == nil {
		t.Error("anthropic: expected error without key")
	}
	if _, err := NewOpenAIProvider(OpenAIConfig{}); err == nil {
		t.Error("openai: expected error without key")
	}
	if _, err := NewGeminiProvider(context.Background(), GeminiConfig{}); err == nil {
		t.Error("gemini: expected error without key")
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(answerSchema().Definition)

	if s.Type != genai.TypeObject {
		t.Errorf("type = %v", s.Type)
	}
	if len(s.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(s.Properties))
	}
	if s.Properties["question"].Type != genai.TypeString || s.Properties["difficulty"].Type != genai.TypeInteger {
		t.Errorf("property types: question=%v difficulty=%v", s.Properties["question"].Type, s.Properties["difficulty"].Type)
	}
	if got := s.Properties["category"].Enum; !slices.Equal(got, []string{"basic", "logic"}) {
		t.Errorf("enum = %v", got)
	}
	if !slices.Equal(s.Required, []string{"question", "answer"}) {
		t.Errorf("required = %v", s.Required)
	}

	arr := geminiSchema(map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "required": []string{"x"}})
	if arr.Type != genai.TypeArray || arr.Items == nil || arr.Items.Type != genai.TypeString {
		t.Errorf("array schema = %+v", arr)
	}
	if !slices.Equal(arr.Required, []string{"x"}) {
		t.Errorf("required = %v", arr.Required)
	}
}

func TestGeminiSchema_Bounds(t *testing.T) {
	s := geminiSchema(answerSchema().Definition).Properties["difficulty"]
	if s.Minimum == nil || s.Maximum == nil {
		t.Fatal("expected both bounds")
	}
	if *s.Minimum != 1.0 || *s.Maximum != 5.0 {
		t.Errorf("bounds = %v..%v", *s.Minimum, *s.Maximum)
	}
}
