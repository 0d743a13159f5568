package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newGeminiTestClient(t *testing.T, handler http.HandlerFunc) GeminiClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_BASE_URL", srv.URL)
	t.Setenv("GEMINI_MODEL", "test-model")

	client, err := NewGeminiClient(newTestLogger(t))
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}
	return client
}

func TestGenerateJSON_RequestShape(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateContentRequest

	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("request body did not decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"ok\":"},{"text":"true}"}]}}]}`))
	})

	raw, err := client.GenerateJSON(context.Background(), []Part{
		TextPart("prompt"),
		InlinePart("image/png", []byte{0x89, 0x50}),
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if gotPath != "/v1beta/models/test-model:generateContent" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("api key header missing, got %q", gotKey)
	}
	if gotBody.GenerationConfig.ResponseMIMEType != "application/json" {
		t.Fatalf("response mime not requested: %+v", gotBody.GenerationConfig)
	}
	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 2 {
		t.Fatalf("unexpected contents: %+v", gotBody.Contents)
	}
	if gotBody.Contents[0].Parts[0].Text != "prompt" {
		t.Fatalf("text part lost: %+v", gotBody.Contents[0].Parts[0])
	}
	inline := gotBody.Contents[0].Parts[1].InlineData
	if inline == nil || inline.MIMEType != "image/png" || inline.Data != "iVA=" {
		t.Fatalf("inline part mangled: %+v", inline)
	}

	// Candidate part texts concatenate into the returned payload.
	if string(raw) != `{"ok":true}` {
		t.Fatalf("unexpected payload: %s", raw)
	}
}

func TestGenerateJSON_HTTPErrorSurfaced(t *testing.T) {
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := client.GenerateJSON(context.Background(), []Part{TextPart("prompt")})
	if err == nil {
		t.Fatal("expected error for http 429")
	}
	if !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("error lost status or body: %v", err)
	}
}

func TestGenerateJSON_EmptyCandidatesRejected(t *testing.T) {
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := client.GenerateJSON(context.Background(), []Part{TextPart("prompt")})
	if err == nil {
		t.Fatal("expected error for empty candidates")
	}
}

func TestGenerateJSON_SingleAttempt(t *testing.T) {
	attempts := 0
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.GenerateJSON(context.Background(), []Part{TextPart("prompt")})
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected exactly one attempt, got %d", attempts)
	}
}

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	if _, err := NewGeminiClient(newTestLogger(t)); err == nil {
		t.Fatal("expected error without api key")
	}
}
