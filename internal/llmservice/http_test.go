package llmservice

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hoshin-matrix/internal/config"
)

func newTestChatClient(url string) *ChatClient {
	return NewChatClient(&config.LLMConfig{
		Provider:    ProviderHTTP,
		BaseURL:     url,
		Key:         "secret",
		Model:       "llama-3.1-8b-instant",
		Temperature: 0.7,
	})
}

func TestChatClient_Complete(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"| a | b |\n"}}]}`))
	}))
	defer srv.Close()

	out, err := newTestChatClient(srv.URL+"/").Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if out != "| a | b |\n" {
		t.Errorf("Complete() = %q", out)
	}
	if got.Model != "llama-3.1-8b-instant" || got.Temperature != 0.7 {
		t.Errorf("unexpected payload: %+v", got)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" || got.Messages[0].Content != "hello" {
		t.Errorf("unexpected messages: %+v", got.Messages)
	}
}

func TestChatClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestChatClient(srv.URL).Complete(context.Background(), "hello")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d", statusErr.StatusCode)
	}
	if statusErr.Body != "rate limited\n" {
		t.Errorf("Body = %q", statusErr.Body)
	}
}

func TestChatClient_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := newTestChatClient(srv.URL).Complete(context.Background(), "hello")
	if !errors.Is(err, ErrNoChoices) {
		t.Fatalf("expected ErrNoChoices, got %v", err)
	}
}

func TestChatClient_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	if _, err := newTestChatClient(srv.URL).Complete(context.Background(), "hello"); err == nil {
		t.Fatal("expected decode error")
	}
}
