package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/MrLemur/dailycommits/internal/models"
	ollama "github.com/ollama/ollama/api"
)

func newTestOllama(t *testing.T, handler http.HandlerFunc) *OllamaNotes {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	base, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("Failed to parse server URL: %v", err)
	}
	return &OllamaNotes{
		Client:      ollama.NewClient(base, srv.Client()),
		Model:       "test-model",
		Temperature: 0.2,
	}
}

func TestOllamaNotesNote(t *testing.T) {
	var got ollama.ChatRequest
	notes := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ollama.ChatResponse{
			Model:   "test-model",
			Message: ollama.Message{Role: "assistant", Content: "  \"Tidied up the\n reading notes\"  "},
			Done:    true,
		})
	})

	event := models.CommitEvent{
		Sequence:  2,
		Total:     5,
		WrittenAt: time.Date(2026, 10, 17, 8, 0, 0, 0, time.Local),
	}
	note, err := notes.Note(context.Background(), event)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if note != "Tidied up the reading notes" {
		t.Errorf("Expected sanitized note, got %q", note)
	}

	if got.Model != "test-model" {
		t.Errorf("Expected model test-model, got %q", got.Model)
	}
	if got.Stream == nil || *got.Stream {
		t.Error("Expected a non-streaming request")
	}
	if len(got.Messages) != 2 || !strings.Contains(got.Messages[1].Content, "2/5") {
		t.Errorf("Expected the entry number in the prompt, got %+v", got.Messages)
	}
}

func TestOllamaNotesTruncatesLongNotes(t *testing.T) {
	notes := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollama.ChatResponse{
			Message: ollama.Message{Role: "assistant", Content: strings.Repeat("word ", 40)},
			Done:    true,
		})
	})

	note, err := notes.Note(context.Background(), models.CommitEvent{Sequence: 1, Total: 1})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len([]rune(note)) != MaxNoteLength {
		t.Errorf("Expected note of %d runes, got %d: %q", MaxNoteLength, len([]rune(note)), note)
	}
	if !strings.HasSuffix(note, "...") {
		t.Errorf("Expected an ellipsis, got %q", note)
	}
}

func TestOllamaNotesEmptyResponse(t *testing.T) {
	notes := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollama.ChatResponse{
			Message: ollama.Message{Role: "assistant", Content: " \n "},
			Done:    true,
		})
	})

	if _, err := notes.Note(context.Background(), models.CommitEvent{Sequence: 1, Total: 1}); err == nil {
		t.Error("Expected an error for an empty note")
	}
}

func TestOllamaNotesServerError(t *testing.T) {
	notes := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "model not loaded"})
	})

	if _, err := notes.Note(context.Background(), models.CommitEvent{Sequence: 1, Total: 1}); err == nil {
		t.Error("Expected an error from a failing server")
	}
}

func TestOllamaCheckAvailability(t *testing.T) {
	notes := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(ollama.ListResponse{})
	})
	if err := notes.CheckAvailability(context.Background()); err != nil {
		t.Errorf("Expected server to be available, got: %v", err)
	}

	unreachable := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {})
	base, _ := url.Parse("http://127.0.0.1:1")
	unreachable.Client = ollama.NewClient(base, http.DefaultClient)
	if err := unreachable.CheckAvailability(context.Background()); err == nil {
		t.Error("Expected an error for an unreachable server")
	}
}

func TestNewOllamaNotesRequiresModel(t *testing.T) {
	if _, err := NewOllamaNotes("", 0.5); err == nil {
		t.Error("Expected an error without a model")
	}
}
