package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrLemur/dailycommits/internal/models"
	"github.com/MrLemur/dailycommits/pkg/helpers"
	ollama "github.com/ollama/ollama/api"
)

// MaxNoteLength bounds the note appended to an activity line
const MaxNoteLength = 80

const notePrompt = "You write one short, plain sentence describing a small piece of daily work " +
	"(reading, refactoring, notes, tidying up). Never use markdown, quotes or emoji. " +
	"Reply with the sentence only, at most 12 words."

// NoteGenerator produces a short free-text note for an activity line
type NoteGenerator interface {
	Note(ctx context.Context, event models.CommitEvent) (string, error)
}

// OllamaNotes generates activity notes with a local Ollama model
type OllamaNotes struct {
	Client      *ollama.Client
	Model       string
	Temperature float64
}

// NewOllamaNotes creates a note generator using the Ollama server from the
// environment (OLLAMA_HOST)
func NewOllamaNotes(model string, temperature float64) (*OllamaNotes, error) {
	if model == "" {
		return nil, errors.New("Ollama model must be specified")
	}
	client, err := ollama.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}
	return &OllamaNotes{Client: client, Model: model, Temperature: temperature}, nil
}

// CheckAvailability checks if the Ollama server is reachable
func (n *OllamaNotes) CheckAvailability(ctx context.Context) error {
	if _, err := n.Client.List(ctx); err != nil {
		return fmt.Errorf("failed to connect to Ollama server: %w", err)
	}
	return nil
}

// SendMessage sends a chat request and returns the concatenated response
func (n *OllamaNotes) SendMessage(ctx context.Context, messages []ollama.Message) (string, error) {
	stream := false
	var response string
	respFunc := func(resp ollama.ChatResponse) error {
		response += resp.Message.Content
		return nil
	}
	err := n.Client.Chat(
		ctx,
		&ollama.ChatRequest{
			Model:    n.Model,
			Messages: messages,
			Stream:   &stream,
			Options:  map[string]any{"temperature": n.Temperature},
		},
		respFunc,
	)
	if err != nil {
		return "", err
	}
	return response, nil
}

// Note implements NoteGenerator
func (n *OllamaNotes) Note(ctx context.Context, event models.CommitEvent) (string, error) {
	messages := []ollama.Message{
		{Role: "system", Content: notePrompt},
		{Role: "user", Content: fmt.Sprintf("Entry %s written at %s.", event.Progress(), event.WrittenAt.Format(models.WriteTimeLayout))},
	}
	resp, err := n.SendMessage(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to send Ollama message: %w", err)
	}
	note := helpers.TruncateString(helpers.SingleLine(resp), MaxNoteLength)
	if note == "" {
		return "", errors.New("Ollama returned an empty note")
	}
	return note, nil
}
