// Package googleai implements the language-model collaborator on the
// Gemini API.
package googleai

import (
	"context"
	"fmt"
	"os"

	"github.com/deepnoodle-ai/meetflow"
	"github.com/deepnoodle-ai/meetflow/prompt"
	"github.com/deepnoodle-ai/meetflow/schedule"
	"google.golang.org/genai"
)

var DefaultModel = "gemini-2.0-flash"

var _ meetflow.ModelClient = &Model{}

// Model is the Gemini-backed ModelClient.
type Model struct {
	client *genai.Client
	model  string
	apiKey string
}

// Option is a function that configures the Model.
type Option func(*Model)

// WithAPIKey sets the Gemini API key.
func WithAPIKey(apiKey string) Option {
	return func(m *Model) {
		m.apiKey = apiKey
	}
}

// WithModel sets the model name.
func WithModel(model string) Option {
	return func(m *Model) {
		m.model = model
	}
}

// New creates a Gemini model client. The API key defaults to the
// GEMINI_API_KEY environment variable.
func New(ctx context.Context, opts ...Option) (*Model, error) {
	m := &Model{
		model:  DefaultModel,
		apiKey: os.Getenv("GEMINI_API_KEY"),
	}
	for _, opt := range opts {
		opt(m)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  m.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &meetflow.ServiceError{Service: "googleai", Op: "new client", Err: err}
	}
	m.client = client
	return m, nil
}

func (m *Model) ExtractMeetings(ctx context.Context, threads []schedule.Thread, now string) (*schedule.MeetingList, error) {
	p, err := prompt.ExtractMeetings(threads, now)
	if err != nil {
		return nil, err
	}
	text, err := m.generate(ctx, "extract meetings", p)
	if err != nil {
		return nil, err
	}
	return prompt.ParseMeetings(text)
}

func (m *Model) NormalizeTimestamp(ctx context.Context, raw, timezone string) (string, error) {
	text, err := m.generate(ctx, "normalize timestamp", prompt.NormalizeTimestamp(raw, timezone))
	if err != nil {
		return "", err
	}
	return prompt.ParseTimestamp(text)
}

func (m *Model) ResolveConflicts(ctx context.Context, conflicts []schedule.Conflict, pending []schedule.Event, input string) (*schedule.MeetingList, string, error) {
	p, err := prompt.ResolveConflicts(conflicts, pending, input)
	if err != nil {
		return nil, "", err
	}
	text, err := m.generate(ctx, "resolve conflicts", p)
	if err != nil {
		return nil, "", err
	}
	return prompt.ParseResolution(text)
}

func (m *Model) generate(ctx context.Context, op string, p *prompt.Prompt) (string, error) {
	res, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(p.User), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(p.System, genai.RoleUser),
	})
	if err != nil {
		return "", &meetflow.ServiceError{Service: "googleai", Op: op, Err: err}
	}
	text := res.Text()
	if text == "" {
		return "", &meetflow.ServiceError{
			Service: "googleai",
			Op:      op,
			Err:     fmt.Errorf("response contained no text"),
		}
	}
	return text, nil
}
