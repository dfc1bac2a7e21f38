// Package openai implements the language-model collaborator on the
// OpenAI chat completions API.
package openai

import (
	"context"
	"fmt"
	"os"

	"github.com/deepnoodle-ai/meetflow"
	"github.com/deepnoodle-ai/meetflow/prompt"
	"github.com/deepnoodle-ai/meetflow/schedule"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var DefaultModel = "gpt-4o"

var _ meetflow.ModelClient = &Model{}

// Model is the OpenAI-backed ModelClient.
type Model struct {
	client  openai.Client
	model   string
	apiKey  string
	options []option.RequestOption
}

// Option is a function that configures the Model.
type Option func(*Model)

// WithAPIKey sets the OpenAI API key.
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

// WithRequestOption appends a raw client request option.
func WithRequestOption(opt option.RequestOption) Option {
	return func(m *Model) {
		m.options = append(m.options, opt)
	}
}

// New creates an OpenAI model client. The API key defaults to the
// OPENAI_API_KEY environment variable.
func New(opts ...Option) *Model {
	m := &Model{
		model:  DefaultModel,
		apiKey: os.Getenv("OPENAI_API_KEY"),
	}
	for _, opt := range opts {
		opt(m)
	}
	clientOpts := append([]option.RequestOption{option.WithAPIKey(m.apiKey)}, m.options...)
	m.client = openai.NewClient(clientOpts...)
	return m
}

func (m *Model) ExtractMeetings(ctx context.Context, threads []schedule.Thread, now string) (*schedule.MeetingList, error) {
	p, err := prompt.ExtractMeetings(threads, now)
	if err != nil {
		return nil, err
	}
	text, err := m.complete(ctx, "extract meetings", p)
	if err != nil {
		return nil, err
	}
	return prompt.ParseMeetings(text)
}

func (m *Model) NormalizeTimestamp(ctx context.Context, raw, timezone string) (string, error) {
	text, err := m.complete(ctx, "normalize timestamp", prompt.NormalizeTimestamp(raw, timezone))
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
	text, err := m.complete(ctx, "resolve conflicts", p)
	if err != nil {
		return nil, "", err
	}
	return prompt.ParseResolution(text)
}

func (m *Model) complete(ctx context.Context, op string, p *prompt.Prompt) (string, error) {
	resp, err := m.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: m.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(p.System),
			openai.UserMessage(p.User),
		},
	})
	if err != nil {
		return "", &meetflow.ServiceError{Service: "openai", Op: op, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &meetflow.ServiceError{
			Service: "openai",
			Op:      op,
			Err:     fmt.Errorf("response contained no choices"),
		}
	}
	return resp.Choices[0].Message.Content, nil
}
