package config

import (
	"context"
	"time"

	"github.com/deepnoodle-ai/meetflow"
	"github.com/deepnoodle-ai/meetflow/engine"
	"github.com/deepnoodle-ai/meetflow/providers/google"
	"github.com/deepnoodle-ai/meetflow/providers/googleai"
	"github.com/deepnoodle-ai/meetflow/providers/openai"
	"github.com/deepnoodle-ai/meetflow/session"
	"github.com/deepnoodle-ai/meetflow/slogger"
)

// Dialer returns a dialer that authenticates with Google and constructs
// the configured model client. Dialing happens per session, at the
// authenticate step.
func (c *Config) Dialer() meetflow.Dialer {
	return meetflow.DialerFunc(func(ctx context.Context) (*meetflow.Services, error) {
		httpClient, err := google.NewHTTPClient(ctx, c.CredentialsPath, c.TokenPath)
		if err != nil {
			return nil, err
		}
		mail, err := google.NewGmail(ctx, httpClient)
		if err != nil {
			return nil, err
		}
		cal, err := google.NewCalendar(ctx, httpClient)
		if err != nil {
			return nil, err
		}
		model, err := c.ModelClient(ctx)
		if err != nil {
			return nil, err
		}
		return &meetflow.Services{
			Mail:     mail,
			Calendar: cal,
			Model:    model,
		}, nil
	})
}

// ModelClient constructs the configured language-model client.
func (c *Config) ModelClient(ctx context.Context) (meetflow.ModelClient, error) {
	switch c.Provider {
	case ProviderGoogleAI:
		var opts []googleai.Option
		if c.GeminiAPIKey != "" {
			opts = append(opts, googleai.WithAPIKey(c.GeminiAPIKey))
		}
		if c.Model != "" {
			opts = append(opts, googleai.WithModel(c.Model))
		}
		return googleai.New(ctx, opts...)
	default:
		var opts []openai.Option
		if c.OpenAIAPIKey != "" {
			opts = append(opts, openai.WithAPIKey(c.OpenAIAPIKey))
		}
		if c.Model != "" {
			opts = append(opts, openai.WithModel(c.Model))
		}
		return openai.New(opts...), nil
	}
}

// Logger constructs the configured logger.
func (c *Config) Logger() slogger.Logger {
	return slogger.New(slogger.LevelFromString(c.LogLevel))
}

// SessionStore opens the file-backed session store.
func (c *Config) SessionStore() (session.Store, error) {
	return session.NewFileStore(c.SessionDir)
}

// Engine builds a ready-to-use engine: file-backed session store, paced
// event emission, and the configured collaborators.
func (c *Config) Engine() (*engine.Engine, error) {
	store, err := c.SessionStore()
	if err != nil {
		return nil, err
	}
	return engine.New(engine.Options{
		Store:      store,
		Dialer:     c.Dialer(),
		CalendarID: c.CalendarID,
		MaxThreads: c.MaxThreads,
		Logger:     c.Logger(),
		Pacer:      engine.NewFixedDelayPacer(time.Duration(c.NotifyDelaySeconds) * time.Second),
	})
}
