package google

import (
	"context"
	"net/http"

	"github.com/deepnoodle-ai/meetflow"
	"github.com/deepnoodle-ai/meetflow/retry"
	"github.com/deepnoodle-ai/meetflow/schedule"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const gmailUser = "me"

var _ meetflow.MailClient = &Gmail{}

// Gmail reads inbox threads via the Gmail API.
type Gmail struct {
	svc *gmail.Service
}

// NewGmail creates a Gmail client from an authenticated HTTP client.
func NewGmail(ctx context.Context, client *http.Client) (*Gmail, error) {
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, &meetflow.ServiceError{Service: "gmail", Op: "new service", Err: err}
	}
	return &Gmail{svc: svc}, nil
}

func (g *Gmail) ListThreads(ctx context.Context, maxResults int64) ([]schedule.ThreadRef, error) {
	var resp *gmail.ListThreadsResponse
	err := retry.Do(ctx, func() error {
		var err error
		resp, err = g.svc.Users.Threads.List(gmailUser).
			MaxResults(maxResults).
			Context(ctx).
			Do()
		return wrapAPIError(err)
	})
	if err != nil {
		return nil, &meetflow.ServiceError{Service: "gmail", Op: "list threads", Err: err}
	}
	refs := make([]schedule.ThreadRef, 0, len(resp.Threads))
	for _, thread := range resp.Threads {
		refs = append(refs, schedule.ThreadRef{ID: thread.Id})
	}
	return refs, nil
}

func (g *Gmail) GetThread(ctx context.Context, id string) (*schedule.RawThread, error) {
	var resp *gmail.Thread
	err := retry.Do(ctx, func() error {
		var err error
		resp, err = g.svc.Users.Threads.Get(gmailUser, id).
			Format("full").
			Context(ctx).
			Do()
		return wrapAPIError(err)
	})
	if err != nil {
		return nil, &meetflow.ServiceError{Service: "gmail", Op: "get thread", Err: err}
	}
	raw := &schedule.RawThread{ID: resp.Id}
	for _, msg := range resp.Messages {
		message := schedule.RawMessage{
			ID:      msg.Id,
			Snippet: msg.Snippet,
		}
		if msg.Payload != nil {
			for _, header := range msg.Payload.Headers {
				message.Headers = append(message.Headers, schedule.Header{
					Name:  header.Name,
					Value: header.Value,
				})
			}
		}
		raw.Messages = append(raw.Messages, message)
	}
	return raw, nil
}
