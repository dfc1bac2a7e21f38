package schedule

import "strings"

// minThreadMessages is the message-count threshold for a thread to be
// considered meeting-relevant. Shorter threads (a lone message or a single
// reply) are discarded by the fetch step.
const minThreadMessages = 3

// Relevant reports whether the thread has enough back-and-forth to be
// worth scanning for meetings.
func (t *RawThread) Relevant() bool {
	return len(t.Messages) >= minThreadMessages
}

// Header returns the value of the first header with the given name,
// matched case-insensitively. Returns "" if absent.
func (m *RawMessage) Header(name string) string {
	for _, h := range m.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// Recipients returns the values of all To and Cc headers, in order.
func (m *RawMessage) Recipients() []string {
	var to []string
	for _, h := range m.Headers {
		if strings.EqualFold(h.Name, "To") || strings.EqualFold(h.Name, "Cc") {
			to = append(to, h.Value)
		}
	}
	return to
}

// ThreadFromRaw converts a provider thread into the processed form: the
// subject is taken from the first message, and each message's sender,
// recipients, and timestamp are pulled out of its headers.
func ThreadFromRaw(raw *RawThread) *Thread {
	thread := &Thread{ID: raw.ID}
	if len(raw.Messages) > 0 {
		thread.Subject = raw.Messages[0].Header("Subject")
	}
	for i := range raw.Messages {
		m := &raw.Messages[i]
		thread.Messages = append(thread.Messages, Message{
			ID:        m.ID,
			Body:      m.Snippet,
			From:      m.Header("From"),
			To:        m.Recipients(),
			Timestamp: m.Header("Date"),
		})
	}
	return thread
}
