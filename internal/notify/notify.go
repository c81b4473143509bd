package notify

import (
	"context"
	"log/slog"
	"sync"
)

// Payload is the renderable content of one direct-message notification.
type Payload struct {
	Title       string
	Description string
	Color       int
	Footer      string
}

// Notification pairs a payload with its recipient.
type Notification struct {
	RecipientID string
	Payload     Payload
}

// Sender delivers one notification to one recipient. The bot package
// implements this over the chat session; tests use a fake.
type Sender interface {
	SendDM(ctx context.Context, recipientID string, p Payload) error
}

// Discard is a Sender that drops every notification. Binaries without a
// chat session use it so bulk jobs can still run.
type Discard struct{}

func (Discard) SendDM(context.Context, string, Payload) error { return nil }

// Queue batches notifications so bulk jobs can sweep first and deliver
// after. Delivery failures are logged and swallowed; one unreachable
// recipient never aborts the batch.
type Queue struct {
	sender Sender
	log    *slog.Logger

	mu      sync.Mutex
	pending []Notification
}

func NewQueue(sender Sender, logger *slog.Logger) *Queue {
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue{sender: sender, log: logger}
}

// Enqueue buffers a notification for the next Flush.
func (q *Queue) Enqueue(recipientID string, p Payload) {
	q.mu.Lock()
	q.pending = append(q.pending, Notification{RecipientID: recipientID, Payload: p})
	q.mu.Unlock()
}

// Len reports how many notifications are buffered.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush delivers every buffered notification and empties the queue. It
// returns the number of successful deliveries.
func (q *Queue) Flush(ctx context.Context) int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	sent := 0
	for _, n := range batch {
		if err := q.sender.SendDM(ctx, n.RecipientID, n.Payload); err != nil {
			q.log.Warn("notification delivery failed", "recipient", n.RecipientID, "err", err)
			continue
		}
		sent++
	}
	return sent
}
