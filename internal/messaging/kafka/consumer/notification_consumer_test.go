package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/eliezerb2/presence/internal/events"
	"github.com/eliezerb2/presence/internal/messaging/kafka/consumer"
	"github.com/eliezerb2/presence/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeReader serves queued messages, then blocks until ctx is done.
type fakeReader struct {
	mu        sync.Mutex
	queue     []kafkago.Message
	committed []int64
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	f.mu.Lock()
	if len(f.queue) > 0 {
		msg := f.queue[0]
		f.queue = f.queue[1:]
		f.mu.Unlock()
		return msg, nil
	}
	f.mu.Unlock()
	<-ctx.Done()
	return kafkago.Message{}, ctx.Err()
}

func (f *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range msgs {
		f.committed = append(f.committed, m.Offset)
	}
	return nil
}

func (f *fakeReader) drained() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue) == 0
}

type fakeSender struct {
	mu   sync.Mutex
	sent []notification.Notification
	fail string
}

func (f *fakeSender) Send(ctx context.Context, n notification.Notification) error {
	if n.ID == f.fail {
		return errors.New("gateway timeout")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
	return nil
}

func message(t *testing.T, offset int64, id string) kafkago.Message {
	t.Helper()
	body, err := json.Marshal(events.NotificationRequestedEvent{
		EventType:      events.NotificationRequestedEventType,
		NotificationID: id,
		Kind:           string(notification.KindAttendanceReminder),
		Recipients:     []events.NotificationRecipient{{Role: notification.RoleStudent, Phone: "050-3"}},
	})
	assert.NoError(t, err)
	return kafkago.Message{Offset: offset, Value: body}
}

func withExpiry(msg kafkago.Message, at time.Time) kafkago.Message {
	msg.Headers = append(msg.Headers, kafkago.Header{Key: "expires_at", Value: []byte(at.UTC().Format(time.RFC3339))})
	return msg
}

func TestConsumeNotificationRequested(t *testing.T) {
	reader := &fakeReader{queue: []kafkago.Message{
		message(t, 1, "n-1"),
		{Offset: 2, Value: []byte("not json")},
		withExpiry(message(t, 4, "n-4"), time.Now().Add(-time.Hour)),
		withExpiry(message(t, 5, "n-5"), time.Now().Add(time.Hour)),
		message(t, 3, "n-3"),
	}}
	sender := &fakeSender{fail: "n-3"}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeNotificationRequested(ctx, reader, sender, zap.NewNop())
	}()

	assert.Eventually(t, reader.drained, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	assert.Len(t, sender.sent, 2)
	assert.Equal(t, notification.KindAttendanceReminder, sender.sent[0].Kind)
	assert.Equal(t, "n-5", sender.sent[1].ID)
	assert.Equal(t, []int64{1, 2, 4, 5}, reader.committed)
}
