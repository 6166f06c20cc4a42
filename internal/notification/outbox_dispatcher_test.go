package notification_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/eliezerb2/presence/internal/events"
	"github.com/eliezerb2/presence/internal/messaging/kafka"
	kafkaMock "github.com/eliezerb2/presence/internal/messaging/kafka/mock"
	"github.com/eliezerb2/presence/internal/notification"
	"github.com/eliezerb2/presence/internal/shared/apperror"
	"github.com/eliezerb2/presence/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestOutboxDispatcher_Notify(t *testing.T) {
	recipients := []notification.Recipient{
		{Role: notification.RoleManager, Name: "Dana", Phone: "050-1"},
		{Role: notification.RoleCourtChair, Name: "Noa", Phone: "050-2"},
	}

	t.Run("queues one outbox event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		outbox := kafkaMock.NewMockOutboxRepository(ctrl)

		var queued kafka.OutboxEvent
		outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
				queued = ev
				return nil
			})

		ctx := contextutil.WithRequestID(context.Background(), "req-42")
		err := notification.NewOutboxDispatcher(outbox).Notify(ctx, notification.KindClaimOpened, recipients, map[string]string{"reason": "late_threshold"})

		assert.NoError(t, err)
		assert.Equal(t, events.NotificationRequestedTopic, queued.Topic)
		assert.Equal(t, "req-42", queued.RequestID)

		var ev events.NotificationRequestedEvent
		assert.NoError(t, json.Unmarshal(queued.Payload, &ev))
		assert.Equal(t, queued.AggregateID, ev.NotificationID)

		n := notification.FromEvent(ev)
		assert.Equal(t, notification.KindClaimOpened, n.Kind)
		assert.Equal(t, recipients, n.Recipients)
		assert.Equal(t, "late_threshold", n.Payload["reason"])
		assert.Nil(t, queued.ExpiresAt)
	})

	t.Run("reminders expire", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		outbox := kafkaMock.NewMockOutboxRepository(ctrl)

		var queued kafka.OutboxEvent
		outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
				queued = ev
				return nil
			})

		err := notification.NewOutboxDispatcher(outbox).Notify(context.Background(), notification.KindAttendanceReminder, recipients[:1], nil)
		assert.NoError(t, err)

		var ev events.NotificationRequestedEvent
		assert.NoError(t, json.Unmarshal(queued.Payload, &ev))
		if assert.NotNil(t, queued.ExpiresAt) {
			assert.Equal(t, 90*time.Minute, queued.ExpiresAt.Sub(ev.OccurredAt))
		}
	})

	t.Run("outbox failure is an external error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		outbox := kafkaMock.NewMockOutboxRepository(ctrl)
		outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		err := notification.NewOutboxDispatcher(outbox).Notify(context.Background(), notification.KindAttendanceReminder, recipients[:1], nil)

		assert.True(t, apperror.Is(err, apperror.CodeExternalServiceError))
	})
}

func TestRoles(t *testing.T) {
	assert.Equal(t, []string{"manager", "student"}, notification.Roles([]notification.Recipient{
		{Role: notification.RoleManager},
		{Role: notification.RoleStudent},
	}))
	assert.Empty(t, notification.Roles(nil))
}
