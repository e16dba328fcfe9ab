package producer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/events"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/messaging/kafka"
	kafkaMock "github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/messaging/kafka/mock"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/querycache"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	msgs []kafkago.Message
	err  error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func TestOutboxPublisher_PublishInvalidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	pub := NewOutboxPublisher(repo, "replica-a")
	ctx := contextutil.WithRequestID(context.Background(), "rid-1")

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, e kafka.OutboxEvent) error {
		assert.Equal(t, events.CacheInvalidatedTopic, e.Topic)
		assert.Equal(t, "leave.approve", e.AggregateID)
		assert.Equal(t, "rid-1", e.RequestID)
		assert.Equal(t, kafka.OutboxStatusPending, e.Status)

		var evt events.CacheInvalidatedEvent
		require.NoError(t, json.Unmarshal(e.Payload, &evt))
		assert.Equal(t, "replica-a", evt.Origin)
		assert.Equal(t, [][]string{{"leaves", "list"}, {"leaves", "detail", "9"}}, evt.Prefixes)
		return nil
	})

	err := pub.PublishInvalidation(ctx, "leave.approve", []querycache.Prefix{
		{"leaves", "list"},
		{"leaves", "detail", "9"},
	})
	require.NoError(t, err)
}

func TestProcessPendingEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	ctx := context.Background()

	pending := []kafka.OutboxEvent{
		{ID: "e1", Topic: events.CacheInvalidatedTopic, AggregateID: "leave.create", Payload: []byte(`{}`)},
		{ID: "e2", Topic: events.CacheInvalidatedTopic, AggregateID: "leave.cancel", Payload: []byte(`{}`)},
	}

	t.Run("marks sent", func(t *testing.T) {
		w := &fakeWriter{}
		repo.EXPECT().ListPending(gomock.Any(), relayBatchSize).Return(pending, nil)
		repo.EXPECT().MarkSent(gomock.Any(), "e1").Return(nil)
		repo.EXPECT().MarkSent(gomock.Any(), "e2").Return(nil)

		require.NoError(t, processPendingEvents(ctx, repo, w, zap.NewNop()))
		require.Len(t, w.msgs, 2)
		assert.Equal(t, "leave.create", string(w.msgs[0].Key))
	})

	t.Run("marks failed on broker error", func(t *testing.T) {
		w := &fakeWriter{err: errors.New("broker down")}
		repo.EXPECT().ListPending(gomock.Any(), relayBatchSize).Return(pending[:1], nil)
		repo.EXPECT().MarkFailed(gomock.Any(), "e1", "broker down").Return(nil)

		require.NoError(t, processPendingEvents(ctx, repo, w, zap.NewNop()))
	})
}
