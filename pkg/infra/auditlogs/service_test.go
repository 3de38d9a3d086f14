package auditlogs

import (
	"context"
	"errors"
	"testing"

	"github.com/NeuralTrust/TrustGuard/pkg/common"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService_Disabled(t *testing.T) {
	logger := logrus.New()

	svc := NewService(nil, logger, false)

	s := svc.(*service)
	assert.False(t, s.enabled)
	assert.Nil(t, s.client)
}

func TestService_Emit_WhenDisabled(t *testing.T) {
	mock := &mockClient{}
	svc := NewService(mock, logrus.New(), false)

	svc.Emit(context.Background(), Event{Event: EventInfo{Type: EventTypeCleared}})

	assert.Empty(t, mock.emittedEvents)
}

func TestService_Emit_UserActorFromContext(t *testing.T) {
	mock := &mockClient{}
	svc := NewService(mock, logrus.New(), true)

	ctx := context.WithValue(context.Background(), common.UserIDContextKey, "operator-1")
	ctx = context.WithValue(ctx, common.TraceIdKey, "trace-abc")
	svc.Emit(ctx, Event{
		Event:  EventInfo{Type: EventTypeCleared, Category: CategoryAbuseProtection},
		Target: Target{Type: TargetTypeSubject, ID: "hash"},
	})

	require.Len(t, mock.emittedEvents, 1)
	got := mock.emittedEvents[0]
	assert.Equal(t, "operator-1", got.Actor.ID)
	assert.Equal(t, ActorTypeUser, got.Actor.Type)
	assert.Equal(t, "trace-abc", got.Context.RequestID)
	assert.False(t, got.OccurredAt.IsZero())
}

func TestService_Emit_NoUserID_SystemActor(t *testing.T) {
	mock := &mockClient{}
	svc := NewService(mock, logrus.New(), true)

	svc.Emit(context.Background(), Event{Event: EventInfo{Type: EventTypeSubjectBlocked}})

	require.Len(t, mock.emittedEvents, 1)
	assert.Equal(t, "1", mock.emittedEvents[0].Actor.ID)
	assert.Equal(t, ActorTypeSystem, mock.emittedEvents[0].Actor.Type)
}

func TestService_Emit_ClientErrorIsSwallowed(t *testing.T) {
	mock := &mockClient{err: errors.New("broker down")}
	svc := NewService(mock, logrus.New(), true)

	assert.NotPanics(t, func() {
		svc.Emit(context.Background(), Event{Event: EventInfo{Type: EventTypeSubjectBlocked}})
	})
}

func TestService_Close_WithClient(t *testing.T) {
	mock := &mockClient{}
	svc := NewService(mock, logrus.New(), true)

	err := svc.Close()

	assert.NoError(t, err)
	assert.True(t, mock.closed)
}

func TestLogClient_Emit(t *testing.T) {
	client := NewLogClient(logrus.New())

	err := client.Emit(context.Background(), Event{
		Event:   EventInfo{Type: EventTypeSubjectBlocked, Description: "blocked"},
		Target:  Target{Type: TargetTypeSubject, ID: "hash", Name: "login"},
		Context: Context{RequestID: "r-1"},
		Actor:   &Actor{ID: "1", Type: ActorTypeSystem},
	})

	assert.NoError(t, err)
	assert.NoError(t, client.Close())
}

func TestNewKafkaClient_Validation(t *testing.T) {
	_, err := NewKafkaClient(KafkaConfig{Topic: "audit"}, logrus.New())
	assert.Error(t, err)

	_, err = NewKafkaClient(KafkaConfig{Brokers: []string{"localhost:9092"}}, logrus.New())
	assert.Error(t, err)
}

type mockClient struct {
	emittedEvents []Event
	closed        bool
	err           error
}

func (m *mockClient) Emit(_ context.Context, event Event) error {
	if m.err != nil {
		return m.err
	}
	m.emittedEvents = append(m.emittedEvents, event)
	return nil
}

func (m *mockClient) Close() error {
	m.closed = true
	return nil
}

func TestMultiClient_FansOutAndJoinsErrors(t *testing.T) {
	failing := &mockClient{err: errors.New("broker down")}
	healthy := &mockClient{}
	client := NewMultiClient(failing, nil, healthy)

	err := client.Emit(context.Background(), Event{Event: EventInfo{Type: EventTypeCleared}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Len(t, healthy.emittedEvents, 1)

	require.NoError(t, client.Close())
	assert.True(t, failing.closed)
	assert.True(t, healthy.closed)
}
