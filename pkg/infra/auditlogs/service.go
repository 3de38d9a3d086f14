package auditlogs

import (
	"context"
	"time"

	"github.com/NeuralTrust/TrustGuard/pkg/common"
	"github.com/sirupsen/logrus"
)

// Client delivers audit events to a sink.
type Client interface {
	Emit(ctx context.Context, event Event) error
	Close() error
}

type Service interface {
	Emit(ctx context.Context, event Event)
	Close() error
}

type service struct {
	enabled bool
	logger  *logrus.Logger
	client  Client
	now     func() time.Time
}

func NewService(client Client, logger *logrus.Logger, enabled bool) Service {
	return &service{
		enabled: enabled,
		logger:  logger,
		client:  client,
		now:     time.Now,
	}
}

// Emit never fails the caller. Delivery errors are logged.
func (s *service) Emit(ctx context.Context, event Event) {
	if !s.enabled || s.client == nil {
		return
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now().UTC()
	}
	if event.Context.RequestID == "" {
		if traceID, ok := ctx.Value(common.TraceIdKey).(string); ok {
			event.Context.RequestID = traceID
		}
	}
	if event.Actor == nil {
		if userID, ok := ctx.Value(common.UserIDContextKey).(string); ok && userID != "" {
			event.Actor = &Actor{ID: userID, Type: ActorTypeUser}
		} else {
			event.Actor = &Actor{ID: "1", Type: ActorTypeSystem}
		}
	}

	if err := s.client.Emit(ctx, event); err != nil {
		s.logger.WithError(err).WithField("event_type", event.Event.Type).Error("failed to emit audit event")
	}
}

func (s *service) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
