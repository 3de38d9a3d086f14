package auditlogs

import (
	"context"

	"github.com/sirupsen/logrus"
)

type logClient struct {
	logger *logrus.Logger
}

// NewLogClient writes audit events to the application log. It is used when
// no broker is configured.
func NewLogClient(logger *logrus.Logger) Client {
	return &logClient{logger: logger}
}

func (c *logClient) Emit(_ context.Context, event Event) error {
	entry := c.logger.WithFields(logrus.Fields{
		"audit":       true,
		"event_type":  event.Event.Type,
		"category":    event.Event.Category,
		"status":      event.Event.Status,
		"target_type": event.Target.Type,
		"target_id":   event.Target.ID,
	})
	if event.Target.Name != "" {
		entry = entry.WithField("target_name", event.Target.Name)
	}
	if event.Context.RequestID != "" {
		entry = entry.WithField("request_id", event.Context.RequestID)
	}
	if event.Context.Device != "" {
		entry = entry.WithField("device", event.Context.Device)
	}
	if event.Actor != nil {
		entry = entry.WithField("actor", event.Actor.ID)
	}
	entry.Info(event.Event.Description)
	return nil
}

func (c *logClient) Close() error {
	return nil
}
