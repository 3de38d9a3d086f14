package auditlogs

import (
	"context"
	"errors"
)

type multiClient struct {
	clients []Client
}

// NewMultiClient fans each event out to every client. All clients are tried
// even when one of them fails.
func NewMultiClient(clients ...Client) Client {
	out := make([]Client, 0, len(clients))
	for _, c := range clients {
		if c != nil {
			out = append(out, c)
		}
	}
	return &multiClient{clients: out}
}

func (m *multiClient) Emit(ctx context.Context, event Event) error {
	var errs []error
	for _, c := range m.clients {
		if err := c.Emit(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *multiClient) Close() error {
	var errs []error
	for _, c := range m.clients {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
