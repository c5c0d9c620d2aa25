package triage

import "context"

// Store is the persistence interface for triaged cases.
type Store interface {
	Get(ctx context.Context, id string) (*Case, bool, error)
	GetByFingerprint(ctx context.Context, fingerprint string) (*Case, bool, error)
	Put(ctx context.Context, c *Case) error
	List(ctx context.Context) ([]*Case, error)
	Clear(ctx context.Context) error
}

// Notifier delivers case notifications to an external channel.
type Notifier interface {
	Send(ctx context.Context, c *Case) error
}
