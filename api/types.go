package api

import (
	"context"

	"project-board/domain"
)

// Submitter gates raw form submissions before they reach the store.
type Submitter interface {
	Submit(title, description, people string) (domain.Project, error)
}

// Deduper prevents processing of duplicate commands.
type Deduper interface {
	// Add records the idempotency key and returns true if it was newly added.
	Add(ctx context.Context, key string) (bool, error)
	// AddMany records a batch of keys and reports which were newly added.
	AddMany(ctx context.Context, keys []string) ([]bool, error)
	// Remove deletes a previously added key, used when applying the command fails.
	Remove(ctx context.Context, key string) error
}
