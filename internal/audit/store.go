// Package audit persists moderation decision records.
package audit

import (
	"context"

	"github.com/tkingovr/chatguard/api"
)

// Store defines the interface for decision record persistence and retrieval.
type Store interface {
	// Write appends a decision record.
	Write(ctx context.Context, record *api.DecisionRecord) error

	// Query retrieves decision records matching the filter.
	Query(ctx context.Context, filter api.QueryFilter) ([]*api.DecisionRecord, error)

	// Stats returns aggregate statistics.
	Stats(ctx context.Context) (*api.AuditStats, error)

	// Close shuts down the store and flushes any buffers.
	Close() error
}
