// Package store persists an audit trail of resolution runs.
package store

import (
	"context"
	"time"

	"github.com/sells-group/contact-cli/internal/model"
)

// RunStatus is the lifecycle state of a recorded run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
)

// Run is one recorded resolution attempt.
type Run struct {
	ID          string        `json:"id"`
	Contact     model.Contact `json:"contact"`
	Status      RunStatus     `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// Store defines the persistence interface for resolution runs. Persistence
// is an audit log, not a cache: resolution stays idempotent whether or not
// a store is configured.
type Store interface {
	CreateRun(ctx context.Context, contact model.Contact) (string, error)
	CompleteRun(ctx context.Context, runID string, result *model.Result) error
	GetRun(ctx context.Context, runID string) (*Run, error)
	ListCandidates(ctx context.Context, runID string) ([]model.Candidate, error)

	Migrate(ctx context.Context) error
	Close() error
}
