// Package store defines the bill persistence collaborator consumed by the
// list pipeline and the review workflow, plus its SQLite implementation.
package store

import (
	"context"

	"github.com/billedapp/billflow/internal/domain/entity"
)

// UpdateOp carries a full bill record, serialized as JSON, keyed by the
// selector (the bill ID).
type UpdateOp struct {
	Data     string
	Selector string
}

// CreateOp opens a new bill record for the submission flow.
type CreateOp struct {
	Email    string
	FileName string
}

// CreateResult is returned by Create: the stored document URL and the key
// (bill ID) the submission flow uses for the follow-up update.
type CreateResult struct {
	FileURL string `json:"fileUrl"`
	Key     string `json:"key"`
}

// Client exposes the bill collection operations.
type Client interface {
	List(ctx context.Context) ([]entity.Bill, error)
	Update(ctx context.Context, op UpdateOp) (*entity.Bill, error)
	Create(ctx context.Context, op CreateOp) (*CreateResult, error)
}

// Store is the collaborator handle. The review core only consumes List and
// Update; Create belongs to the submission flow.
type Store interface {
	Bills() Client
}
