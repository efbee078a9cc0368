package usecase

import (
	"context"

	"github.com/plannery/backend/domain"
)

// Operation names shared with the offline buffer.
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// OperationBuffer abstracts the offline write buffer so use cases stay
// storage-agnostic.
type OperationBuffer interface {
	BufferProfile(ctx context.Context, operation string, user *domain.User) error
	BufferTask(ctx context.Context, operation string, task *domain.Task) error
}

// Estimator produces a duration estimate from a free-text task description.
// Implementations may call out to an LLM; the shipped one is a local
// heuristic, and callers must tolerate absence by falling back to the
// default duration.
type Estimator interface {
	Estimate(ctx context.Context, description string) (domain.DurationEstimate, error)
}
