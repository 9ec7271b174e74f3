package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/VernoB/TodoTask/internal/domain"
)

// ListCompletedDefaults for the completed-task listing when the caller does
// not supply paging parameters.
const (
	DefaultCompletedLimit = 10
	DefaultCompletedSkip  = 0
)

// TaskStore defines the interface for task data persistence.
// Read and mutate operations that take an authorID are ownership-scoped:
// tasks owned by other users behave exactly like missing rows.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if the author does not exist.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetForAuthor retrieves a task by ID only if it is owned by authorID.
	// Returns ErrTaskNotFound if the task does not exist or belongs to
	// someone else; callers cannot distinguish the two cases.
	GetForAuthor(ctx context.Context, id, authorID uuid.UUID) (*domain.Task, error)

	// GetByID retrieves a task by ID regardless of owner. Used where the
	// caller needs to distinguish "missing" from "not yours" (deletion).
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListCompleted returns up to limit completed tasks ordered by ascending
	// ID, offset by skip, with the author populated and internal timestamp
	// fields stripped. No completed tasks yields an empty slice.
	ListCompleted(ctx context.Context, limit, skip int) ([]*domain.TaskWithAuthor, error)

	// MarkAllCompleted bulk-sets completed on all of the author's incomplete
	// tasks and reports how many rows were modified.
	MarkAllCompleted(ctx context.Context, authorID uuid.UUID) (int64, error)

	// Update persists the task's current fields if it is owned by authorID.
	// Returns ErrTaskNotFound if the task does not exist or belongs to
	// someone else.
	Update(ctx context.Context, task *domain.Task, authorID uuid.UUID) error

	// Delete removes a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}
