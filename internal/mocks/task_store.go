package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"

	"github.com/VernoB/TodoTask/internal/domain"
	"github.com/VernoB/TodoTask/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn           func(ctx context.Context, task *domain.Task) error
	GetForAuthorFn     func(ctx context.Context, id, authorID uuid.UUID) (*domain.Task, error)
	GetByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListCompletedFn    func(ctx context.Context, limit, skip int) ([]*domain.TaskWithAuthor, error)
	MarkAllCompletedFn func(ctx context.Context, authorID uuid.UUID) (int64, error)
	UpdateFn           func(ctx context.Context, task *domain.Task, authorID uuid.UUID) error
	DeleteFn           func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation, keyed by task ID
	Tasks map[uuid.UUID]*domain.Task

	// Authors provides the populated author projection for ListCompleted,
	// keyed by user ID.
	Authors map[uuid.UUID]domain.TaskAuthor
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks:   make(map[uuid.UUID]*domain.Task),
		Authors: make(map[uuid.UUID]domain.TaskAuthor),
	}
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	m.Tasks[task.ID] = task
	return nil
}

// GetForAuthor implements the TaskStore interface
func (m *MockTaskStore) GetForAuthor(
	ctx context.Context,
	id, authorID uuid.UUID,
) (*domain.Task, error) {
	if m.GetForAuthorFn != nil {
		return m.GetForAuthorFn(ctx, id, authorID)
	}

	task, exists := m.Tasks[id]
	if !exists || task.AuthorID != authorID {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	task, exists := m.Tasks[id]
	if !exists {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

// ListCompleted implements the TaskStore interface
func (m *MockTaskStore) ListCompleted(
	ctx context.Context,
	limit, skip int,
) ([]*domain.TaskWithAuthor, error) {
	if m.ListCompletedFn != nil {
		return m.ListCompletedFn(ctx, limit, skip)
	}

	completed := make([]*domain.Task, 0)
	for _, task := range m.Tasks {
		if task.Completed {
			completed = append(completed, task)
		}
	}
	sort.Slice(completed, func(i, j int) bool {
		return completed[i].ID.String() < completed[j].ID.String()
	})

	result := make([]*domain.TaskWithAuthor, 0, limit)
	for i, task := range completed {
		if i < skip {
			continue
		}
		if len(result) >= limit {
			break
		}
		result = append(result, &domain.TaskWithAuthor{
			ID:        task.ID,
			Title:     task.Title,
			Content:   task.Content,
			ImageURL:  task.ImageURL,
			Completed: task.Completed,
			Author:    m.Authors[task.AuthorID],
		})
	}
	return result, nil
}

// MarkAllCompleted implements the TaskStore interface
func (m *MockTaskStore) MarkAllCompleted(
	ctx context.Context,
	authorID uuid.UUID,
) (int64, error) {
	if m.MarkAllCompletedFn != nil {
		return m.MarkAllCompletedFn(ctx, authorID)
	}

	var updated int64
	for _, task := range m.Tasks {
		if task.AuthorID == authorID && !task.Completed {
			task.Completed = true
			updated++
		}
	}
	return updated, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(
	ctx context.Context,
	task *domain.Task,
	authorID uuid.UUID,
) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task, authorID)
	}

	existing, exists := m.Tasks[task.ID]
	if !exists || existing.AuthorID != authorID {
		return store.ErrTaskNotFound
	}
	m.Tasks[task.ID] = task
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Tasks[id]; !exists {
		return store.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	return nil
}

// WithTx implements the TaskStore interface; the mock ignores transactions.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
