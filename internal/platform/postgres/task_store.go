package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/VernoB/TodoTask/internal/domain"
	"github.com/VernoB/TodoTask/internal/platform/logger"
	"github.com/VernoB/TodoTask/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
// Returns store.ErrInvalidEntity if the author ID doesn't exist (foreign key
// violation) and validation errors from the domain Task if data is invalid.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, title, content, image_url, completed, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Content,
		task.ImageURL,
		task.Completed,
		task.AuthorID,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("task_id", task.ID.String()),
				slog.String("author_id", task.AuthorID.String()))
			return fmt.Errorf("%w: author with ID %s not found",
				store.ErrInvalidEntity, task.AuthorID)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("author_id", task.AuthorID.String()))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("author_id", task.AuthorID.String()))
	return nil
}

// GetForAuthor implements store.TaskStore.GetForAuthor
// Tasks owned by other users are indistinguishable from missing rows; both
// return store.ErrTaskNotFound.
func (s *PostgresTaskStore) GetForAuthor(
	ctx context.Context,
	id, authorID uuid.UUID,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, content, image_url, completed, author_id, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND author_id = $2
	`

	task, err := s.scanTask(s.db.QueryRowContext(ctx, query, id, authorID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for author",
				slog.String("task_id", id.String()),
				slog.String("author_id", authorID.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task for author",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	return task, nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, content, image_url, completed, author_id, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	task, err := s.scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	return task, nil
}

// ListCompleted implements store.TaskStore.ListCompleted
// The author is populated through a JOIN; the projection strips the task and
// user timestamp columns.
func (s *PostgresTaskStore) ListCompleted(
	ctx context.Context,
	limit, skip int,
) ([]*domain.TaskWithAuthor, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = store.DefaultCompletedLimit
	}
	if skip < 0 {
		skip = store.DefaultCompletedSkip
	}

	query := `
		SELECT t.id, t.title, t.content, t.image_url, t.completed,
		       u.id, u.email, u.name
		FROM tasks t
		JOIN users u ON u.id = t.author_id
		WHERE t.completed = TRUE
		ORDER BY t.id ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, skip)
	if err != nil {
		log.Error("failed to list completed tasks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	tasks := make([]*domain.TaskWithAuthor, 0)
	for rows.Next() {
		var t domain.TaskWithAuthor
		if err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Content,
			&t.ImageURL,
			&t.Completed,
			&t.Author.ID,
			&t.Author.Email,
			&t.Author.Name,
		); err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		tasks = append(tasks, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return tasks, nil
}

// MarkAllCompleted implements store.TaskStore.MarkAllCompleted
// It bulk-updates the author's incomplete tasks and reports the count.
func (s *PostgresTaskStore) MarkAllCompleted(
	ctx context.Context,
	authorID uuid.UUID,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET completed = TRUE, updated_at = NOW()
		WHERE completed = FALSE AND author_id = $1
	`

	result, err := s.db.ExecContext(ctx, query, authorID)
	if err != nil {
		log.Error("failed to mark tasks completed",
			slog.String("error", err.Error()),
			slog.String("author_id", authorID.String()))
		return 0, MapError(err)
	}

	modified, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Info("marked tasks completed",
		slog.Int64("modified", modified),
		slog.String("author_id", authorID.String()))
	return modified, nil
}

// Update implements store.TaskStore.Update
// The WHERE clause scopes the write to the author, so an ownership mismatch
// surfaces as store.ErrTaskNotFound.
func (s *PostgresTaskStore) Update(
	ctx context.Context,
	task *domain.Task,
	authorID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, content = $2, image_url = $3, completed = $4, updated_at = $5
		WHERE id = $6 AND author_id = $7
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Content,
		task.ImageURL,
		task.Completed,
		task.UpdatedAt,
		task.ID,
		authorID,
	)

	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		log.Debug("task not found during update",
			slog.String("task_id", task.ID.String()),
			slog.String("author_id", authorID.String()))
		return fmt.Errorf("%w: %v", store.ErrTaskNotFound, err)
	}

	log.Info("task updated successfully", slog.String("task_id", task.ID.String()))
	return nil
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		log.Debug("task not found during delete", slog.String("task_id", id.String()))
		return fmt.Errorf("%w: %v", store.ErrTaskNotFound, err)
	}

	log.Info("task deleted successfully", slog.String("task_id", id.String()))
	return nil
}

// WithTx implements store.TaskStore.WithTx
// It returns a new store bound to the given transaction.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanTask scans a full task row.
func (s *PostgresTaskStore) scanTask(row *sql.Row) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Content,
		&task.ImageURL,
		&task.Completed,
		&task.AuthorID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
