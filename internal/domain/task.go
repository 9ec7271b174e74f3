package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskAuthorEmpty is returned when a task's author ID is empty or nil.
	ErrTaskAuthorEmpty = errors.New("task author ID cannot be empty")

	// ErrTaskTitleEmpty is returned when a task's title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskTitleTooShort is returned when a task's title is shorter than
	// MinTitleLength after trimming.
	ErrTaskTitleTooShort = errors.New("task title must be at least 5 characters long")

	// ErrTaskContentEmpty is returned when a task's content is empty.
	ErrTaskContentEmpty = errors.New("task content cannot be empty")

	// ErrTaskImageEmpty is returned when a task has no stored image.
	ErrTaskImageEmpty = errors.New("task image URL cannot be empty")
)

// MinTitleLength is the minimum accepted task title length after trimming.
const MinTitleLength = 5

// Task represents an image-attached to-do item owned by exactly one user.
// The author is fixed at creation and never transfers.
type Task struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url"`
	Completed bool      `json:"completed"`
	AuthorID  uuid.UUID `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskAuthor is the populated author projection returned alongside tasks:
// only the fields safe to expose to other users.
type TaskAuthor struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// TaskWithAuthor pairs a task with its populated author, with the internal
// timestamp fields stripped from the task for listing responses.
type TaskWithAuthor struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	ImageURL  string     `json:"image_url"`
	Completed bool       `json:"completed"`
	Author    TaskAuthor `json:"author"`
}

// NewTask creates a new Task owned by the given author. New tasks always
// start incomplete. Title and content are trimmed before validation.
// Returns an error if validation fails.
func NewTask(title, content, imageURL string, authorID uuid.UUID) (*Task, error) {
	task := &Task{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(title),
		Content:   strings.TrimSpace(content),
		ImageURL:  imageURL,
		Completed: false,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.AuthorID == uuid.Nil {
		return ErrTaskAuthorEmpty
	}

	title := strings.TrimSpace(t.Title)
	if title == "" {
		return ErrTaskTitleEmpty
	}
	if utf8.RuneCountInString(title) < MinTitleLength {
		return ErrTaskTitleTooShort
	}

	if strings.TrimSpace(t.Content) == "" {
		return ErrTaskContentEmpty
	}

	if t.ImageURL == "" {
		return ErrTaskImageEmpty
	}

	return nil
}

// Update applies new title, content and completion state to the task and
// bumps the UpdatedAt timestamp. The author never changes. Returns an error
// if the updated task would be invalid; the task is left unmodified then.
func (t *Task) Update(title, content string, completed bool) error {
	orig := *t

	t.Title = strings.TrimSpace(title)
	t.Content = strings.TrimSpace(content)
	t.Completed = completed

	if err := t.Validate(); err != nil {
		*t = orig
		return err
	}

	t.UpdatedAt = time.Now().UTC()
	return nil
}

// ReplaceImage swaps the stored image path and bumps UpdatedAt.
// Returns the previous path so the caller can release the stored resource.
func (t *Task) ReplaceImage(imageURL string) (string, error) {
	if imageURL == "" {
		return "", ErrTaskImageEmpty
	}
	old := t.ImageURL
	t.ImageURL = imageURL
	t.UpdatedAt = time.Now().UTC()
	return old, nil
}
