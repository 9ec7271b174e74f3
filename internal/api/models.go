package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/VernoB/TodoTask/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72,alphanum"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// RegisterResponse defines the successful response for the registration
// endpoint.
type RegisterResponse struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"user_id"`
}

// AuthResponse defines the successful response for the login endpoint.
type AuthResponse struct {
	// Token is the JWT used for API authorization
	Token string `json:"token"`

	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`
}

// UserResponse is the public projection of a user. Password material and
// timestamps are never exposed.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}

// TaskResponse represents the response data for a single task.
type TaskResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url"`
	Completed bool      `json:"completed"`
	AuthorID  uuid.UUID `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        t.ID,
		Title:     t.Title,
		Content:   t.Content,
		ImageURL:  t.ImageURL,
		Completed: t.Completed,
		AuthorID:  t.AuthorID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// MarkAllCompletedRequest defines the payload for the bulk-complete endpoint.
// The operation only runs when AllDone is exactly true.
type MarkAllCompletedRequest struct {
	AllDone bool `json:"all_done"`
}

// MarkAllCompletedResponse reports how many tasks a bulk-complete touched.
type MarkAllCompletedResponse struct {
	Message string `json:"message"`
	Updated int64  `json:"updated"`
}

// MessageResponse is a minimal acknowledgment body.
type MessageResponse struct {
	Message string `json:"message"`
}
