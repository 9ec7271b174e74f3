package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VernoB/TodoTask/internal/domain"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	authorID := uuid.New()

	t.Run("valid task", func(t *testing.T) {
		t.Parallel()

		task, err := domain.NewTask("Buy milk", "2% from the corner store", "images/1.png", authorID)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, task.ID)
		assert.Equal(t, authorID, task.AuthorID)
		assert.False(t, task.Completed, "new tasks must start incomplete")
	})

	t.Run("trims title and content", func(t *testing.T) {
		t.Parallel()

		task, err := domain.NewTask("  Buy milk  ", "  2%  ", "images/1.png", authorID)
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", task.Title)
		assert.Equal(t, "2%", task.Content)
	})

	tests := []struct {
		name     string
		title    string
		content  string
		imageURL string
		author   uuid.UUID
		wantErr  error
	}{
		{"empty title", "   ", "content", "images/1.png", authorID, domain.ErrTaskTitleEmpty},
		{"short title", "Buy", "content", "images/1.png", authorID, domain.ErrTaskTitleTooShort},
		{"short title after trim", "  Buy  ", "content", "images/1.png", authorID, domain.ErrTaskTitleTooShort},
		{"empty content", "Buy milk", "", "images/1.png", authorID, domain.ErrTaskContentEmpty},
		{"missing image", "Buy milk", "content", "", authorID, domain.ErrTaskImageEmpty},
		{"missing author", "Buy milk", "content", "images/1.png", uuid.Nil, domain.ErrTaskAuthorEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := domain.NewTask(tt.title, tt.content, tt.imageURL, tt.author)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTaskUpdate(t *testing.T) {
	t.Parallel()

	task, err := domain.NewTask("Buy milk", "2%", "images/1.png", uuid.New())
	require.NoError(t, err)

	t.Run("applies fields and bumps UpdatedAt", func(t *testing.T) {
		before := task.UpdatedAt

		err := task.Update("Buy bread", "whole grain", true)
		require.NoError(t, err)
		assert.Equal(t, "Buy bread", task.Title)
		assert.Equal(t, "whole grain", task.Content)
		assert.True(t, task.Completed)
		assert.False(t, task.UpdatedAt.Before(before))
	})

	t.Run("rejects invalid update and keeps original", func(t *testing.T) {
		err := task.Update("nah", "whole grain", true)
		assert.ErrorIs(t, err, domain.ErrTaskTitleTooShort)
		assert.Equal(t, "Buy bread", task.Title, "failed update must not modify the task")
	})
}

func TestTaskReplaceImage(t *testing.T) {
	t.Parallel()

	task, err := domain.NewTask("Buy milk", "2%", "images/old.png", uuid.New())
	require.NoError(t, err)

	old, err := task.ReplaceImage("images/new.png")
	require.NoError(t, err)
	assert.Equal(t, "images/old.png", old)
	assert.Equal(t, "images/new.png", task.ImageURL)

	_, err = task.ReplaceImage("")
	assert.ErrorIs(t, err, domain.ErrTaskImageEmpty)
}
