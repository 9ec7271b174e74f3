package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VernoB/TodoTask/internal/domain"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid user", func(t *testing.T) {
		t.Parallel()

		user, err := domain.NewUser("a@x.com", "A", "pass1234")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID, "ID should be generated")
		assert.Equal(t, "a@x.com", user.Email)
		assert.Equal(t, "A", user.Name)
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt should be set")
		assert.False(t, user.UpdatedAt.IsZero(), "UpdatedAt should be set")
	})

	t.Run("trims email and name", func(t *testing.T) {
		t.Parallel()

		user, err := domain.NewUser("  a@x.com ", "  Alice  ", "pass1234")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", user.Email)
		assert.Equal(t, "Alice", user.Name)
	})

	tests := []struct {
		name     string
		email    string
		userName string
		password string
		wantErr  error
	}{
		{"empty email", "", "A", "pass1234", domain.ErrEmptyEmail},
		{"missing at", "ax.com", "A", "pass1234", domain.ErrInvalidEmail},
		{"missing domain dot", "a@xcom", "A", "pass1234", domain.ErrInvalidEmail},
		{"dot at domain end", "a@x.com.", "A", "pass1234", domain.ErrInvalidEmail},
		{"empty name", "a@x.com", "   ", "pass1234", domain.ErrEmptyName},
		{"short password", "a@x.com", "A", "pass123", domain.ErrPasswordTooShort},
		{"non alphanumeric password", "a@x.com", "A", "pass 1234!", domain.ErrPasswordNotAlphanum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := domain.NewUser(tt.email, tt.userName, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	assert.NoError(t, domain.ValidatePassword("abc12345"))
	assert.ErrorIs(t, domain.ValidatePassword("abc1234"), domain.ErrPasswordTooShort)

	long := make([]byte, domain.MaxPasswordLength+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.ErrorIs(t, domain.ValidatePassword(string(long)), domain.ErrPasswordTooLong)
	assert.ErrorIs(t, domain.ValidatePassword("abcd-1234"), domain.ErrPasswordNotAlphanum)
}

func TestUserValidate_LoadedUser(t *testing.T) {
	t.Parallel()

	// A user loaded from the store has no plaintext password, only a hash.
	user := &domain.User{
		ID:             uuid.New(),
		Email:          "a@x.com",
		Name:           "A",
		HashedPassword: "$2a$12$notarealhashbutgoodenough",
	}
	assert.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), domain.ErrEmptyPassword)
}
