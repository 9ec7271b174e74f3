package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VernoB/TodoTask/internal/domain"
	"github.com/VernoB/TodoTask/internal/mocks"
)

func newTestAuthHandler(userStore *mocks.MockUserStore) *AuthHandler {
	return NewAuthHandler(
		userStore,
		&mocks.MockJWTService{Token: "test-token"},
		&mocks.MockPasswordHasher{},
		&mocks.MockPasswordVerifier{},
		nil,
	)
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payloadBytes, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", target, bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	handler(recorder, req)
	return recorder
}

func TestRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
	}{
		{
			name: "valid registration",
			payload: map[string]interface{}{
				"email":    "test@example.com",
				"name":     "Test User",
				"password": "password1234",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "invalid email",
			payload: map[string]interface{}{
				"email":    "invalid-email",
				"name":     "Test User",
				"password": "password1234",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "password too short",
			payload: map[string]interface{}{
				"email":    "test2@example.com",
				"name":     "Test User",
				"password": "short",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "password not alphanumeric",
			payload: map[string]interface{}{
				"email":    "test3@example.com",
				"name":     "Test User",
				"password": "password-12!",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing name",
			payload: map[string]interface{}{
				"email":    "test4@example.com",
				"password": "password1234",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing email",
			payload: map[string]interface{}{
				"name":     "Test User",
				"password": "password1234",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStore := mocks.NewMockUserStore()
			handler := newTestAuthHandler(userStore)

			recorder := postJSON(t, handler.Register, "/auth/register", tt.payload)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp RegisterResponse
				err := json.Unmarshal(recorder.Body.Bytes(), &resp)
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, resp.UserID)

				// The stored user must carry a hash, never the plaintext
				stored := userStore.Users[tt.payload["email"].(string)]
				require.NotNil(t, stored)
				assert.Empty(t, stored.Password)
				assert.Equal(t, "hashed:password1234", stored.HashedPassword)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	handler := newTestAuthHandler(userStore)

	payload := map[string]interface{}{
		"email":    "dup@example.com",
		"name":     "First",
		"password": "password1234",
	}

	recorder := postJSON(t, handler.Register, "/auth/register", payload)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = postJSON(t, handler.Register, "/auth/register", payload)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var errResp struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	err := json.Unmarshal(recorder.Body.Bytes(), &errResp)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, errResp.Status)
	assert.Equal(t, "Email already exists in the database", errResp.Message)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	registered, err := domain.NewUser("login@example.com", "Login User", "password1234")
	require.NoError(t, err)
	registered.HashedPassword = "hashed:password1234"
	registered.Password = ""

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
		wantToken  bool
	}{
		{
			name: "valid credentials",
			payload: map[string]interface{}{
				"email":    "login@example.com",
				"password": "password1234",
			},
			wantStatus: http.StatusOK,
			wantToken:  true,
		},
		{
			name: "wrong password",
			payload: map[string]interface{}{
				"email":    "login@example.com",
				"password": "wrongpassword1",
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "unknown email",
			payload: map[string]interface{}{
				"email":    "nobody@example.com",
				"password": "password1234",
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "missing password",
			payload: map[string]interface{}{
				"email": "login@example.com",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStore := mocks.NewMockUserStore()
			userStore.Users[registered.Email] = registered
			handler := newTestAuthHandler(userStore)

			recorder := postJSON(t, handler.Login, "/auth/login", tt.payload)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantToken {
				var resp AuthResponse
				err := json.Unmarshal(recorder.Body.Bytes(), &resp)
				require.NoError(t, err)
				assert.Equal(t, "test-token", resp.Token)
				assert.Equal(t, registered.ID, resp.UserID)
			}
		})
	}
}

func TestLogin_IdenticalFailureMessages(t *testing.T) {
	t.Parallel()

	registered, err := domain.NewUser("probe@example.com", "Probe", "password1234")
	require.NoError(t, err)
	registered.HashedPassword = "hashed:password1234"

	userStore := mocks.NewMockUserStore()
	userStore.Users[registered.Email] = registered
	handler := newTestAuthHandler(userStore)

	wrongPassword := postJSON(t, handler.Login, "/auth/login", map[string]interface{}{
		"email":    "probe@example.com",
		"password": "nottherealone",
	})
	unknownEmail := postJSON(t, handler.Login, "/auth/login", map[string]interface{}{
		"email":    "ghost@example.com",
		"password": "nottherealone",
	})

	// A wrong password and an unknown email must be indistinguishable.
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)

	var a, b struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(wrongPassword.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(unknownEmail.Body.Bytes(), &b))
	assert.Equal(t, a.Message, b.Message)
}

func TestListUsers(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	for _, email := range []string{"a@example.com", "b@example.com"} {
		u, err := domain.NewUser(email, "User", "password1234")
		require.NoError(t, err)
		u.HashedPassword = "hashed:password1234"
		userStore.Users[email] = u
	}
	handler := newTestAuthHandler(userStore)

	req := httptest.NewRequest("GET", "/auth/users", nil)
	recorder := httptest.NewRecorder()
	handler.ListUsers(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp []UserResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)

	// The raw body must never leak password material
	assert.NotContains(t, recorder.Body.String(), "password")
	assert.NotContains(t, recorder.Body.String(), "hashed")
}

func TestListUsers_StoreFailure(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	userStore.ListFn = func(ctx context.Context) ([]*domain.User, error) {
		return nil, errors.New("connection reset")
	}
	handler := newTestAuthHandler(userStore)

	req := httptest.NewRequest("GET", "/auth/users", nil)
	recorder := httptest.NewRecorder()
	handler.ListUsers(recorder, req)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	// Internal error details stay out of the response
	assert.NotContains(t, recorder.Body.String(), "connection reset")
}

func TestGetUser(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser("get@example.com", "Getter", "password1234")
	require.NoError(t, err)
	user.HashedPassword = "hashed:password1234"

	userStore := mocks.NewMockUserStore()
	userStore.Users[user.Email] = user
	handler := newTestAuthHandler(userStore)

	t.Run("found", func(t *testing.T) {
		req := newRequestWithPathParam(t, "GET", "/auth/"+user.ID.String(), "id", user.ID.String())
		recorder := httptest.NewRecorder()
		handler.GetUser(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, user.ID, resp.ID)
		assert.Equal(t, user.Email, resp.Email)
	})

	t.Run("missing", func(t *testing.T) {
		other := uuid.New()
		req := newRequestWithPathParam(t, "GET", "/auth/"+other.String(), "id", other.String())
		recorder := httptest.NewRecorder()
		handler.GetUser(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		req := newRequestWithPathParam(t, "GET", "/auth/not-a-uuid", "id", "not-a-uuid")
		recorder := httptest.NewRecorder()
		handler.GetUser(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()

	handler := newTestAuthHandler(mocks.NewMockUserStore())

	req := httptest.NewRequest("GET", "/auth/logout", nil)
	recorder := httptest.NewRecorder()
	handler.Logout(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}
