package signup_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/auth-service/internal/http-server/handlers/auth/signup"
	"github.com/magabrotheeeer/auth-service/internal/http-server/response"
	"github.com/magabrotheeeer/auth-service/internal/models"
	authservice "github.com/magabrotheeeer/auth-service/internal/services/auth"
)

type mockRegistrator struct {
	RegisterFunc func(ctx context.Context, email, password string) (*models.User, error)
}

func (m *mockRegistrator) Register(ctx context.Context, email, password string) (*models.User, error) {
	return m.RegisterFunc(ctx, email, password)
}

type mockEstablisher struct {
	EstablishFunc func(w http.ResponseWriter, user *models.User) (string, error)
}

func (m *mockEstablisher) Establish(w http.ResponseWriter, user *models.User) (string, error) {
	return m.EstablishFunc(w, user)
}

func makeLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func postSignup(t *testing.T, handler http.HandlerFunc, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestSignupHandler(t *testing.T) {
	newUser := &models.User{
		UID:          "uid-1",
		Email:        "new@example.com",
		PasswordHash: "hash",
		Role:         models.RoleUser,
	}

	t.Run("success establishes session and returns public view", func(t *testing.T) {
		body, _ := json.Marshal(signup.Request{
			Email:    "new@example.com",
			Password: "password123",
		})

		establishCalled := false
		registrator := &mockRegistrator{
			RegisterFunc: func(_ context.Context, email, password string) (*models.User, error) {
				require.Equal(t, "new@example.com", email)
				require.Equal(t, "password123", password)
				return newUser, nil
			},
		}
		sessions := &mockEstablisher{
			EstablishFunc: func(w http.ResponseWriter, user *models.User) (string, error) {
				establishCalled = true
				require.Equal(t, "uid-1", user.UID)
				http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "token-123"})
				return "token-123", nil
			},
		}

		w := postSignup(t, signup.New(makeLogger(), registrator, sessions), body)

		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, establishCalled)

		var resp response.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "uid-1", resp.User.UID)
		assert.Equal(t, "new@example.com", resp.User.Email)
		assert.Equal(t, models.RoleUser, resp.User.Role)

		// хэш пароля не попадает в ответ
		assert.NotContains(t, w.Body.String(), "hash")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "token-123", cookies[0].Value)
	})

	t.Run("email already in use", func(t *testing.T) {
		body, _ := json.Marshal(signup.Request{
			Email:    "taken@example.com",
			Password: "password123",
		})

		registrator := &mockRegistrator{
			RegisterFunc: func(_ context.Context, _, _ string) (*models.User, error) {
				return nil, fmt.Errorf("services.auth.Register: %w", authservice.ErrEmailTaken)
			},
		}
		sessions := &mockEstablisher{
			EstablishFunc: func(_ http.ResponseWriter, _ *models.User) (string, error) {
				t.Fatal("Establish should not be called")
				return "", nil
			},
		}

		w := postSignup(t, signup.New(makeLogger(), registrator, sessions), body)

		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp response.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Email already in use", resp.Error)
	})

	t.Run("short password is rejected before the service", func(t *testing.T) {
		body, _ := json.Marshal(signup.Request{
			Email:    "new@example.com",
			Password: "short",
		})

		registrator := &mockRegistrator{
			RegisterFunc: func(_ context.Context, _, _ string) (*models.User, error) {
				t.Fatal("Register should not be called")
				return nil, nil
			},
		}

		w := postSignup(t, signup.New(makeLogger(), registrator, &mockEstablisher{}), body)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Password")
	})

	t.Run("malformed email is rejected", func(t *testing.T) {
		body, _ := json.Marshal(signup.Request{
			Email:    "not-an-email",
			Password: "password123",
		})

		registrator := &mockRegistrator{
			RegisterFunc: func(_ context.Context, _, _ string) (*models.User, error) {
				t.Fatal("Register should not be called")
				return nil, nil
			},
		}

		w := postSignup(t, signup.New(makeLogger(), registrator, &mockEstablisher{}), body)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Email")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		registrator := &mockRegistrator{
			RegisterFunc: func(_ context.Context, _, _ string) (*models.User, error) {
				t.Fatal("Register should not be called")
				return nil, nil
			},
		}

		w := postSignup(t, signup.New(makeLogger(), registrator, &mockEstablisher{}), []byte("{bad json"))

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "failed to decode request")
	})

	t.Run("session failure returns 500", func(t *testing.T) {
		body, _ := json.Marshal(signup.Request{
			Email:    "new@example.com",
			Password: "password123",
		})

		registrator := &mockRegistrator{
			RegisterFunc: func(_ context.Context, _, _ string) (*models.User, error) {
				return newUser, nil
			},
		}
		sessions := &mockEstablisher{
			EstablishFunc: func(_ http.ResponseWriter, _ *models.User) (string, error) {
				return "", errors.New("sign failed")
			},
		}

		w := postSignup(t, signup.New(makeLogger(), registrator, sessions), body)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		// деталь ошибки не раскрывается клиенту
		assert.NotContains(t, w.Body.String(), "sign failed")
	})
}
