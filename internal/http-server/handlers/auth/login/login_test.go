package login_test

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

	"github.com/magabrotheeeer/auth-service/internal/http-server/handlers/auth/login"
	"github.com/magabrotheeeer/auth-service/internal/http-server/response"
	"github.com/magabrotheeeer/auth-service/internal/models"
	authservice "github.com/magabrotheeeer/auth-service/internal/services/auth"
)

type mockAuthenticator struct {
	LoginFunc func(ctx context.Context, email, password string) (*models.User, error)
}

func (m *mockAuthenticator) Login(ctx context.Context, email, password string) (*models.User, error) {
	return m.LoginFunc(ctx, email, password)
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

func postLogin(t *testing.T, handler http.HandlerFunc, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestLoginHandler(t *testing.T) {
	validUser := &models.User{
		UID:          "uid-1",
		Email:        "user@example.com",
		PasswordHash: "hash",
		Role:         models.RoleUser,
	}

	t.Run("success", func(t *testing.T) {
		body, _ := json.Marshal(login.Request{
			Email:    "user@example.com",
			Password: "password123",
		})

		authenticator := &mockAuthenticator{
			LoginFunc: func(_ context.Context, email, password string) (*models.User, error) {
				require.Equal(t, "user@example.com", email)
				require.Equal(t, "password123", password)
				return validUser, nil
			},
		}
		sessions := &mockEstablisher{
			EstablishFunc: func(w http.ResponseWriter, user *models.User) (string, error) {
				http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "token-123"})
				return "token-123", nil
			},
		}

		w := postLogin(t, login.New(makeLogger(), authenticator, sessions), body)

		require.Equal(t, http.StatusOK, w.Code)

		var resp response.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "uid-1", resp.User.UID)
		assert.Equal(t, "user@example.com", resp.User.Email)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "token-123", cookies[0].Value)
	})

	t.Run("invalid credentials give uniform 401", func(t *testing.T) {
		// неизвестный email и неверный пароль неразличимы в ответе
		for _, name := range []string{"wrong password", "unknown email"} {
			t.Run(name, func(t *testing.T) {
				body, _ := json.Marshal(login.Request{
					Email:    "user@example.com",
					Password: "password123",
				})

				authenticator := &mockAuthenticator{
					LoginFunc: func(_ context.Context, _, _ string) (*models.User, error) {
						return nil, fmt.Errorf("services.auth.Login: %w", authservice.ErrInvalidCredentials)
					},
				}
				sessions := &mockEstablisher{
					EstablishFunc: func(_ http.ResponseWriter, _ *models.User) (string, error) {
						t.Fatal("Establish should not be called")
						return "", nil
					},
				}

				w := postLogin(t, login.New(makeLogger(), authenticator, sessions), body)

				require.Equal(t, http.StatusUnauthorized, w.Code)
				var resp response.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "Invalid email or password", resp.Error)
			})
		}
	})

	t.Run("validation error", func(t *testing.T) {
		body, _ := json.Marshal(login.Request{
			Email:    "",
			Password: "",
		})

		authenticator := &mockAuthenticator{
			LoginFunc: func(_ context.Context, _, _ string) (*models.User, error) {
				t.Fatal("Login should not be called")
				return nil, nil
			},
		}

		w := postLogin(t, login.New(makeLogger(), authenticator, &mockEstablisher{}), body)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		authenticator := &mockAuthenticator{
			LoginFunc: func(_ context.Context, _, _ string) (*models.User, error) {
				t.Fatal("Login should not be called")
				return nil, nil
			},
		}

		w := postLogin(t, login.New(makeLogger(), authenticator, &mockEstablisher{}), []byte("{bad json"))

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "failed to decode request")
	})

	t.Run("storage failure returns 500", func(t *testing.T) {
		body, _ := json.Marshal(login.Request{
			Email:    "user@example.com",
			Password: "password123",
		})

		authenticator := &mockAuthenticator{
			LoginFunc: func(_ context.Context, _, _ string) (*models.User, error) {
				return nil, errors.New("connection reset")
			},
		}

		w := postLogin(t, login.New(makeLogger(), authenticator, &mockEstablisher{}), body)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})
}
