package userlist_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/auth-service/internal/http-server/handlers/admin/userlist"
	"github.com/magabrotheeeer/auth-service/internal/http-server/response"
	"github.com/magabrotheeeer/auth-service/internal/models"
)

type mockUserLister struct {
	ListFunc func(ctx context.Context) ([]*models.User, error)
}

func (m *mockUserLister) ListUsers(ctx context.Context) ([]*models.User, error) {
	return m.ListFunc(ctx)
}

func makeLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestUserListHandler(t *testing.T) {
	t.Run("returns public views only", func(t *testing.T) {
		users := &mockUserLister{
			ListFunc: func(_ context.Context) ([]*models.User, error) {
				return []*models.User{
					{UID: "uid-1", Email: "user@example.com", PasswordHash: "secret-hash", Role: models.RoleUser},
					{UID: "uid-2", Email: "admin@example.com", PasswordHash: "secret-hash", Role: models.RoleAdmin},
				}, nil
			},
		}

		w := httptest.NewRecorder()
		userlist.New(makeLogger(), users).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/users", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var resp response.UserListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Users, 2)
		assert.Equal(t, "uid-1", resp.Users[0].UID)
		assert.Equal(t, models.RoleAdmin, resp.Users[1].Role)
		assert.NotContains(t, w.Body.String(), "secret-hash")
	})

	t.Run("empty list", func(t *testing.T) {
		users := &mockUserLister{
			ListFunc: func(_ context.Context) ([]*models.User, error) {
				return nil, nil
			},
		}

		w := httptest.NewRecorder()
		userlist.New(makeLogger(), users).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/users", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var resp response.UserListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp.Users)
	})

	t.Run("storage failure returns 500", func(t *testing.T) {
		users := &mockUserLister{
			ListFunc: func(_ context.Context) ([]*models.User, error) {
				return nil, errors.New("connection reset")
			},
		}

		w := httptest.NewRecorder()
		userlist.New(makeLogger(), users).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/users", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})
}
