package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"agoraun/internal/delivery/http/helpers"
	"agoraun/internal/domain"

	"github.com/stretchr/testify/require"
)

func testControllerLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

type mockUserService struct {
	user      *domain.User
	token     string
	users     []*domain.User
	signUpErr error
	loginErr  error
	getErr    error
}

func (m *mockUserService) SignUp(ctx context.Context, name, lastName, email, password string) (*domain.User, error) {
	if m.signUpErr != nil {
		return nil, m.signUpErr
	}
	return m.user, nil
}

func (m *mockUserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if m.loginErr != nil {
		return "", nil, m.loginErr
	}
	return m.token, m.user, nil
}

func (m *mockUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.user, nil
}

func (m *mockUserService) List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error) {
	return m.users, nil
}

func TestAuthController_SignUp(t *testing.T) {
	user := &domain.User{ID: "u1", Name: "Ana", Email: "arojas@unal.edu.co", Status: domain.UserStatusActive}

	tests := []struct {
		name       string
		body       string
		svc        *mockUserService
		wantStatus int
	}{
		{
			name:       "success",
			body:       `{"name":"Ana","last_name":"Rojas","email":"arojas@unal.edu.co","password":"secret-password"}`,
			svc:        &mockUserService{user: user},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing fields",
			body:       `{"name":"Ana"}`,
			svc:        &mockUserService{user: user},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{`,
			svc:        &mockUserService{user: user},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "duplicate email",
			body:       `{"name":"Ana","last_name":"Rojas","email":"arojas@unal.edu.co","password":"secret-password"}`,
			svc:        &mockUserService{signUpErr: domain.ErrDuplicateEmail},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non-institutional email",
			body:       `{"name":"Ana","last_name":"Rojas","email":"arojas@gmail.com","password":"secret-password"}`,
			svc:        &mockUserService{signUpErr: domain.ErrInvalidInput},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testControllerLogger(), tt.svc)

			req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			ctrl.SignUp(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusCreated {
				var resp SignUpSuccessResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				require.Nil(t, resp.Error)
				require.Equal(t, "u1", resp.Data.ID)
			}
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	user := &domain.User{ID: "u1", Email: "arojas@unal.edu.co", Status: domain.UserStatusActive}

	t.Run("success returns token and user", func(t *testing.T) {
		ctrl := NewAuthController(testControllerLogger(), &mockUserService{user: user, token: "jwt-token"})

		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"email":"arojas@unal.edu.co","password":"secret-password"}`))
		w := httptest.NewRecorder()
		ctrl.Login(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp LoginSuccessResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Nil(t, resp.Error)
		require.Equal(t, "jwt-token", resp.Data.Token)
		require.Equal(t, "u1", resp.Data.User.ID)
	})

	t.Run("bad credentials return 401", func(t *testing.T) {
		ctrl := NewAuthController(testControllerLogger(), &mockUserService{loginErr: domain.ErrForbidden})

		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"email":"arojas@unal.edu.co","password":"wrong"}`))
		w := httptest.NewRecorder()
		ctrl.Login(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		var resp helpers.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		require.Equal(t, helpers.ErrCodeUnauthorized, resp.Error.Code)
		require.Equal(t, "invalid credentials", resp.Error.Message)
	})

	t.Run("missing body fields return 400", func(t *testing.T) {
		ctrl := NewAuthController(testControllerLogger(), &mockUserService{})

		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{}`))
		w := httptest.NewRecorder()
		ctrl.Login(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
