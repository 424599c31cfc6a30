package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"stock_watchlist/internal/feature/auth/usecase"
)

// mockAuthUsecase はAuthUsecaseインターフェースのモック実装です。
type mockAuthUsecase struct {
	SignupFunc func(ctx context.Context, username, password string) error
	LoginFunc  func(ctx context.Context, username, password string) (string, error)
}

func (m *mockAuthUsecase) Signup(ctx context.Context, username, password string) error {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, username, password)
	}
	return nil
}

func (m *mockAuthUsecase) Login(ctx context.Context, username, password string) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return "", usecase.ErrInvalidCredentials
}

func newRouter(uc AuthUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(uc)
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	return r
}

func TestAuthHandler_Signup(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()

		uc := &mockAuthUsecase{
			SignupFunc: func(ctx context.Context, username, password string) error {
				assert.Equal(t, "alice", username)
				assert.Equal(t, "password123", password)
				return nil
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/signup",
			strings.NewReader(`{"username":"alice","password":"password123"}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(uc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		t.Parallel()

		for _, body := range []string{
			`{not json`,
			`{"username":"alice"}`,
			`{"username":"alice","password":"short"}`,
		} {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			newRouter(&mockAuthUsecase{}).ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		}
	})

	t.Run("duplicate username hides the reason", func(t *testing.T) {
		t.Parallel()

		uc := &mockAuthUsecase{
			SignupFunc: func(ctx context.Context, username, password string) error {
				return usecase.ErrUsernameTaken
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/signup",
			strings.NewReader(`{"username":"alice","password":"password123"}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(uc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NotContains(t, w.Body.String(), "taken", "response must not reveal whether the user exists")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	t.Run("success returns token", func(t *testing.T) {
		t.Parallel()

		uc := &mockAuthUsecase{
			LoginFunc: func(ctx context.Context, username, password string) (string, error) {
				return "signed-token", nil
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login",
			strings.NewReader(`{"username":"alice","password":"password123"}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(uc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"token":"signed-token"}`, w.Body.String())
	})

	t.Run("invalid credentials", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login",
			strings.NewReader(`{"username":"alice","password":"wrongpass"}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(&mockAuthUsecase{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(&mockAuthUsecase{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
