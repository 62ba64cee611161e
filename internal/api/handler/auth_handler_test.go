package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/canvasnotes/notes-api/internal/api/metrics"
	"github.com/canvasnotes/notes-api/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, email, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.User, error)
	currentFn  func(ctx context.Context, userID int64) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.currentFn(ctx, userID)
}

type recordingTokenStore struct {
	revokedJTI string
	revokedTTL time.Duration
}

func (s *recordingTokenStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	s.revokedJTI = jti
	s.revokedTTL = ttl
	return nil
}

func (s *recordingTokenStore) IsRevoked(context.Context, string) (bool, error) {
	return false, nil
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password string) (*domain.User, error) {
			if username != "alice" || email != "a@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s %s", username, email, password)
			}
			return &domain.User{ID: 1, Username: username, Email: email}, nil
		},
	}
	h := NewAuthHandler(stub, nil)

	c, rec := newTestContext(t, http.MethodPost, "/api/signup",
		`{"username":"alice","email":"a@example.com","password":"secret"}`)

	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "User created successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestAuthHandler_Signup_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, nil)

	c, _ := newTestContext(t, http.MethodPost, "/api/signup", `{"username":"alice"}`)

	if err := h.Signup(c); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestAuthHandler_Signup_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub, nil)

	c, _ := newTestContext(t, http.MethodPost, "/api/signup",
		`{"username":"alice","email":"a@example.com","password":"secret"}`)

	if err := h.Signup(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "token123", &domain.User{ID: 1, Username: "alice", Email: "a@example.com"}, nil
		},
	}
	h := NewAuthHandler(stub, nil)

	c, rec := newTestContext(t, http.MethodPost, "/api/login",
		`{"username":"alice","password":"secret"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "token123" {
		t.Fatalf("expected access_token, got %v", resp["access_token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["username"] != "alice" || user["email"] != "a@example.com" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("credential hash leaked into response")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, nil)

	c, _ := newTestContext(t, http.MethodPost, "/api/login",
		`{"username":"alice","password":"wrong"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_CountsTokensAndFailures(t *testing.T) {
	calls := 0
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			calls++
			if calls == 1 {
				return "token123", &domain.User{ID: 1, Username: "alice"}, nil
			}
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, nil)

	issuedBefore := testutil.ToFloat64(metrics.TokensIssuedTotal)
	failedBefore := testutil.ToFloat64(metrics.AuthFailuresTotal.WithLabelValues("invalid_credentials"))

	c, _ := newTestContext(t, http.MethodPost, "/api/login",
		`{"username":"alice","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	c, _ = newTestContext(t, http.MethodPost, "/api/login",
		`{"username":"alice","password":"wrong"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if got := testutil.ToFloat64(metrics.TokensIssuedTotal) - issuedBefore; got != 1 {
		t.Fatalf("expected 1 issued token counted, got %v", got)
	}
	failed := testutil.ToFloat64(metrics.AuthFailuresTotal.WithLabelValues("invalid_credentials")) - failedBefore
	if failed != 1 {
		t.Fatalf("expected 1 auth failure counted, got %v", failed)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	stub := &stubAuthService{
		currentFn: func(ctx context.Context, userID int64) (*domain.User, error) {
			if userID != 7 {
				t.Fatalf("unexpected user id: %d", userID)
			}
			return &domain.User{ID: 7, Username: "alice", Email: "a@example.com"}, nil
		},
	}
	h := NewAuthHandler(stub, nil)

	c, rec := newTestContext(t, http.MethodGet, "/api/user/me", "")
	c.Set("user_id", int64(7))

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != float64(7) || resp["username"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Me_UserGone(t *testing.T) {
	stub := &stubAuthService{
		currentFn: func(context.Context, int64) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewAuthHandler(stub, nil)

	c, _ := newTestContext(t, http.MethodGet, "/api/user/me", "")
	c.Set("user_id", int64(7))

	if err := h.Me(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthHandler_Me_NoClaims(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, nil)

	c, _ := newTestContext(t, http.MethodGet, "/api/user/me", "")

	if err := h.Me(c); !errors.Is(err, domain.ErrTokenMissing) {
		t.Fatalf("expected ErrTokenMissing, got %v", err)
	}
}

func TestAuthHandler_Logout_RevokesUntilExpiry(t *testing.T) {
	tokens := &recordingTokenStore{}
	h := NewAuthHandler(&stubAuthService{}, tokens)

	c, rec := newTestContext(t, http.MethodPost, "/api/logout", "")
	c.Set("user_id", int64(7))
	c.Set("token_id", "jti-42")
	c.Set("token_expires", time.Now().Add(2*time.Hour))

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if tokens.revokedJTI != "jti-42" {
		t.Fatalf("expected jti revoked, got %q", tokens.revokedJTI)
	}
	if tokens.revokedTTL <= 0 || tokens.revokedTTL > 2*time.Hour {
		t.Fatalf("unexpected revocation ttl: %v", tokens.revokedTTL)
	}
}
