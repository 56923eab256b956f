package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/wetrack/wetrack/internal/core/domain"
	"github.com/wetrack/wetrack/internal/core/ports"
)

type stubSessionService struct {
	loginFn      func(ctx context.Context, username, passwordDigest string) (*domain.UserToken, error)
	validateFn   func(ctx context.Context, username, token string) error
	invalidateFn func(ctx context.Context, token string) error
	authorizeFn  func(ctx context.Context, owner, token string) error
	resolveFn    func(ctx context.Context, token string) (string, error)
}

func (s *stubSessionService) Login(ctx context.Context, username, passwordDigest string) (*domain.UserToken, error) {
	return s.loginFn(ctx, username, passwordDigest)
}

func (s *stubSessionService) Validate(ctx context.Context, username, token string) error {
	return s.validateFn(ctx, username, token)
}

func (s *stubSessionService) Invalidate(ctx context.Context, token string) error {
	return s.invalidateFn(ctx, token)
}

func (s *stubSessionService) Authorize(ctx context.Context, owner, token string) error {
	return s.authorizeFn(ctx, owner, token)
}

func (s *stubSessionService) Resolve(ctx context.Context, token string) (string, error) {
	return s.resolveFn(ctx, token)
}

type stubThrottle struct {
	allowed  bool
	failures int
	resets   int
}

func newStubThrottle() *stubThrottle { return &stubThrottle{allowed: true} }

func (s *stubThrottle) Allow(context.Context, string) (bool, error) { return s.allowed, nil }

func (s *stubThrottle) RecordFailure(context.Context, string) error {
	s.failures++
	return nil
}

func (s *stubThrottle) Reset(context.Context, string) error {
	s.resets++
	return nil
}

var _ ports.LoginThrottle = (*stubThrottle)(nil)

func postJSON(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) Message {
	t.Helper()
	var msg Message
	if err := json.Unmarshal(rec.Body.Bytes(), &msg); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return msg
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := echo.New()
	throttle := newStubThrottle()
	stub := &stubSessionService{
		loginFn: func(ctx context.Context, username, passwordDigest string) (*domain.UserToken, error) {
			if username != "alice" || passwordDigest != "digest" {
				t.Fatalf("unexpected args: %s %s", username, passwordDigest)
			}
			return &domain.UserToken{Token: "tok-1", Username: "alice"}, nil
		},
	}
	handler := NewAuthHandler(stub, throttle)

	c, rec := postJSON(e, "/login", `{"username":"alice","password":"digest"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var token domain.UserToken
	if err := json.Unmarshal(rec.Body.Bytes(), &token); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if token.Token != "tok-1" || token.Username != "alice" {
		t.Fatalf("unexpected token payload: %+v", token)
	}
	if throttle.resets != 1 {
		t.Fatalf("expected throttle reset on success")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := echo.New()
	throttle := newStubThrottle()
	stub := &stubSessionService{
		loginFn: func(ctx context.Context, username, passwordDigest string) (*domain.UserToken, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, throttle)

	c, rec := postJSON(e, "/login", `{"username":"alice","password":"bad"}`)
	_ = handler.Login(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	msg := decodeMessage(t, rec)
	if msg.Message != "The given username or password is incorrect." {
		t.Fatalf("unexpected message: %q", msg.Message)
	}
	if msg.StatusCode != http.StatusUnauthorized {
		t.Fatalf("envelope status mismatch: %d", msg.StatusCode)
	}
	if throttle.failures != 1 {
		t.Fatalf("expected failure recorded")
	}
}

func TestAuthHandler_Login_Throttled(t *testing.T) {
	e := echo.New()
	throttle := newStubThrottle()
	throttle.allowed = false
	stub := &stubSessionService{
		loginFn: func(ctx context.Context, username, passwordDigest string) (*domain.UserToken, error) {
			t.Fatalf("login must not be attempted while throttled")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, throttle)

	c, rec := postJSON(e, "/login", `{"username":"alice","password":"digest"}`)
	_ = handler.Login(c)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_EmptyFields(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(&stubSessionService{}, newStubThrottle())

	c, rec := postJSON(e, "/login", `{"password":"digest"}`)
	_ = handler.Login(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty username, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg.Message != "The given username cannot be empty." {
		t.Fatalf("unexpected message: %q", msg.Message)
	}

	c, rec = postJSON(e, "/login", `{"username":"alice"}`)
	_ = handler.Login(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty password, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg.Message != "The given password cannot be empty." {
		t.Fatalf("unexpected message: %q", msg.Message)
	}
}

func TestAuthHandler_TokenValidate_Success(t *testing.T) {
	e := echo.New()
	stub := &stubSessionService{
		validateFn: func(ctx context.Context, username, token string) error {
			if username != "alice" || token != "tok-1" {
				t.Fatalf("unexpected args: %s %s", username, token)
			}
			return nil
		},
	}
	handler := NewAuthHandler(stub, newStubThrottle())

	req := httptest.NewRequest(http.MethodPost, "/users/alice/tokenValidate", strings.NewReader("tok-1"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("username")
	c.SetParamValues("alice")

	if err := handler.TokenValidate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_TokenValidate_FoldsInvalidStates(t *testing.T) {
	// Not-found, owner-mismatch and expired all collapse into the same 401.
	for _, cause := range []error{domain.ErrTokenNotFound, domain.ErrTokenOwnerMismatch, domain.ErrTokenExpired} {
		e := echo.New()
		stub := &stubSessionService{
			validateFn: func(ctx context.Context, username, token string) error { return cause },
		}
		handler := NewAuthHandler(stub, newStubThrottle())

		req := httptest.NewRequest(http.MethodPost, "/users/alice/tokenValidate", strings.NewReader("tok-x"))
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("username")
		c.SetParamValues("alice")

		_ = handler.TokenValidate(c)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("cause %v: expected 401, got %d", cause, rec.Code)
		}
		if msg := decodeMessage(t, rec); msg.Message != "The given token is invalid or has expired. Please log in again." {
			t.Fatalf("cause %v: unexpected message: %q", cause, msg.Message)
		}
	}
}

func TestAuthHandler_TokenValidate_EmptyBody(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(&stubSessionService{}, newStubThrottle())

	req := httptest.NewRequest(http.MethodPost, "/users/alice/tokenValidate", strings.NewReader("   "))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("username")
	c.SetParamValues("alice")

	_ = handler.TokenValidate(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
