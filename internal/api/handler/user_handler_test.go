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

type stubUserService struct {
	createFn         func(ctx context.Context, user *domain.User) error
	existsFn         func(ctx context.Context, username string) (bool, error)
	getFn            func(ctx context.Context, username string) (*domain.User, error)
	updateFn         func(ctx context.Context, username, token string, upd ports.UserUpdate) error
	updatePasswordFn func(ctx context.Context, username, token, oldDigest, newPassword string) error
}

func (s *stubUserService) Create(ctx context.Context, user *domain.User) error {
	return s.createFn(ctx, user)
}

func (s *stubUserService) Exists(ctx context.Context, username string) (bool, error) {
	return s.existsFn(ctx, username)
}

func (s *stubUserService) Get(ctx context.Context, username string) (*domain.User, error) {
	return s.getFn(ctx, username)
}

func (s *stubUserService) Update(ctx context.Context, username, token string, upd ports.UserUpdate) error {
	return s.updateFn(ctx, username, token, upd)
}

func (s *stubUserService) UpdatePassword(ctx context.Context, username, token, oldDigest, newPassword string) error {
	return s.updatePasswordFn(ctx, username, token, oldDigest, newPassword)
}

func userContext(e *echo.Echo, method, target, body, username string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if username != "" {
		c.SetParamNames("username")
		c.SetParamValues(username)
	}
	return c, rec
}

func TestUserHandler_Create_Success(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		createFn: func(ctx context.Context, user *domain.User) error {
			if user.Username != "alice" || user.Password != "secret" {
				t.Fatalf("unexpected user: %+v", user)
			}
			return nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := userContext(e, http.MethodPost, "/users", `{"username":"alice","password":"secret"}`, "")
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/users/alice" {
		t.Fatalf("unexpected Location header: %q", loc)
	}
	var created CreatedMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if created.EntityURL != "/users/alice" {
		t.Fatalf("unexpected entity url: %q", created.EntityURL)
	}
	if created.Message != "User `alice` created." {
		t.Fatalf("unexpected message: %q", created.Message)
	}
}

func TestUserHandler_Create_MissingFields(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		createFn: func(ctx context.Context, user *domain.User) error {
			return domain.ErrInvalidCredentials
		},
	}
	handler := NewUserHandler(stub)

	c, rec := userContext(e, http.MethodPost, "/users", `{"password":"x"}`, "")
	_ = handler.Create(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg.Message != "Given user info must contain username" {
		t.Fatalf("unexpected message: %q", msg.Message)
	}

	c, rec = userContext(e, http.MethodPost, "/users", `{"username":"alice"}`, "")
	_ = handler.Create(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg.Message != "Given user info must contain password" {
		t.Fatalf("unexpected message: %q", msg.Message)
	}
}

func TestUserHandler_Create_Duplicate(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		createFn: func(ctx context.Context, user *domain.User) error {
			return domain.ErrUserExists
		},
	}
	handler := NewUserHandler(stub)

	c, rec := userContext(e, http.MethodPost, "/users", `{"username":"alice","password":"x"}`, "")
	_ = handler.Create(c)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg.Message != "User with same username already exists." {
		t.Fatalf("unexpected message: %q", msg.Message)
	}
}

func TestUserHandler_Exists(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		existsFn: func(ctx context.Context, username string) (bool, error) {
			return username == "alice", nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := userContext(e, http.MethodHead, "/users/alice", "", "alice")
	if err := handler.Exists(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, rec = userContext(e, http.MethodHead, "/users/ghost", "", "ghost")
	_ = handler.Exists(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserHandler_Get(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		getFn: func(ctx context.Context, username string) (*domain.User, error) {
			if username != "alice" {
				return nil, domain.ErrUserNotFound
			}
			return &domain.User{Username: "alice", Nickname: "Ally"}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := userContext(e, http.MethodGet, "/users/alice", "", "alice")
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var user domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if user.Nickname != "Ally" {
		t.Fatalf("unexpected user: %+v", user)
	}

	c, rec = userContext(e, http.MethodGet, "/users/ghost", "", "ghost")
	_ = handler.Get(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserHandler_Update_ErrorMapping(t *testing.T) {
	cases := []struct {
		cause       error
		wantCode    int
		wantMessage string
	}{
		{domain.ErrUserNotFound, http.StatusNotFound, "User with given user name does not exist."},
		{domain.ErrTokenNotFound, http.StatusUnauthorized, "The given token is invalid or has expired, please log in again."},
		{domain.ErrTokenExpired, http.StatusUnauthorized, "The given token is invalid or has expired, please log in again."},
		{domain.ErrNotResourceOwner, http.StatusForbidden, "You cannot update others' information."},
	}
	for _, tc := range cases {
		e := echo.New()
		stub := &stubUserService{
			updateFn: func(ctx context.Context, username, token string, upd ports.UserUpdate) error {
				return tc.cause
			},
		}
		handler := NewUserHandler(stub)

		c, rec := userContext(e, http.MethodPost, "/users/alice", `{"token":"tok","user":{"nickname":"x"}}`, "alice")
		_ = handler.Update(c)

		if rec.Code != tc.wantCode {
			t.Fatalf("cause %v: expected %d, got %d", tc.cause, tc.wantCode, rec.Code)
		}
		if msg := decodeMessage(t, rec); msg.Message != tc.wantMessage {
			t.Fatalf("cause %v: unexpected message: %q", tc.cause, msg.Message)
		}
	}
}

func TestUserHandler_Update_Success(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		updateFn: func(ctx context.Context, username, token string, upd ports.UserUpdate) error {
			if username != "alice" || token != "tok" || upd.Nickname != "Ally" {
				t.Fatalf("unexpected args: %s %s %+v", username, token, upd)
			}
			return nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := userContext(e, http.MethodPost, "/users/alice", `{"token":"tok","user":{"nickname":"Ally"}}`, "alice")
	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var created CreatedMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if created.Message != "User updated." {
		t.Fatalf("unexpected message: %q", created.Message)
	}
}

func TestUserHandler_UpdatePassword_ErrorMapping(t *testing.T) {
	cases := []struct {
		cause       error
		wantCode    int
		wantMessage string
	}{
		{domain.ErrTokenNotFound, http.StatusUnauthorized, "The given token is invalid or has expired. Please log in again."},
		{domain.ErrNotResourceOwner, http.StatusForbidden, "You cannot change other's password."},
		{domain.ErrUserNotFound, http.StatusNotFound, "User with given username does not exist."},
		{domain.ErrWrongOldPassword, http.StatusUnauthorized, "The given old password is incorrect."},
	}
	for _, tc := range cases {
		e := echo.New()
		stub := &stubUserService{
			updatePasswordFn: func(ctx context.Context, username, token, oldDigest, newPassword string) error {
				return tc.cause
			},
		}
		handler := NewUserHandler(stub)

		body := `{"token":"tok","oldPassword":"olddigest","newPassword":"new"}`
		c, rec := userContext(e, http.MethodPost, "/users/alice/password", body, "alice")
		_ = handler.UpdatePassword(c)

		if rec.Code != tc.wantCode {
			t.Fatalf("cause %v: expected %d, got %d", tc.cause, tc.wantCode, rec.Code)
		}
		if msg := decodeMessage(t, rec); msg.Message != tc.wantMessage {
			t.Fatalf("cause %v: unexpected message: %q", tc.cause, msg.Message)
		}
	}
}

func TestUserHandler_UpdatePassword_Success(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		updatePasswordFn: func(ctx context.Context, username, token, oldDigest, newPassword string) error {
			if username != "alice" || token != "tok" || oldDigest != "olddigest" || newPassword != "new" {
				t.Fatalf("unexpected args: %s %s %s %s", username, token, oldDigest, newPassword)
			}
			return nil
		},
	}
	handler := NewUserHandler(stub)

	body := `{"token":"tok","oldPassword":"olddigest","newPassword":"new"}`
	c, rec := userContext(e, http.MethodPost, "/users/alice/password", body, "alice")
	if err := handler.UpdatePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var created CreatedMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if created.Message != "User password successfully updated." {
		t.Fatalf("unexpected message: %q", created.Message)
	}
}
