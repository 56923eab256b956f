package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/wetrack/wetrack/internal/core/domain"
	"github.com/wetrack/wetrack/pkg/digest"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Friends = append([]string(nil), u.Friends...)
	return &clone
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) CountByUsername(_ context.Context, username string) (int64, error) {
	if _, ok := r.users[username]; ok {
		return 1, nil
	}
	return 0, nil
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) error {
	r.users[user.Username] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.Username]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.Username] = cloneUser(user)
	return nil
}

type stubTokenRepo struct {
	byToken map[string]*domain.UserToken
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{byToken: make(map[string]*domain.UserToken)}
}

func (r *stubTokenRepo) FindByToken(_ context.Context, token string) (*domain.UserToken, error) {
	t, ok := r.byToken[token]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTokenRepo) FindByUsername(_ context.Context, username string) (*domain.UserToken, error) {
	for _, t := range r.byToken {
		if t.Username == username {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTokenNotFound
}

func (r *stubTokenRepo) Insert(_ context.Context, token *domain.UserToken) error {
	clone := *token
	r.byToken[token.Token] = &clone
	return nil
}

func (r *stubTokenRepo) Delete(_ context.Context, token string) error {
	if _, ok := r.byToken[token]; !ok {
		return domain.ErrTokenNotFound
	}
	delete(r.byToken, token)
	return nil
}

func seedUser(repo *stubUserRepo, username, password string) {
	repo.users[username] = &domain.User{
		Username: username,
		Password: digest.Hash(password),
		Nickname: username,
	}
}

func newTestSessionService(users *stubUserRepo, tokens *stubTokenRepo) *SessionService {
	return NewSessionService(users, tokens, time.Hour, zerolog.Nop())
}

func TestSessionService_Login_Success(t *testing.T) {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	seedUser(users, "alice", "secret")
	svc := newTestSessionService(users, tokens)

	token, err := svc.Login(context.Background(), "alice", digest.Hash("secret"))
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token.Token == "" {
		t.Fatalf("expected non-empty token")
	}
	if token.Username != "alice" {
		t.Fatalf("unexpected token owner: %s", token.Username)
	}
	if !token.ExpireTime.After(token.IssueTime.Time) {
		t.Fatalf("expiry %v not after issue %v", token.ExpireTime, token.IssueTime)
	}
}

func TestSessionService_Login_WrongPassword(t *testing.T) {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	seedUser(users, "alice", "secret")
	svc := newTestSessionService(users, tokens)

	if _, err := svc.Login(context.Background(), "alice", digest.Hash("wrong")); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionService_Login_UnknownUser(t *testing.T) {
	svc := newTestSessionService(newStubUserRepo(), newStubTokenRepo())

	if _, err := svc.Login(context.Background(), "ghost", digest.Hash("pass")); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionService_Login_ReusesUnexpiredToken(t *testing.T) {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	seedUser(users, "alice", "secret")
	svc := newTestSessionService(users, tokens)

	first, err := svc.Login(context.Background(), "alice", digest.Hash("secret"))
	if err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	second, err := svc.Login(context.Background(), "alice", digest.Hash("secret"))
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	if first.Token != second.Token {
		t.Fatalf("expected same token on repeat login, got %s then %s", first.Token, second.Token)
	}
	if len(tokens.byToken) != 1 {
		t.Fatalf("expected a single stored token, got %d", len(tokens.byToken))
	}
}

func TestSessionService_Login_MintsNewTokenAfterExpiry(t *testing.T) {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	seedUser(users, "alice", "secret")
	svc := newTestSessionService(users, tokens)

	first, err := svc.Login(context.Background(), "alice", digest.Hash("secret"))
	if err != nil {
		t.Fatalf("first login failed: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	second, err := svc.Login(context.Background(), "alice", digest.Hash("secret"))
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	if first.Token == second.Token {
		t.Fatalf("expected a fresh token after expiry")
	}
}

func TestSessionService_Login_IdempotentAfterExpiry(t *testing.T) {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	seedUser(users, "alice", "secret")
	svc := newTestSessionService(users, tokens)

	if _, err := svc.Login(context.Background(), "alice", digest.Hash("secret")); err != nil {
		t.Fatalf("first login failed: %v", err)
	}

	// The expired record is replaced, never kept next to the fresh one, so a
	// username-keyed lookup cannot rediscover it on later logins.
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	second, err := svc.Login(context.Background(), "alice", digest.Hash("secret"))
	if err != nil {
		t.Fatalf("post-expiry login failed: %v", err)
	}
	if len(tokens.byToken) != 1 {
		t.Fatalf("expected a single stored token after expiry relogin, got %d", len(tokens.byToken))
	}

	third, err := svc.Login(context.Background(), "alice", digest.Hash("secret"))
	if err != nil {
		t.Fatalf("repeat login failed: %v", err)
	}
	if second.Token != third.Token {
		t.Fatalf("expected same token on repeat login after expiry, got %s then %s", second.Token, third.Token)
	}
	if len(tokens.byToken) != 1 {
		t.Fatalf("expected a single stored token, got %d", len(tokens.byToken))
	}
}

func TestSessionService_Validate_Success(t *testing.T) {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	seedUser(users, "alice", "secret")
	svc := newTestSessionService(users, tokens)

	token, _ := svc.Login(context.Background(), "alice", digest.Hash("secret"))
	if err := svc.Validate(context.Background(), "alice", token.Token); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestSessionService_Validate_NotFound(t *testing.T) {
	svc := newTestSessionService(newStubUserRepo(), newStubTokenRepo())

	if err := svc.Validate(context.Background(), "alice", "nope"); err != domain.ErrTokenNotFound {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestSessionService_Validate_OwnerMismatch(t *testing.T) {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	seedUser(users, "alice", "secret")
	svc := newTestSessionService(users, tokens)

	token, _ := svc.Login(context.Background(), "alice", digest.Hash("secret"))
	if err := svc.Validate(context.Background(), "bob", token.Token); err != domain.ErrTokenOwnerMismatch {
		t.Fatalf("expected ErrTokenOwnerMismatch, got %v", err)
	}
}

func TestSessionService_Validate_Expired(t *testing.T) {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	seedUser(users, "alice", "secret")
	svc := newTestSessionService(users, tokens)

	token, _ := svc.Login(context.Background(), "alice", digest.Hash("secret"))
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	if err := svc.Validate(context.Background(), "alice", token.Token); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestSessionService_Invalidate(t *testing.T) {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	seedUser(users, "alice", "secret")
	svc := newTestSessionService(users, tokens)

	token, _ := svc.Login(context.Background(), "alice", digest.Hash("secret"))
	if err := svc.Invalidate(context.Background(), token.Token); err != nil {
		t.Fatalf("Invalidate returned error: %v", err)
	}
	if err := svc.Validate(context.Background(), "alice", token.Token); err != domain.ErrTokenNotFound {
		t.Fatalf("expected ErrTokenNotFound after invalidation, got %v", err)
	}
}

func TestSessionService_Authorize_Ordering(t *testing.T) {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	seedUser(users, "alice", "secret")
	svc := newTestSessionService(users, tokens)

	token, _ := svc.Login(context.Background(), "alice", digest.Hash("secret"))

	if err := svc.Authorize(context.Background(), "alice", ""); err != domain.ErrMissingToken {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	if err := svc.Authorize(context.Background(), "alice", "bogus"); err != domain.ErrTokenNotFound {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
	if err := svc.Authorize(context.Background(), "bob", token.Token); err != domain.ErrNotResourceOwner {
		t.Fatalf("expected ErrNotResourceOwner, got %v", err)
	}
	if err := svc.Authorize(context.Background(), "alice", token.Token); err != nil {
		t.Fatalf("expected authorization to pass, got %v", err)
	}

	// Expiry outranks ownership so a stale token never reveals whether the
	// caller guessed the right owner.
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if err := svc.Authorize(context.Background(), "bob", token.Token); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired before ownership, got %v", err)
	}
}

func TestSessionService_Resolve(t *testing.T) {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	seedUser(users, "alice", "secret")
	svc := newTestSessionService(users, tokens)

	token, _ := svc.Login(context.Background(), "alice", digest.Hash("secret"))

	owner, err := svc.Resolve(context.Background(), token.Token)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if owner != "alice" {
		t.Fatalf("unexpected owner: %s", owner)
	}

	if _, err := svc.Resolve(context.Background(), ""); err != domain.ErrMissingToken {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	if _, err := svc.Resolve(context.Background(), "bogus"); err != domain.ErrTokenNotFound {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}
