package app_test

import (
	"context"
	"testing"
	"time"

	"habitkit/internal/app"
	"habitkit/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	byUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	byIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	createFn     func(ctx context.Context, username, passwordHash string) (*domain.User, error)
	countFn      func(ctx context.Context) (int, error)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.byUsernameFn != nil {
		return m.byUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.byIDFn != nil {
		return m.byIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, passwordHash)
	}
	return &domain.User{ID: 1, Username: username, PasswordHash: passwordHash}, nil
}

func (m *mockUserRepo) CountUsers(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockSessionRepo struct {
	sessions map[string]*domain.Session
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (m *mockSessionRepo) Create(ctx context.Context, userID int64, token, userAgent string, expiresAt time.Time) error {
	m.sessions[token] = &domain.Session{Token: token, UserID: userID, UserAgent: userAgent, ExpiresAt: expiresAt, CreatedAt: time.Now()}
	return nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	return m.sessions[token], nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) error {
	for token, s := range m.sessions {
		if time.Now().After(s.ExpiresAt) {
			delete(m.sessions, token)
		}
	}
	return nil
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(h)
}

func TestLogin_Success(t *testing.T) {
	hash := hashOf(t, "hunter2")
	users := &mockUserRepo{byUsernameFn: func(_ context.Context, username string) (*domain.User, error) {
		if username == "alice" {
			return &domain.User{ID: 7, Username: "alice", PasswordHash: hash}, nil
		}
		return nil, nil
	}}
	sessions := newMockSessionRepo()
	svc := app.NewAuthService(users, sessions)

	token, err := svc.Login(context.Background(), "alice", "hunter2", "test-agent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if sessions.sessions[token].UserID != 7 {
		t.Fatal("session bound to wrong user")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	hash := hashOf(t, "hunter2")
	users := &mockUserRepo{byUsernameFn: func(_ context.Context, username string) (*domain.User, error) {
		if username == "alice" {
			return &domain.User{ID: 7, Username: "alice", PasswordHash: hash}, nil
		}
		return nil, nil
	}}
	svc := app.NewAuthService(users, newMockSessionRepo())

	if _, err := svc.Login(context.Background(), "alice", "wrong", "ua"); err != app.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody", "hunter2", "ua"); err != app.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_SSOProvisionedAccountRejectsPassword(t *testing.T) {
	users := &mockUserRepo{byUsernameFn: func(_ context.Context, _ string) (*domain.User, error) {
		return &domain.User{ID: 7, Username: "alice", PasswordHash: ""}, nil
	}}
	svc := app.NewAuthService(users, newMockSessionRepo())

	if _, err := svc.Login(context.Background(), "alice", "", "ua"); err != app.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestValidateSession(t *testing.T) {
	user := &domain.User{ID: 7, Username: "alice"}
	users := &mockUserRepo{byIDFn: func(_ context.Context, id int64) (*domain.User, error) {
		if id == 7 {
			return user, nil
		}
		return nil, nil
	}}
	sessions := newMockSessionRepo()
	svc := app.NewAuthService(users, sessions)

	_ = sessions.Create(context.Background(), 7, "tok", "agent-a", time.Now().Add(time.Hour))

	got, err := svc.ValidateSession(context.Background(), "tok", "agent-a")
	if err != nil || got.ID != 7 {
		t.Fatalf("expected user 7, got %v, %v", got, err)
	}

	if _, err := svc.ValidateSession(context.Background(), "missing", "agent-a"); err != app.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	// A mismatched user agent invalidates the session entirely.
	_ = sessions.Create(context.Background(), 7, "tok2", "agent-a", time.Now().Add(time.Hour))
	if _, err := svc.ValidateSession(context.Background(), "tok2", "agent-b"); err != app.ErrSessionExpired {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if _, ok := sessions.sessions["tok2"]; ok {
		t.Fatal("mismatched session should be deleted")
	}

	_ = sessions.Create(context.Background(), 7, "tok3", "agent-a", time.Now().Add(-time.Minute))
	if _, err := svc.ValidateSession(context.Background(), "tok3", "agent-a"); err != app.ErrSessionExpired {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestCreateInitialUser_OnlyOnce(t *testing.T) {
	count := 0
	users := &mockUserRepo{
		countFn: func(_ context.Context) (int, error) { return count, nil },
		createFn: func(_ context.Context, username, hash string) (*domain.User, error) {
			count++
			return &domain.User{ID: 1, Username: username, PasswordHash: hash}, nil
		},
	}
	svc := app.NewAuthService(users, newMockSessionRepo())

	if err := svc.CreateInitialUser(context.Background(), "alice", "hunter2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.CreateInitialUser(context.Background(), "mallory", "pw"); err == nil {
		t.Fatal("second setup call must fail")
	}
}

func TestValidateForwardAuth_AutoProvisions(t *testing.T) {
	created := false
	users := &mockUserRepo{
		byUsernameFn: func(_ context.Context, _ string) (*domain.User, error) { return nil, nil },
		createFn: func(_ context.Context, username, hash string) (*domain.User, error) {
			created = true
			if hash != "" {
				t.Fatalf("forward-auth users must have no password hash, got %q", hash)
			}
			return &domain.User{ID: 2, Username: username}, nil
		},
	}
	svc := app.NewAuthService(users, newMockSessionRepo())

	u, err := svc.ValidateForwardAuth(context.Background(), "bob@example.com")
	if err != nil || u == nil {
		t.Fatalf("unexpected: %v, %v", u, err)
	}
	if !created {
		t.Fatal("expected auto-provisioning")
	}

	if _, err := svc.ValidateForwardAuth(context.Background(), ""); err == nil {
		t.Fatal("empty remote user must fail")
	}
}
