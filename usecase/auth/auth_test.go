package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/plannery/backend/domain"
)

type fakeUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]*domain.User{},
		byEmail: map[string]*domain.User{},
	}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if user, ok := r.byID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if user, ok := r.byEmail[email]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, taken := r.byEmail[user.Email]; taken {
		return domain.ErrEmailTaken
	}
	if user.ID == "" {
		r.nextID++
		user.ID = fmt.Sprintf("u%d", r.nextID)
	}
	copied := *user
	r.byID[user.ID] = &copied
	r.byEmail[user.Email] = &copied
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.byID[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	copied := *user
	r.byID[user.ID] = &copied
	r.byEmail[user.Email] = &copied
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*domain.Session{}}
}

func (r *fakeSessionRepo) Get(_ context.Context, id string) (*domain.Session, error) {
	if s, ok := r.sessions[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (r *fakeSessionRepo) Save(_ context.Context, session *domain.Session) error {
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) Extend(_ context.Context, _ string, _ int) error {
	return nil
}

func newTestUseCase() (*UseCase, *fakeUserRepo, *fakeSessionRepo) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	uc := New(users, sessions, Config{
		JWTSecret:  "test-secret",
		Issuer:     "plannery-test",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	}, nil)
	return uc, users, sessions
}

func TestRegisterAndLogin(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	result, err := uc.Register(ctx, "Alex@Example.com", "hunter2hunter2", "Alex")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if result.User.Email != "alex@example.com" {
		t.Errorf("email not normalized: %q", result.User.Email)
	}
	if result.Tokens.AccessToken == "" || result.Tokens.RefreshToken == "" {
		t.Error("register should issue both tokens")
	}

	login, err := uc.Login(ctx, "alex@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.ID != result.User.ID {
		t.Error("login resolved a different user")
	}
}

func TestRegisterValidation(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		userName string
	}{
		{"missing email", "", "hunter2hunter2", "Alex"},
		{"malformed email", "not-an-email", "hunter2hunter2", "Alex"},
		{"short password", "a@example.com", "short", "Alex"},
		{"missing name", "a@example.com", "hunter2hunter2", "  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.Register(ctx, tt.email, tt.password, tt.userName); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
				t.Errorf("want INVALID, got %v", err)
			}
		})
	}
}

func TestLoginWrongCredentialsIndistinguishable(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	if _, err := uc.Register(ctx, "alex@example.com", "hunter2hunter2", "Alex"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, wrongPassword := uc.Login(ctx, "alex@example.com", "wrong-password")
	_, unknownEmail := uc.Login(ctx, "nobody@example.com", "hunter2hunter2")

	if !domain.IsDomainError(wrongPassword, domain.ErrCodeUnauthorized) {
		t.Errorf("wrong password: want UNAUTHORIZED, got %v", wrongPassword)
	}
	if !domain.IsDomainError(unknownEmail, domain.ErrCodeUnauthorized) {
		t.Errorf("unknown email: want UNAUTHORIZED, got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Error("wrong email and wrong password should be indistinguishable")
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	uc, _, sessions := newTestUseCase()
	ctx := context.Background()

	result, err := uc.Register(ctx, "alex@example.com", "hunter2hunter2", "Alex")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	oldToken := result.Tokens.RefreshToken

	refreshed, err := uc.Refresh(ctx, oldToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.Tokens.RefreshToken == oldToken {
		t.Error("refresh must rotate the refresh token")
	}
	if _, ok := sessions.sessions[oldToken]; ok {
		t.Error("rotated session should be revoked")
	}

	if _, err := uc.Refresh(ctx, oldToken); !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
		t.Errorf("replaying a rotated token: want UNAUTHORIZED, got %v", err)
	}
}

func TestRefreshExpiredSession(t *testing.T) {
	uc, _, sessions := newTestUseCase()
	ctx := context.Background()

	result, err := uc.Register(ctx, "alex@example.com", "hunter2hunter2", "Alex")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	uc.now = func() time.Time { return time.Now().Add(48 * time.Hour) }

	token := result.Tokens.RefreshToken
	if _, err := uc.Refresh(ctx, token); !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
		t.Errorf("expired session: want UNAUTHORIZED, got %v", err)
	}
	if _, ok := sessions.sessions[token]; ok {
		t.Error("expired session should be deleted on use")
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	uc, _, sessions := newTestUseCase()
	ctx := context.Background()

	result, err := uc.Register(ctx, "alex@example.com", "hunter2hunter2", "Alex")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := uc.Logout(ctx, result.Tokens.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(sessions.sessions) != 0 {
		t.Error("logout should delete the refresh session")
	}
}

func TestPasswordTruncation(t *testing.T) {
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}
	password := string(long)

	hash, err := hashPassword(password)
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	if !verifyPassword(password, hash) {
		t.Error("long password should verify against its own hash")
	}
	// Bytes past the bcrypt limit do not participate.
	if !verifyPassword(password+"extra", hash) {
		t.Error("passwords identical in the first 72 bytes should match")
	}
}
