package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/plannery/backend/domain"
	"github.com/plannery/backend/repository"
)

// bcrypt ignores input past 72 bytes; truncate explicitly so long passwords
// verify consistently.
const bcryptMaxBytes = 72

const minPasswordLength = 8

// Config carries token issuance settings.
type Config struct {
	JWTSecret  string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Tokens is the credential pair returned by register, login and refresh.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// Result bundles the authenticated user with fresh tokens.
type Result struct {
	User   *domain.User `json:"user"`
	Tokens Tokens       `json:"tokens"`
}

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	cfg      Config
	logger   *zap.Logger
	now      func() time.Time
}

func New(users repository.UserRepository, sessions repository.SessionRepository, cfg Config, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = time.Hour
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 30 * 24 * time.Hour
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Register creates an account and signs the user in.
func (uc *UseCase) Register(ctx context.Context, email, password, name string) (*Result, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewError(domain.ErrCodeInvalid, "valid email required")
	}
	if len(password) < minPasswordLength {
		return nil, domain.NewError(domain.ErrCodeInvalid, "password must be at least 8 characters")
	}
	if name == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "name required")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "password hashing failed", err)
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.Info("user registered", zap.String("user_id", user.ID))
	return uc.issue(ctx, user)
}

// Login verifies credentials and issues tokens. Wrong email and wrong
// password are indistinguishable to the caller.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*Result, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if !verifyPassword(password, user.PasswordHash) {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(ctx, user)
}

// Refresh rotates the refresh session and returns a new token pair.
func (uc *UseCase) Refresh(ctx context.Context, refreshToken string) (*Result, error) {
	session, err := uc.sessions.Get(ctx, refreshToken)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if session.IsExpired(uc.now()) {
		_ = uc.sessions.Delete(ctx, session.ID)
		return nil, domain.ErrUnauthorized
	}

	user, err := uc.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	if err := uc.sessions.Delete(ctx, session.ID); err != nil {
		uc.logger.Warn("failed to revoke rotated session", zap.Error(err))
	}
	return uc.issue(ctx, user)
}

// Logout revokes the refresh session.
func (uc *UseCase) Logout(ctx context.Context, refreshToken string) error {
	return uc.sessions.Delete(ctx, refreshToken)
}

func (uc *UseCase) issue(ctx context.Context, user *domain.User) (*Result, error) {
	now := uc.now()

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"iss":     uc.cfg.Issuer,
		"iat":     now.Unix(),
		"exp":     now.Add(uc.cfg.AccessTTL).Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(uc.cfg.JWTSecret))
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "token signing failed", err)
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.cfg.RefreshTTL),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	return &Result{
		User: user,
		Tokens: Tokens{
			AccessToken:  access,
			RefreshToken: session.ID,
			TokenType:    "bearer",
			ExpiresIn:    int(uc.cfg.AccessTTL.Seconds()),
		},
	}, nil
}

func hashPassword(password string) (string, error) {
	raw := []byte(password)
	if len(raw) > bcryptMaxBytes {
		raw = raw[:bcryptMaxBytes]
	}
	hash, err := bcrypt.GenerateFromPassword(raw, bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(password, hash string) bool {
	raw := []byte(password)
	if len(raw) > bcryptMaxBytes {
		raw = raw[:bcryptMaxBytes]
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), raw) == nil
}
