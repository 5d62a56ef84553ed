package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/marketpro/backoffice/internal/domain/model"
	"github.com/marketpro/backoffice/internal/domain/port/driven"
)

// BcryptCost is the work factor for stored password hashes.
const BcryptCost = 12

const tokenIssuer = "marketpro"

// Token is a signed bearer token issued at login.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// AuthService authenticates users and issues HS256 bearer tokens whose
// subject is the user ID.
type AuthService struct {
	users  driven.UserStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	cost   int
}

// NewAuthService creates a new AuthService signing tokens with secret.
func NewAuthService(users driven.UserStore, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		cost:   BcryptCost,
	}
}

// Login verifies username and password and issues a token. Unknown users and
// wrong passwords both fail with model.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (Token, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// Spend the same bcrypt work as a password comparison.
			_, _ = bcrypt.GenerateFromPassword([]byte(password), s.cost)
			return Token{}, model.ErrInvalidCredentials
		}
		return Token{}, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Token{}, model.ErrInvalidCredentials
	}

	return s.issue(user.ID)
}

func (s *AuthService) issue(userID int64) (Token, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		Issuer:    tokenIssuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return Token{AccessToken: signed, ExpiresAt: expiresAt}, nil
}

// Verify validates a bearer token and returns the user ID it was issued for.
// Any failure yields model.ErrInvalidToken.
func (s *AuthService) Verify(tokenString string) (int64, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrInvalidToken
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return 0, model.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, model.ErrInvalidToken
	}
	return userID, nil
}

// CurrentUser returns the user with the given ID.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (model.User, error) {
	return s.users.GetByID(ctx, userID)
}

// ChangePassword replaces the password of userID after checking current.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return model.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// EnsureUser creates username with password if it does not exist yet. An
// existing account is left untouched.
func (s *AuthService) EnsureUser(ctx context.Context, username, password string) error {
	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("load user %q: %w", username, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, model.User{Username: username, PasswordHash: string(hash)})
	if err != nil {
		return fmt.Errorf("create user %q: %w", username, err)
	}

	slog.Info("bootstrap user created", "username", user.Username, "user_id", user.ID)
	return nil
}
