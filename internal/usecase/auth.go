package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/friendlist/internal/domain"
	"github.com/ErlanBelekov/friendlist/internal/email"
	"github.com/ErlanBelekov/friendlist/internal/password"
	"github.com/ErlanBelekov/friendlist/internal/repository"
	"github.com/golang-jwt/jwt/v5"
)

const defaultJWTTTL = 24 * time.Hour

// Demo account seeded at startup for local use.
const (
	DemoUserName     = "Demo User"
	DemoUserEmail    = "demo@example.com"
	DemoUserPassword = "demo123"
)

// PasswordHasher is satisfied by *password.Hasher.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) (bool, error)
	Decoy(plain string)
}

type AuthUsecase struct {
	users  repository.UserRepository
	hasher PasswordHasher
	email  email.Sender
	jwtKey []byte
	jwtTTL time.Duration
	logger *slog.Logger
}

func NewAuthUsecase(
	users repository.UserRepository,
	hasher PasswordHasher,
	emailSender email.Sender,
	jwtKey []byte,
	jwtTTL time.Duration,
	logger *slog.Logger,
) *AuthUsecase {
	if jwtTTL <= 0 {
		jwtTTL = defaultJWTTTL
	}
	return &AuthUsecase{
		users:  users,
		hasher: hasher,
		email:  emailSender,
		jwtKey: jwtKey,
		jwtTTL: jwtTTL,
		logger: logger.With("component", "auth_usecase"),
	}
}

// RegisterInput is checked before hashing. Password length counts Unicode
// code points.
type RegisterInput struct {
	Name     string `validate:"required,nonul"`
	Email    string `validate:"required,nonul"`
	Password string `validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `validate:"required,nonul"`
	Password string `validate:"required"`
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string
	User  *domain.User
}

// Register creates the user, issues a token and sends a welcome email.
// Email delivery failures are logged and never fail the registration.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if err := validate.Struct(input); err != nil {
		tags, err := failedTags(err)
		if err != nil {
			return nil, fmt.Errorf("validate registration: %w", err)
		}
		switch {
		case tags["required"]:
			return nil, domain.ErrMissingRegistrationFields
		case tags["nonul"]:
			return nil, domain.ErrNulCharacter
		}
		return nil, domain.ErrPasswordTooShort
	}

	// Cheap check first so a taken email does not pay for a bcrypt round.
	_, err := u.users.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailTaken
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := u.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return nil, domain.ErrPasswordTooLong
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := u.IssueToken(user.ID)
	if err != nil {
		return nil, err
	}

	subject, body := email.Welcome(user.Name)
	if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
		u.logger.WarnContext(ctx, "send welcome email", "user_id", user.ID, "error", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// Login never tells an unknown email apart from a wrong password.
func (u *AuthUsecase) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if err := validate.Struct(input); err != nil {
		tags, err := failedTags(err)
		if err != nil {
			return nil, fmt.Errorf("validate login: %w", err)
		}
		if tags["required"] {
			return nil, domain.ErrMissingCredentials
		}
		// No stored email can contain NUL.
		return nil, domain.ErrInvalidCredentials
	}

	user, err := u.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			u.hasher.Decoy(input.Password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := u.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := u.IssueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// IssueToken signs an HS256 JWT whose subject is userID.
func (u *AuthUsecase) IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(u.jwtTTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.jwtKey)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

// VerifyToken returns the user id embedded in a valid, unexpired token.
func (u *AuthUsecase) VerifyToken(_ context.Context, rawToken string) (string, error) {
	if rawToken == "" {
		return "", domain.ErrTokenMissing
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(rawToken, &claims, func(*jwt.Token) (any, error) {
		return u.jwtKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}

func (u *AuthUsecase) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return user, nil
}

// SeedDemoUser makes sure a fixed demo account exists. It is idempotent:
// an already registered email is returned untouched.
func (u *AuthUsecase) SeedDemoUser(ctx context.Context, name, emailAddr, plain string) (*domain.User, error) {
	existing, err := u.users.FindByEmail(ctx, emailAddr)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("find demo user: %w", err)
	}

	hash, err := u.hasher.Hash(plain)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	user, err := u.users.Create(ctx, &domain.User{Name: name, Email: emailAddr, PasswordHash: hash})
	if errors.Is(err, domain.ErrEmailTaken) {
		return u.users.FindByEmail(ctx, emailAddr)
	}
	if err != nil {
		return nil, fmt.Errorf("create demo user: %w", err)
	}
	return user, nil
}
