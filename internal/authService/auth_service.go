package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"auction-marketplace/internal/biddingerrors"
	"auction-marketplace/internal/cache"
	"auction-marketplace/internal/models"
	"auction-marketplace/internal/repository"
	"auction-marketplace/utils"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 6

var validate = validator.New()

// Claims is the JWT payload of a session token
type Claims struct {
	UserID  uint   `json:"uid"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"admin"`
	jwt.RegisteredClaims
}

// RegisterInput is a registration form
type RegisterInput struct {
	Email           string
	FirstName       string
	LastName        string
	Password        string
	ConfirmPassword string
}

// Session is handed to the client after a successful login
type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

// AuthService registers users and issues and verifies bearer tokens
type AuthService struct {
	repo      repository.AuctionDB
	secret    []byte
	ttl       time.Duration
	blacklist *cache.TokenBlacklist
	now       func() time.Time
}

// NewAuthService creates a new AuthService; a nil blacklist disables logout revocation
func NewAuthService(repo repository.AuctionDB, secret string, ttl time.Duration, blacklist *cache.TokenBlacklist) *AuthService {
	return &AuthService{
		repo:      repo,
		secret:    []byte(secret),
		ttl:       ttl,
		blacklist: blacklist,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used for token timestamps
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// Register creates a regular, active user
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	if err := validateRegistration(in); err != nil {
		return models.User{}, err
	}

	user := models.NewUser(in.Email, in.FirstName, in.LastName)
	user.CreatedAt = s.now()
	if err := user.SetPassword(in.Password); err != nil {
		return models.User{}, fmt.Errorf("service: failed to hash password: %w", err)
	}
	if err := s.repo.Users().CreateUser(ctx, &user); err != nil {
		return models.User{}, fmt.Errorf("service: failed to register user: %w", err)
	}

	utils.Info("user registered", map[string]any{"user_id": user.ID, "email": user.Email})
	return user, nil
}

func validateRegistration(in RegisterInput) error {
	switch {
	case strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.FirstName) == "" ||
		strings.TrimSpace(in.LastName) == "" || in.Password == "":
		return fmt.Errorf("service: %w - all fields are required", biddingerrors.ErrInvalidRegistration)
	case len(in.Password) < MinPasswordLength:
		return fmt.Errorf("service: %w - password must be at least %d characters", biddingerrors.ErrInvalidRegistration, MinPasswordLength)
	case in.Password != in.ConfirmPassword:
		return fmt.Errorf("service: %w - passwords do not match", biddingerrors.ErrInvalidRegistration)
	}
	if err := validate.Var(strings.TrimSpace(in.Email), "email"); err != nil {
		return fmt.Errorf("service: %w - invalid email address", biddingerrors.ErrInvalidRegistration)
	}
	return nil
}

// Login checks the credentials, stamps last_login and issues a token
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := s.repo.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, biddingerrors.ErrUserNotFound) {
			return Session{}, fmt.Errorf("service: %w", biddingerrors.ErrInvalidCredentials)
		}
		return Session{}, fmt.Errorf("service: failed to load user: %w", err)
	}
	if !user.CheckPassword(password) {
		utils.Warn("failed login", map[string]any{"user_id": user.ID})
		return Session{}, fmt.Errorf("service: %w", biddingerrors.ErrInvalidCredentials)
	}
	if !user.IsActive {
		return Session{}, fmt.Errorf("service: %w - user %d", biddingerrors.ErrAccountDisabled, user.ID)
	}

	now := s.now()
	if err := s.repo.Users().UpdateLastLogin(ctx, user.ID, now); err != nil {
		return Session{}, fmt.Errorf("service: failed to record login: %w", err)
	}
	user.LastLogin = &now

	token, expires, err := s.issueToken(user, now)
	if err != nil {
		return Session{}, err
	}

	utils.Info("user logged in", map[string]any{"user_id": user.ID})
	return Session{Token: token, ExpiresAt: expires, User: user}, nil
}

func (s *AuthService) issueToken(user models.User, now time.Time) (string, time.Time, error) {
	expires := now.Add(s.ttl)
	claims := Claims{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("service: failed to sign token: %w", err)
	}
	return signed, expires, nil
}

// Authenticate verifies a bearer token and resolves the caller from the stored user
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.Identity, error) {
	claims, err := s.parse(token)
	if err != nil {
		return models.Identity{}, err
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return models.Identity{}, fmt.Errorf("service: failed to check token: %w", err)
		}
		if revoked {
			return models.Identity{}, fmt.Errorf("service: %w", biddingerrors.ErrTokenRevoked)
		}
	}

	user, err := s.repo.Users().GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, biddingerrors.ErrUserNotFound) {
			return models.Identity{}, fmt.Errorf("service: %w - user %d no longer exists", biddingerrors.ErrUnauthorized, claims.UserID)
		}
		return models.Identity{}, fmt.Errorf("service: failed to load user: %w", err)
	}
	if !user.IsActive {
		return models.Identity{}, fmt.Errorf("service: %w - user %d", biddingerrors.ErrAccountDisabled, user.ID)
	}

	return models.Identity{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		TokenID: claims.ID,
		Expires: claims.ExpiresAt.Time,
	}, nil
}

func (s *AuthService) parse(token string) (*Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("service: %w - missing token", biddingerrors.ErrUnauthorized)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("service: %w - %v", biddingerrors.ErrUnauthorized, err)
	}
	if claims.ID == "" || claims.UserID == 0 {
		return nil, fmt.Errorf("service: %w - incomplete claims", biddingerrors.ErrUnauthorized)
	}
	return claims, nil
}

// Logout revokes the token behind identity until it expires
func (s *AuthService) Logout(ctx context.Context, identity models.Identity) error {
	if s.blacklist == nil || identity.TokenID == "" {
		return nil
	}
	if err := s.blacklist.Revoke(ctx, identity.TokenID, identity.Expires); err != nil {
		return fmt.Errorf("service: failed to revoke token: %w", err)
	}
	utils.Info("user logged out", map[string]any{"user_id": identity.UserID})
	return nil
}

// Me returns the stored user behind identity
func (s *AuthService) Me(ctx context.Context, identity models.Identity) (models.User, error) {
	user, err := s.repo.Users().GetUserByID(ctx, identity.UserID)
	if err != nil {
		return models.User{}, fmt.Errorf("service: failed to load user: %w", err)
	}
	return user, nil
}
