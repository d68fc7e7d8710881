package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"auction-marketplace/internal/biddingerrors"
	"auction-marketplace/internal/cache"
	model "auction-marketplace/internal/models"
	"auction-marketplace/internal/repository"
	"auction-marketplace/internal/testutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestAuth(t *testing.T) (*AuthService, *repository.GormRepo) {
	t.Helper()
	repo := repository.NewGormRepo(testutil.NewTestDB(t))
	blacklist := cache.NewTokenBlacklist(cache.NewMemoryStore())
	return NewAuthService(repo, testSecret, time.Hour, blacklist), repo
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Email:           "Jane.Doe@Example.com ",
		FirstName:       "Jane",
		LastName:        "Doe",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		modify        func(in *RegisterInput)
		expectedError error
	}{
		{name: "valid", modify: func(in *RegisterInput) {}},
		{name: "missing_first_name", modify: func(in *RegisterInput) { in.FirstName = " " }, expectedError: biddingerrors.ErrInvalidRegistration},
		{name: "short_password", modify: func(in *RegisterInput) { in.Password, in.ConfirmPassword = "12345", "12345" }, expectedError: biddingerrors.ErrInvalidRegistration},
		{name: "password_mismatch", modify: func(in *RegisterInput) { in.ConfirmPassword = "secret2" }, expectedError: biddingerrors.ErrInvalidRegistration},
		{name: "malformed_email", modify: func(in *RegisterInput) { in.Email = "jane.example.com" }, expectedError: biddingerrors.ErrInvalidRegistration},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			service, _ := newTestAuth(t)
			in := validRegistration()
			tt.modify(&in)

			user, err := service.Register(context.Background(), in)
			if tt.expectedError != nil {
				require.True(t, errors.Is(err, tt.expectedError), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.NotZero(t, user.ID)
			require.Equal(t, "jane.doe@example.com", user.Email)
			require.False(t, user.IsAdmin)
			require.True(t, user.IsActive)
			require.True(t, user.CheckPassword("secret1"))
		})
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	service, _ := newTestAuth(t)
	ctx := context.Background()

	_, err := service.Register(ctx, validRegistration())
	require.NoError(t, err)

	in := validRegistration()
	in.Email = "JANE.DOE@example.com"
	_, err = service.Register(ctx, in)
	require.True(t, errors.Is(err, biddingerrors.ErrEmailTaken), "got %v", err)
}

func TestAuthService_LoginAndAuthenticate(t *testing.T) {
	t.Parallel()

	service, repo := newTestAuth(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, err = service.Login(ctx, "jane.doe@example.com", "wrong-password")
	require.True(t, errors.Is(err, biddingerrors.ErrInvalidCredentials), "got %v", err)

	_, err = service.Login(ctx, "nobody@example.com", "secret1")
	require.True(t, errors.Is(err, biddingerrors.ErrInvalidCredentials), "got %v", err)

	session, err := service.Login(ctx, " JANE.DOE@example.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.NotNil(t, session.User.LastLogin)

	stored, err := repo.Users().GetUserByID(ctx, registered.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin)

	identity, err := service.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	require.Equal(t, registered.ID, identity.UserID)
	require.False(t, identity.IsAdmin)
	require.NotEmpty(t, identity.TokenID)

	require.NoError(t, service.Logout(ctx, identity))
	_, err = service.Authenticate(ctx, session.Token)
	require.True(t, errors.Is(err, biddingerrors.ErrTokenRevoked), "got %v", err)
}

func TestAuthService_AuthenticateRejects(t *testing.T) {
	t.Parallel()

	service, _ := newTestAuth(t)
	ctx := context.Background()
	user, err := service.Register(ctx, validRegistration())
	require.NoError(t, err)

	expired, _, err := service.issueToken(user, time.Now().UTC().Add(-2*time.Hour))
	require.NoError(t, err)

	foreign := NewAuthService(nil, "other-secret", time.Hour, nil)
	forged, _, err := foreign.issueToken(user, time.Now().UTC())
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: user.ID}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-token"},
		{name: "expired", token: expired},
		{name: "wrong_secret", token: forged},
		{name: "unsigned", token: none},
	}
	for _, tt := range tests {
		_, err := service.Authenticate(ctx, tt.token)
		require.True(t, errors.Is(err, biddingerrors.ErrUnauthorized), "%s: got %v", tt.name, err)
	}
}

func TestAuthService_DisabledUser(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	db := repository.NewMockAuctionDB(ctrl)
	users := repository.NewMockUserRepository(ctrl)
	db.EXPECT().Users().Return(users).AnyTimes()

	user := model.NewUser("inactive@example.com", "In", "Active")
	user.ID = 3
	user.IsActive = false
	require.NoError(t, user.SetPassword("secret1"))
	users.EXPECT().GetUserByEmail(gomock.Any(), "inactive@example.com").Return(user, nil)

	service := NewAuthService(db, testSecret, time.Hour, nil)
	_, err := service.Login(context.Background(), "inactive@example.com", "secret1")
	require.True(t, errors.Is(err, biddingerrors.ErrAccountDisabled), "got %v", err)

	// a token issued before the account was disabled stops working
	token, _, err := service.issueToken(user, time.Now().UTC())
	require.NoError(t, err)
	users.EXPECT().GetUserByID(gomock.Any(), uint(3)).Return(user, nil)

	_, err = service.Authenticate(context.Background(), token)
	require.True(t, errors.Is(err, biddingerrors.ErrAccountDisabled), "got %v", err)
}

func TestAuthService_LogoutWithoutBlacklist(t *testing.T) {
	t.Parallel()

	service := NewAuthService(nil, testSecret, time.Hour, nil)
	require.NoError(t, service.Logout(context.Background(), model.Identity{UserID: 1, TokenID: "abc"}))
}
