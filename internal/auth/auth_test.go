package auth

import (
	"context"
	"testing"
	"time"

	"github.com/CaboRojo/stockfolio/internal/apperrs"
	"github.com/CaboRojo/stockfolio/internal/common/config"
	"github.com/CaboRojo/stockfolio/internal/common/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService(ttl time.Duration) *TokenService {
	return NewTokenService(&config.Auth{
		JWTSecret: "test-secret",
		TokenTTL:  ttl,
	})
}

func TestIsPasswordValid(t *testing.T) {
	cases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"valid", "Passw0rd!", true},
		{"too short", "Pa0!", false},
		{"no lowercase", "PASSW0RD!", false},
		{"no uppercase", "passw0rd!", false},
		{"no digit", "Password!", false},
		{"no special", "Passw0rdX", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsPasswordValid(tc.password))
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("Passw0rd!")
	require.NoError(t, err)
	require.NotEqual(t, "Passw0rd!", hashed)

	assert.True(t, CheckPassword("Passw0rd!", hashed))
	assert.False(t, CheckPassword("wrong", hashed))
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := newTokenService(time.Hour)

	token, err := tokens.Issue(42)
	require.NoError(t, err)

	userID, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenExpired(t *testing.T) {
	tokens := newTokenService(-time.Minute)

	token, err := tokens.Issue(42)
	require.NoError(t, err)

	_, err = tokens.Parse(token)
	assert.ErrorIs(t, err, apperrs.ErrExpiredToken)
}

func TestTokenTampered(t *testing.T) {
	tokens := newTokenService(time.Hour)

	token, err := tokens.Issue(42)
	require.NoError(t, err)

	_, err = tokens.Parse(token + "x")
	assert.ErrorIs(t, err, apperrs.ErrInvalidToken)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := newTokenService(time.Hour).Issue(42)
	require.NoError(t, err)

	other := NewTokenService(&config.Auth{JWTSecret: "other-secret", TokenTTL: time.Hour})

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, apperrs.ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	_, err := newTokenService(time.Hour).Parse("not-a-token")
	assert.ErrorIs(t, err, apperrs.ErrInvalidToken)
}

type stubUsersRepo struct {
	created *domain.User
	stored  *domain.User
}

func (s *stubUsersRepo) CreateUserWithPortfolio(_ context.Context, user *domain.User) (*domain.User, error) {
	if s.stored != nil && s.stored.Name == user.Name {
		return nil, apperrs.ErrNameTaken
	}

	user.ID = 1
	s.created = user

	return user, nil
}

func (s *stubUsersRepo) GetUserByName(_ context.Context, name string) (*domain.User, error) {
	if s.stored == nil || s.stored.Name != name {
		return nil, apperrs.ErrUserNotFound
	}
	return s.stored, nil
}

func (s *stubUsersRepo) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	if s.stored == nil || s.stored.ID != id {
		return nil, apperrs.ErrUserNotFound
	}
	return s.stored, nil
}

func TestRegister(t *testing.T) {
	users := &stubUsersRepo{}
	svc := NewService(newTokenService(time.Hour), users)

	token, err := svc.Register(context.Background(), "alice", "Passw0rd!")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	require.NotNil(t, users.created)
	assert.Equal(t, "alice", users.created.Name)
	// Only the bcrypt hash reaches the store.
	assert.NotEqual(t, "Passw0rd!", users.created.HashedPassword)
	assert.True(t, CheckPassword("Passw0rd!", users.created.HashedPassword))
}

func TestRegister_WeakPassword(t *testing.T) {
	users := &stubUsersRepo{}
	svc := NewService(newTokenService(time.Hour), users)

	_, err := svc.Register(context.Background(), "alice", "weak")
	assert.ErrorIs(t, err, apperrs.ErrWeakPassword)
	assert.Nil(t, users.created)
}

func TestRegister_EmptyName(t *testing.T) {
	svc := NewService(newTokenService(time.Hour), &stubUsersRepo{})

	_, err := svc.Register(context.Background(), "", "Passw0rd!")
	assert.ErrorIs(t, err, apperrs.ErrInvalidCredentials)
}

func TestRegister_NameTaken(t *testing.T) {
	users := &stubUsersRepo{stored: &domain.User{ID: 1, Name: "alice"}}
	svc := NewService(newTokenService(time.Hour), users)

	_, err := svc.Register(context.Background(), "alice", "Passw0rd!")
	assert.ErrorIs(t, err, apperrs.ErrNameTaken)
}

func TestLogin(t *testing.T) {
	hashed, err := HashPassword("Passw0rd!")
	require.NoError(t, err)

	tokens := newTokenService(time.Hour)
	svc := NewService(tokens, &stubUsersRepo{stored: &domain.User{
		ID:             7,
		Name:           "alice",
		HashedPassword: hashed,
	}})

	token, userID, err := svc.Login(context.Background(), "alice", "Passw0rd!")
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)

	parsedID, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), parsedID)
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed, err := HashPassword("Passw0rd!")
	require.NoError(t, err)

	svc := NewService(newTokenService(time.Hour), &stubUsersRepo{stored: &domain.User{
		ID:             7,
		Name:           "alice",
		HashedPassword: hashed,
	}})

	_, _, err = svc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, apperrs.ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := NewService(newTokenService(time.Hour), &stubUsersRepo{})

	_, _, err := svc.Login(context.Background(), "nobody", "Passw0rd!")
	// Unknown names are indistinguishable from wrong passwords.
	assert.ErrorIs(t, err, apperrs.ErrInvalidCredentials)
}
