package service

import (
	"context"
	"strings"
	"testing"

	config "github.com/maheshrc27/gbpflow/configs"
	"github.com/maheshrc27/gbpflow/internal/models"
	"github.com/maheshrc27/gbpflow/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() (AuthService, *stubUserRepo) {
	ur := &stubUserRepo{users: make(map[int64]*models.User)}
	cfg := config.Config{
		SecretKey:          "0123456789abcdef0123456789abcdef",
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleRedirectURI:  "http://localhost:3000/auth/google/callback",
	}
	return NewAuthService(cfg, ur), ur
}

func TestRegisterAndLogin(t *testing.T) {
	s, ur := newAuthService()

	userID, err := s.Register(context.Background(), &transfer.Registration{
		Email:    "owner@example.com",
		Password: "hunter2!",
		FullName: "Alex Owner",
	})
	require.NoError(t, err)
	require.NotZero(t, userID)

	user := ur.users[userID]
	require.NotNil(t, user)
	assert.NotEqual(t, "hunter2!", user.PasswordHash)
	assert.True(t, user.IsActive)

	loginID, err := s.Login(context.Background(), &transfer.LoginRequest{
		Email:    "owner@example.com",
		Password: "hunter2!",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, loginID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s, _ := newAuthService()

	_, err := s.Register(context.Background(), &transfer.Registration{
		Email:    "owner@example.com",
		Password: "hunter2!",
	})
	require.NoError(t, err)

	_, err = s.Register(context.Background(), &transfer.Registration{
		Email:    "owner@example.com",
		Password: "other",
	})
	assert.Error(t, err)
}

func TestLogin_WrongPassword(t *testing.T) {
	s, _ := newAuthService()

	_, err := s.Register(context.Background(), &transfer.Registration{
		Email:    "owner@example.com",
		Password: "hunter2!",
	})
	require.NoError(t, err)

	_, err = s.Login(context.Background(), &transfer.LoginRequest{
		Email:    "owner@example.com",
		Password: "wrong",
	})
	assert.Error(t, err)
}

func TestLogin_UnknownEmail(t *testing.T) {
	s, _ := newAuthService()

	_, err := s.Login(context.Background(), &transfer.LoginRequest{
		Email:    "nobody@example.com",
		Password: "hunter2!",
	})
	assert.Error(t, err)
}

func TestGoogleAuthURL(t *testing.T) {
	s, _ := newAuthService()

	url, err := s.GoogleAuthURL(42)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "https://accounts.google.com/o/oauth2/auth"))
	assert.Contains(t, url, "access_type=offline")
	assert.Contains(t, url, "state=")
	assert.Contains(t, url, "business.manage")
}
