package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	config "github.com/maheshrc27/gbpflow/configs"
	"github.com/maheshrc27/gbpflow/internal/models"
	"github.com/maheshrc27/gbpflow/internal/repository"
	"github.com/maheshrc27/gbpflow/internal/transfer"
	"github.com/maheshrc27/gbpflow/pkg/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var googleScopes = []string{
	"https://www.googleapis.com/auth/business.manage",
	"https://www.googleapis.com/auth/userinfo.email",
}

type AuthService interface {
	Register(ctx context.Context, r *transfer.Registration) (int64, error)
	Login(ctx context.Context, r *transfer.LoginRequest) (int64, error)
	GoogleAuthURL(userID int64) (string, error)
	GoogleCallback(ctx context.Context, code, state string) error
}

type authService struct {
	cfg config.Config
	u   repository.UserRepository
}

func NewAuthService(cfg config.Config, u repository.UserRepository) AuthService {
	return &authService{
		cfg: cfg,
		u:   u,
	}
}

func (s *authService) Register(ctx context.Context, r *transfer.Registration) (int64, error) {
	if r.Email == "" || r.Password == "" {
		return 0, errors.New("email and password are required")
	}

	_, isExist, err := s.u.GetByEmail(ctx, r.Email)
	if err != nil {
		return 0, err
	}
	if isExist {
		return 0, errors.New("email is already registered")
	}

	hash, err := utils.HashPassword(r.Password)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	userID, err := s.u.Create(ctx, nil, &models.User{
		Email:        r.Email,
		PasswordHash: hash,
		FullName:     r.FullName,
		IsActive:     true,
	})
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return userID, nil
}

func (s *authService) Login(ctx context.Context, r *transfer.LoginRequest) (int64, error) {
	user, isExist, err := s.u.GetByEmail(ctx, r.Email)
	if err != nil {
		return 0, err
	}
	if !isExist {
		return 0, errors.New("invalid email or password")
	}

	if !utils.VerifyPassword(user.PasswordHash, r.Password) {
		return 0, errors.New("invalid email or password")
	}

	if !user.IsActive {
		return 0, errors.New("account is disabled")
	}

	return user.ID, nil
}

func (s *authService) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		RedirectURL:  s.cfg.GoogleRedirectURI,
		Scopes:       googleScopes,
		Endpoint:     google.Endpoint,
	}
}

// GoogleAuthURL builds the consent URL for connecting a business profile.
// The state parameter is a short-lived JWT carrying the user id, so the
// callback knows whose tokens it is storing.
func (s *authService) GoogleAuthURL(userID int64) (string, error) {
	state, err := utils.GenerateToken(s.cfg.SecretKey, strconv.FormatInt(userID, 10), 10*time.Minute)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	conf := s.oauthConfig()
	if conf.ClientID == "" || conf.ClientSecret == "" || conf.RedirectURL == "" {
		err = errors.New("oauth2 configuration is incomplete")
		slog.Info(err.Error())
		return "", err
	}

	url := conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))

	return url, nil
}

func (s *authService) GoogleCallback(ctx context.Context, code, state string) error {
	if code == "" || state == "" {
		err := errors.New("code or state is empty")
		slog.Info(err.Error())
		return err
	}

	claims, err := utils.ValidateToken(s.cfg.SecretKey, state)
	if err != nil {
		slog.Info(err.Error())
		return errors.New("invalid state")
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	token, err := s.oauthConfig().Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	accessToken, err := utils.Encrypt([]byte(token.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	var refreshToken string
	if token.RefreshToken != "" {
		refreshToken, err = utils.Encrypt([]byte(token.RefreshToken), []byte(s.cfg.SecretKey))
		if err != nil {
			slog.Info(err.Error())
			return err
		}
	}

	if err := s.u.UpdateGoogleTokens(ctx, userID, accessToken, refreshToken); err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}
