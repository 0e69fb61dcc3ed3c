package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	config "github.com/maheshrc27/gbpflow/configs"
	"github.com/maheshrc27/gbpflow/internal/models"
	"github.com/maheshrc27/gbpflow/internal/transfer"
	"github.com/maheshrc27/gbpflow/pkg/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/mybusinessaccountmanagement/v1"
	"google.golang.org/api/mybusinessbusinessinformation/v1"
	"google.golang.org/api/option"
)

// Local posts and reviews still live on the v4 surface, which has no
// discovery client, so those calls go through plain REST.
const gbpV4BaseURL = "https://mybusiness.googleapis.com/v4"

const locationReadMask = "name,title,storefrontAddress,phoneNumbers,websiteUri,categories"

type GoogleBusinessService interface {
	ListAccounts(ctx context.Context, user *models.User) ([]*mybusinessaccountmanagement.Account, error)
	ListLocations(ctx context.Context, user *models.User, accountName string) ([]*mybusinessbusinessinformation.Location, error)
	GetLocation(ctx context.Context, user *models.User, locationName string) (*mybusinessbusinessinformation.Location, error)
	CreatePost(ctx context.Context, user *models.User, locationID string, post *transfer.LocalPost) (*transfer.LocalPost, error)
	ListReviews(ctx context.Context, user *models.User, locationName string) ([]transfer.GoogleReview, error)
	ReplyToReview(ctx context.Context, user *models.User, reviewID, replyText string) (*transfer.GoogleReviewReply, error)
}

type googleBusinessService struct {
	cfg config.Config
}

func NewGoogleBusinessService(cfg config.Config) GoogleBusinessService {
	return &googleBusinessService{cfg: cfg}
}

// httpClient builds an authorized client from the user's stored tokens.
// The oauth2 transport refreshes the access token on its own when expired.
func (s *googleBusinessService) httpClient(ctx context.Context, user *models.User) (*http.Client, error) {
	if !user.HasGoogleCredentials() {
		return nil, errors.New("google account is not connected")
	}

	accessToken, err := utils.Decrypt(user.GoogleAccessToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return nil, err
	}

	token := &oauth2.Token{AccessToken: accessToken}
	if user.GoogleRefreshToken != "" {
		refreshToken, err := utils.Decrypt(user.GoogleRefreshToken, []byte(s.cfg.SecretKey))
		if err != nil {
			return nil, err
		}
		token.RefreshToken = refreshToken
	}

	conf := &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		Endpoint:     google.Endpoint,
	}

	return conf.Client(ctx, token), nil
}

func (s *googleBusinessService) ListAccounts(ctx context.Context, user *models.User) ([]*mybusinessaccountmanagement.Account, error) {
	client, err := s.httpClient(ctx, user)
	if err != nil {
		return nil, err
	}

	svc, err := mybusinessaccountmanagement.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	resp, err := svc.Accounts.List().Do()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return resp.Accounts, nil
}

func (s *googleBusinessService) ListLocations(ctx context.Context, user *models.User, accountName string) ([]*mybusinessbusinessinformation.Location, error) {
	client, err := s.httpClient(ctx, user)
	if err != nil {
		return nil, err
	}

	svc, err := mybusinessbusinessinformation.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	resp, err := svc.Accounts.Locations.List(accountName).ReadMask(locationReadMask).Do()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return resp.Locations, nil
}

func (s *googleBusinessService) GetLocation(ctx context.Context, user *models.User, locationName string) (*mybusinessbusinessinformation.Location, error) {
	client, err := s.httpClient(ctx, user)
	if err != nil {
		return nil, err
	}

	svc, err := mybusinessbusinessinformation.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	location, err := svc.Locations.Get(locationName).ReadMask(locationReadMask).Do()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return location, nil
}

func (s *googleBusinessService) CreatePost(ctx context.Context, user *models.User, locationID string, post *transfer.LocalPost) (*transfer.LocalPost, error) {
	client, err := s.httpClient(ctx, user)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(post)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	url := fmt.Sprintf("%s/%s/localPosts", gbpV4BaseURL, locationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Info(fmt.Sprintf("local post creation returned status %d", resp.StatusCode))
		return nil, fmt.Errorf("local post creation returned status %d", resp.StatusCode)
	}

	var created transfer.LocalPost
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return &created, nil
}

func (s *googleBusinessService) ListReviews(ctx context.Context, user *models.User, locationName string) ([]transfer.GoogleReview, error) {
	client, err := s.httpClient(ctx, user)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s/reviews", gbpV4BaseURL, locationName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Info(fmt.Sprintf("review listing returned status %d", resp.StatusCode))
		return nil, fmt.Errorf("review listing returned status %d", resp.StatusCode)
	}

	var reviews transfer.ListReviewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&reviews); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return reviews.Reviews, nil
}

func (s *googleBusinessService) ReplyToReview(ctx context.Context, user *models.User, reviewID, replyText string) (*transfer.GoogleReviewReply, error) {
	client, err := s.httpClient(ctx, user)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(transfer.GoogleReviewReply{Comment: replyText})
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	url := fmt.Sprintf("%s/%s/reply", gbpV4BaseURL, reviewID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Info(fmt.Sprintf("review reply returned status %d", resp.StatusCode))
		return nil, fmt.Errorf("review reply returned status %d", resp.StatusCode)
	}

	var reply transfer.GoogleReviewReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return &reply, nil
}
