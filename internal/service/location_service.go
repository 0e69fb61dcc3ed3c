package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/maheshrc27/gbpflow/internal/models"
	"github.com/maheshrc27/gbpflow/internal/repository"
	"github.com/maheshrc27/gbpflow/internal/transfer"
)

var ErrLocationNotFound = errors.New("location not found")

type LocationService interface {
	ListLocations(ctx context.Context, userID int64, page, limit int) ([]*models.Location, error)
	GetLocation(ctx context.Context, userID, locationID int64) (*models.Location, error)
	CreateLocation(ctx context.Context, userID int64, t *transfer.LocationCreation) (int64, error)
	UpdateLocation(ctx context.Context, userID, locationID int64, t *transfer.LocationUpdate) (*models.Location, error)
	RemoveLocation(ctx context.Context, userID, locationID int64) error
	SyncFromGoogle(ctx context.Context, userID int64) (int, error)
}

type locationService struct {
	u  repository.UserRepository
	l  repository.LocationRepository
	gb GoogleBusinessService
}

func NewLocationService(u repository.UserRepository, l repository.LocationRepository, gb GoogleBusinessService) LocationService {
	return &locationService{
		u:  u,
		l:  l,
		gb: gb,
	}
}

func (s *locationService) ListLocations(ctx context.Context, userID int64, page, limit int) ([]*models.Location, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	return s.l.ListByUserID(ctx, userID, (page-1)*limit, limit)
}

func (s *locationService) GetLocation(ctx context.Context, userID, locationID int64) (*models.Location, error) {
	location, err := s.l.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if location == nil || location.UserID != userID {
		return nil, ErrLocationNotFound
	}

	return location, nil
}

func (s *locationService) CreateLocation(ctx context.Context, userID int64, t *transfer.LocationCreation) (int64, error) {
	if t.Name == "" {
		return 0, errors.New("name is required")
	}

	location := &models.Location{
		UserID:           userID,
		GoogleLocationID: t.GoogleLocationID,
		Name:             t.Name,
		Address:          t.Address,
		Phone:            t.Phone,
		Website:          t.Website,
		Category:         t.Category,
		AutoReplyEnabled: t.AutoReplyEnabled,
		AutoPostEnabled:  t.AutoPostEnabled,
	}

	return s.l.Create(ctx, nil, location)
}

func (s *locationService) UpdateLocation(ctx context.Context, userID, locationID int64, t *transfer.LocationUpdate) (*models.Location, error) {
	location, err := s.GetLocation(ctx, userID, locationID)
	if err != nil {
		return nil, err
	}

	if t.Name != nil {
		location.Name = *t.Name
	}
	if t.Address != nil {
		location.Address = *t.Address
	}
	if t.Phone != nil {
		location.Phone = *t.Phone
	}
	if t.Website != nil {
		location.Website = *t.Website
	}
	if t.Category != nil {
		location.Category = *t.Category
	}
	if t.AutoReplyEnabled != nil {
		location.AutoReplyEnabled = *t.AutoReplyEnabled
	}
	if t.AutoPostEnabled != nil {
		location.AutoPostEnabled = *t.AutoPostEnabled
	}

	if err := s.l.Update(ctx, location); err != nil {
		return nil, err
	}

	return location, nil
}

func (s *locationService) RemoveLocation(ctx context.Context, userID, locationID int64) error {
	isOwner, err := s.l.CheckByUserID(ctx, locationID, userID)
	if err != nil {
		return err
	}
	if !isOwner {
		return ErrLocationNotFound
	}

	return s.l.Remove(ctx, locationID)
}

// SyncFromGoogle imports the user's business locations across all their
// accounts. Known locations (matched on the external id) get their profile
// fields refreshed, new ones are inserted. Returns how many were imported.
func (s *locationService) SyncFromGoogle(ctx context.Context, userID int64) (int, error) {
	user, isExist, err := s.u.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if !isExist {
		return 0, errors.New("user not found")
	}
	if !user.HasGoogleCredentials() {
		return 0, errors.New("google account is not connected")
	}

	accounts, err := s.gb.ListAccounts(ctx, user)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, account := range accounts {
		locations, err := s.gb.ListLocations(ctx, user, account.Name)
		if err != nil {
			slog.Info(err.Error())
			continue
		}

		for _, gl := range locations {
			var address, phone, category string
			if gl.StorefrontAddress != nil && len(gl.StorefrontAddress.AddressLines) > 0 {
				address = gl.StorefrontAddress.AddressLines[0]
			}
			if gl.PhoneNumbers != nil {
				phone = gl.PhoneNumbers.PrimaryPhone
			}
			if gl.Categories != nil && gl.Categories.PrimaryCategory != nil {
				category = gl.Categories.PrimaryCategory.DisplayName
			}

			existing, err := s.l.GetByGoogleID(ctx, gl.Name)
			if err != nil {
				return imported, err
			}

			if existing != nil {
				if existing.UserID != userID {
					continue
				}
				existing.Name = gl.Title
				existing.Address = address
				existing.Phone = phone
				existing.Website = gl.WebsiteUri
				existing.Category = category
				if err := s.l.Update(ctx, existing); err != nil {
					return imported, err
				}
				continue
			}

			location := &models.Location{
				UserID:           userID,
				GoogleLocationID: gl.Name,
				Name:             gl.Title,
				Address:          address,
				Phone:            phone,
				Website:          gl.WebsiteUri,
				Category:         category,
			}
			if _, err := s.l.Create(ctx, nil, location); err != nil {
				return imported, err
			}
			imported++
		}
	}

	return imported, nil
}
