package service

import (
	"context"
	"testing"

	"github.com/maheshrc27/gbpflow/internal/models"
	"github.com/maheshrc27/gbpflow/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/mybusinessaccountmanagement/v1"
	"google.golang.org/api/mybusinessbusinessinformation/v1"
)

func boolPtr(b bool) *bool { return &b }

func newLocationService() (LocationService, *stubUserRepo, *stubLocationRepo, *stubGoogleBusiness) {
	ur := &stubUserRepo{users: make(map[int64]*models.User)}
	lr := &stubLocationRepo{locations: make(map[int64]*models.Location)}
	gb := &stubGoogleBusiness{locations: make(map[string][]*mybusinessbusinessinformation.Location)}
	ur.users[1] = &models.User{ID: 1, Email: "owner@example.com", GoogleAccessToken: "encrypted"}
	return NewLocationService(ur, lr, gb), ur, lr, gb
}

func TestGetLocation_OwnershipEnforced(t *testing.T) {
	s, _, lr, _ := newLocationService()
	lr.locations[5] = &models.Location{ID: 5, UserID: 2, Name: "Someone else's shop"}

	_, err := s.GetLocation(context.Background(), 1, 5)
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestUpdateLocation_PartialMerge(t *testing.T) {
	s, _, lr, _ := newLocationService()
	lr.locations[5] = &models.Location{
		ID:      5,
		UserID:  1,
		Name:    "Blue Bottle Cafe",
		Phone:   "555-0100",
		Website: "https://bluebottle.example.com",
	}

	location, err := s.UpdateLocation(context.Background(), 1, 5, &transfer.LocationUpdate{
		Phone:            strPtr("555-0199"),
		AutoReplyEnabled: boolPtr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, "555-0199", location.Phone)
	assert.True(t, location.AutoReplyEnabled)
	assert.Equal(t, "Blue Bottle Cafe", location.Name)
	assert.Equal(t, "https://bluebottle.example.com", location.Website)
}

func TestSyncFromGoogle_ImportsAndUpdates(t *testing.T) {
	s, _, lr, gb := newLocationService()

	lr.locations[5] = &models.Location{
		ID:               5,
		UserID:           1,
		GoogleLocationID: "locations/42",
		Name:             "Old name",
		AutoReplyEnabled: true,
	}
	lr.nextID = 5

	gb.accounts = []*mybusinessaccountmanagement.Account{{Name: "accounts/1"}}
	gb.locations["accounts/1"] = []*mybusinessbusinessinformation.Location{
		{
			Name:  "locations/42",
			Title: "Blue Bottle Cafe",
			PhoneNumbers: &mybusinessbusinessinformation.PhoneNumbers{
				PrimaryPhone: "555-0100",
			},
			Categories: &mybusinessbusinessinformation.Categories{
				PrimaryCategory: &mybusinessbusinessinformation.Category{DisplayName: "Cafe"},
			},
		},
		{
			Name:  "locations/43",
			Title: "Blue Bottle Roastery",
			StorefrontAddress: &mybusinessbusinessinformation.PostalAddress{
				AddressLines: []string{"1 Roast St"},
			},
		},
	}

	imported, err := s.SyncFromGoogle(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)

	// existing row was refreshed in place, settings untouched
	existing := lr.locations[5]
	assert.Equal(t, "Blue Bottle Cafe", existing.Name)
	assert.Equal(t, "555-0100", existing.Phone)
	assert.Equal(t, "Cafe", existing.Category)
	assert.True(t, existing.AutoReplyEnabled)

	var created *models.Location
	for _, location := range lr.locations {
		if location.GoogleLocationID == "locations/43" {
			created = location
		}
	}
	require.NotNil(t, created)
	assert.Equal(t, int64(1), created.UserID)
	assert.Equal(t, "Blue Bottle Roastery", created.Name)
	assert.Equal(t, "1 Roast St", created.Address)
}

func TestSyncFromGoogle_RequiresConnectedAccount(t *testing.T) {
	s, ur, _, _ := newLocationService()
	ur.users[1].GoogleAccessToken = ""

	_, err := s.SyncFromGoogle(context.Background(), 1)
	assert.Error(t, err)
}
