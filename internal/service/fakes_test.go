package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/maheshrc27/gbpflow/internal/models"
	"github.com/maheshrc27/gbpflow/internal/transfer"
	"google.golang.org/api/mybusinessaccountmanagement/v1"
	"google.golang.org/api/mybusinessbusinessinformation/v1"
)

type stubUserRepo struct {
	users map[int64]*models.User
}

func (f *stubUserRepo) GetByID(ctx context.Context, id int64) (*models.User, bool, error) {
	user, ok := f.users[id]
	return user, ok, nil
}

func (f *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, true, nil
		}
	}
	return nil, false, nil
}

func (f *stubUserRepo) Create(ctx context.Context, tx *sql.Tx, user *models.User) (int64, error) {
	id := int64(len(f.users) + 1)
	user.ID = id
	f.users[id] = user
	return id, nil
}

func (f *stubUserRepo) UpdateGoogleTokens(ctx context.Context, id int64, accessToken, refreshToken string) error {
	user, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	user.GoogleAccessToken = accessToken
	user.GoogleRefreshToken = refreshToken
	return nil
}

func (f *stubUserRepo) Remove(ctx context.Context, id int64) error {
	delete(f.users, id)
	return nil
}

type stubLocationRepo struct {
	locations map[int64]*models.Location
	nextID    int64
}

func (f *stubLocationRepo) GetByID(ctx context.Context, id int64) (*models.Location, error) {
	return f.locations[id], nil
}

func (f *stubLocationRepo) GetByGoogleID(ctx context.Context, googleLocationID string) (*models.Location, error) {
	for _, location := range f.locations {
		if location.GoogleLocationID == googleLocationID {
			return location, nil
		}
	}
	return nil, nil
}

func (f *stubLocationRepo) ListByUserID(ctx context.Context, userID int64, offset, limit int) ([]*models.Location, error) {
	var out []*models.Location
	for _, location := range f.locations {
		if location.UserID == userID {
			out = append(out, location)
		}
	}
	return out, nil
}

func (f *stubLocationRepo) ListAutoReplyEnabled(ctx context.Context) ([]*models.Location, error) {
	return nil, nil
}

func (f *stubLocationRepo) Create(ctx context.Context, tx *sql.Tx, location *models.Location) (int64, error) {
	f.nextID++
	location.ID = f.nextID
	f.locations[location.ID] = location
	return location.ID, nil
}

func (f *stubLocationRepo) Update(ctx context.Context, location *models.Location) error {
	f.locations[location.ID] = location
	return nil
}

func (f *stubLocationRepo) CheckByUserID(ctx context.Context, locationID, userID int64) (bool, error) {
	location, ok := f.locations[locationID]
	return ok && location.UserID == userID, nil
}

func (f *stubLocationRepo) Remove(ctx context.Context, id int64) error {
	delete(f.locations, id)
	return nil
}

type stubPostRepo struct {
	posts  map[int64]*models.Post
	nextID int64
}

func (f *stubPostRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	return f.posts[id], nil
}

func (f *stubPostRepo) ListByUserID(ctx context.Context, userID, locationID int64, offset, limit int) ([]*models.Post, error) {
	var out []*models.Post
	for _, post := range f.posts {
		if locationID == 0 || post.LocationID == locationID {
			out = append(out, post)
		}
	}
	return out, nil
}

func (f *stubPostRepo) GetDue(ctx context.Context, now time.Time) ([]*models.Post, error) {
	return nil, nil
}

func (f *stubPostRepo) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	f.nextID++
	post.ID = f.nextID
	f.posts[post.ID] = post
	return post.ID, nil
}

func (f *stubPostRepo) Update(ctx context.Context, post *models.Post) error {
	f.posts[post.ID] = post
	return nil
}

func (f *stubPostRepo) UpdateStatus(ctx context.Context, status string, postID int64) error {
	post, ok := f.posts[postID]
	if !ok {
		return errors.New("post not found")
	}
	post.Status = status
	return nil
}

func (f *stubPostRepo) MarkPublished(ctx context.Context, postID int64, googlePostID string, publishedAt time.Time) error {
	return nil
}

func (f *stubPostRepo) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	_, ok := f.posts[postID]
	return ok, nil
}

func (f *stubPostRepo) Remove(ctx context.Context, id int64) error {
	delete(f.posts, id)
	return nil
}

type stubReviewRepo struct {
	reviews map[int64]*models.Review
}

func (f *stubReviewRepo) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	return f.reviews[id], nil
}

func (f *stubReviewRepo) ListByUserID(ctx context.Context, userID, locationID int64, offset, limit int) ([]*models.Review, error) {
	return nil, nil
}

func (f *stubReviewRepo) ExistsByGoogleID(ctx context.Context, googleReviewID string) (bool, error) {
	return false, nil
}

func (f *stubReviewRepo) Create(ctx context.Context, tx *sql.Tx, review *models.Review) (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *stubReviewRepo) SetReply(ctx context.Context, reviewID int64, replyText string, repliedAt time.Time, aiGenerated bool) error {
	review, ok := f.reviews[reviewID]
	if !ok {
		return errors.New("review not found")
	}
	review.ReplyText = replyText
	review.ReplyAt = &repliedAt
	review.AIGeneratedReply = aiGenerated
	return nil
}

func (f *stubReviewRepo) CheckByUserID(ctx context.Context, reviewID, userID int64) (bool, error) {
	_, ok := f.reviews[reviewID]
	return ok, nil
}

type stubGoogleBusiness struct {
	accounts  []*mybusinessaccountmanagement.Account
	locations map[string][]*mybusinessbusinessinformation.Location
	replies   []string
	replyErr  error
}

func (f *stubGoogleBusiness) ListAccounts(ctx context.Context, user *models.User) ([]*mybusinessaccountmanagement.Account, error) {
	return f.accounts, nil
}

func (f *stubGoogleBusiness) ListLocations(ctx context.Context, user *models.User, accountName string) ([]*mybusinessbusinessinformation.Location, error) {
	return f.locations[accountName], nil
}

func (f *stubGoogleBusiness) GetLocation(ctx context.Context, user *models.User, locationName string) (*mybusinessbusinessinformation.Location, error) {
	return nil, nil
}

func (f *stubGoogleBusiness) CreatePost(ctx context.Context, user *models.User, locationID string, post *transfer.LocalPost) (*transfer.LocalPost, error) {
	return nil, errors.New("not implemented")
}

func (f *stubGoogleBusiness) ListReviews(ctx context.Context, user *models.User, locationName string) ([]transfer.GoogleReview, error) {
	return nil, nil
}

func (f *stubGoogleBusiness) ReplyToReview(ctx context.Context, user *models.User, reviewID, replyText string) (*transfer.GoogleReviewReply, error) {
	if f.replyErr != nil {
		return nil, f.replyErr
	}
	f.replies = append(f.replies, replyText)
	return &transfer.GoogleReviewReply{Comment: replyText}, nil
}

type stubAI struct {
	postContent string
	replyText   string
}

func (f *stubAI) GeneratePostContent(ctx context.Context, businessName, category, topic, postType string) (string, error) {
	return f.postContent, nil
}

func (f *stubAI) GenerateReviewReply(ctx context.Context, businessName, reviewerName string, rating float64, comment, tone string) (string, error) {
	return f.replyText, nil
}
