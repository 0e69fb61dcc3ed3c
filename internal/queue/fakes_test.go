package queue

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

type fakeUserRepo struct {
	users map[int64]*models.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, bool, error) {
	user, ok := f.users[id]
	return user, ok, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *sql.Tx, user *models.User) (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeUserRepo) UpdateGoogleTokens(ctx context.Context, id int64, accessToken, refreshToken string) error {
	return nil
}

func (f *fakeUserRepo) Remove(ctx context.Context, id int64) error {
	delete(f.users, id)
	return nil
}

type fakeLocationRepo struct {
	locations map[int64]*models.Location
}

func (f *fakeLocationRepo) GetByID(ctx context.Context, id int64) (*models.Location, error) {
	return f.locations[id], nil
}

func (f *fakeLocationRepo) GetByGoogleID(ctx context.Context, googleLocationID string) (*models.Location, error) {
	for _, location := range f.locations {
		if location.GoogleLocationID == googleLocationID {
			return location, nil
		}
	}
	return nil, nil
}

func (f *fakeLocationRepo) ListByUserID(ctx context.Context, userID int64, offset, limit int) ([]*models.Location, error) {
	var out []*models.Location
	for _, location := range f.locations {
		if location.UserID == userID {
			out = append(out, location)
		}
	}
	return out, nil
}

func (f *fakeLocationRepo) ListAutoReplyEnabled(ctx context.Context) ([]*models.Location, error) {
	var out []*models.Location
	for _, location := range f.locations {
		if location.AutoReplyEnabled {
			out = append(out, location)
		}
	}
	return out, nil
}

func (f *fakeLocationRepo) Create(ctx context.Context, tx *sql.Tx, location *models.Location) (int64, error) {
	id := int64(len(f.locations) + 1)
	location.ID = id
	f.locations[id] = location
	return id, nil
}

func (f *fakeLocationRepo) Update(ctx context.Context, location *models.Location) error {
	f.locations[location.ID] = location
	return nil
}

func (f *fakeLocationRepo) CheckByUserID(ctx context.Context, locationID, userID int64) (bool, error) {
	location, ok := f.locations[locationID]
	return ok && location.UserID == userID, nil
}

func (f *fakeLocationRepo) Remove(ctx context.Context, id int64) error {
	delete(f.locations, id)
	return nil
}

type fakePostRepo struct {
	posts  map[int64]*models.Post
	nextID int64
}

func (f *fakePostRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	return f.posts[id], nil
}

func (f *fakePostRepo) ListByUserID(ctx context.Context, userID, locationID int64, offset, limit int) ([]*models.Post, error) {
	return nil, nil
}

func (f *fakePostRepo) GetDue(ctx context.Context, now time.Time) ([]*models.Post, error) {
	var out []*models.Post
	for _, post := range f.posts {
		if post.Status == models.PostStatusScheduled && post.ScheduledAt != nil && !post.ScheduledAt.After(now) {
			out = append(out, post)
		}
	}
	return out, nil
}

func (f *fakePostRepo) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	f.nextID++
	post.ID = f.nextID
	f.posts[post.ID] = post
	return post.ID, nil
}

func (f *fakePostRepo) Update(ctx context.Context, post *models.Post) error {
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) UpdateStatus(ctx context.Context, status string, postID int64) error {
	post, ok := f.posts[postID]
	if !ok {
		return errors.New("post not found")
	}
	post.Status = status
	return nil
}

func (f *fakePostRepo) MarkPublished(ctx context.Context, postID int64, googlePostID string, publishedAt time.Time) error {
	post, ok := f.posts[postID]
	if !ok {
		return errors.New("post not found")
	}
	post.Status = models.PostStatusPublished
	post.GooglePostID = googlePostID
	post.PublishedAt = &publishedAt
	return nil
}

func (f *fakePostRepo) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	_, ok := f.posts[postID]
	return ok, nil
}

func (f *fakePostRepo) Remove(ctx context.Context, id int64) error {
	delete(f.posts, id)
	return nil
}

type fakeReviewRepo struct {
	reviews map[int64]*models.Review
	nextID  int64
}

func (f *fakeReviewRepo) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	return f.reviews[id], nil
}

func (f *fakeReviewRepo) ListByUserID(ctx context.Context, userID, locationID int64, offset, limit int) ([]*models.Review, error) {
	return nil, nil
}

func (f *fakeReviewRepo) ExistsByGoogleID(ctx context.Context, googleReviewID string) (bool, error) {
	for _, review := range f.reviews {
		if review.GoogleReviewID == googleReviewID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviewRepo) Create(ctx context.Context, tx *sql.Tx, review *models.Review) (int64, error) {
	f.nextID++
	review.ID = f.nextID
	f.reviews[review.ID] = review
	return review.ID, nil
}

func (f *fakeReviewRepo) SetReply(ctx context.Context, reviewID int64, replyText string, repliedAt time.Time, aiGenerated bool) error {
	review, ok := f.reviews[reviewID]
	if !ok {
		return errors.New("review not found")
	}
	review.ReplyText = replyText
	review.ReplyAt = &repliedAt
	review.AIGeneratedReply = aiGenerated
	return nil
}

func (f *fakeReviewRepo) CheckByUserID(ctx context.Context, reviewID, userID int64) (bool, error) {
	_, ok := f.reviews[reviewID]
	return ok, nil
}

type fakeGoogleBusiness struct {
	createPostFn    func(locationID string, post *transfer.LocalPost) (*transfer.LocalPost, error)
	listReviewsFn   func(locationName string) ([]transfer.GoogleReview, error)
	replyToReviewFn func(reviewID, replyText string) (*transfer.GoogleReviewReply, error)
	replies         []string
}

func (f *fakeGoogleBusiness) ListAccounts(ctx context.Context, user *models.User) ([]*mybusinessaccountmanagement.Account, error) {
	return nil, nil
}

func (f *fakeGoogleBusiness) ListLocations(ctx context.Context, user *models.User, accountName string) ([]*mybusinessbusinessinformation.Location, error) {
	return nil, nil
}

func (f *fakeGoogleBusiness) GetLocation(ctx context.Context, user *models.User, locationName string) (*mybusinessbusinessinformation.Location, error) {
	return nil, nil
}

func (f *fakeGoogleBusiness) CreatePost(ctx context.Context, user *models.User, locationID string, post *transfer.LocalPost) (*transfer.LocalPost, error) {
	if f.createPostFn != nil {
		return f.createPostFn(locationID, post)
	}
	return &transfer.LocalPost{Name: "locations/1/localPosts/99"}, nil
}

func (f *fakeGoogleBusiness) ListReviews(ctx context.Context, user *models.User, locationName string) ([]transfer.GoogleReview, error) {
	if f.listReviewsFn != nil {
		return f.listReviewsFn(locationName)
	}
	return nil, nil
}

func (f *fakeGoogleBusiness) ReplyToReview(ctx context.Context, user *models.User, reviewID, replyText string) (*transfer.GoogleReviewReply, error) {
	if f.replyToReviewFn != nil {
		return f.replyToReviewFn(reviewID, replyText)
	}
	f.replies = append(f.replies, replyText)
	return &transfer.GoogleReviewReply{Comment: replyText}, nil
}

type fakeAI struct {
	postContent string
	replyText   string
	generateErr error
}

func (f *fakeAI) GeneratePostContent(ctx context.Context, businessName, category, topic, postType string) (string, error) {
	return f.postContent, f.generateErr
}

func (f *fakeAI) GenerateReviewReply(ctx context.Context, businessName, reviewerName string, rating float64, comment, tone string) (string, error) {
	return f.replyText, f.generateErr
}

type enqueuedJob struct {
	taskType string
	id       int64
	tone     string
}

type fakeEnqueuer struct {
	jobs []enqueuedJob
	err  error
}

func (f *fakeEnqueuer) EnqueuePublishPost(postID int64) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, enqueuedJob{taskType: TaskTypePublishPost, id: postID})
	return nil
}

func (f *fakeEnqueuer) EnqueueGeneratePost(locationID int64, topic, postType string) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, enqueuedJob{taskType: TaskTypeGeneratePost, id: locationID})
	return nil
}

func (f *fakeEnqueuer) EnqueueReviewSync(locationID int64) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, enqueuedJob{taskType: TaskTypeSyncReviews, id: locationID})
	return nil
}

func (f *fakeEnqueuer) EnqueueReviewSyncAll() error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, enqueuedJob{taskType: TaskTypeSyncAll})
	return nil
}

func (f *fakeEnqueuer) EnqueueReviewReply(reviewID int64, tone string) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, enqueuedJob{taskType: TaskTypeReviewReply, id: reviewID, tone: tone})
	return nil
}

func (f *fakeEnqueuer) byType(taskType string) []enqueuedJob {
	var out []enqueuedJob
	for _, j := range f.jobs {
		if j.taskType == taskType {
			out = append(out, j)
		}
	}
	return out
}
