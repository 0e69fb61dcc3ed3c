package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/maheshrc27/gbpflow/internal/models"
	"github.com/maheshrc27/gbpflow/internal/repository"
	"github.com/maheshrc27/gbpflow/internal/transfer"
)

var ErrPostNotFound = errors.New("post not found")

type PostService interface {
	ListPosts(ctx context.Context, userID, locationID int64, page, limit int) ([]*models.Post, error)
	GetPost(ctx context.Context, userID, postID int64) (*models.Post, error)
	CreatePost(ctx context.Context, userID int64, t *transfer.PostCreation) (int64, error)
	UpdatePost(ctx context.Context, userID, postID int64, t *transfer.PostUpdate) (*models.Post, error)
	RemovePost(ctx context.Context, userID, postID int64) error
	CheckOwnership(ctx context.Context, userID, postID int64) error
	CheckLocationOwnership(ctx context.Context, userID, locationID int64) error
}

type postService struct {
	l repository.LocationRepository
	p repository.PostRepository
}

func NewPostService(l repository.LocationRepository, p repository.PostRepository) PostService {
	return &postService{
		l: l,
		p: p,
	}
}

func (s *postService) ListPosts(ctx context.Context, userID, locationID int64, page, limit int) ([]*models.Post, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	return s.p.ListByUserID(ctx, userID, locationID, (page-1)*limit, limit)
}

func (s *postService) GetPost(ctx context.Context, userID, postID int64) (*models.Post, error) {
	if err := s.CheckOwnership(ctx, userID, postID); err != nil {
		return nil, err
	}

	post, err := s.p.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	return post, nil
}

func (s *postService) CreatePost(ctx context.Context, userID int64, t *transfer.PostCreation) (int64, error) {
	if err := s.CheckLocationOwnership(ctx, userID, t.LocationID); err != nil {
		return 0, err
	}

	postType := t.PostType
	if postType == "" {
		postType = models.PostTypeUpdate
	}
	if !models.IsValidPostType(postType) {
		return 0, fmt.Errorf("invalid post type: %s", t.PostType)
	}

	if t.Content == "" {
		return 0, errors.New("content is required")
	}

	post := &models.Post{
		LocationID: t.LocationID,
		PostType:   postType,
		Status:     models.PostStatusDraft,
		Title:      t.Title,
		Content:    t.Content,
		MediaURL:   t.MediaURL,
	}

	if t.ScheduledAt != "" {
		scheduledAt, err := time.Parse(time.RFC3339, t.ScheduledAt)
		if err != nil {
			return 0, errors.New("scheduled_at must be RFC3339")
		}
		post.ScheduledAt = &scheduledAt
		post.Status = models.PostStatusScheduled
	}

	return s.p.Create(ctx, nil, post)
}

func (s *postService) UpdatePost(ctx context.Context, userID, postID int64, t *transfer.PostUpdate) (*models.Post, error) {
	post, err := s.GetPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if post.Status == models.PostStatusPublished {
		return nil, errors.New("published posts cannot be edited")
	}

	if t.PostType != nil {
		if !models.IsValidPostType(*t.PostType) {
			return nil, fmt.Errorf("invalid post type: %s", *t.PostType)
		}
		post.PostType = *t.PostType
	}
	if t.Title != nil {
		post.Title = *t.Title
	}
	if t.Content != nil {
		post.Content = *t.Content
	}
	if t.MediaURL != nil {
		post.MediaURL = *t.MediaURL
	}
	if t.ScheduledAt != nil {
		if *t.ScheduledAt == "" {
			post.ScheduledAt = nil
			post.Status = models.PostStatusDraft
		} else {
			scheduledAt, err := time.Parse(time.RFC3339, *t.ScheduledAt)
			if err != nil {
				return nil, errors.New("scheduled_at must be RFC3339")
			}
			post.ScheduledAt = &scheduledAt
			post.Status = models.PostStatusScheduled
		}
	}

	if err := s.p.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) RemovePost(ctx context.Context, userID, postID int64) error {
	if err := s.CheckOwnership(ctx, userID, postID); err != nil {
		return err
	}

	return s.p.Remove(ctx, postID)
}

func (s *postService) CheckOwnership(ctx context.Context, userID, postID int64) error {
	isOwner, err := s.p.CheckByUserID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if !isOwner {
		return ErrPostNotFound
	}
	return nil
}

func (s *postService) CheckLocationOwnership(ctx context.Context, userID, locationID int64) error {
	isOwner, err := s.l.CheckByUserID(ctx, locationID, userID)
	if err != nil {
		return err
	}
	if !isOwner {
		return ErrLocationNotFound
	}
	return nil
}
