package queue

import (
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

// Client is the asynq-backed Enqueuer used in production.
type Client struct {
	client *asynq.Client
}

func NewClient(client *asynq.Client) *Client {
	return &Client{client: client}
}

func (c *Client) enqueue(taskType string, payload interface{}) error {
	var taskPayload []byte
	if payload != nil {
		var err error
		taskPayload, err = json.Marshal(payload)
		if err != nil {
			return err
		}
	}

	task := asynq.NewTask(taskType, taskPayload)

	if _, err := c.client.Enqueue(task); err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}

func (c *Client) EnqueuePublishPost(postID int64) error {
	return c.enqueue(TaskTypePublishPost, PublishPostPayload{PostID: postID})
}

func (c *Client) EnqueueGeneratePost(locationID int64, topic, postType string) error {
	return c.enqueue(TaskTypeGeneratePost, GeneratePostPayload{LocationID: locationID, Topic: topic, PostType: postType})
}

func (c *Client) EnqueueReviewSync(locationID int64) error {
	return c.enqueue(TaskTypeSyncReviews, SyncReviewsPayload{LocationID: locationID})
}

func (c *Client) EnqueueReviewSyncAll() error {
	return c.enqueue(TaskTypeSyncAll, nil)
}

func (c *Client) EnqueueReviewReply(reviewID int64, tone string) error {
	return c.enqueue(TaskTypeReviewReply, ReviewReplyPayload{ReviewID: reviewID, Tone: tone})
}
