package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/gbpflow/internal/queue"
	"github.com/maheshrc27/gbpflow/internal/service"
	"github.com/maheshrc27/gbpflow/internal/transfer"
)

type ReviewHandler struct {
	s  service.ReviewService
	ls service.LocationService
	q  queue.Enqueuer
}

func NewReviewHandler(service service.ReviewService, locationService service.LocationService, enqueuer queue.Enqueuer) *ReviewHandler {
	return &ReviewHandler{s: service, ls: locationService, q: enqueuer}
}

func (h *ReviewHandler) ListReviews(c *fiber.Ctx) error {
	userID := GetUserID(c)
	locationID := c.QueryInt("location_id", 0)
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	reviews, err := h.s.ListReviews(c.Context(), userID, int64(locationID), page, limit)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list reviews",
		})
	}

	return c.Status(fiber.StatusOK).JSON(reviews)
}

func (h *ReviewHandler) GetReview(c *fiber.Ctx) error {
	userID := GetUserID(c)
	reviewID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review id",
		})
	}

	review, err := h.s.GetReview(c.Context(), userID, int64(reviewID))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(review)
}

func (h *ReviewHandler) UpdateReview(c *fiber.Ctx) error {
	userID := GetUserID(c)
	reviewID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review id",
		})
	}

	var t transfer.ReviewUpdate
	if err := c.BodyParser(&t); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	review, err := h.s.UpdateReview(c.Context(), userID, int64(reviewID), &t)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(review)
}

func (h *ReviewHandler) ReplyToReview(c *fiber.Ctx) error {
	userID := GetUserID(c)
	reviewID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review id",
		})
	}

	var t transfer.ReviewReplyRequest
	if err := c.BodyParser(&t); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	review, err := h.s.Reply(c.Context(), userID, int64(reviewID), t.ReplyText)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(review)
}

func (h *ReviewHandler) GenerateReply(c *fiber.Ctx) error {
	userID := GetUserID(c)
	reviewID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review id",
		})
	}

	var t transfer.ReplyGeneration
	if err := c.BodyParser(&t); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	replyText, err := h.s.GenerateReplyPreview(c.Context(), userID, int64(reviewID), t.Tone)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"reply_text": replyText,
	})
}

// SyncReviews queues a review sync for one of the caller's locations, or the
// full auto-reply sweep when no location is given.
func (h *ReviewHandler) SyncReviews(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var t transfer.ReviewSyncRequest
	if err := c.BodyParser(&t); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	if t.LocationID == 0 {
		if err := h.q.EnqueueReviewSyncAll(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error queueing review sync",
			})
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"message": "Review sync queued",
		})
	}

	if _, err := h.ls.GetLocation(c.Context(), userID, t.LocationID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.q.EnqueueReviewSync(t.LocationID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error queueing review sync",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Review sync queued",
	})
}
