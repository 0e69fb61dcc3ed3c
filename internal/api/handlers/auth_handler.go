package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/gbpflow/configs"
	"github.com/maheshrc27/gbpflow/internal/service"
	"github.com/maheshrc27/gbpflow/internal/transfer"
	"github.com/maheshrc27/gbpflow/pkg/utils"
)

const tokenDuration = 24 * time.Hour

type AuthHandler struct {
	s   service.AuthService
	cfg config.Config
}

func NewAuthHandler(cfg config.Config, service service.AuthService) *AuthHandler {
	return &AuthHandler{s: service, cfg: cfg}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var r transfer.Registration
	if err := c.BodyParser(&r); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	userID, err := h.s.Register(c.Context(), &r)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return h.issueToken(c, userID)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var r transfer.LoginRequest
	if err := c.BodyParser(&r); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	userID, err := h.s.Login(c.Context(), &r)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return h.issueToken(c, userID)
}

func (h *AuthHandler) issueToken(c *fiber.Ctx, userID int64) error {
	token, err := utils.GenerateToken(h.cfg.SecretKey, fmt.Sprintf("%d", userID), tokenDuration)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	return c.Status(fiber.StatusOK).JSON(transfer.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// GoogleConnect sends the caller to the Google consent screen to link their
// business profile account.
func (h *AuthHandler) GoogleConnect(c *fiber.Ctx) error {
	userID := GetUserID(c)

	url, err := h.s.GoogleAuthURL(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"auth_url": url,
	})
}

func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")

	if err := h.s.GoogleCallback(c.Context(), code, state); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	return c.Redirect(h.cfg.FrontendURL, fiber.StatusTemporaryRedirect)
}
