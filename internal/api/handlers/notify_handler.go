package handlers

import (
	"Pantry-Tracker/domain"
	"Pantry-Tracker/internal/api/presenters"
	"Pantry-Tracker/pkg/notify"

	"github.com/gofiber/fiber/v2"
)

type (
	NotifyHandler interface {
		SendExpiryDigest(c *fiber.Ctx) error
	}

	notifyHandler struct {
		notifyService notify.NotifyService
	}
)

func NewNotifyHandler(notifyService notify.NotifyService) NotifyHandler {
	return &notifyHandler{notifyService: notifyService}
}

func (h *notifyHandler) SendExpiryDigest(c *fiber.Ctx) error {
	res, err := h.notifyService.SendExpiryDigest(c.Context(), currentUser(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedSendDigest, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSendDigest)
}
