package handlers

import (
	"Pantry-Tracker/domain"
	"Pantry-Tracker/pkg/inventory"
	"Pantry-Tracker/pkg/layout"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var (
	notFound = []error{
		domain.ErrFoodItemNotFound,
		domain.ErrReceiptScanNotFound,
		domain.ErrRecipeNotFound,
		domain.ErrUserNotFound,
		domain.ErrGroupNotFound,
		domain.ErrShoppingListNotFound,
		domain.ErrListItemNotFound,
	}
	forbidden = []error{
		domain.ErrUnauthorizedAccess,
		domain.ErrNotGroupMember,
		domain.ErrNotGroupOwner,
	}
	badRequest = []error{
		inventory.ErrInvalidDate,
		inventory.ErrInvalidFilter,
		domain.ErrUnknownLayoutPattern,
		domain.ErrInvalidLayoutColumns,
		domain.ErrInvalidQuantity,
		domain.ErrInvalidImageFormat,
		domain.ErrReceiptNotProcessed,
		domain.ErrParseUUID,
		domain.ErrNoIngredients,
		domain.ErrCannotRemoveOwner,
	}
	conflict = []error{
		domain.ErrEmailAlreadyExists,
		domain.ErrAlreadyGroupMember,
	}
	upstream = []error{
		domain.ErrGeminiAPIFailed,
		domain.ErrExtractionFailed,
		domain.ErrReceiptProcessingFailed,
	}
)

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return fiber.StatusBadRequest
	case isAny(err, notFound):
		return fiber.StatusNotFound
	case isAny(err, forbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, layout.ErrConfig):
		return fiber.StatusUnprocessableEntity
	case isAny(err, badRequest):
		return fiber.StatusBadRequest
	case isAny(err, conflict):
		return fiber.StatusConflict
	case isAny(err, upstream):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

func currentUser(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
