package handlers

import (
	"Pantry-Tracker/domain"
	"Pantry-Tracker/internal/api/presenters"
	"Pantry-Tracker/pkg/category"
	"Pantry-Tracker/pkg/layout"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CategoryHandler interface {
		GetCategories(c *fiber.Ctx) error
		ReplaceCategories(c *fiber.Ctx) error
		GetLayout(c *fiber.Ctx) error
		GetPatterns(c *fiber.Ctx) error
	}

	categoryHandler struct {
		categoryService category.CategoryService
		validator       *validator.Validate
	}
)

func NewCategoryHandler(categoryService category.CategoryService, validator *validator.Validate) CategoryHandler {
	return &categoryHandler{
		categoryService: categoryService,
		validator:       validator,
	}
}

func (h *categoryHandler) GetCategories(c *fiber.Ctx) error {
	res, err := h.categoryService.GetCategories(c.Context(), currentUser(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetCategories, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCategories)
}

func (h *categoryHandler) ReplaceCategories(c *fiber.Ctx) error {
	req := new(domain.ReplaceCategoriesRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedReplaceCategories, err)
	}

	res, err := h.categoryService.ReplaceCategories(c.Context(), currentUser(c), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedReplaceCategories, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessReplaceCategories)
}

func (h *categoryHandler) GetLayout(c *fiber.Ctx) error {
	columns := c.QueryInt("columns", 0)
	if columns > layout.MaxColumns {
		err := fmt.Errorf("%w: %d > %d", domain.ErrInvalidLayoutColumns, columns, layout.MaxColumns)
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetLayout, err)
	}

	res, err := h.categoryService.GetLayout(c.Context(), currentUser(c), c.Query("pattern"), columns)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetLayout, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetLayout)
}

func (h *categoryHandler) GetPatterns(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, h.categoryService.GetPatterns(), fiber.StatusOK, domain.MessageSuccessGetPatterns)
}
