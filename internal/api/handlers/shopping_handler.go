package handlers

import (
	"Pantry-Tracker/domain"
	"Pantry-Tracker/internal/api/presenters"
	"Pantry-Tracker/pkg/shopping"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ShoppingHandler interface {
		CreateList(c *fiber.Ctx) error
		GetLists(c *fiber.Ctx) error
		GetList(c *fiber.Ctx) error
		DeleteList(c *fiber.Ctx) error
		AddItem(c *fiber.Ctx) error
		UpdateItem(c *fiber.Ctx) error
		DeleteItem(c *fiber.Ctx) error
		AddLowStockItems(c *fiber.Ctx) error
	}

	shoppingHandler struct {
		shoppingService shopping.ShoppingService
		validator       *validator.Validate
	}
)

func NewShoppingHandler(shoppingService shopping.ShoppingService, validator *validator.Validate) ShoppingHandler {
	return &shoppingHandler{
		shoppingService: shoppingService,
		validator:       validator,
	}
}

func (h *shoppingHandler) CreateList(c *fiber.Ctx) error {
	req := new(domain.CreateShoppingListRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateList, err)
	}

	res, err := h.shoppingService.CreateList(c.Context(), *req, currentUser(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCreateList, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateList)
}

func (h *shoppingHandler) GetLists(c *fiber.Ctx) error {
	res, err := h.shoppingService.GetLists(c.Context(), currentUser(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetLists, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetLists)
}

func (h *shoppingHandler) GetList(c *fiber.Ctx) error {
	res, err := h.shoppingService.GetList(c.Context(), c.Params("id"), currentUser(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetLists, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetLists)
}

func (h *shoppingHandler) DeleteList(c *fiber.Ctx) error {
	if err := h.shoppingService.DeleteList(c.Context(), c.Params("id"), currentUser(c)); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteList, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteList)
}

func (h *shoppingHandler) AddItem(c *fiber.Ctx) error {
	req := new(domain.AddListItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddListItem, err)
	}

	res, err := h.shoppingService.AddItem(c.Context(), c.Params("id"), *req, currentUser(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAddListItem, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddListItem)
}

func (h *shoppingHandler) UpdateItem(c *fiber.Ctx) error {
	req := new(domain.UpdateListItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateListItem, err)
	}

	res, err := h.shoppingService.UpdateItem(c.Context(), c.Params("id"), c.Params("itemId"), *req, currentUser(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateListItem, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateListItem)
}

func (h *shoppingHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.shoppingService.DeleteItem(c.Context(), c.Params("id"), c.Params("itemId"), currentUser(c)); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteListItem, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteListItem)
}

func (h *shoppingHandler) AddLowStockItems(c *fiber.Ctx) error {
	res, err := h.shoppingService.AddLowStockItems(c.Context(), c.Params("id"), currentUser(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAddLowStockItem, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAddLowStockItem)
}
