package handlers

import (
	"Pantry-Tracker/domain"
	"Pantry-Tracker/internal/api/presenters"
	"Pantry-Tracker/pkg/food"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type (
	FoodHandler interface {
		AddFoodItem(c *fiber.Ctx) error
		UpdateFoodItem(c *fiber.Ctx) error
		DeleteFoodItem(c *fiber.Ctx) error
		GetFoodItems(c *fiber.Ctx) error
		GetFoodItemDetails(c *fiber.Ctx) error
		UploadFoodImage(c *fiber.Ctx) error
		UploadReceipt(c *fiber.Ctx) error
		GetReceiptScanResult(c *fiber.Ctx) error
		SaveScannedItems(c *fiber.Ctx) error
		GetDashboardStats(c *fiber.Ctx) error
		GetAlerts(c *fiber.Ctx) error
		ExportInventory(c *fiber.Ctx) error
	}

	foodHandler struct {
		foodService food.FoodService
		validator   *validator.Validate
	}
)

func NewFoodHandler(foodService food.FoodService, validator *validator.Validate) FoodHandler {
	return &foodHandler{
		foodService: foodService,
		validator:   validator,
	}
}

func (h *foodHandler) AddFoodItem(c *fiber.Ctx) error {
	req := new(domain.AddFoodItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddFoodItem, err)
	}

	res, err := h.foodService.AddFoodItem(c.Context(), *req, currentUser(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAddFoodItem, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddFoodItem)
}

func (h *foodHandler) UpdateFoodItem(c *fiber.Ctx) error {
	req := new(domain.UpdateFoodItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateFoodItem, err)
	}

	res, err := h.foodService.UpdateFoodItem(c.Context(), c.Params("id"), *req, currentUser(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateFoodItem, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateFoodItem)
}

func (h *foodHandler) DeleteFoodItem(c *fiber.Ctx) error {
	if err := h.foodService.DeleteFoodItem(c.Context(), c.Params("id"), currentUser(c)); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteFoodItem, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteFoodItem)
}

func (h *foodHandler) GetFoodItems(c *fiber.Ctx) error {
	query := new(domain.FoodItemQuery)
	if err := c.QueryParser(query); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFoodItems, err)
	}

	items, pagination, err := h.foodService.GetFoodItems(c.Context(), currentUser(c), *query)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetFoodItems, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{
		"items":      items,
		"pagination": pagination,
	}, fiber.StatusOK, domain.MessageSuccessGetFoodItems)
}

func (h *foodHandler) GetFoodItemDetails(c *fiber.Ctx) error {
	item, err := h.foodService.GetFoodItemByID(c.Context(), c.Params("id"), currentUser(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetFoodItems, err)
	}
	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessGetFoodItems)
}

func (h *foodHandler) UploadFoodImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req := domain.UploadFoodImageRequest{FoodItemID: c.Params("id"), Image: file}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	res, err := h.foodService.UploadFoodImage(c.Context(), req, currentUser(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUploadImage, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadImage)
}

func (h *foodHandler) UploadReceipt(c *fiber.Ctx) error {
	file, err := c.FormFile("receipt_image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req := domain.UploadReceiptRequest{ReceiptImage: file}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReceipt, err)
	}

	res, err := h.foodService.UploadReceipt(c.Context(), req, currentUser(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUploadReceipt, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusAccepted, domain.MessageSuccessUploadReceipt)
}

func (h *foodHandler) GetReceiptScanResult(c *fiber.Ctx) error {
	res, err := h.foodService.GetReceiptScan(c.Context(), c.Params("id"), currentUser(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetReceiptScan, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReceiptScan)
}

func (h *foodHandler) SaveScannedItems(c *fiber.Ctx) error {
	req := new(domain.SaveScannedItemsRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveScannedItems, err)
	}

	res, err := h.foodService.SaveScannedItems(c.Context(), *req, currentUser(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedSaveScannedItems, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSaveScannedItems)
}

func (h *foodHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.foodService.GetDashboardStats(c.Context(), currentUser(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetDashboardStats, err)
	}
	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetDashboardStats)
}

func (h *foodHandler) GetAlerts(c *fiber.Ctx) error {
	alerts, err := h.foodService.GetAlerts(c.Context(), currentUser(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetAlerts, err)
	}
	return presenters.SuccessResponse(c, alerts, fiber.StatusOK, domain.MessageSuccessGetAlerts)
}

func (h *foodHandler) ExportInventory(c *fiber.Ctx) error {
	query := new(domain.FoodItemQuery)
	if err := c.QueryParser(query); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedExportInventory, err)
	}

	data, err := h.foodService.ExportInventory(c.Context(), currentUser(c), *query)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedExportInventory, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory.xlsx"`)
	return c.Status(fiber.StatusOK).Send(data)
}
