package domain

import (
	"errors"
	"mime/multipart"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessAddFoodItem       = "food item added successfully"
	MessageSuccessUpdateFoodItem    = "food item updated successfully"
	MessageSuccessDeleteFoodItem    = "food item deleted successfully"
	MessageSuccessGetFoodItems      = "food items retrieved successfully"
	MessageSuccessUploadImage       = "image uploaded successfully"
	MessageSuccessUploadReceipt     = "receipt uploaded successfully"
	MessageSuccessGetReceiptScan    = "receipt scan retrieved successfully"
	MessageSuccessSaveScannedItems  = "scanned items saved successfully"
	MessageSuccessGetDashboardStats = "dashboard statistics retrieved successfully"
	MessageSuccessGetAlerts         = "inventory alerts retrieved successfully"

	MessageFailedAddFoodItem       = "failed to add food item"
	MessageFailedUpdateFoodItem    = "failed to update food item"
	MessageFailedDeleteFoodItem    = "failed to delete food item"
	MessageFailedGetFoodItems      = "failed to retrieve food items"
	MessageFailedUploadImage       = "failed to upload image"
	MessageFailedUploadReceipt     = "failed to upload receipt"
	MessageFailedGetReceiptScan    = "failed to retrieve receipt scan"
	MessageFailedSaveScannedItems  = "failed to save scanned items"
	MessageFailedGetDashboardStats = "failed to retrieve dashboard statistics"
	MessageFailedGetAlerts         = "failed to retrieve inventory alerts"
	MessageFailedExportInventory   = "failed to export inventory"

	ErrFoodItemNotFound        = errors.New("food item not found")
	ErrReceiptScanNotFound     = errors.New("receipt scan not found")
	ErrReceiptNotProcessed     = errors.New("receipt scan has not been processed yet")
	ErrInvalidQuantity         = errors.New("quantity must not be negative")
	ErrInvalidImageFormat      = errors.New("invalid image format")
	ErrUnauthorizedAccess      = errors.New("unauthorized access to food item")
	ErrExtractionFailed        = errors.New("attribute extraction failed")
	ErrReceiptProcessingFailed = errors.New("receipt processing failed")
)

const DateLayout = "2006-01-02"

type (
	// FoodItem is the read model the inventory engines work on. Dates are kept as
	// strings because they can come from clients and from the extraction service.
	FoodItem struct {
		ID                string          `json:"id"`
		Name              string          `json:"name"`
		Category          string          `json:"category"`
		Quantity          decimal.Decimal `json:"quantity"`
		Unit              string          `json:"unit"`
		PurchaseDate      string          `json:"purchase_date,omitempty"`
		ExpiryDate        string          `json:"expiry_date"`
		LowStockAlert     bool            `json:"low_stock_alert"`
		LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
		Notes             string          `json:"notes,omitempty"`
		ImageURL          string          `json:"image_url,omitempty"`
	}

	FoodItemResponse struct {
		FoodItem
		Status          string    `json:"status"`
		DaysUntilExpiry int       `json:"days_until_expiry"`
		IsExpired       bool      `json:"is_expired"`
		IsExpiringSoon  bool      `json:"is_expiring_soon"`
		StatusError     string    `json:"status_error,omitempty"`
		CreatedAt       time.Time `json:"created_at"`
	}

	AddFoodItemRequest struct {
		Name              string          `json:"name" validate:"required,max=255"`
		Category          string          `json:"category" validate:"required,max=64"`
		Quantity          decimal.Decimal `json:"quantity"`
		Unit              string          `json:"unit" validate:"required,max=32"`
		PurchaseDate      string          `json:"purchase_date" validate:"omitempty"`
		ExpiryDate        string          `json:"expiry_date" validate:"required"`
		LowStockAlert     bool            `json:"low_stock_alert"`
		LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
		Notes             string          `json:"notes" validate:"max=1000"`
	}

	UpdateFoodItemRequest struct {
		Name              *string          `json:"name,omitempty" validate:"omitempty,max=255"`
		Category          *string          `json:"category,omitempty" validate:"omitempty,max=64"`
		Quantity          *decimal.Decimal `json:"quantity,omitempty"`
		Unit              *string          `json:"unit,omitempty" validate:"omitempty,max=32"`
		PurchaseDate      *string          `json:"purchase_date,omitempty"`
		ExpiryDate        *string          `json:"expiry_date,omitempty"`
		LowStockAlert     *bool            `json:"low_stock_alert,omitempty"`
		LowStockThreshold *decimal.Decimal `json:"low_stock_threshold,omitempty"`
		Notes             *string          `json:"notes,omitempty" validate:"omitempty,max=1000"`
	}

	FoodItemQuery struct {
		Category    string `query:"category"`
		Status      string `query:"status"`
		SearchQuery string `query:"q"`
		SortBy      string `query:"sort_by"`
		SortOrder   string `query:"sort_order"`
		Page        int    `query:"page"`
		Limit       int    `query:"limit"`
	}

	UploadFoodImageRequest struct {
		FoodItemID string                `json:"food_id" validate:"required,uuid"`
		Image      *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	// ExtractedAttributes is what the AI service returns for a photo or receipt line.
	ExtractedAttributes struct {
		Name         string          `json:"name"`
		Category     string          `json:"category"`
		Quantity     decimal.Decimal `json:"quantity"`
		Unit         string          `json:"unit"`
		PurchaseDate string          `json:"purchase_date,omitempty"`
		ExpiryDate   string          `json:"expiry_date"`
		Confidence   float64         `json:"confidence,omitempty"`
	}

	UploadFoodImageResponse struct {
		ImageURL  string               `json:"image_url"`
		Extracted *ExtractedAttributes `json:"extracted,omitempty"`
		Item      FoodItemResponse     `json:"item"`
	}

	UploadReceiptRequest struct {
		ReceiptImage *multipart.FileHeader `json:"receipt_image" form:"receipt_image" validate:"required"`
	}

	UploadReceiptResponse struct {
		ScanID   string `json:"scan_id"`
		ImageURL string `json:"image_url"`
		Status   string `json:"status"`
	}

	ScannedItemPreview struct {
		ExtractedAttributes
		Status          string `json:"status,omitempty"`
		DaysUntilExpiry int    `json:"days_until_expiry"`
		StatusError     string `json:"status_error,omitempty"`
	}

	ReceiptScanResponse struct {
		ScanID   string               `json:"scan_id"`
		ImageURL string               `json:"image_url"`
		Status   string               `json:"status"`
		Message  string               `json:"message,omitempty"`
		Items    []ScannedItemPreview `json:"items"`
	}

	ScannedItemRequest struct {
		Name         string          `json:"name" validate:"required"`
		Category     string          `json:"category" validate:"required"`
		Quantity     decimal.Decimal `json:"quantity"`
		Unit         string          `json:"unit" validate:"required"`
		PurchaseDate string          `json:"purchase_date"`
		ExpiryDate   string          `json:"expiry_date" validate:"required"`
	}

	SaveScannedItemsRequest struct {
		ScanID string               `json:"scan_id" validate:"required,uuid"`
		Items  []ScannedItemRequest `json:"items" validate:"required,min=1,dive"`
	}

	DashboardStatsResponse struct {
		TotalItems        int `json:"total_items"`
		NormalItems       int `json:"normal_items"`
		LowStockItems     int `json:"low_stock_items"`
		ExpiringSoonItems int `json:"expiring_soon_items"`
		ExpiredItems      int `json:"expired_items"`
		UnknownItems      int `json:"unknown_items"`
	}

	AlertsResponse struct {
		Expired      []FoodItemResponse `json:"expired"`
		ExpiringSoon []FoodItemResponse `json:"expiring_soon"`
		LowStock     []FoodItemResponse `json:"low_stock"`
	}
)
