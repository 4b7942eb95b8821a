package food

import (
	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"
	"Pantry-Tracker/internal/utils"
	"Pantry-Tracker/internal/utils/storage"
	"Pantry-Tracker/pkg/inventory"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type (
	FoodService interface {
		AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, userID string) (domain.FoodItemResponse, error)
		UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest, userID string) (domain.FoodItemResponse, error)
		DeleteFoodItem(ctx context.Context, id string, userID string) error
		GetFoodItems(ctx context.Context, userID string, query domain.FoodItemQuery) ([]domain.FoodItemResponse, domain.Pagination, error)
		GetFoodItemByID(ctx context.Context, id string, userID string) (domain.FoodItemResponse, error)
		GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error)
		GetAlerts(ctx context.Context, userID string) (domain.AlertsResponse, error)
		UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest, userID string) (domain.UploadFoodImageResponse, error)
		UploadReceipt(ctx context.Context, req domain.UploadReceiptRequest, userID string) (domain.UploadReceiptResponse, error)
		GetReceiptScan(ctx context.Context, scanID string, userID string) (domain.ReceiptScanResponse, error)
		SaveScannedItems(ctx context.Context, req domain.SaveScannedItemsRequest, userID string) ([]domain.FoodItemResponse, error)
		ExportInventory(ctx context.Context, userID string, query domain.FoodItemQuery) ([]byte, error)
	}

	foodService struct {
		foodRepository FoodRepository
		s3             storage.AwsS3
		extractor      Extractor
		now            func() time.Time
		// runAsync starts background receipt processing.
		runAsync func(func())
	}
)

func NewFoodService(foodRepository FoodRepository, s3 storage.AwsS3, extractor Extractor) FoodService {
	return &foodService{
		foodRepository: foodRepository,
		s3:             s3,
		extractor:      extractor,
		now:            time.Now,
		runAsync:       func(f func()) { go f() },
	}
}

func (s *foodService) getOwnedItem(ctx context.Context, id string, userID string) (*entities.FoodItem, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrFoodItemNotFound
	}
	foodItem, err := s.foodRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodItemNotFound
		}
		return nil, err
	}
	if foodItem.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return foodItem, nil
}

func (s *foodService) respond(e *entities.FoodItem) domain.FoodItemResponse {
	return NewFoodItemResponse(ToFoodItem(e), e.CreatedAt, s.now())
}

func (s *foodService) AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, userID string) (domain.FoodItemResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.FoodItemResponse{}, domain.ErrParseUUID
	}

	if req.Quantity.IsNegative() || req.LowStockThreshold.IsNegative() {
		return domain.FoodItemResponse{}, domain.ErrInvalidQuantity
	}

	purchase, expiry, err := parseDates(strings.TrimSpace(req.PurchaseDate), req.ExpiryDate)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	foodItem := &entities.FoodItem{
		ID:                uuid.New(),
		UserID:            userUUID,
		Name:              strings.TrimSpace(req.Name),
		Category:          req.Category,
		Quantity:          req.Quantity,
		Unit:              req.Unit,
		PurchaseDate:      purchase,
		ExpiryDate:        expiry,
		LowStockAlert:     req.LowStockAlert,
		LowStockThreshold: req.LowStockThreshold,
		Notes:             req.Notes,
		AddedManually:     true,
	}

	if err := s.foodRepository.AddFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}
	return s.respond(foodItem), nil
}

func (s *foodService) UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest, userID string) (domain.FoodItemResponse, error) {
	foodItem, err := s.getOwnedItem(ctx, id, userID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	if req.Name != nil {
		foodItem.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		foodItem.Category = *req.Category
	}
	if req.Quantity != nil {
		if req.Quantity.IsNegative() {
			return domain.FoodItemResponse{}, domain.ErrInvalidQuantity
		}
		foodItem.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		foodItem.Unit = *req.Unit
	}
	if req.LowStockAlert != nil {
		foodItem.LowStockAlert = *req.LowStockAlert
	}
	if req.LowStockThreshold != nil {
		if req.LowStockThreshold.IsNegative() {
			return domain.FoodItemResponse{}, domain.ErrInvalidQuantity
		}
		foodItem.LowStockThreshold = *req.LowStockThreshold
	}
	if req.Notes != nil {
		foodItem.Notes = *req.Notes
	}

	if req.PurchaseDate != nil || req.ExpiryDate != nil {
		current := ToFoodItem(foodItem)
		purchaseRaw, expiryRaw := current.PurchaseDate, current.ExpiryDate
		if req.PurchaseDate != nil {
			purchaseRaw = strings.TrimSpace(*req.PurchaseDate)
		}
		if req.ExpiryDate != nil {
			expiryRaw = *req.ExpiryDate
		}
		purchase, expiry, err := parseDates(purchaseRaw, expiryRaw)
		if err != nil {
			return domain.FoodItemResponse{}, err
		}
		foodItem.PurchaseDate = purchase
		foodItem.ExpiryDate = expiry
	}

	if err := s.foodRepository.UpdateFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}
	return s.respond(foodItem), nil
}

func (s *foodService) DeleteFoodItem(ctx context.Context, id string, userID string) error {
	foodItem, err := s.getOwnedItem(ctx, id, userID)
	if err != nil {
		return err
	}

	if foodItem.ImageURL != "" {
		if objectKey := s.s3.GetObjectKeyFromLink(foodItem.ImageURL); objectKey != "" {
			if err := s.s3.DeleteFile(objectKey); err != nil {
				utils.LogError("food", "DeleteFoodItem", "deleting item image", objectKey, err)
			}
		}
	}

	return s.foodRepository.DeleteFoodItem(ctx, id)
}

// filtered loads the user's items and runs them through the inventory filter.
func (s *foodService) filtered(ctx context.Context, userID string, query domain.FoodItemQuery) ([]domain.FoodItem, map[string]time.Time, error) {
	rows, err := s.foodRepository.GetFoodItemsByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	createdAt := make(map[string]time.Time, len(rows))
	for _, r := range rows {
		createdAt[r.ID.String()] = r.CreatedAt
	}

	items, err := inventory.Filter(ToFoodItems(rows), inventory.FilterOptions{
		Category:    query.Category,
		Status:      query.Status,
		SearchQuery: query.SearchQuery,
		SortBy:      inventory.SortField(query.SortBy),
		SortOrder:   inventory.SortOrder(query.SortOrder),
	}, s.now())
	if err != nil {
		return nil, nil, err
	}
	return items, createdAt, nil
}

func (s *foodService) GetFoodItems(ctx context.Context, userID string, query domain.FoodItemQuery) ([]domain.FoodItemResponse, domain.Pagination, error) {
	items, createdAt, err := s.filtered(ctx, userID, query)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	page, limit := query.Page, query.Limit
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	start := (page - 1) * limit
	if start > len(items) {
		start = len(items)
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}

	now := s.now()
	response := make([]domain.FoodItemResponse, 0, end-start)
	for _, item := range items[start:end] {
		response = append(response, NewFoodItemResponse(item, createdAt[item.ID], now))
	}
	return response, domain.NewPagination(page, limit, int64(len(items))), nil
}

func (s *foodService) GetFoodItemByID(ctx context.Context, id string, userID string) (domain.FoodItemResponse, error) {
	foodItem, err := s.getOwnedItem(ctx, id, userID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}
	return s.respond(foodItem), nil
}

func (s *foodService) GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error) {
	rows, err := s.foodRepository.GetFoodItemsByUser(ctx, userID)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	now := s.now()
	stats := domain.DashboardStatsResponse{TotalItems: len(rows)}
	for _, row := range rows {
		c, err := inventory.Classify(ToFoodItem(row), now)
		if err != nil {
			utils.LogError("food", "GetDashboardStats", "classifying item", row.ID.String(), err)
			stats.UnknownItems++
			continue
		}
		switch c.Status {
		case inventory.StatusExpired:
			stats.ExpiredItems++
		case inventory.StatusExpiringSoon:
			stats.ExpiringSoonItems++
		case inventory.StatusLowStock:
			stats.LowStockItems++
		default:
			stats.NormalItems++
		}
	}
	return stats, nil
}

func (s *foodService) GetAlerts(ctx context.Context, userID string) (domain.AlertsResponse, error) {
	rows, err := s.foodRepository.GetFoodItemsByUser(ctx, userID)
	if err != nil {
		return domain.AlertsResponse{}, err
	}

	alerts := domain.AlertsResponse{
		Expired:      []domain.FoodItemResponse{},
		ExpiringSoon: []domain.FoodItemResponse{},
		LowStock:     []domain.FoodItemResponse{},
	}
	for _, row := range rows {
		res := s.respond(row)
		switch inventory.Status(res.Status) {
		case inventory.StatusExpired:
			alerts.Expired = append(alerts.Expired, res)
		case inventory.StatusExpiringSoon:
			alerts.ExpiringSoon = append(alerts.ExpiringSoon, res)
		case inventory.StatusLowStock:
			alerts.LowStock = append(alerts.LowStock, res)
		}
	}
	return alerts, nil
}

func readUpload(file *multipart.FileHeader) ([]byte, string, error) {
	src, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", err
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		switch strings.ToLower(filepath.Ext(file.Filename)) {
		case ".png":
			mimeType = "image/png"
		case ".webp":
			mimeType = "image/webp"
		case ".heic":
			mimeType = "image/heic"
		default:
			mimeType = "image/jpeg"
		}
	}
	return data, mimeType, nil
}

// UploadFoodImage stores the photo and then lets the extractor refine the item. Extraction
// problems are logged; the upload itself still succeeds.
func (s *foodService) UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest, userID string) (domain.UploadFoodImageResponse, error) {
	foodItem, err := s.getOwnedItem(ctx, req.FoodItemID, userID)
	if err != nil {
		return domain.UploadFoodImageResponse{}, err
	}

	fileName := fmt.Sprintf("food-item-%s", foodItem.ID.String())
	var objectKey string
	if existingKey := s.s3.GetObjectKeyFromLink(foodItem.ImageURL); foodItem.ImageURL != "" && existingKey != "" {
		objectKey, err = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
	} else {
		objectKey, err = s.s3.UploadFile(fileName, req.Image, "food-items", storage.AllowImage...)
	}
	if err != nil {
		return domain.UploadFoodImageResponse{}, err
	}
	foodItem.ImageURL = s.s3.GetPublicLinkKey(objectKey)

	var extracted *domain.ExtractedAttributes
	if s.extractor != nil {
		if attrs, err := s.extractFromUpload(ctx, req.Image); err != nil {
			utils.LogError("food", "UploadFoodImage", "extracting attributes", foodItem.ID.String(), err)
		} else {
			extracted = &attrs
			applyExtracted(foodItem, attrs)
		}
	}

	if err := s.foodRepository.UpdateFoodItem(ctx, foodItem); err != nil {
		return domain.UploadFoodImageResponse{}, err
	}

	return domain.UploadFoodImageResponse{
		ImageURL:  foodItem.ImageURL,
		Extracted: extracted,
		Item:      s.respond(foodItem),
	}, nil
}

func (s *foodService) extractFromUpload(ctx context.Context, file *multipart.FileHeader) (domain.ExtractedAttributes, error) {
	data, mimeType, err := readUpload(file)
	if err != nil {
		return domain.ExtractedAttributes{}, err
	}
	return s.extractor.ExtractFoodAttributes(ctx, data, mimeType, s.now().Format(domain.DateLayout))
}

// applyExtracted copies usable extracted values onto the item. An unreadable expiry
// date from the extractor is dropped, never guessed.
func applyExtracted(item *entities.FoodItem, attrs domain.ExtractedAttributes) {
	if attrs.Name != "" {
		item.Name = attrs.Name
	}
	if attrs.Category != "" {
		item.Category = attrs.Category
	}
	if attrs.Quantity.IsPositive() {
		item.Quantity = attrs.Quantity
	}
	if attrs.Unit != "" {
		item.Unit = attrs.Unit
	}
	if attrs.ExpiryDate != "" {
		if t, err := inventory.ParseDate("expiry_date", attrs.ExpiryDate); err == nil {
			item.ExpiryDate = inventory.CalendarDay(t)
		} else {
			utils.LogError("food", "applyExtracted", "ignoring extracted expiry date", attrs.ExpiryDate, err)
		}
	}
}

func (s *foodService) UploadReceipt(ctx context.Context, req domain.UploadReceiptRequest, userID string) (domain.UploadReceiptResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.UploadReceiptResponse{}, domain.ErrParseUUID
	}

	// read before returning; the multipart file does not outlive the request
	data, mimeType, err := readUpload(req.ReceiptImage)
	if err != nil {
		return domain.UploadReceiptResponse{}, err
	}

	scanID := uuid.New()
	objectKey, err := s.s3.UploadFile(fmt.Sprintf("receipt-%s", scanID.String()), req.ReceiptImage, "receipts", storage.AllowImage...)
	if err != nil {
		return domain.UploadReceiptResponse{}, err
	}
	imageURL := s.s3.GetPublicLinkKey(objectKey)

	receiptScan := &entities.ReceiptScan{
		ID:       scanID,
		UserID:   userUUID,
		ImageURL: imageURL,
		Status:   entities.ReceiptStatusPending,
	}
	if err := s.foodRepository.CreateReceiptScan(ctx, receiptScan); err != nil {
		_ = s.s3.DeleteFile(objectKey)
		return domain.UploadReceiptResponse{}, err
	}

	today := s.now().Format(domain.DateLayout)
	s.runAsync(func() {
		s.processReceipt(context.Background(), receiptScan, data, mimeType, today)
	})

	return domain.UploadReceiptResponse{
		ScanID:   scanID.String(),
		ImageURL: imageURL,
		Status:   entities.ReceiptStatusPending,
	}, nil
}

func (s *foodService) processReceipt(ctx context.Context, scan *entities.ReceiptScan, data []byte, mimeType, today string) {
	fail := func(reason string) {
		scan.Status = entities.ReceiptStatusFailed
		scan.FailureReason = reason
		if err := s.foodRepository.UpdateReceiptScan(ctx, scan); err != nil {
			utils.LogError("food", "processReceipt", "saving failed scan", scan.ID.String(), err)
		}
	}

	if s.extractor == nil {
		fail("receipt extraction is not configured")
		return
	}

	items, err := s.extractor.ExtractReceiptItems(ctx, data, mimeType, today)
	if err != nil {
		utils.LogError("food", "processReceipt", "extracting receipt items", scan.ID.String(), err)
		fail(err.Error())
		return
	}
	if len(items) == 0 {
		fail("no items could be extracted from the receipt")
		return
	}

	raw, err := json.Marshal(items)
	if err != nil {
		fail(err.Error())
		return
	}
	scan.Status = entities.ReceiptStatusProcessed
	scan.ExtractedItems = string(raw)
	if err := s.foodRepository.UpdateReceiptScan(ctx, scan); err != nil {
		utils.LogError("food", "processReceipt", "saving processed scan", scan.ID.String(), err)
	}
}

func (s *foodService) getOwnedScan(ctx context.Context, scanID string, userID string) (*entities.ReceiptScan, error) {
	if _, err := uuid.Parse(scanID); err != nil {
		return nil, domain.ErrReceiptScanNotFound
	}
	scan, err := s.foodRepository.GetReceiptScanByID(ctx, scanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReceiptScanNotFound
		}
		return nil, err
	}
	if scan.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return scan, nil
}

// GetReceiptScan returns the extracted lines, each with a preview status. A line whose
// dates cannot be read keeps an empty status and carries the reason in StatusError.
func (s *foodService) GetReceiptScan(ctx context.Context, scanID string, userID string) (domain.ReceiptScanResponse, error) {
	scan, err := s.getOwnedScan(ctx, scanID, userID)
	if err != nil {
		return domain.ReceiptScanResponse{}, err
	}

	res := domain.ReceiptScanResponse{
		ScanID:   scan.ID.String(),
		ImageURL: scan.ImageURL,
		Status:   scan.Status,
		Message:  scan.FailureReason,
		Items:    []domain.ScannedItemPreview{},
	}
	if scan.ExtractedItems == "" {
		return res, nil
	}

	var extracted []domain.ExtractedAttributes
	if err := json.Unmarshal([]byte(scan.ExtractedItems), &extracted); err != nil {
		return domain.ReceiptScanResponse{}, fmt.Errorf("%w: %v", domain.ErrReceiptProcessingFailed, err)
	}

	now := s.now()
	for _, attrs := range extracted {
		preview := domain.ScannedItemPreview{ExtractedAttributes: attrs}
		c, err := inventory.Classify(domain.FoodItem{
			Name:         attrs.Name,
			Category:     attrs.Category,
			Quantity:     attrs.Quantity,
			Unit:         attrs.Unit,
			PurchaseDate: attrs.PurchaseDate,
			ExpiryDate:   attrs.ExpiryDate,
		}, now)
		if err != nil {
			preview.StatusError = err.Error()
		} else {
			preview.Status = string(c.Status)
			preview.DaysUntilExpiry = c.DaysUntilExpiry
		}
		res.Items = append(res.Items, preview)
	}
	return res, nil
}

// SaveScannedItems persists the confirmed lines. Every line is validated before anything
// is written, so one bad date rejects the whole batch.
func (s *foodService) SaveScannedItems(ctx context.Context, req domain.SaveScannedItemsRequest, userID string) ([]domain.FoodItemResponse, error) {
	scan, err := s.getOwnedScan(ctx, req.ScanID, userID)
	if err != nil {
		return nil, err
	}
	if scan.Status != entities.ReceiptStatusProcessed {
		return nil, domain.ErrReceiptNotProcessed
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	foodItems := make([]*entities.FoodItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity.IsNegative() {
			return nil, domain.ErrInvalidQuantity
		}
		purchase, expiry, err := parseDates(strings.TrimSpace(item.PurchaseDate), item.ExpiryDate)
		if err != nil {
			return nil, err
		}
		scanID := scan.ID
		foodItems = append(foodItems, &entities.FoodItem{
			ID:                uuid.New(),
			UserID:            userUUID,
			Name:              strings.TrimSpace(item.Name),
			Category:          item.Category,
			Quantity:          item.Quantity,
			Unit:              item.Unit,
			PurchaseDate:      purchase,
			ExpiryDate:        expiry,
			LowStockThreshold: decimal.Zero,
			AddedManually:     false,
			ReceiptScanID:     &scanID,
		})
	}

	if err := s.foodRepository.AddFoodItems(ctx, foodItems); err != nil {
		return nil, err
	}

	scan.Status = entities.ReceiptStatusCompleted
	if err := s.foodRepository.UpdateReceiptScan(ctx, scan); err != nil {
		return nil, err
	}

	res := make([]domain.FoodItemResponse, 0, len(foodItems))
	for _, fi := range foodItems {
		res = append(res, s.respond(fi))
	}
	return res, nil
}
