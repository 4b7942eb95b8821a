package food

import (
	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"
	"Pantry-Tracker/internal/utils"
	"Pantry-Tracker/pkg/inventory"
	"time"
)

// ToFoodItem converts the stored row into the read model the inventory engines use.
func ToFoodItem(e *entities.FoodItem) domain.FoodItem {
	item := domain.FoodItem{
		ID:                e.ID.String(),
		Name:              e.Name,
		Category:          e.Category,
		Quantity:          e.Quantity,
		Unit:              e.Unit,
		ExpiryDate:        e.ExpiryDate.Format(domain.DateLayout),
		LowStockAlert:     e.LowStockAlert,
		LowStockThreshold: e.LowStockThreshold,
		Notes:             e.Notes,
		ImageURL:          e.ImageURL,
	}
	if e.PurchaseDate != nil {
		item.PurchaseDate = e.PurchaseDate.Format(domain.DateLayout)
	}
	return item
}

func ToFoodItems(es []*entities.FoodItem) []domain.FoodItem {
	out := make([]domain.FoodItem, 0, len(es))
	for _, e := range es {
		out = append(out, ToFoodItem(e))
	}
	return out
}

// NewFoodItemResponse attaches the derived status. A classification failure is reported in
// StatusError and logged instead of failing the whole read.
func NewFoodItemResponse(item domain.FoodItem, createdAt time.Time, now time.Time) domain.FoodItemResponse {
	res := domain.FoodItemResponse{FoodItem: item, CreatedAt: createdAt}
	c, err := inventory.Classify(item, now)
	if err != nil {
		utils.LogError("food", "NewFoodItemResponse", "classifying item", item.ID, err)
		res.StatusError = err.Error()
		return res
	}
	res.Status = string(c.Status)
	res.DaysUntilExpiry = c.DaysUntilExpiry
	res.IsExpired = c.IsExpired
	res.IsExpiringSoon = c.IsExpiringSoon
	return res
}

// parseDates validates the request dates and returns them as stored calendar dates.
// An empty purchase date is allowed and yields nil.
func parseDates(purchase, expiry string) (*time.Time, time.Time, error) {
	exp, err := inventory.ParseDate("expiry_date", expiry)
	if err != nil {
		return nil, time.Time{}, err
	}
	expDay := inventory.CalendarDay(exp)

	if purchase == "" {
		return nil, expDay, nil
	}
	p, err := inventory.ParseDate("purchase_date", purchase)
	if err != nil {
		return nil, time.Time{}, err
	}
	pDay := inventory.CalendarDay(p)
	return &pDay, expDay, nil
}
