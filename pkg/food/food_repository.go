package food

import (
	"Pantry-Tracker/entities"
	"context"

	"gorm.io/gorm"
)

type (
	FoodRepository interface {
		AddFoodItem(ctx context.Context, foodItem *entities.FoodItem) error
		AddFoodItems(ctx context.Context, foodItems []*entities.FoodItem) error
		GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error)
		UpdateFoodItem(ctx context.Context, foodItem *entities.FoodItem) error
		DeleteFoodItem(ctx context.Context, id string) error
		// GetFoodItemsByUser returns every item the user owns, soonest expiry first.
		GetFoodItemsByUser(ctx context.Context, userID string) ([]*entities.FoodItem, error)

		CreateReceiptScan(ctx context.Context, receiptScan *entities.ReceiptScan) error
		GetReceiptScanByID(ctx context.Context, id string) (*entities.ReceiptScan, error)
		UpdateReceiptScan(ctx context.Context, receiptScan *entities.ReceiptScan) error
	}

	foodRepository struct {
		db *gorm.DB
	}
)

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) AddFoodItem(ctx context.Context, foodItem *entities.FoodItem) error {
	return r.db.WithContext(ctx).Create(foodItem).Error
}

func (r *foodRepository) AddFoodItems(ctx context.Context, foodItems []*entities.FoodItem) error {
	if len(foodItems) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&foodItems).Error
	})
}

func (r *foodRepository) GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error) {
	var foodItem entities.FoodItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&foodItem).Error; err != nil {
		return nil, err
	}
	return &foodItem, nil
}

func (r *foodRepository) UpdateFoodItem(ctx context.Context, foodItem *entities.FoodItem) error {
	return r.db.WithContext(ctx).Save(foodItem).Error
}

func (r *foodRepository) DeleteFoodItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.FoodItem{}).Error
}

func (r *foodRepository) GetFoodItemsByUser(ctx context.Context, userID string) ([]*entities.FoodItem, error) {
	var foodItems []*entities.FoodItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("expiry_date asc").
		Order("created_at asc").
		Find(&foodItems).Error; err != nil {
		return nil, err
	}
	return foodItems, nil
}

func (r *foodRepository) CreateReceiptScan(ctx context.Context, receiptScan *entities.ReceiptScan) error {
	return r.db.WithContext(ctx).Create(receiptScan).Error
}

func (r *foodRepository) GetReceiptScanByID(ctx context.Context, id string) (*entities.ReceiptScan, error) {
	var receiptScan entities.ReceiptScan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&receiptScan).Error; err != nil {
		return nil, err
	}
	return &receiptScan, nil
}

func (r *foodRepository) UpdateReceiptScan(ctx context.Context, receiptScan *entities.ReceiptScan) error {
	return r.db.WithContext(ctx).Save(receiptScan).Error
}
