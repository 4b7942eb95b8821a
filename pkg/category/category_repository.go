package category

import (
	"Pantry-Tracker/entities"
	"context"

	"gorm.io/gorm"
)

type (
	CategoryRepository interface {
		GetCategoriesByUser(ctx context.Context, userID string) ([]*entities.Category, error)
		// ReplaceCategories swaps the user's whole list in one transaction.
		ReplaceCategories(ctx context.Context, userID string, categories []*entities.Category) error
	}

	categoryRepository struct {
		db *gorm.DB
	}
)

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetCategoriesByUser(ctx context.Context, userID string) ([]*entities.Category, error) {
	var categories []*entities.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sort_order asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) ReplaceCategories(ctx context.Context, userID string, categories []*entities.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&entities.Category{}).Error; err != nil {
			return err
		}
		if len(categories) == 0 {
			return nil
		}
		return tx.Create(&categories).Error
	})
}
