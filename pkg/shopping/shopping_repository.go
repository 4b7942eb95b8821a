package shopping

import (
	"Pantry-Tracker/entities"
	"context"

	"gorm.io/gorm"
)

type (
	ShoppingRepository interface {
		CreateList(ctx context.Context, list *entities.ShoppingList) error
		GetListByID(ctx context.Context, id string) (*entities.ShoppingList, error)
		// GetListsByUser returns the lists of every group the user belongs to.
		GetListsByUser(ctx context.Context, userID string) ([]*entities.ShoppingList, error)
		DeleteList(ctx context.Context, id string) error
		TouchList(ctx context.Context, id string) error

		AddItems(ctx context.Context, items []*entities.ShoppingListItem) error
		GetItemByID(ctx context.Context, id string) (*entities.ShoppingListItem, error)
		UpdateItem(ctx context.Context, item *entities.ShoppingListItem) error
		DeleteItem(ctx context.Context, id string) error
	}

	shoppingRepository struct {
		db *gorm.DB
	}
)

func NewShoppingRepository(db *gorm.DB) ShoppingRepository {
	return &shoppingRepository{db: db}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("created_at asc")
}

func (r *shoppingRepository) CreateList(ctx context.Context, list *entities.ShoppingList) error {
	return r.db.WithContext(ctx).Omit("Group", "Items").Create(list).Error
}

func (r *shoppingRepository) GetListByID(ctx context.Context, id string) (*entities.ShoppingList, error) {
	var list entities.ShoppingList
	if err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("id = ?", id).
		First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *shoppingRepository) GetListsByUser(ctx context.Context, userID string) ([]*entities.ShoppingList, error) {
	var lists []*entities.ShoppingList
	if err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Joins("JOIN group_members ON group_members.group_id = shopping_lists.group_id").
		Where("group_members.user_id = ?", userID).
		Order("shopping_lists.updated_at desc").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *shoppingRepository) DeleteList(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", id).Delete(&entities.ShoppingListItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.ShoppingList{}).Error
	})
}

func (r *shoppingRepository) TouchList(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entities.ShoppingList{}).
		Where("id = ?", id).
		Update("updated_at", gorm.Expr("NOW()")).Error
}

func (r *shoppingRepository) AddItems(ctx context.Context, items []*entities.ShoppingListItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("List").Create(&items).Error
	})
}

func (r *shoppingRepository) GetItemByID(ctx context.Context, id string) (*entities.ShoppingListItem, error) {
	var item entities.ShoppingListItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *shoppingRepository) UpdateItem(ctx context.Context, item *entities.ShoppingListItem) error {
	return r.db.WithContext(ctx).Omit("List").Save(item).Error
}

func (r *shoppingRepository) DeleteItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.ShoppingListItem{}).Error
}
