package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessCreateList      = "shopping list created successfully"
	MessageSuccessGetLists        = "shopping lists retrieved successfully"
	MessageSuccessDeleteList      = "shopping list deleted successfully"
	MessageSuccessAddListItem     = "item added successfully"
	MessageSuccessUpdateListItem  = "item updated successfully"
	MessageSuccessDeleteListItem  = "item deleted successfully"
	MessageSuccessAddLowStockItem = "low-stock items added successfully"

	MessageFailedCreateList      = "failed to create shopping list"
	MessageFailedGetLists        = "failed to retrieve shopping lists"
	MessageFailedDeleteList      = "failed to delete shopping list"
	MessageFailedAddListItem     = "failed to add item"
	MessageFailedUpdateListItem  = "failed to update item"
	MessageFailedDeleteListItem  = "failed to delete item"
	MessageFailedAddLowStockItem = "failed to add low-stock items"

	ErrShoppingListNotFound = errors.New("shopping list not found")
	ErrListItemNotFound     = errors.New("shopping list item not found")
)

type (
	CreateShoppingListRequest struct {
		GroupID string `json:"group_id" validate:"required,uuid"`
		Name    string `json:"name" validate:"required,min=1,max=255"`
	}

	AddListItemRequest struct {
		Name     string          `json:"name" validate:"required,min=1,max=255"`
		Quantity decimal.Decimal `json:"quantity"`
		Unit     string          `json:"unit" validate:"max=32"`
		Category string          `json:"category" validate:"max=64"`
		Notes    string          `json:"notes" validate:"max=1000"`
	}

	UpdateListItemRequest struct {
		Name     *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
		Quantity *decimal.Decimal `json:"quantity,omitempty"`
		Unit     *string          `json:"unit,omitempty" validate:"omitempty,max=32"`
		Notes    *string          `json:"notes,omitempty" validate:"omitempty,max=1000"`
		Checked  *bool            `json:"checked,omitempty"`
	}

	ShoppingListItemResponse struct {
		ID         string          `json:"id"`
		Name       string          `json:"name"`
		Quantity   decimal.Decimal `json:"quantity"`
		Unit       string          `json:"unit"`
		Category   string          `json:"category"`
		Notes      string          `json:"notes,omitempty"`
		Checked    bool            `json:"checked"`
		CheckedBy  *string         `json:"checked_by,omitempty"`
		CheckedAt  *time.Time      `json:"checked_at,omitempty"`
		AddedBy    string          `json:"added_by"`
		FoodItemID *string         `json:"food_item_id,omitempty"`
		CreatedAt  time.Time       `json:"created_at"`
	}

	ShoppingListResponse struct {
		ID             string                     `json:"id"`
		GroupID        string                     `json:"group_id"`
		Name           string                     `json:"name"`
		CreatedBy      string                     `json:"created_by"`
		ItemCount      int                        `json:"item_count"`
		CompletedCount int                        `json:"completed_count"`
		Items          []ShoppingListItemResponse `json:"items,omitempty"`
		CreatedAt      time.Time                  `json:"created_at"`
		UpdatedAt      time.Time                  `json:"updated_at"`
	}
)
