package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ShoppingList struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	GroupID   uuid.UUID `gorm:"type:uuid;index;not null" json:"group_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`

	Group *Group              `gorm:"foreignKey:GroupID"`
	Items []*ShoppingListItem `gorm:"foreignKey:ListID"`
	Timestamp
}

type ShoppingListItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ListID     uuid.UUID       `gorm:"type:uuid;index;not null" json:"list_id"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	Quantity   decimal.Decimal `gorm:"type:numeric(12,3);not null;default:0" json:"quantity"`
	Unit       string          `gorm:"type:varchar(32)" json:"unit"`
	Category   string          `gorm:"type:varchar(64)" json:"category"`
	Notes      string          `gorm:"type:text" json:"notes,omitempty"`
	Checked    bool            `gorm:"not null;default:false" json:"checked"`
	CheckedBy  *uuid.UUID      `gorm:"type:uuid" json:"checked_by,omitempty"`
	CheckedAt  *time.Time      `json:"checked_at,omitempty"`
	AddedBy    uuid.UUID       `gorm:"type:uuid;not null" json:"added_by"`
	FoodItemID *uuid.UUID      `gorm:"type:uuid" json:"food_item_id,omitempty"`

	List *ShoppingList `gorm:"foreignKey:ListID"`
	Timestamp
}
