package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FoodItem is the stored shape of an inventory entry. Lifecycle status is derived on read
// and has no column.
type FoodItem struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID            uuid.UUID       `gorm:"type:uuid;index;not null" json:"user_id"`
	Name              string          `gorm:"type:varchar(255);not null" json:"name"`
	Category          string          `gorm:"type:varchar(64);index;not null" json:"category"`
	Quantity          decimal.Decimal `gorm:"type:numeric(12,3);not null;default:0" json:"quantity"`
	Unit              string          `gorm:"type:varchar(32)" json:"unit"`
	PurchaseDate      *time.Time      `gorm:"type:date" json:"purchase_date,omitempty"`
	ExpiryDate        time.Time       `gorm:"type:date;not null" json:"expiry_date"`
	LowStockAlert     bool            `gorm:"not null;default:false" json:"low_stock_alert"`
	LowStockThreshold decimal.Decimal `gorm:"type:numeric(12,3);not null;default:0" json:"low_stock_threshold"`
	Notes             string          `gorm:"type:text" json:"notes,omitempty"`
	ImageURL          string          `json:"image_url,omitempty"`
	AddedManually     bool            `json:"added_manually"`
	ReceiptScanID     *uuid.UUID      `gorm:"type:uuid" json:"receipt_scan_id,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
