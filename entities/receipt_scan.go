package entities

import (
	"github.com/google/uuid"
)

const (
	ReceiptStatusPending   = "Pending"
	ReceiptStatusProcessed = "Processed"
	ReceiptStatusFailed    = "Failed"
	ReceiptStatusCompleted = "Completed"
)

type ReceiptScan struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ImageURL string    `json:"image_url"`
	Status   string    `gorm:"type:varchar(20);not null" json:"status"`
	// ExtractedItems holds the JSON array of line items returned by the extraction service.
	ExtractedItems string `gorm:"type:text" json:"extracted_items,omitempty"`
	FailureReason  string `gorm:"type:text" json:"failure_reason,omitempty"`

	User      *User       `gorm:"foreignKey:UserID"`
	FoodItems []*FoodItem `gorm:"foreignKey:ReceiptScanID"`
	Timestamp
}
