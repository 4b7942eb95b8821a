package entities

import "github.com/google/uuid"

// Category is one tile of a user's storage map. Key is the stable id used by layout patterns.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_category_user_key;not null" json:"user_id"`
	Key       string    `gorm:"type:varchar(64);uniqueIndex:idx_category_user_key;not null" json:"key"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Icon      string    `gorm:"type:varchar(64)" json:"icon,omitempty"`
	SortOrder int       `gorm:"not null" json:"sort_order"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
