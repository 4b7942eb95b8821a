package entities

import (
	"time"

	"github.com/google/uuid"
)

type Recipe struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Title           string    `gorm:"type:varchar(255);not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	PrepTimeMinutes int       `json:"prep_time_minutes"`
	CookTimeMinutes int       `json:"cook_time_minutes"`
	Servings        int       `json:"servings"`
	DifficultyLevel string    `gorm:"type:varchar(20)" json:"difficulty_level"`
	CuisineType     string    `gorm:"type:varchar(64)" json:"cuisine_type"`
	// Ingredients, Instructions and RequiredItems are JSON arrays.
	Ingredients   string `gorm:"type:text" json:"ingredients"`
	Instructions  string `gorm:"type:text" json:"instructions"`
	RequiredItems string `gorm:"type:text" json:"required_items"`
	IsGenerated   bool   `json:"is_generated"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

type RecipeBookmark struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_bookmark_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_bookmark_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}

type RecipeHistory struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	RecipeID uuid.UUID `gorm:"type:uuid" json:"recipe_id"`
	CookedAt time.Time `gorm:"type:timestamp" json:"cooked_at"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}
