package migration

import (
	"Pantry-Tracker/entities"
	"Pantry-Tracker/internal/utils"
	"fmt"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"receipt scan", &entities.ReceiptScan{}},
		{"food item", &entities.FoodItem{}},
		{"category", &entities.Category{}},
		{"recipe", &entities.Recipe{}},
		{"recipe bookmark", &entities.RecipeBookmark{}},
		{"recipe history", &entities.RecipeHistory{}},
		{"group", &entities.Group{}},
		{"group member", &entities.GroupMember{}},
		{"shopping list", &entities.ShoppingList{}},
		{"shopping list item", &entities.ShoppingListItem{}},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			utils.LogError("migration", "Migrate", "migrating "+m.name+" table", nil, err)
			return fmt.Errorf("migrate %s: %w", m.name, err)
		}
	}

	utils.Logger().Info("database migration complete")
	return nil
}
