package routes

import (
	"Pantry-Tracker/internal/api/handlers"
	"Pantry-Tracker/internal/middleware"
	"Pantry-Tracker/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	FoodHandler     handlers.FoodHandler
	CategoryHandler handlers.CategoryHandler
	RecipeHandler   handlers.RecipeHandler
	GroupHandler    handlers.GroupHandler
	ShoppingHandler handlers.ShoppingHandler
	NotifyHandler   handlers.NotifyHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.User()
	c.FoodItems()
	c.Categories()
	c.Recipes()
	c.Groups()
	c.ShoppingLists()
	c.Notifications()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) auth() fiber.Handler {
	return c.Middleware.AuthMiddleware(c.JWTService)
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	user.Post("/register", c.UserHandler.Register)
	user.Post("/login", c.UserHandler.Login)
	user.Get("/me", c.auth(), c.UserHandler.Me)
}

func (c *Config) FoodItems() {
	foodItems := c.App.Group("/api/v1/food-items", c.auth())

	// fixed paths before /:id
	foodItems.Get("/dashboard", c.FoodHandler.GetDashboardStats)
	foodItems.Get("/alerts", c.FoodHandler.GetAlerts)
	foodItems.Get("/export", c.FoodHandler.ExportInventory)
	foodItems.Post("/receipt-scan", c.FoodHandler.UploadReceipt)
	foodItems.Get("/receipt-scan/:id", c.FoodHandler.GetReceiptScanResult)
	foodItems.Post("/save-scanned", c.FoodHandler.SaveScannedItems)

	foodItems.Post("", c.FoodHandler.AddFoodItem)
	foodItems.Get("", c.FoodHandler.GetFoodItems)
	foodItems.Get("/:id", c.FoodHandler.GetFoodItemDetails)
	foodItems.Put("/:id", c.FoodHandler.UpdateFoodItem)
	foodItems.Delete("/:id", c.FoodHandler.DeleteFoodItem)
	foodItems.Post("/:id/image", c.FoodHandler.UploadFoodImage)
}

func (c *Config) Categories() {
	categories := c.App.Group("/api/v1/categories", c.auth())
	categories.Get("", c.CategoryHandler.GetCategories)
	categories.Put("", c.CategoryHandler.ReplaceCategories)

	layout := c.App.Group("/api/v1/layout", c.auth())
	layout.Get("", c.CategoryHandler.GetLayout)
	layout.Get("/patterns", c.CategoryHandler.GetPatterns)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.auth())
	recipes.Get("/recommendations", c.RecipeHandler.GetRecipeRecommendations)
	recipes.Get("/bookmarks", c.RecipeHandler.GetBookmarkedRecipes)
	recipes.Post("/bookmarks", c.RecipeHandler.BookmarkRecipe)
	recipes.Delete("/bookmarks", c.RecipeHandler.RemoveBookmark)
	recipes.Post("/cooked", c.RecipeHandler.MarkAsCooked)
	recipes.Get("/history", c.RecipeHandler.GetRecipeHistory)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
}

func (c *Config) Groups() {
	groups := c.App.Group("/api/v1/groups", c.auth())
	groups.Post("", c.GroupHandler.CreateGroup)
	groups.Get("", c.GroupHandler.GetMyGroups)
	groups.Post("/:id/members", c.GroupHandler.AddMember)
	groups.Delete("/:id/members/:userId", c.GroupHandler.RemoveMember)
}

func (c *Config) ShoppingLists() {
	lists := c.App.Group("/api/v1/shopping-lists", c.auth())
	lists.Post("", c.ShoppingHandler.CreateList)
	lists.Get("", c.ShoppingHandler.GetLists)
	lists.Get("/:id", c.ShoppingHandler.GetList)
	lists.Delete("/:id", c.ShoppingHandler.DeleteList)
	lists.Post("/:id/items", c.ShoppingHandler.AddItem)
	lists.Put("/:id/items/:itemId", c.ShoppingHandler.UpdateItem)
	lists.Delete("/:id/items/:itemId", c.ShoppingHandler.DeleteItem)
	lists.Post("/:id/low-stock", c.ShoppingHandler.AddLowStockItems)
}

func (c *Config) Notifications() {
	notifications := c.App.Group("/api/v1/notifications", c.auth())
	notifications.Post("/expiry-digest", c.NotifyHandler.SendExpiryDigest)
}
