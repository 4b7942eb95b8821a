package config

import (
	"Pantry-Tracker/internal/api/handlers"
	"Pantry-Tracker/internal/api/routes"
	"Pantry-Tracker/internal/middleware"
	"Pantry-Tracker/internal/utils"
	"Pantry-Tracker/internal/utils/cache"
	"Pantry-Tracker/internal/utils/gemini"
	"Pantry-Tracker/internal/utils/mailing"
	"Pantry-Tracker/internal/utils/storage"
	"Pantry-Tracker/pkg/category"
	"Pantry-Tracker/pkg/food"
	"Pantry-Tracker/pkg/group"
	"Pantry-Tracker/pkg/jwt"
	"Pantry-Tracker/pkg/layout"
	"Pantry-Tracker/pkg/notify"
	"Pantry-Tracker/pkg/recipe"
	"Pantry-Tracker/pkg/shopping"
	"Pantry-Tracker/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const defaultLayoutColumns = 2

type App struct {
	Fiber  *fiber.App
	Notify notify.NotifyService
}

// patternTable merges LAYOUT_PATTERNS from the config over the built-in patterns.
func patternTable() *layout.PatternTable {
	overrides := map[string]layout.Pattern{}
	for name, entries := range utils.GetLayoutPatterns() {
		p := layout.Pattern{}
		for id, f := range entries {
			p[id] = layout.Footprint{W: f.W, H: f.H}
		}
		overrides[name] = p
	}
	return layout.NewPatternTable(overrides)
}

func NewApp(db *gorm.DB, rdb *redis.Client) (*App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		BodyLimit:         10 * 1024 * 1024,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// access log and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, err
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	geminiClient := gemini.NewClient()
	redisCache := cache.NewRedisCache(rdb)
	mailer := mailing.NewMailer()

	// Repository
	userRepository := user.NewUserRepository(db)
	foodRepository := food.NewFoodRepository(db)
	categoryRepository := category.NewCategoryRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	groupRepository := group.NewGroupRepository(db)
	shoppingRepository := shopping.NewShoppingRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	foodService := food.NewFoodService(foodRepository, s3, food.NewGeminiExtractor(geminiClient))
	categoryService := category.NewCategoryService(
		categoryRepository,
		patternTable(),
		utils.GetConfigInt("LAYOUT_COLUMNS", defaultLayoutColumns),
	)
	recipeService := recipe.NewRecipeService(recipeRepository, foodRepository, geminiClient, redisCache)
	groupService := group.NewGroupService(groupRepository, userRepository)
	shoppingService := shopping.NewShoppingService(shoppingRepository, groupService, foodRepository)
	notifyService := notify.NewNotifyService(foodRepository, userRepository, mailer)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     handlers.NewUserHandler(userService, validator),
		FoodHandler:     handlers.NewFoodHandler(foodService, validator),
		CategoryHandler: handlers.NewCategoryHandler(categoryService, validator),
		RecipeHandler:   handlers.NewRecipeHandler(recipeService, validator),
		GroupHandler:    handlers.NewGroupHandler(groupService, validator),
		ShoppingHandler: handlers.NewShoppingHandler(shoppingService, validator),
		NotifyHandler:   handlers.NewNotifyHandler(notifyService),
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return &App{Fiber: app, Notify: notifyService}, nil
}
