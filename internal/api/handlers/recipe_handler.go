package handlers

import (
	"Pantry-Tracker/domain"
	"Pantry-Tracker/internal/api/presenters"
	"Pantry-Tracker/pkg/recipe"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		GetRecipeRecommendations(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		BookmarkRecipe(c *fiber.Ctx) error
		RemoveBookmark(c *fiber.Ctx) error
		GetBookmarkedRecipes(c *fiber.Ctx) error
		MarkAsCooked(c *fiber.Ctx) error
		GetRecipeHistory(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) GetRecipeRecommendations(c *fiber.Ctx) error {
	req := domain.RecipeRecommendationRequest{
		IncludeExpiringOnly: c.QueryBool("include_expiring_only", false),
		CuisineType:         c.Query("cuisine_type"),
		DifficultyLevel:     c.Query("difficulty_level"),
		PreparationTime:     c.QueryInt("prep_time", 0),
	}

	res, err := h.recipeService.GetRecipeRecommendations(c.Context(), req, currentUser(c))
	if err != nil {
		if errors.Is(err, domain.ErrNoIngredients) {
			return presenters.SuccessResponse(c, domain.RecipeRecommendationResponse{
				Recipes: []domain.Recipe{},
			}, fiber.StatusOK, domain.ErrNoIngredients.Error())
		}
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	res, err := h.recipeService.GetRecipeDetail(c.Context(), c.Params("id"), currentUser(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetRecipeDetail, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) BookmarkRecipe(c *fiber.Ctx) error {
	req := new(domain.BookmarkRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBookmarkRecipe, err)
	}

	if err := h.recipeService.BookmarkRecipe(c.Context(), currentUser(c), req.RecipeID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedBookmarkRecipe, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessBookmarkRecipe)
}

func (h *recipeHandler) RemoveBookmark(c *fiber.Ctx) error {
	req := new(domain.BookmarkRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRemoveBookmark, err)
	}

	if err := h.recipeService.RemoveBookmark(c.Context(), currentUser(c), req.RecipeID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedRemoveBookmark, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRemoveBookmark)
}

func (h *recipeHandler) GetBookmarkedRecipes(c *fiber.Ctx) error {
	page, limit := c.QueryInt("page", 1), c.QueryInt("limit", 20)

	res, err := h.recipeService.GetBookmarkedRecipes(c.Context(), currentUser(c), page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) MarkAsCooked(c *fiber.Ctx) error {
	req := new(domain.MarkAsCookedRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMarkAsCooked, err)
	}

	if err := h.recipeService.MarkAsCooked(c.Context(), currentUser(c), req.RecipeID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedMarkAsCooked, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkAsCooked)
}

func (h *recipeHandler) GetRecipeHistory(c *fiber.Ctx) error {
	page, limit := c.QueryInt("page", 1), c.QueryInt("limit", 20)

	res, err := h.recipeService.GetRecipeHistory(c.Context(), currentUser(c), page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetHistory, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetHistory)
}
