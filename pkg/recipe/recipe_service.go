package recipe

import (
	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"
	"Pantry-Tracker/internal/utils"
	"Pantry-Tracker/internal/utils/cache"
	"Pantry-Tracker/internal/utils/gemini"
	"Pantry-Tracker/pkg/food"
	"Pantry-Tracker/pkg/inventory"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	recommendationCount = 5
	recommendationTTL   = 30 * time.Minute
)

type (
	RecipeService interface {
		GetRecipeRecommendations(ctx context.Context, req domain.RecipeRecommendationRequest, userID string) (domain.RecipeRecommendationResponse, error)
		GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeDetail, error)
		BookmarkRecipe(ctx context.Context, userID, recipeID string) error
		RemoveBookmark(ctx context.Context, userID, recipeID string) error
		GetBookmarkedRecipes(ctx context.Context, userID string, page, limit int) (domain.RecipeHistoryResponse, error)
		MarkAsCooked(ctx context.Context, userID, recipeID string) error
		GetRecipeHistory(ctx context.Context, userID string, page, limit int) (domain.RecipeHistoryResponse, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		foodRepository   food.FoodRepository
		gemini           gemini.Client
		cache            cache.Cache
		now              func() time.Time
	}

	// pantryItem is an inventory row that is still usable for cooking.
	pantryItem struct {
		Name            string
		Quantity        string
		Unit            string
		ExpiryDate      string
		DaysUntilExpiry int
		ExpiringSoon    bool
	}

	generatedIngredient struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	}

	generatedRecipe struct {
		Title           string                `json:"title"`
		Description     string                `json:"description"`
		PrepTimeMinutes int                   `json:"prep_time_minutes"`
		CookTimeMinutes int                   `json:"cook_time_minutes"`
		Servings        int                   `json:"servings"`
		DifficultyLevel string                `json:"difficulty_level"`
		CuisineType     string                `json:"cuisine_type"`
		Ingredients     []generatedIngredient `json:"ingredients"`
		Instructions    []string              `json:"instructions"`
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	foodRepository food.FoodRepository,
	geminiClient gemini.Client,
	recipeCache cache.Cache,
) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		foodRepository:   foodRepository,
		gemini:           geminiClient,
		cache:            recipeCache,
		now:              time.Now,
	}
}

// pantry classifies the user's inventory and drops expired or unreadable items.
func (s *recipeService) pantry(ctx context.Context, userID string) ([]pantryItem, error) {
	rows, err := s.foodRepository.GetFoodItemsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	items := make([]pantryItem, 0, len(rows))
	for _, row := range rows {
		item := food.ToFoodItem(row)
		c, err := inventory.Classify(item, now)
		if err != nil {
			utils.LogError("recipe", "pantry", "classifying item", item.ID, err)
			continue
		}
		if c.IsExpired {
			continue
		}
		items = append(items, pantryItem{
			Name:            item.Name,
			Quantity:        item.Quantity.String(),
			Unit:            item.Unit,
			ExpiryDate:      item.ExpiryDate,
			DaysUntilExpiry: c.DaysUntilExpiry,
			ExpiringSoon:    c.IsExpiringSoon,
		})
	}
	return items, nil
}

func recommendationKey(userID string, req domain.RecipeRecommendationRequest, items []pantryItem) string {
	lines := make([]string, 0, len(items)+1)
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%s|%s|%s|%s", strings.ToLower(it.Name), it.Quantity, it.Unit, it.ExpiryDate))
	}
	sort.Strings(lines)
	lines = append(lines, fmt.Sprintf("%t|%s|%s|%d", req.IncludeExpiringOnly, req.CuisineType, req.DifficultyLevel, req.PreparationTime))

	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return fmt.Sprintf("recipes:%s:%s", userID, hex.EncodeToString(sum[:12]))
}

func (s *recipeService) GetRecipeRecommendations(ctx context.Context, req domain.RecipeRecommendationRequest, userID string) (domain.RecipeRecommendationResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeRecommendationResponse{}, domain.ErrParseUUID
	}

	items, err := s.pantry(ctx, userID)
	if err != nil {
		return domain.RecipeRecommendationResponse{}, err
	}

	expiring := 0
	selected := make([]pantryItem, 0, len(items))
	for _, it := range items {
		if it.ExpiringSoon {
			expiring++
		}
		if req.IncludeExpiringOnly && !it.ExpiringSoon {
			continue
		}
		selected = append(selected, it)
	}
	if len(selected) == 0 {
		return domain.RecipeRecommendationResponse{}, domain.ErrNoIngredients
	}

	key := recommendationKey(userID, req, selected)
	var cached domain.RecipeRecommendationResponse
	if ok, err := s.cache.GetObject(ctx, key, &cached); err != nil {
		utils.LogError("recipe", "GetRecipeRecommendations", "reading cache", key, err)
	} else if ok {
		for i := range cached.Recipes {
			s.decorate(ctx, userID, &cached.Recipes[i])
		}
		return cached, nil
	}

	generated, err := s.generateRecipes(ctx, req, selected)
	if err != nil {
		return domain.RecipeRecommendationResponse{}, err
	}

	recipes := make([]domain.Recipe, 0, len(generated))
	for _, g := range generated {
		entity, err := newRecipeEntity(userUUID, g)
		if err != nil {
			return domain.RecipeRecommendationResponse{}, err
		}
		if err := s.recipeRepository.CreateRecipe(ctx, entity); err != nil {
			return domain.RecipeRecommendationResponse{}, err
		}
		recipes = append(recipes, toRecipe(entity))
	}

	res := domain.RecipeRecommendationResponse{
		Recipes:       recipes,
		TotalRecipes:  len(recipes),
		ExpiringItems: expiring,
	}
	// one cached set per user; older fingerprints are stale once the pantry changed
	if err := s.cache.DeletePrefix(ctx, fmt.Sprintf("recipes:%s:", userID)); err != nil {
		utils.LogError("recipe", "GetRecipeRecommendations", "dropping stale cache", userID, err)
	}
	if err := s.cache.SetObject(ctx, key, res, recommendationTTL); err != nil {
		utils.LogError("recipe", "GetRecipeRecommendations", "writing cache", key, err)
	}
	return res, nil
}

func (s *recipeService) generateRecipes(ctx context.Context, req domain.RecipeRecommendationRequest, items []pantryItem) ([]generatedRecipe, error) {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "- %s (%s %s), expires in %d days\n", it.Name, it.Quantity, it.Unit, it.DaysUntilExpiry)
	}

	var prefs []string
	if req.CuisineType != "" {
		prefs = append(prefs, "cuisine: "+req.CuisineType)
	}
	if req.DifficultyLevel != "" {
		prefs = append(prefs, "difficulty: "+req.DifficultyLevel)
	}
	if req.PreparationTime > 0 {
		prefs = append(prefs, fmt.Sprintf("total time at most %d minutes", req.PreparationTime))
	}
	preferences := "none"
	if len(prefs) > 0 {
		preferences = strings.Join(prefs, "; ")
	}

	prompt := fmt.Sprintf(
		"Suggest %d recipes that use the following pantry items, preferring those that expire soonest:\n%s"+
			"Preferences: %s.\n"+
			"Respond ONLY with a valid JSON array of objects with: 'title', 'description', 'prep_time_minutes', "+
			"'cook_time_minutes', 'servings', 'difficulty_level' (easy, medium or hard), 'cuisine_type', "+
			"'ingredients' (array of {'name','quantity','unit'}) and 'instructions' (array of step strings). "+
			"Do not include explanations or markdown.",
		recommendationCount, b.String(), preferences,
	)

	text, err := s.gemini.Generate(ctx, gemini.Request{Prompt: prompt, Temperature: 0.4})
	if err != nil {
		utils.LogError("recipe", "generateRecipes", "calling gemini", nil, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrGeminiAPIFailed, err)
	}
	raw, err := gemini.ExtractArray(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGeminiAPIFailed, err)
	}

	var recipes []generatedRecipe
	if err := json.Unmarshal([]byte(raw), &recipes); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGeminiAPIFailed, err)
	}

	out := recipes[:0]
	for _, r := range recipes {
		if strings.TrimSpace(r.Title) == "" {
			continue
		}
		out = append(out, r)
	}
	if len(out) > recommendationCount {
		out = out[:recommendationCount]
	}
	return out, nil
}

func newRecipeEntity(userID uuid.UUID, g generatedRecipe) (*entities.Recipe, error) {
	ingredients, err := json.Marshal(g.Ingredients)
	if err != nil {
		return nil, err
	}
	instructions, err := json.Marshal(g.Instructions)
	if err != nil {
		return nil, err
	}
	return &entities.Recipe{
		ID:              uuid.New(),
		UserID:          userID,
		Title:           strings.TrimSpace(g.Title),
		Description:     g.Description,
		PrepTimeMinutes: g.PrepTimeMinutes,
		CookTimeMinutes: g.CookTimeMinutes,
		Servings:        g.Servings,
		DifficultyLevel: strings.ToLower(g.DifficultyLevel),
		CuisineType:     g.CuisineType,
		Ingredients:     string(ingredients),
		Instructions:    string(instructions),
		IsGenerated:     true,
	}, nil
}

func toRecipe(e *entities.Recipe) domain.Recipe {
	return domain.Recipe{
		ID:              e.ID.String(),
		Title:           e.Title,
		Description:     e.Description,
		PrepTimeMinutes: e.PrepTimeMinutes,
		CookTimeMinutes: e.CookTimeMinutes,
		Servings:        e.Servings,
		DifficultyLevel: e.DifficultyLevel,
		CuisineType:     e.CuisineType,
		CreatedAt:       e.CreatedAt,
	}
}

// decorate fills the per-user flags; lookup failures leave them false.
func (s *recipeService) decorate(ctx context.Context, userID string, r *domain.Recipe) {
	bookmarked, err := s.recipeRepository.IsRecipeBookmarked(ctx, userID, r.ID)
	if err != nil {
		utils.LogError("recipe", "decorate", "checking bookmark", r.ID, err)
	}
	cooked, err := s.recipeRepository.IsRecipeInHistory(ctx, userID, r.ID)
	if err != nil {
		utils.LogError("recipe", "decorate", "checking history", r.ID, err)
	}
	r.IsBookmarked = bookmarked
	r.IsCooked = cooked
}

func (s *recipeService) getOwnedRecipe(ctx context.Context, recipeID string, userID string) (*entities.Recipe, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, domain.ErrRecipeNotFound
	}
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.UserID.String() != userID {
		return nil, domain.ErrRecipeNotFound
	}
	return recipe, nil
}

// matchPantry finds the pantry item an ingredient name refers to.
func matchPantry(name string, items []pantryItem) (pantryItem, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return pantryItem{}, false
	}
	for _, it := range items {
		p := strings.ToLower(strings.TrimSpace(it.Name))
		if p == "" {
			continue
		}
		if strings.Contains(n, p) || strings.Contains(p, n) {
			return it, true
		}
	}
	return pantryItem{}, false
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeDetail, error) {
	recipe, err := s.getOwnedRecipe(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	var ingredients []generatedIngredient
	if recipe.Ingredients != "" {
		if err := json.Unmarshal([]byte(recipe.Ingredients), &ingredients); err != nil {
			utils.LogError("recipe", "GetRecipeDetail", "decoding ingredients", recipe.ID.String(), err)
		}
	}
	var instructions []string
	if recipe.Instructions != "" {
		if err := json.Unmarshal([]byte(recipe.Instructions), &instructions); err != nil {
			utils.LogError("recipe", "GetRecipeDetail", "decoding instructions", recipe.ID.String(), err)
		}
	}

	items, err := s.pantry(ctx, userID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	detail := domain.RecipeDetail{
		Recipe:        toRecipe(recipe),
		Ingredients:   make([]domain.Ingredient, 0, len(ingredients)),
		Instructions:  instructions,
		RequiredItems: []domain.AdditionalItem{},
	}
	if detail.Instructions == nil {
		detail.Instructions = []string{}
	}
	s.decorate(ctx, userID, &detail.Recipe)

	for _, ing := range ingredients {
		out := domain.Ingredient{Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit}
		if it, ok := matchPantry(ing.Name, items); ok {
			out.IsAvailable = true
			out.ExpiryDate = it.ExpiryDate
			out.DaysUntilExpiry = it.DaysUntilExpiry
		} else {
			detail.RequiredItems = append(detail.RequiredItems, domain.AdditionalItem{
				Name:     ing.Name,
				Quantity: ing.Quantity,
				Unit:     ing.Unit,
			})
		}
		detail.Ingredients = append(detail.Ingredients, out)
	}
	return detail, nil
}

func (s *recipeService) BookmarkRecipe(ctx context.Context, userID, recipeID string) error {
	if _, err := s.getOwnedRecipe(ctx, recipeID, userID); err != nil {
		return err
	}
	return s.recipeRepository.BookmarkRecipe(ctx, userID, recipeID)
}

func (s *recipeService) RemoveBookmark(ctx context.Context, userID, recipeID string) error {
	if _, err := s.getOwnedRecipe(ctx, recipeID, userID); err != nil {
		return err
	}
	return s.recipeRepository.RemoveBookmark(ctx, userID, recipeID)
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func (s *recipeService) GetBookmarkedRecipes(ctx context.Context, userID string, page, limit int) (domain.RecipeHistoryResponse, error) {
	page, limit = normalizePage(page, limit)
	rows, total, err := s.recipeRepository.GetRecipeBookmarks(ctx, userID, page, limit)
	if err != nil {
		return domain.RecipeHistoryResponse{}, err
	}

	recipes := make([]domain.Recipe, 0, len(rows))
	for _, row := range rows {
		r := toRecipe(row)
		r.IsBookmarked = true
		cooked, err := s.recipeRepository.IsRecipeInHistory(ctx, userID, r.ID)
		if err != nil {
			utils.LogError("recipe", "GetBookmarkedRecipes", "checking history", r.ID, err)
		}
		r.IsCooked = cooked
		recipes = append(recipes, r)
	}
	return domain.RecipeHistoryResponse{Recipes: recipes, Total: int(total)}, nil
}

func (s *recipeService) MarkAsCooked(ctx context.Context, userID, recipeID string) error {
	if _, err := s.getOwnedRecipe(ctx, recipeID, userID); err != nil {
		return err
	}
	return s.recipeRepository.AddRecipeHistory(ctx, userID, recipeID)
}

func (s *recipeService) GetRecipeHistory(ctx context.Context, userID string, page, limit int) (domain.RecipeHistoryResponse, error) {
	page, limit = normalizePage(page, limit)
	rows, total, err := s.recipeRepository.GetRecipeHistory(ctx, userID, page, limit)
	if err != nil {
		return domain.RecipeHistoryResponse{}, err
	}

	recipes := make([]domain.Recipe, 0, len(rows))
	for _, row := range rows {
		r := toRecipe(row)
		r.IsCooked = true
		bookmarked, err := s.recipeRepository.IsRecipeBookmarked(ctx, userID, r.ID)
		if err != nil {
			utils.LogError("recipe", "GetRecipeHistory", "checking bookmark", r.ID, err)
		}
		r.IsBookmarked = bookmarked
		recipes = append(recipes, r)
	}
	return domain.RecipeHistoryResponse{Recipes: recipes, Total: int(total)}, nil
}
