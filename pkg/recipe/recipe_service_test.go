package recipe

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"
	"Pantry-Tracker/internal/utils/cache"
	"Pantry-Tracker/internal/utils/gemini"
	"Pantry-Tracker/pkg/food"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)

type pantryRepo struct {
	food.FoodRepository
	items []*entities.FoodItem
}

func (p *pantryRepo) GetFoodItemsByUser(_ context.Context, userID string) ([]*entities.FoodItem, error) {
	var out []*entities.FoodItem
	for _, it := range p.items {
		if it.UserID.String() == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

type memoryRecipeRepo struct {
	mu        sync.Mutex
	recipes   map[string]*entities.Recipe
	bookmarks map[string]bool
	history   map[string]time.Time
}

func newMemoryRecipeRepo() *memoryRecipeRepo {
	return &memoryRecipeRepo{
		recipes:   map[string]*entities.Recipe{},
		bookmarks: map[string]bool{},
		history:   map[string]time.Time{},
	}
}

func pair(userID, recipeID string) string { return userID + "/" + recipeID }

func (m *memoryRecipeRepo) CreateRecipe(_ context.Context, r *entities.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.recipes[r.ID.String()] = &cp
	return nil
}

func (m *memoryRecipeRepo) GetRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memoryRecipeRepo) collect(userID string, set func(key string) bool) []*entities.Recipe {
	var out []*entities.Recipe
	for id, r := range m.recipes {
		if set(pair(userID, id)) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func (m *memoryRecipeRepo) GetRecipeBookmarks(_ context.Context, userID string, _, _ int) ([]*entities.Recipe, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.collect(userID, func(k string) bool { return m.bookmarks[k] })
	return out, int64(len(out)), nil
}

func (m *memoryRecipeRepo) BookmarkRecipe(_ context.Context, userID, recipeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookmarks[pair(userID, recipeID)] = true
	return nil
}

func (m *memoryRecipeRepo) RemoveBookmark(_ context.Context, userID, recipeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bookmarks, pair(userID, recipeID))
	return nil
}

func (m *memoryRecipeRepo) IsRecipeBookmarked(_ context.Context, userID, recipeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookmarks[pair(userID, recipeID)], nil
}

func (m *memoryRecipeRepo) AddRecipeHistory(_ context.Context, userID, recipeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[pair(userID, recipeID)] = testNow
	return nil
}

func (m *memoryRecipeRepo) GetRecipeHistory(_ context.Context, userID string, _, _ int) ([]*entities.Recipe, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.collect(userID, func(k string) bool { _, ok := m.history[k]; return ok })
	return out, int64(len(out)), nil
}

func (m *memoryRecipeRepo) IsRecipeInHistory(_ context.Context, userID, recipeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.history[pair(userID, recipeID)]
	return ok, nil
}

type countingClient struct {
	reply   string
	err     error
	calls   int
	prompts []string
}

func (c *countingClient) Generate(_ context.Context, req gemini.Request) (string, error) {
	c.calls++
	c.prompts = append(c.prompts, req.Prompt)
	return c.reply, c.err
}

const cannedRecipes = "```json\n[" +
	`{"title":"Milk Rice Pudding","description":"Creamy","prep_time_minutes":5,"cook_time_minutes":30,` +
	`"servings":4,"difficulty_level":"Easy","cuisine_type":"dessert",` +
	`"ingredients":[{"name":"Milk","quantity":1,"unit":"l"},{"name":"rice","quantity":0.2,"unit":"kg"},{"name":"Cinnamon","quantity":1,"unit":"tsp"}],` +
	`"instructions":["Boil milk","Add rice","Simmer"]},` +
	`{"title":"Plain Rice","description":"","ingredients":[{"name":"Rice","quantity":0.3,"unit":"kg"}],"instructions":["Cook"]},` +
	`{"title":"","description":"dropped"}` +
	"]\n```"

type fixture struct {
	svc     *recipeService
	recipes *memoryRecipeRepo
	client  *countingClient
	mr      *miniredis.Miniredis
	userID  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	user := uuid.New()
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	pantry := &pantryRepo{items: []*entities.FoodItem{
		{ID: uuid.New(), UserID: user, Name: "Milk", Quantity: decimal.NewFromInt(1), Unit: "l", ExpiryDate: day(2024, 6, 12)},
		{ID: uuid.New(), UserID: user, Name: "Rice", Quantity: decimal.NewFromInt(2), Unit: "kg", ExpiryDate: day(2025, 1, 1)},
		{ID: uuid.New(), UserID: user, Name: "Bread", Quantity: decimal.NewFromInt(1), Unit: "pcs", ExpiryDate: day(2024, 6, 1)},
		{ID: uuid.New(), UserID: uuid.New(), Name: "Caviar", Quantity: decimal.NewFromInt(1), Unit: "g", ExpiryDate: day(2024, 6, 11)},
	}}

	recipes := newMemoryRecipeRepo()
	client := &countingClient{reply: cannedRecipes}
	svc := NewRecipeService(recipes, pantry, client, cache.NewRedisCache(rdb)).(*recipeService)
	svc.now = func() time.Time { return testNow }

	return &fixture{svc: svc, recipes: recipes, client: client, mr: mr, userID: user.String()}
}

func TestGetRecipeRecommendations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.svc.GetRecipeRecommendations(ctx, domain.RecipeRecommendationRequest{}, f.userID)
	require.NoError(t, err)

	assert.Equal(t, 2, res.TotalRecipes)
	assert.Equal(t, 1, res.ExpiringItems)
	assert.Equal(t, "Milk Rice Pudding", res.Recipes[0].Title)
	assert.Equal(t, "easy", res.Recipes[0].DifficultyLevel)
	assert.Len(t, f.recipes.recipes, 2)

	require.Len(t, f.client.prompts, 1)
	prompt := f.client.prompts[0]
	assert.Contains(t, prompt, "Milk (1 l), expires in 2 days")
	assert.Contains(t, prompt, "Rice")
	assert.NotContains(t, prompt, "Bread")
	assert.NotContains(t, prompt, "Caviar")
}

func TestGetRecipeRecommendationsServedFromCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.svc.GetRecipeRecommendations(ctx, domain.RecipeRecommendationRequest{}, f.userID)
	require.NoError(t, err)
	require.NoError(t, f.svc.BookmarkRecipe(ctx, f.userID, first.Recipes[0].ID))

	second, err := f.svc.GetRecipeRecommendations(ctx, domain.RecipeRecommendationRequest{}, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 1, f.client.calls)
	assert.Equal(t, first.Recipes[0].ID, second.Recipes[0].ID)
	assert.True(t, second.Recipes[0].IsBookmarked)

	f.mr.FastForward(31 * time.Minute)
	_, err = f.svc.GetRecipeRecommendations(ctx, domain.RecipeRecommendationRequest{}, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 2, f.client.calls)
}

func TestGetRecipeRecommendationsExpiringOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.GetRecipeRecommendations(ctx, domain.RecipeRecommendationRequest{IncludeExpiringOnly: true}, f.userID)
	require.NoError(t, err)
	require.Len(t, f.client.prompts, 1)
	assert.Contains(t, f.client.prompts[0], "Milk")
	assert.NotContains(t, f.client.prompts[0], "Rice (")
}

func TestGetRecipeRecommendationsNoIngredients(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.svc.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }

	_, err := f.svc.GetRecipeRecommendations(ctx, domain.RecipeRecommendationRequest{}, f.userID)
	assert.ErrorIs(t, err, domain.ErrNoIngredients)
	assert.Zero(t, f.client.calls)
}

func TestGetRecipeRecommendationsGeminiFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.client.err = errors.New("quota")

	_, err := f.svc.GetRecipeRecommendations(ctx, domain.RecipeRecommendationRequest{}, f.userID)
	assert.ErrorIs(t, err, domain.ErrGeminiAPIFailed)
	assert.Empty(t, f.recipes.recipes)
}

func TestGetRecipeDetailMarksAvailability(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.svc.GetRecipeRecommendations(ctx, domain.RecipeRecommendationRequest{}, f.userID)
	require.NoError(t, err)

	detail, err := f.svc.GetRecipeDetail(ctx, res.Recipes[0].ID, f.userID)
	require.NoError(t, err)
	require.Len(t, detail.Ingredients, 3)

	milk := detail.Ingredients[0]
	assert.True(t, milk.IsAvailable)
	assert.Equal(t, "2024-06-12", milk.ExpiryDate)
	assert.Equal(t, 2, milk.DaysUntilExpiry)
	assert.True(t, detail.Ingredients[1].IsAvailable)
	assert.False(t, detail.Ingredients[2].IsAvailable)

	require.Len(t, detail.RequiredItems, 1)
	assert.Equal(t, "Cinnamon", detail.RequiredItems[0].Name)
	assert.Equal(t, []string{"Boil milk", "Add rice", "Simmer"}, detail.Instructions)
}

func TestGetRecipeDetailOtherUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.svc.GetRecipeRecommendations(ctx, domain.RecipeRecommendationRequest{}, f.userID)
	require.NoError(t, err)

	_, err = f.svc.GetRecipeDetail(ctx, res.Recipes[0].ID, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	_, err = f.svc.GetRecipeDetail(ctx, "not-a-uuid", f.userID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestBookmarksAndHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.svc.GetRecipeRecommendations(ctx, domain.RecipeRecommendationRequest{}, f.userID)
	require.NoError(t, err)
	pudding, rice := res.Recipes[0].ID, res.Recipes[1].ID

	require.NoError(t, f.svc.BookmarkRecipe(ctx, f.userID, pudding))
	require.NoError(t, f.svc.MarkAsCooked(ctx, f.userID, pudding))
	require.NoError(t, f.svc.MarkAsCooked(ctx, f.userID, rice))

	bookmarks, err := f.svc.GetBookmarkedRecipes(ctx, f.userID, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, bookmarks.Total)
	assert.True(t, bookmarks.Recipes[0].IsBookmarked)
	assert.True(t, bookmarks.Recipes[0].IsCooked)

	history, err := f.svc.GetRecipeHistory(ctx, f.userID, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 2, history.Total)
	assert.Equal(t, "Milk Rice Pudding", history.Recipes[0].Title)
	assert.True(t, history.Recipes[0].IsBookmarked)
	assert.False(t, history.Recipes[1].IsBookmarked)

	require.NoError(t, f.svc.RemoveBookmark(ctx, f.userID, pudding))
	bookmarks, err = f.svc.GetBookmarkedRecipes(ctx, f.userID, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, bookmarks.Total)

	assert.ErrorIs(t, f.svc.BookmarkRecipe(ctx, uuid.NewString(), pudding), domain.ErrRecipeNotFound)
}
