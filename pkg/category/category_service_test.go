package category

import (
	"context"
	"sync"
	"testing"

	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"
	"Pantry-Tracker/pkg/layout"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	mu   sync.Mutex
	rows map[string][]*entities.Category
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: map[string][]*entities.Category{}}
}

func (m *memoryRepo) GetCategoriesByUser(_ context.Context, userID string) ([]*entities.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*entities.Category(nil), m.rows[userID]...), nil
}

func (m *memoryRepo) ReplaceCategories(_ context.Context, userID string, rows []*entities.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[userID] = append([]*entities.Category(nil), rows...)
	return nil
}

func newService() CategoryService {
	table := layout.NewPatternTable(map[string]layout.Pattern{
		"wide": {"dairy": {W: 3, H: 1}},
	})
	return NewCategoryService(newMemoryRepo(), table, 2)
}

func TestDefaultsThenReplace(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	userID := uuid.NewString()

	got, err := svc.GetCategories(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, len(DefaultCategories))
	assert.Equal(t, "vegetables", got[0].ID)

	got, err = svc.ReplaceCategories(ctx, userID, domain.ReplaceCategoriesRequest{Categories: []domain.CategoryInput{
		{ID: "dairy", Name: "Dairy"},
		{ID: "fruits", Name: "Fruits"},
	}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "dairy", got[0].ID)
	assert.Equal(t, 1, got[1].SortOrder)

	_, err = svc.ReplaceCategories(ctx, userID, domain.ReplaceCategoriesRequest{Categories: []domain.CategoryInput{
		{ID: "dairy", Name: "Dairy"},
		{ID: "dairy", Name: "Dairy again"},
	}})
	require.ErrorIs(t, err, layout.ErrConfig)
}

func TestGetLayoutUsesSavedOrder(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	userID := uuid.NewString()

	_, err := svc.ReplaceCategories(ctx, userID, domain.ReplaceCategoriesRequest{Categories: []domain.CategoryInput{
		{ID: "fruits", Name: "Fruits"},
		{ID: "vegetables", Name: "Vegetables"},
		{ID: "dairy", Name: "Dairy"},
	}})
	require.NoError(t, err)

	// layout-a: fruits 1x2, vegetables 2x1, dairy 1x1 on two columns
	got, err := svc.GetLayout(ctx, userID, layout.PatternA, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Columns)
	assert.Equal(t, layout.Grid{
		{"fruits", "dairy"},
		{"fruits", ""},
		{"vegetables", "vegetables"},
	}, got.Grid)
}

func TestGetLayoutErrors(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	userID := uuid.NewString()

	_, err := svc.GetLayout(ctx, userID, "layout-z", 2)
	require.ErrorIs(t, err, domain.ErrUnknownLayoutPattern)

	_, err = svc.ReplaceCategories(ctx, userID, domain.ReplaceCategoriesRequest{Categories: []domain.CategoryInput{{ID: "dairy", Name: "Dairy"}}})
	require.NoError(t, err)
	_, err = svc.GetLayout(ctx, userID, "wide", 2)
	require.ErrorIs(t, err, layout.ErrConfig)

	got, err := svc.GetLayout(ctx, userID, "wide", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Rows())

	_, err = svc.GetLayout(ctx, userID, "wide", layout.MaxColumns+1)
	require.ErrorIs(t, err, layout.ErrConfig)
}

func TestDefaultColumnsCapped(t *testing.T) {
	svc := NewCategoryService(newMemoryRepo(), layout.NewPatternTable(nil), 1000)

	got, err := svc.GetLayout(context.Background(), uuid.NewString(), layout.PatternA, 0)
	require.NoError(t, err)
	assert.Equal(t, layout.MaxColumns, got.Columns)
}

func TestGetPatterns(t *testing.T) {
	assert.Equal(t, []string{layout.PatternA, layout.PatternB, "wide"}, newService().GetPatterns())
}
