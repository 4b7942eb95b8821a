package category

import (
	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"
	"Pantry-Tracker/pkg/layout"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultCategories is what a user sees before saving an order of their own.
var DefaultCategories = []domain.CategoryInput{
	{ID: "vegetables", Name: "Vegetables", Icon: "carrot"},
	{ID: "fruits", Name: "Fruits", Icon: "apple"},
	{ID: "dairy", Name: "Dairy", Icon: "milk"},
	{ID: "meat", Name: "Meat", Icon: "drumstick"},
	{ID: "seafood", Name: "Seafood", Icon: "fish"},
	{ID: "grains", Name: "Grains", Icon: "wheat"},
	{ID: "beverages", Name: "Beverages", Icon: "cup"},
	{ID: "snacks", Name: "Snacks", Icon: "cookie"},
}

type (
	CategoryService interface {
		GetCategories(ctx context.Context, userID string) ([]domain.CategoryResponse, error)
		ReplaceCategories(ctx context.Context, userID string, req domain.ReplaceCategoriesRequest) ([]domain.CategoryResponse, error)
		GetLayout(ctx context.Context, userID string, patternName string, columns int) (layout.Layout, error)
		GetPatterns() []string
	}

	categoryService struct {
		categoryRepository CategoryRepository
		patterns           *layout.PatternTable
		defaultColumns     int
	}
)

func NewCategoryService(categoryRepository CategoryRepository, patterns *layout.PatternTable, defaultColumns int) CategoryService {
	if defaultColumns <= 0 {
		defaultColumns = 2
	}
	if defaultColumns > layout.MaxColumns {
		defaultColumns = layout.MaxColumns
	}
	return &categoryService{
		categoryRepository: categoryRepository,
		patterns:           patterns,
		defaultColumns:     defaultColumns,
	}
}

func defaultResponses() []domain.CategoryResponse {
	out := make([]domain.CategoryResponse, 0, len(DefaultCategories))
	for i, c := range DefaultCategories {
		out = append(out, domain.CategoryResponse{ID: c.ID, Name: c.Name, Icon: c.Icon, SortOrder: i})
	}
	return out
}

func (s *categoryService) GetCategories(ctx context.Context, userID string) ([]domain.CategoryResponse, error) {
	rows, err := s.categoryRepository.GetCategoriesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return defaultResponses(), nil
	}

	out := make([]domain.CategoryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.CategoryResponse{ID: r.Key, Name: r.Name, Icon: r.Icon, SortOrder: r.SortOrder})
	}
	return out, nil
}

func (s *categoryService) ReplaceCategories(ctx context.Context, userID string, req domain.ReplaceCategoriesRequest) ([]domain.CategoryResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	seen := make(map[string]struct{}, len(req.Categories))
	rows := make([]*entities.Category, 0, len(req.Categories))
	for i, c := range req.Categories {
		key := strings.TrimSpace(c.ID)
		if _, dup := seen[key]; dup {
			return nil, &layout.ConfigError{CategoryID: key, Reason: "duplicate category"}
		}
		seen[key] = struct{}{}
		rows = append(rows, &entities.Category{
			ID:        uuid.New(),
			UserID:    userUUID,
			Key:       key,
			Name:      strings.TrimSpace(c.Name),
			Icon:      c.Icon,
			SortOrder: i,
		})
	}

	if err := s.categoryRepository.ReplaceCategories(ctx, userID, rows); err != nil {
		return nil, err
	}
	return s.GetCategories(ctx, userID)
}

// GetLayout packs the user's categories, in their saved order, with the named pattern.
// columns <= 0 means the configured default.
func (s *categoryService) GetLayout(ctx context.Context, userID string, patternName string, columns int) (layout.Layout, error) {
	if patternName == "" {
		patternName = layout.PatternA
	}
	pattern, ok := s.patterns.Lookup(patternName)
	if !ok {
		return layout.Layout{}, fmt.Errorf("%w: %q", domain.ErrUnknownLayoutPattern, patternName)
	}
	if columns <= 0 {
		columns = s.defaultColumns
	}

	categories, err := s.GetCategories(ctx, userID)
	if err != nil {
		return layout.Layout{}, err
	}

	input := make([]layout.Category, 0, len(categories))
	for _, c := range categories {
		input = append(input, layout.Category{ID: c.ID, Name: c.Name, Icon: c.Icon})
	}
	return layout.Generate(input, pattern, columns)
}

func (s *categoryService) GetPatterns() []string {
	return s.patterns.Names()
}
