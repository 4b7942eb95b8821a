package inventory

import (
	"Pantry-Tracker/domain"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortField string

const (
	SortByName         SortField = "name"
	SortByExpiryDate   SortField = "expiryDate"
	SortByQuantity     SortField = "quantity"
	SortByPurchaseDate SortField = "purchaseDate"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const filterAll = "all"

var ErrInvalidFilter = errors.New("invalid filter")

type FilterOptions struct {
	Category    string
	Status      string
	SearchQuery string
	SortBy      SortField
	SortOrder   SortOrder
}

// Filter narrows items by category, status and search text, then sorts the result.
// The input slice is left untouched.
func Filter(items []domain.FoodItem, opts FilterOptions, now time.Time) ([]domain.FoodItem, error) {
	result := make([]domain.FoodItem, 0, len(items))

	for _, item := range items {
		if opts.Category != "" && opts.Category != filterAll && item.Category != opts.Category {
			continue
		}
		result = append(result, item)
	}

	if opts.Status != "" && opts.Status != filterAll {
		want, ok := ParseStatus(opts.Status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidFilter, opts.Status)
		}
		kept := result[:0]
		for _, item := range result {
			c, err := Classify(item, now)
			if err != nil {
				return nil, err
			}
			if c.Status == want {
				kept = append(kept, item)
			}
		}
		result = kept
	}

	if q := strings.ToLower(strings.TrimSpace(opts.SearchQuery)); q != "" {
		kept := result[:0]
		for _, item := range result {
			if strings.Contains(strings.ToLower(item.Name), q) || strings.Contains(strings.ToLower(item.Notes), q) {
				kept = append(kept, item)
			}
		}
		result = kept
	}

	if opts.SortBy == "" {
		return result, nil
	}
	if err := sortItems(result, opts.SortBy, opts.SortOrder); err != nil {
		return nil, err
	}
	return result, nil
}

func sortItems(items []domain.FoodItem, field SortField, order SortOrder) error {
	desc := false
	switch order {
	case "", SortAsc:
	case SortDesc:
		desc = true
	default:
		return fmt.Errorf("%w: unknown sort order %q", ErrInvalidFilter, order)
	}

	var less func(a, b int) bool
	switch field {
	case SortByName:
		col := collate.New(language.Und, collate.IgnoreCase)
		less = func(a, b int) bool {
			return col.CompareString(items[a].Name, items[b].Name) < 0
		}
	case SortByQuantity:
		less = func(a, b int) bool {
			return items[a].Quantity.LessThan(items[b].Quantity)
		}
	case SortByExpiryDate, SortByPurchaseDate:
		keys, err := dateKeys(items, field)
		if err != nil {
			return err
		}
		sorted := make([]keyedItem, len(items))
		for i := range items {
			sorted[i] = keyedItem{item: items[i], key: keys[i]}
		}
		sort.SliceStable(sorted, func(a, b int) bool {
			if desc {
				return sorted[b].key.Before(sorted[a].key)
			}
			return sorted[a].key.Before(sorted[b].key)
		})
		for i := range sorted {
			items[i] = sorted[i].item
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown sort field %q", ErrInvalidFilter, field)
	}

	sort.SliceStable(items, func(a, b int) bool {
		if desc {
			return less(b, a)
		}
		return less(a, b)
	})
	return nil
}

type keyedItem struct {
	item domain.FoodItem
	key  time.Time
}

// dateKeys parses the sort column up front. Items without a purchase date sort first.
func dateKeys(items []domain.FoodItem, field SortField) ([]time.Time, error) {
	keys := make([]time.Time, len(items))
	for i, item := range items {
		raw, name := item.ExpiryDate, "expiry_date"
		if field == SortByPurchaseDate {
			raw, name = item.PurchaseDate, "purchase_date"
			if strings.TrimSpace(raw) == "" {
				continue
			}
		}
		t, err := ParseDate(name, raw)
		if err != nil {
			return nil, err
		}
		keys[i] = t
	}
	return keys, nil
}
