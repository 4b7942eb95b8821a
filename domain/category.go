package domain

import "errors"

var (
	MessageSuccessGetCategories     = "categories retrieved successfully"
	MessageSuccessReplaceCategories = "categories updated successfully"
	MessageSuccessGetLayout         = "layout generated successfully"
	MessageSuccessGetPatterns       = "layout patterns retrieved successfully"

	MessageFailedGetCategories     = "failed to retrieve categories"
	MessageFailedReplaceCategories = "failed to update categories"
	MessageFailedGetLayout         = "failed to generate layout"

	ErrUnknownLayoutPattern = errors.New("unknown layout pattern")
	ErrInvalidLayoutColumns = errors.New("layout column count out of range")
)

type (
	CategoryInput struct {
		ID   string `json:"id" validate:"required,max=64"`
		Name string `json:"name" validate:"required,max=100"`
		Icon string `json:"icon" validate:"max=64"`
	}

	ReplaceCategoriesRequest struct {
		Categories []CategoryInput `json:"categories" validate:"required,dive"`
	}

	CategoryResponse struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Icon      string `json:"icon,omitempty"`
		SortOrder int    `json:"sort_order"`
	}
)
