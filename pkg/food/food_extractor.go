package food

import (
	"Pantry-Tracker/domain"
	"Pantry-Tracker/internal/utils/gemini"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Extractor reads food attributes out of photos. Dates it returns are unchecked strings.
type Extractor interface {
	ExtractFoodAttributes(ctx context.Context, image []byte, mimeType string, today string) (domain.ExtractedAttributes, error)
	ExtractReceiptItems(ctx context.Context, image []byte, mimeType string, today string) ([]domain.ExtractedAttributes, error)
}

type geminiExtractor struct {
	client gemini.Client
}

func NewGeminiExtractor(client gemini.Client) Extractor {
	return &geminiExtractor{client: client}
}

const attributeFields = "'name' (string), 'category' (one of: vegetables, fruits, dairy, meat, seafood, grains, " +
	"beverages, snacks, frozen, condiments, bakery), 'quantity' (number), 'unit' (string, e.g. pcs, kg, l), " +
	"'purchase_date' (YYYY-MM-DD or empty) and 'expiry_date' (YYYY-MM-DD)"

func (g *geminiExtractor) ExtractFoodAttributes(ctx context.Context, image []byte, mimeType string, today string) (domain.ExtractedAttributes, error) {
	prompt := fmt.Sprintf(
		"Today is %s. Analyze this food photo and respond ONLY with a valid JSON object containing: %s, "+
			"and 'confidence' (number between 0 and 1). Estimate the expiry date from the food type and its visible state. "+
			"Do not include explanations or markdown.",
		today, attributeFields,
	)

	text, err := g.client.Generate(ctx, gemini.Request{Prompt: prompt, Image: image, MimeType: mimeType, Temperature: 0.1})
	if err != nil {
		return domain.ExtractedAttributes{}, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	raw, err := gemini.ExtractJSON(text, '{', '}')
	if err != nil {
		return domain.ExtractedAttributes{}, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	var attrs domain.ExtractedAttributes
	if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
		return domain.ExtractedAttributes{}, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	return normalizeAttributes(attrs), nil
}

func (g *geminiExtractor) ExtractReceiptItems(ctx context.Context, image []byte, mimeType string, today string) ([]domain.ExtractedAttributes, error) {
	prompt := fmt.Sprintf(
		"Today is %s. This is a grocery receipt. List every food line item and respond ONLY with a valid JSON array "+
			"of objects containing: %s. Use the receipt date as purchase_date when printed, and estimate a typical "+
			"expiry date for each product. Do not include explanations or markdown.",
		today, attributeFields,
	)

	text, err := g.client.Generate(ctx, gemini.Request{Prompt: prompt, Image: image, MimeType: mimeType, Temperature: 0.1})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrReceiptProcessingFailed, err)
	}

	raw, err := gemini.ExtractArray(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrReceiptProcessingFailed, err)
	}

	var items []domain.ExtractedAttributes
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrReceiptProcessingFailed, err)
	}

	out := make([]domain.ExtractedAttributes, 0, len(items))
	for _, it := range items {
		it = normalizeAttributes(it)
		if it.Name == "" {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func normalizeAttributes(a domain.ExtractedAttributes) domain.ExtractedAttributes {
	a.Name = strings.TrimSpace(a.Name)
	a.Category = strings.ToLower(strings.TrimSpace(a.Category))
	a.Unit = strings.TrimSpace(a.Unit)
	a.PurchaseDate = strings.TrimSpace(a.PurchaseDate)
	a.ExpiryDate = strings.TrimSpace(a.ExpiryDate)
	if a.Confidence < 0 || a.Confidence > 1 {
		a.Confidence = 0.5
	}
	return a
}
