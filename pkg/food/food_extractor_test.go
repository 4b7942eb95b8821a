package food

import (
	"context"
	"errors"
	"testing"

	"Pantry-Tracker/domain"
	"Pantry-Tracker/internal/utils/gemini"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cannedClient struct {
	text string
	err  error
	last gemini.Request
}

func (c *cannedClient) Generate(_ context.Context, req gemini.Request) (string, error) {
	c.last = req
	return c.text, c.err
}

func TestExtractFoodAttributes(t *testing.T) {
	client := &cannedClient{text: "```json\n{\"name\":\" Banana \",\"category\":\"Fruits\",\"quantity\":3,\"unit\":\"pcs\",\"expiry_date\":\"2024-06-14\",\"confidence\":7}\n```"}
	ex := NewGeminiExtractor(client)

	attrs, err := ex.ExtractFoodAttributes(context.Background(), []byte("img"), "image/png", "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, "Banana", attrs.Name)
	assert.Equal(t, "fruits", attrs.Category)
	assert.True(t, attrs.Quantity.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, "2024-06-14", attrs.ExpiryDate)
	assert.Equal(t, 0.5, attrs.Confidence)
	assert.Contains(t, client.last.Prompt, "2024-06-10")
	assert.Equal(t, "image/png", client.last.MimeType)
}

func TestExtractReceiptItems(t *testing.T) {
	client := &cannedClient{text: `Here you go: [{"name":"Milk","quantity":"1.5","unit":"l","expiry_date":"2024-06-12"},{"name":"  "}]`}
	items, err := NewGeminiExtractor(client).ExtractReceiptItems(context.Background(), []byte("img"), "image/jpeg", "2024-06-10")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Milk", items[0].Name)
	assert.True(t, items[0].Quantity.Equal(decimal.RequireFromString("1.5")))
}

func TestExtractorErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewGeminiExtractor(&cannedClient{err: errors.New("boom")}).ExtractFoodAttributes(ctx, nil, "", "2024-06-10")
	require.ErrorIs(t, err, domain.ErrExtractionFailed)

	_, err = NewGeminiExtractor(&cannedClient{text: "I cannot see any food"}).ExtractFoodAttributes(ctx, nil, "", "2024-06-10")
	require.ErrorIs(t, err, domain.ErrExtractionFailed)

	_, err = NewGeminiExtractor(&cannedClient{text: "nothing"}).ExtractReceiptItems(ctx, nil, "", "2024-06-10")
	require.ErrorIs(t, err, domain.ErrReceiptProcessingFailed)
}
