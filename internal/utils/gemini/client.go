// Package gemini talks to the Generative Language REST API.
package gemini

import (
	"Pantry-Tracker/internal/utils"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrNotConfigured = errors.New("gemini API key or model not configured")
	ErrEmptyResponse = errors.New("gemini returned no candidates")
	ErrNoJSON        = errors.New("no JSON found in gemini response")
)

const baseURL = "https://generativelanguage.googleapis.com/v1beta/models"

type (
	Request struct {
		Prompt      string
		Image       []byte
		MimeType    string
		Temperature float64
	}

	Client interface {
		Generate(ctx context.Context, req Request) (string, error)
	}

	client struct {
		apiKey     string
		model      string
		baseURL    string
		httpClient *http.Client
	}
)

func NewClient() Client {
	return &client{
		apiKey:     utils.GetConfig("GEMINI_API_KEY"),
		model:      utils.GetConfig("GEMINI_MODEL"),
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type (
	part struct {
		Text       string      `json:"text,omitempty"`
		InlineData *inlineData `json:"inline_data,omitempty"`
	}

	inlineData struct {
		MimeType string `json:"mime_type"`
		Data     string `json:"data"`
	}

	generateResponse struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
)

func (c *client) Generate(ctx context.Context, req Request) (string, error) {
	if c.apiKey == "" || c.model == "" {
		return "", ErrNotConfigured
	}

	parts := []part{{Text: req.Prompt}}
	if len(req.Image) > 0 {
		mime := req.MimeType
		if mime == "" {
			mime = "image/jpeg"
		}
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: mime,
			Data:     base64.StdEncoding.EncodeToString(req.Image),
		}})
	}

	body, err := json.Marshal(map[string]any{
		"contents": []map[string]any{{"parts": parts}},
		"generationConfig": map[string]any{
			"temperature": req.Temperature,
			"topP":        0.8,
			"topK":        40,
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini API error: %s - %s", resp.Status, string(msg))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// ExtractJSON cuts the first JSON object or array out of a model reply, dropping
// markdown fences and surrounding prose.
func ExtractJSON(text string, open, close byte) (string, error) {
	text = strings.TrimSpace(text)
	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, close)
	if start == -1 || end == -1 || start > end {
		return "", ErrNoJSON
	}
	return text[start : end+1], nil
}

// ExtractArray returns a JSON array, wrapping a lone object if that is all the model gave back.
func ExtractArray(text string) (string, error) {
	if arr, err := ExtractJSON(text, '[', ']'); err == nil {
		return arr, nil
	}
	obj, err := ExtractJSON(text, '{', '}')
	if err != nil {
		return "", err
	}
	return "[" + obj + "]", nil
}
