// Package ai wraps the generative-model service that suggests captions.
package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/shivraj-io/Caption-io-Backend/internal/config"
)

var (
	ErrMissingAPIKey    = errors.New("gemini api key is not configured")
	ErrInvalidKey       = errors.New("invalid or missing gemini api key")
	ErrThrottled        = errors.New("gemini quota exceeded or rate limited")
	ErrModelUnavailable = errors.New("gemini model not available")
)

const captionPrompt = `Generate exactly 3 creative and engaging captions for this image.
Make them suitable for social media. Keep each caption concise but impactful.
Include relevant emojis where appropriate.
Avoid generic phrases. Use trending hashtags.
Do not number or label the captions. Separate each caption with a line break.
`

// Captioner produces caption suggestions for a base64-encoded image.
type Captioner interface {
	Caption(ctx context.Context, imageBase64, mimeType string) (string, error)
}

// Gemini calls the Gemini API once per request. No retry, no streaming.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini returns a Gemini captioner. With no API key configured the
// adapter is still constructed; Caption then fails with ErrMissingAPIKey.
func NewGemini(ctx context.Context, cfg config.GeminiConfig) (*Gemini, error) {
	g := &Gemini{model: cfg.Model}
	if cfg.APIKey == "" {
		return g, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	g.client = client
	return g, nil
}

// Caption sends the image with the fixed prompt and returns the model's text
// verbatim.
func (g *Gemini) Caption(ctx context.Context, imageBase64, mimeType string) (string, error) {
	if g.client == nil {
		return "", ErrMissingAPIKey
	}
	raw, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	parts := []*genai.Part{
		genai.NewPartFromText(captionPrompt),
		genai.NewPartFromBytes(raw, mimeType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.7),
		TopP:            genai.Ptr[float32](0.95),
		MaxOutputTokens: 200,
	})
	if err != nil {
		return "", classify(err)
	}
	return resp.Text(), nil
}

// classify maps provider error messages onto the adapter's failure taxonomy.
func classify(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key") || strings.Contains(msg, "401") || strings.Contains(msg, "unauthenticated"):
		return fmt.Errorf("%w: %s", ErrInvalidKey, err)
	case strings.Contains(msg, "quota") || strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") || strings.Contains(msg, "resource_exhausted"):
		return fmt.Errorf("%w: %s", ErrThrottled, err)
	case strings.Contains(msg, "not found") || strings.Contains(msg, "404"):
		return fmt.Errorf("%w: %s", ErrModelUnavailable, err)
	default:
		return fmt.Errorf("ai service error: %w", err)
	}
}
