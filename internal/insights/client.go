// Package insights is a thin adapter over the Gemini API. It turns ledger
// snapshots into natural-language requests and returns opaque text or image
// bytes for display only; nothing here ever feeds back into ledger state.
package insights

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Idea kinds accepted by Ideas
const (
	KindAdvice   = "advice"
	KindMissions = "missions"
	KindPrizes   = "prizes"
)

// imageEditModel edits images from a source image plus a text prompt
const imageEditModel = "gemini-2.5-flash-image"

const insightSystemInstruction = "Ты — Senior AI аналитик по детскому развитию. Отвечай на русском."

// Client wraps the Gemini SDK for the three insight call shapes the app uses
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini-backed insights client
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// ChildInsight returns a short progress summary for one child
func (c *Client) ChildInsight(ctx context.Context, name string, missionCount int, lastActivity string) (string, error) {
	prompt := childInsightPrompt(name, missionCount, lastActivity)
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(insightSystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(float32(0.8)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate insight: %w", err)
	}
	return resp.Text(), nil
}

// Ideas generates card content for one of the known kinds. The missions and
// prizes kinds ask for a comma-separated list; use ParseIdeaList on the
// result.
func (c *Client) Ideas(ctx context.Context, kind, childContext string) (string, error) {
	prompt, err := ideasPrompt(kind, childContext)
	if err != nil {
		return "", err
	}
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.9)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate ideas: %w", err)
	}
	return resp.Text(), nil
}

// EditImage sends a source image and an edit instruction, returning the
// edited image bytes and mime type. A response without an image part yields
// nil bytes, not an error.
func (c *Client) EditImage(ctx context.Context, image []byte, mimeType, prompt string) ([]byte, string, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(image, mimeType),
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := c.client.Models.GenerateContent(ctx, imageEditModel, contents, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to edit image: %w", err)
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, part.InlineData.MIMEType, nil
			}
		}
	}
	return nil, "", nil
}
