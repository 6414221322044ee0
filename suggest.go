package jigsaw

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

// Optional fact suggestion: when the conversation layer has a photo but the
// user is short on facts, a Gemini model can propose candidates. This is a
// boundary collaborator only — nothing in the core requires it, and every
// suggestion still goes through the same sanitize/fit/rewrite pipeline as
// user-typed text.

const (
	defaultSuggestRegion = "europe-west1"
	defaultSuggestModel  = "gemini-2.5-flash"
)

const suggestPrompt = `Look at this photo. Propose %d short facts about its subject,
suitable for printing on the back of jigsaw puzzle pieces.

Rules:
- Each fact is a single sentence of at most 12 words.
- Plain language, no emoji, no markdown.
- Respond ONLY with a JSON array of strings, nothing else.`

// FactSuggester proposes puzzle-back facts for a photo via VertexAI.
type FactSuggester struct {
	client    *genai.Client
	modelName string
}

// NewFactSuggester creates a suggester using Application Default
// Credentials. Set GOOGLE_APPLICATION_CREDENTIALS to the service account
// key file path.
func NewFactSuggester(ctx context.Context, projectID, region string) (*FactSuggester, error) {
	if region == "" {
		region = defaultSuggestRegion
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: region,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &FactSuggester{
		client:    client,
		modelName: defaultSuggestModel,
	}, nil
}

// Close releases resources held by the client.
func (s *FactSuggester) Close() error {
	return nil
}

// SuggestFacts sends the photo to the model and returns up to count
// sanitized fact candidates.
func (s *FactSuggester) SuggestFacts(ctx context.Context, imageData []byte, mimeType string, count int) ([]string, error) {
	if count <= 0 {
		count = 5
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.modelName,
		[]*genai.Content{{
			Role: "user",
			Parts: []*genai.Part{
				{Text: fmt.Sprintf(suggestPrompt, count)},
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: imageData}},
			},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.7)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty gemini response")
	}

	var raw []string
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("parse facts JSON: %w\nraw response: %s", err, text)
	}

	facts := make([]string, 0, len(raw))
	for _, f := range raw {
		if f = Sanitize(f); f != "" {
			facts = append(facts, f)
		}
		if len(facts) == count {
			break
		}
	}
	if len(facts) == 0 {
		return nil, fmt.Errorf("no usable facts in response")
	}
	return facts, nil
}
