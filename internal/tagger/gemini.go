package tagger

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// DefaultGeminiModel is used unless GEMINI_MODEL overrides it.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiCompleter generates tags through the Gemini API.
type GeminiCompleter struct {
	client *genai.Client
	model  string
}

// NewGeminiCompleter creates a Gemini-backed completer. The API key comes
// from the GEMINI_API_KEY environment variable; the model from GEMINI_MODEL.
func NewGeminiCompleter(ctx context.Context) (*GeminiCompleter, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = DefaultGeminiModel
	}

	return &GeminiCompleter{client: client, model: model}, nil
}

func (g *GeminiCompleter) Name() string {
	return "gemini"
}

// Complete sends the prompt as a single user turn and returns the
// concatenated response text.
func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	log.Debug().Str("model", g.model).Int("prompt_length", len(prompt)).
		Msg("Sending tag prompt to Gemini")

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("received empty response from Gemini API")
	}

	text := resp.Text()
	log.Debug().Int("response_length", len(text)).Msg("Received Gemini response")
	return text, nil
}
