package tagger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cerebrasBaseURL      = "https://api.cerebras.ai/v1"
	DefaultCerebrasModel = "llama-3.3-70b"
)

// CompletionError represents a non-2xx response from the completion API.
type CompletionError struct {
	StatusCode int
	Body       string
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion request failed: HTTP %d: %s", e.StatusCode, e.Body)
}

// CerebrasCompleter generates tags through the Cerebras chat-completions
// API (OpenAI-compatible wire format).
type CerebrasCompleter struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewCerebrasCompleter creates a Cerebras-backed completer. The API key
// comes from the CEREBRAS_API_KEY environment variable; the model from
// CEREBRAS_MODEL.
func NewCerebrasCompleter() (*CerebrasCompleter, error) {
	apiKey := os.Getenv("CEREBRAS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("CEREBRAS_API_KEY is not set")
	}

	model := os.Getenv("CEREBRAS_MODEL")
	if model == "" {
		model = DefaultCerebrasModel
	}

	return &CerebrasCompleter{
		baseURL: cerebrasBaseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

func (c *CerebrasCompleter) Name() string {
	return "cerebras"
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends the prompt as a single user message and returns the first
// choice's content.
func (c *CerebrasCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	log.Debug().Str("model", c.model).Int("prompt_length", len(prompt)).
		Msg("Sending tag prompt to Cerebras")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &CompletionError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion response contained no choices")
	}

	text := parsed.Choices[0].Message.Content
	log.Debug().Int("response_length", len(text)).Msg("Received Cerebras response")
	return text, nil
}
