package respond

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ChatTurn is one role/content message, both in conversation history and on
// the generation wire.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerationRequest carries the full upstream chat-completion payload.
type GenerationRequest struct {
	Model            string
	Messages         []ChatTurn
	Temperature      float64
	MaxTokens        int
	PresencePenalty  float64
	FrequencyPenalty float64
}

// GenerationClient is the external generation collaborator. Any error is
// treated uniformly as "generation unavailable" by the orchestrator; at most
// one attempt happens per request.
type GenerationClient interface {
	Complete(ctx context.Context, req GenerationRequest) (string, error)
}

// GroqChatClient talks to a Groq (OpenAI-compatible) chat completions
// endpoint.
type GroqChatClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewGroqChatClient(apiKey, baseURL string, timeout time.Duration) *GroqChatClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GroqChatClient{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *GroqChatClient) Complete(ctx context.Context, req GenerationRequest) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("generation API key is not configured")
	}

	payload := map[string]any{
		"model":             req.Model,
		"messages":          req.Messages,
		"temperature":       req.Temperature,
		"max_tokens":        req.MaxTokens,
		"presence_penalty":  req.PresencePenalty,
		"frequency_penalty": req.FrequencyPenalty,
	}
	bodyRaw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	request, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/chat/completions",
		bytes.NewReader(bodyRaw),
	)
	if err != nil {
		return "", err
	}
	request.Header.Set("Authorization", "Bearer "+c.apiKey)
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(response.Body, 256*1024))
	if err != nil {
		return "", err
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", fmt.Errorf("generation error (%d): %s", response.StatusCode, strings.TrimSpace(string(responseBody)))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(responseBody, &parsed); err != nil {
		return "", fmt.Errorf("decode generation response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("generation response has no choices")
	}
	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("generation response content is empty")
	}
	return content, nil
}

// MockGenerationClient is a canned collaborator for tests and keyless runs.
type MockGenerationClient struct {
	Reply string
	Err   error
}

func (m MockGenerationClient) Complete(_ context.Context, _ GenerationRequest) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}
