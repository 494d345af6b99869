package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1/chat/completions"
	DefaultModel   = "gpt-4o-mini"
	defaultTimeout = 60 * time.Second
)

var ErrMissingAPIKey = errors.New("planner: api key not set")

// HTTPGenerator calls an OpenAI-compatible chat completion endpoint. It
// makes exactly one attempt per Generate call.
type HTTPGenerator struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
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

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func NewHTTPGenerator(baseURL, model, apiKey string) *HTTPGenerator {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &HTTPGenerator{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

func (g *HTTPGenerator) Generate(ctx context.Context, req Request) ([]string, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if g.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	body, err := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(req.Locale)},
			{Role: "user", Content: userPrompt(req)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("planner request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("planner api error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("planner api error (%d): %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, ErrEmptyPlan
	}
	steps := ParseSteps(chatResp.Choices[0].Message.Content)
	if len(steps) == 0 {
		return nil, ErrEmptyPlan
	}
	return steps, nil
}

func systemPrompt(locale string) string {
	if locale == "" {
		locale = "en"
	}
	return fmt.Sprintf("You break tasks into short daily plan steps. Reply in locale %q with one step per line and nothing else.", locale)
}

func userPrompt(req Request) string {
	return fmt.Sprintf("Make a %d-day plan for this task: %s", req.Days, req.Task)
}
