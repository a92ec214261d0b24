package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	domain "transcript-insights/internal/domain/analysis"
)

const (
	completionTimeout = 30 * time.Second
	maxTokens         = 2048
)

// Client adapts the OpenAI chat completion API to the Completer port.
type Client struct {
	*openai.Client
	Model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{Client: openai.NewClient(apiKey), Model: model}
}

// Complete asks the model for a structured analysis of the given prompts.
// Each call carries its own deadline, so a cancelled caller never leaves an
// unbounded request in flight.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (*domain.CompletionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:     c.Model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "transcript_analysis",
				Strict: true,
				Schema: analysisJSONSchema,
			},
		},
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &domain.ProviderError{Message: "empty response from model"}
	}

	var result domain.CompletionResult
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &result); err != nil {
		return nil, &domain.ProviderError{Message: fmt.Sprintf("unparsable model response: %v", err)}
	}
	return &result, nil
}

// mapError translates go-openai failures into the domain taxonomy.
func mapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrTimeout
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return domain.ErrRateLimited
		}
		return &domain.ProviderError{Message: apiErr.Message}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode == http.StatusTooManyRequests {
			return domain.ErrRateLimited
		}
		return &domain.ProviderError{Message: reqErr.Error()}
	}

	return &domain.ProviderError{Message: "unexpected error: " + err.Error()}
}

// analysisJSONSchema mirrors CompletionResult for structured output.
var analysisJSONSchema = &jsonSchema{
	Type:                 "object",
	AdditionalProperties: false,
	Required:             []string{"summary", "action_items"},
	Properties: map[string]*jsonSchema{
		"summary": {
			Type:        "string",
			Description: "Brief summary of the conversation",
		},
		"action_items": {
			Type:        "array",
			Description: "Follow-up actions in order of importance",
			Items:       &jsonSchema{Type: "string"},
		},
	},
}

// jsonSchema implements json.Marshaler for OpenAI's JSON Schema format.
// The alias type prevents infinite recursion during marshaling.
type jsonSchema struct {
	Properties           map[string]*jsonSchema `json:"properties,omitempty"`
	Items                *jsonSchema            `json:"items,omitempty"`
	Type                 string                 `json:"type"`
	Description          string                 `json:"description,omitempty"`
	Required             []string               `json:"required,omitempty"`
	AdditionalProperties bool                   `json:"additionalProperties"`
}

func (s *jsonSchema) MarshalJSON() ([]byte, error) {
	type alias jsonSchema
	return json.Marshal((*alias)(s))
}
