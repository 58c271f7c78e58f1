package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"vidscribe/internal/catalog"
)

// chatMessage is one turn of an OpenAI-style conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// jsonSchemaSpec names a strict response schema.
type jsonSchemaSpec struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

// responseFormat enforces structured output on providers that support it.
type responseFormat struct {
	Type       string          `json:"type"` // "json_schema" or "json_object"
	JSONSchema *jsonSchemaSpec `json:"json_schema,omitempty"`
}

// chatRequest is the OpenAI-compatible chat completions request body shared
// by Mistral, Groq, DeepSeek, xAI and OpenRouter.
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

// chatResponse is the corresponding response envelope.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error,omitempty"`
}

// schemaSupport describes how much structured-output help the wire
// endpoint offers.
type schemaSupport int

const (
	schemaNone   schemaSupport = iota // prompt-level instructions only
	schemaJSON                        // {"type":"json_object"} JSON mode
	schemaStrict                      // full json_schema with strict mode
)

// oaiCompatHandle is a hand-rolled chat-completions client for the vendors
// that speak the OpenAI wire format.
type oaiCompatHandle struct {
	vendor        catalog.Vendor
	modelID       string
	model         string // vendor model name
	apiKey        string
	baseURL       string
	schemaSupport schemaSupport
	extraHeaders  map[string]string
	httpClient    *http.Client
	log           *zap.Logger
}

func (c *oaiCompatHandle) Vendor() catalog.Vendor { return c.vendor }
func (c *oaiCompatHandle) ModelID() string        { return c.modelID }

func (c *oaiCompatHandle) Generate(ctx context.Context, req Request, mode Mode) (RawOutput, error) {
	body := chatRequest{
		Model:       c.model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	if req.System != "" {
		body.Messages = append(body.Messages, chatMessage{Role: "system", Content: req.System})
	}
	body.Messages = append(body.Messages, chatMessage{Role: "user", Content: req.User})

	if mode == ModeStructured {
		switch c.schemaSupport {
		case schemaStrict:
			body.ResponseFormat = &responseFormat{
				Type: "json_schema",
				JSONSchema: &jsonSchemaSpec{
					Name:   req.SchemaName,
					Strict: true,
					Schema: req.Schema,
				},
			}
		case schemaJSON:
			body.ResponseFormat = &responseFormat{Type: "json_object"}
		}
	}

	content, err := c.doChat(ctx, body)
	if err != nil {
		return RawOutput{}, err
	}

	if mode == ModeStructured {
		var obj map[string]any
		if err := json.Unmarshal([]byte(content), &obj); err == nil {
			return RawOutput{Object: obj}, nil
		}
		// Structured call came back as text anyway; hand it to the
		// normalizer rather than failing the whole attempt.
		c.log.Debug("structured response was not valid JSON, passing as text",
			zap.String("model", c.modelID))
	}
	return RawOutput{Text: content}, nil
}

func (c *oaiCompatHandle) doChat(ctx context.Context, body chatRequest) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%s: API key not configured", c.vendor)
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	for k, v := range c.extraHeaders {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", c.vendor, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s API request failed with status %d: %s", c.vendor, resp.StatusCode, string(respBody))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse %s response: %w", c.vendor, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("%s API error: %s", c.vendor, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%s: no completion returned", c.vendor)
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
