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

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com/v1"
	anthropicVersion        = "2023-06-01"
)

// anthropicHandle is a hand-rolled client for the Anthropic Messages API.
// Anthropic has no response_format parameter; structured mode appends the
// schema as a prompt instruction and relies on the normalizer.
type anthropicHandle struct {
	modelID    string
	model      string
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature,omitempty"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func newAnthropicHandle(desc catalog.ModelDescriptor, apiKey, baseURL string, hc *http.Client, log *zap.Logger) Handle {
	if baseURL == "" {
		baseURL = defaultAnthropicBaseURL
	}
	return &anthropicHandle{
		modelID:    desc.ID,
		model:      desc.VendorModelName,
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: hc,
		log:        log,
	}
}

func (c *anthropicHandle) Vendor() catalog.Vendor { return catalog.VendorAnthropic }
func (c *anthropicHandle) ModelID() string        { return c.modelID }

func (c *anthropicHandle) Generate(ctx context.Context, req Request, mode Mode) (RawOutput, error) {
	system := req.System
	user := req.User
	if mode == ModeStructured && req.Schema != nil {
		schemaJSON, err := json.Marshal(req.Schema)
		if err == nil {
			user += "\n\nRespond with a single JSON object matching this schema, and nothing else:\n" + string(schemaJSON)
		}
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096 // max_tokens is mandatory on this API
	}

	body := anthropicRequest{
		Model:       c.model,
		MaxTokens:   maxTokens,
		System:      system,
		Messages:    []anthropicMessage{{Role: "user", Content: user}},
		Temperature: req.Temperature,
	}
	jsonData, err := json.Marshal(body)
	if err != nil {
		return RawOutput{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(jsonData))
	if err != nil {
		return RawOutput{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return RawOutput{}, fmt.Errorf("anthropic request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return RawOutput{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return RawOutput{}, fmt.Errorf("anthropic API request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return RawOutput{}, fmt.Errorf("failed to parse anthropic response: %w", err)
	}
	if parsed.Error != nil {
		return RawOutput{}, fmt.Errorf("anthropic API error: %s", parsed.Error.Message)
	}
	if len(parsed.Content) == 0 {
		return RawOutput{}, fmt.Errorf("anthropic: no completion returned")
	}

	var sb strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(sb.String())

	if mode == ModeStructured {
		var obj map[string]any
		if err := json.Unmarshal([]byte(text), &obj); err == nil {
			return RawOutput{Object: obj}, nil
		}
	}
	return RawOutput{Text: text}, nil
}
