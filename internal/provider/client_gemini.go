package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"vidscribe/internal/catalog"
)

// geminiHandle wraps the google.golang.org/genai SDK. The client is built
// per call: a generation call owns its request/response cycle end to end
// and no state is shared between concurrent calls. Structured mode uses
// JSON response MIME type; field-level enforcement rides on the prompt and
// the normalizer, matching how the other non-strict vendors behave.
type geminiHandle struct {
	modelID string
	model   string
	apiKey  string
	baseURL string
	log     *zap.Logger
}

func newGeminiHandle(desc catalog.ModelDescriptor, apiKey, baseURL string, log *zap.Logger) Handle {
	return &geminiHandle{
		modelID: desc.ID,
		model:   desc.VendorModelName,
		apiKey:  apiKey,
		baseURL: baseURL,
		log:     log,
	}
}

func (c *geminiHandle) Vendor() catalog.Vendor { return catalog.VendorGemini }
func (c *geminiHandle) ModelID() string        { return c.modelID }

func (c *geminiHandle) Generate(ctx context.Context, req Request, mode Mode) (RawOutput, error) {
	cfg := &genai.ClientConfig{APIKey: c.apiKey}
	if c.baseURL != "" {
		cfg.HTTPOptions.BaseURL = c.baseURL
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return RawOutput{}, fmt.Errorf("failed to create gemini client: %w", err)
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.System != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.MaxTokens > 0 {
		genCfg.MaxOutputTokens = int32(req.MaxTokens)
	}

	user := req.User
	if mode == ModeStructured {
		genCfg.ResponseMIMEType = "application/json"
		if req.Schema != nil {
			if schemaJSON, err := json.Marshal(req.Schema); err == nil {
				user += "\n\nRespond with a single JSON object matching this schema:\n" + string(schemaJSON)
			}
		}
	}

	resp, err := client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromText(user, genai.RoleUser)},
		genCfg,
	)
	if err != nil {
		return RawOutput{}, fmt.Errorf("gemini request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return RawOutput{}, fmt.Errorf("gemini: no completion returned")
	}

	if mode == ModeStructured {
		var obj map[string]any
		if err := json.Unmarshal([]byte(text), &obj); err == nil {
			return RawOutput{Object: obj}, nil
		}
		c.log.Debug("structured response was not valid JSON, passing as text",
			zap.String("model", c.modelID))
	}
	return RawOutput{Text: text}, nil
}
