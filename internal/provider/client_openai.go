package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.uber.org/zap"

	"vidscribe/internal/catalog"
)

// openaiHandle wraps the official openai-go SDK (chat completions with
// native json_schema structured output).
type openaiHandle struct {
	modelID string
	model   string
	opts    []option.RequestOption
	log     *zap.Logger
}

func newOpenAIHandle(desc catalog.ModelDescriptor, apiKey, baseURL string, timeout time.Duration, log *zap.Logger) Handle {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(timeout),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &openaiHandle{
		modelID: desc.ID,
		model:   desc.VendorModelName,
		opts:    opts,
		log:     log,
	}
}

func (c *openaiHandle) Vendor() catalog.Vendor { return catalog.VendorOpenAI }
func (c *openaiHandle) ModelID() string        { return c.modelID }

func (c *openaiHandle) Generate(ctx context.Context, req Request, mode Mode) (RawOutput, error) {
	client := openai.NewClient(c.opts...)

	msgs := []openai.ChatCompletionMessageParamUnion{}
	if req.System != "" {
		msgs = append(msgs, openai.SystemMessage(req.System))
	}
	msgs = append(msgs, openai.UserMessage(req.User))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: msgs,
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if mode == ModeStructured && req.Schema != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   req.SchemaName,
					Strict: openai.Bool(true),
					Schema: req.Schema,
				},
			},
		}
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return RawOutput{}, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return RawOutput{}, fmt.Errorf("openai: empty choices")
	}
	content := resp.Choices[0].Message.Content

	if mode == ModeStructured {
		var obj map[string]any
		if err := json.Unmarshal([]byte(content), &obj); err == nil {
			return RawOutput{Object: obj}, nil
		}
		c.log.Debug("structured response was not valid JSON, passing as text",
			zap.String("model", c.modelID))
	}
	return RawOutput{Text: content}, nil
}
