package provider

import (
	"net/http"

	"go.uber.org/zap"

	"vidscribe/internal/catalog"
)

const defaultXAIBaseURL = "https://api.x.ai/v1"

// newXAIHandle builds an xAI client. xAI is OpenAI-compatible including
// json_schema strict mode.
func newXAIHandle(desc catalog.ModelDescriptor, apiKey, baseURL string, hc *http.Client, log *zap.Logger) Handle {
	if baseURL == "" {
		baseURL = defaultXAIBaseURL
	}
	return &oaiCompatHandle{
		vendor:        catalog.VendorXAI,
		modelID:       desc.ID,
		model:         desc.VendorModelName,
		apiKey:        apiKey,
		baseURL:       baseURL,
		schemaSupport: schemaStrict,
		httpClient:    hc,
		log:           log,
	}
}
