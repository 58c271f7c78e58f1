package provider

import (
	"net/http"

	"go.uber.org/zap"

	"vidscribe/internal/catalog"
)

const defaultMistralBaseURL = "https://api.mistral.ai/v1"

// newMistralHandle builds a Mistral La Plateforme client. Mistral speaks
// the OpenAI wire format and supports json_schema with strict mode.
func newMistralHandle(desc catalog.ModelDescriptor, apiKey, baseURL string, hc *http.Client, log *zap.Logger) Handle {
	if baseURL == "" {
		baseURL = defaultMistralBaseURL
	}
	return &oaiCompatHandle{
		vendor:        catalog.VendorMistral,
		modelID:       desc.ID,
		model:         desc.VendorModelName,
		apiKey:        apiKey,
		baseURL:       baseURL,
		schemaSupport: schemaStrict,
		httpClient:    hc,
		log:           log,
	}
}
