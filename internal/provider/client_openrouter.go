package provider

import (
	"net/http"

	"go.uber.org/zap"

	"vidscribe/internal/catalog"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// newOpenRouterHandle builds an OpenRouter client. OpenRouter proxies many
// providers behind the OpenAI wire format; most frontier models honor
// json_schema, and the rest degrade to text that the normalizer handles.
func newOpenRouterHandle(desc catalog.ModelDescriptor, apiKey, baseURL string, hc *http.Client, log *zap.Logger) Handle {
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	return &oaiCompatHandle{
		vendor:        catalog.VendorOpenRouter,
		modelID:       desc.ID,
		model:         desc.VendorModelName,
		apiKey:        apiKey,
		baseURL:       baseURL,
		schemaSupport: schemaStrict,
		extraHeaders: map[string]string{
			"HTTP-Referer": "https://vidscribe.app",
			"X-Title":      "vidscribe",
		},
		httpClient: hc,
		log:        log,
	}
}
