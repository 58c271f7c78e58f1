package provider

import (
	"net/http"

	"go.uber.org/zap"

	"vidscribe/internal/catalog"
)

const defaultDeepSeekBaseURL = "https://api.deepseek.com/v1"

// newDeepSeekHandle builds a DeepSeek client. DeepSeek supports JSON mode
// but not strict schema enforcement.
func newDeepSeekHandle(desc catalog.ModelDescriptor, apiKey, baseURL string, hc *http.Client, log *zap.Logger) Handle {
	if baseURL == "" {
		baseURL = defaultDeepSeekBaseURL
	}
	return &oaiCompatHandle{
		vendor:        catalog.VendorDeepSeek,
		modelID:       desc.ID,
		model:         desc.VendorModelName,
		apiKey:        apiKey,
		baseURL:       baseURL,
		schemaSupport: schemaJSON,
		httpClient:    hc,
		log:           log,
	}
}
