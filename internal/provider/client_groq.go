package provider

import (
	"net/http"

	"go.uber.org/zap"

	"vidscribe/internal/catalog"
)

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

// newGroqHandle builds a Groq client. Groq only offers basic JSON mode;
// schema enforcement happens via prompt instructions.
func newGroqHandle(desc catalog.ModelDescriptor, apiKey, baseURL string, hc *http.Client, log *zap.Logger) Handle {
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}
	return &oaiCompatHandle{
		vendor:        catalog.VendorGroq,
		modelID:       desc.ID,
		model:         desc.VendorModelName,
		apiKey:        apiKey,
		baseURL:       baseURL,
		schemaSupport: schemaJSON,
		httpClient:    hc,
		log:           log,
	}
}
