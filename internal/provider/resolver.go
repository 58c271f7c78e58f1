package provider

import (
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"vidscribe/internal/catalog"
)

// credentialEnv maps each vendor to the environment variables consulted for
// its API key, in priority order.
var credentialEnv = map[catalog.Vendor][]string{
	catalog.VendorOpenAI:     {"OPENAI_API_KEY"},
	catalog.VendorAnthropic:  {"ANTHROPIC_API_KEY"},
	catalog.VendorGemini:     {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	catalog.VendorMistral:    {"MISTRAL_API_KEY"},
	catalog.VendorGroq:       {"GROQ_API_KEY"},
	catalog.VendorDeepSeek:   {"DEEPSEEK_API_KEY"},
	catalog.VendorXAI:        {"XAI_API_KEY"},
	catalog.VendorOpenRouter: {"OPENROUTER_API_KEY"},
}

// placeholderMarkers are sentinel substrings that mean a credential was
// copied from documentation rather than configured. Such values count as
// absent so a sample .env never looks like a working setup.
var placeholderMarkers = []string{"your-", "your_", "changeme", "xxxx", "<", "api-key-here"}

// DefaultTimeout bounds every vendor call so a hung request cannot block
// the fallback chain indefinitely.
const DefaultTimeout = 60 * time.Second

// Resolver turns a model id into a callable provider handle.
type Resolver struct {
	log        *zap.Logger
	lookupEnv  func(string) string
	baseURLs   map[catalog.Vendor]string
	timeout    time.Duration
	httpClient *http.Client
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithEnvLookup replaces the environment source (used by tests).
func WithEnvLookup(fn func(string) string) Option {
	return func(r *Resolver) { r.lookupEnv = fn }
}

// WithBaseURL overrides a vendor's API endpoint.
func WithBaseURL(v catalog.Vendor, url string) Option {
	return func(r *Resolver) { r.baseURLs[v] = strings.TrimRight(url, "/") }
}

// WithTimeout overrides the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.timeout = d
		r.httpClient = &http.Client{Timeout: d}
	}
}

// NewResolver creates a resolver reading credentials from the process
// environment.
func NewResolver(log *zap.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		log:        log,
		lookupEnv:  os.Getenv,
		baseURLs:   make(map[catalog.Vendor]string),
		timeout:    DefaultTimeout,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsPlaceholder reports whether a credential value is a documented sample
// rather than a real key.
func IsPlaceholder(key string) bool {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" {
		return true
	}
	for _, marker := range placeholderMarkers {
		if strings.Contains(k, marker) {
			return true
		}
	}
	return false
}

// credential returns the usable API key for a vendor, or false when every
// candidate env var is absent or a placeholder.
func (r *Resolver) credential(v catalog.Vendor) (string, bool) {
	for _, envVar := range credentialEnv[v] {
		key := r.lookupEnv(envVar)
		if key == "" {
			continue
		}
		if IsPlaceholder(key) {
			r.log.Debug("ignoring placeholder credential", zap.String("env", envVar))
			continue
		}
		return key, true
	}
	return "", false
}

// ConfiguredVendors reports which vendors have a usable credential.
func (r *Resolver) ConfiguredVendors() map[catalog.Vendor]bool {
	out := make(map[catalog.Vendor]bool)
	for _, v := range catalog.Vendors() {
		if _, ok := r.credential(v); ok {
			out[v] = true
		}
	}
	return out
}

// Resolve validates the model id against the catalog and the vendor's
// credential, returning a bound handle or a *ConfigurationError.
func (r *Resolver) Resolve(modelID string) (Handle, error) {
	desc, ok := catalog.Describe(modelID)
	if !ok {
		return nil, &ConfigurationError{ModelID: modelID, Reason: "unknown model id"}
	}
	key, ok := r.credential(desc.Vendor)
	if !ok {
		return nil, &ConfigurationError{
			ModelID: modelID,
			Vendor:  desc.Vendor,
			Reason:  "credential missing or placeholder",
		}
	}

	switch desc.Vendor {
	case catalog.VendorOpenAI:
		return newOpenAIHandle(desc, key, r.baseURLs[desc.Vendor], r.timeout, r.log), nil
	case catalog.VendorGemini:
		return newGeminiHandle(desc, key, r.baseURLs[desc.Vendor], r.log), nil
	case catalog.VendorAnthropic:
		return newAnthropicHandle(desc, key, r.baseURLs[desc.Vendor], r.httpClient, r.log), nil
	case catalog.VendorMistral:
		return newMistralHandle(desc, key, r.baseURLs[desc.Vendor], r.httpClient, r.log), nil
	case catalog.VendorGroq:
		return newGroqHandle(desc, key, r.baseURLs[desc.Vendor], r.httpClient, r.log), nil
	case catalog.VendorDeepSeek:
		return newDeepSeekHandle(desc, key, r.baseURLs[desc.Vendor], r.httpClient, r.log), nil
	case catalog.VendorXAI:
		return newXAIHandle(desc, key, r.baseURLs[desc.Vendor], r.httpClient, r.log), nil
	case catalog.VendorOpenRouter:
		return newOpenRouterHandle(desc, key, r.baseURLs[desc.Vendor], r.httpClient, r.log), nil
	default:
		return nil, &ConfigurationError{ModelID: modelID, Vendor: desc.Vendor, Reason: "no adapter for vendor"}
	}
}
