package provider

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"vidscribe/internal/catalog"
)

func envFrom(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestIsPlaceholder(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"your-api-key-here", true},
		{"sk-your_openai_key", true},
		{"CHANGEME", true},
		{"<paste key>", true},
		{"xxxxxxxx", true},
		{"sk-proj-abc123def456", false},
		{"gsk_realkey0123", false},
	}
	for _, tt := range tests {
		if got := IsPlaceholder(tt.key); got != tt.want {
			t.Errorf("IsPlaceholder(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestResolve_UnknownModel(t *testing.T) {
	r := NewResolver(zap.NewNop(), WithEnvLookup(envFrom(nil)))
	_, err := r.Resolve("no-such-model")

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want *ConfigurationError", err)
	}
	if cfgErr.ModelID != "no-such-model" {
		t.Errorf("ModelID = %q", cfgErr.ModelID)
	}
}

func TestResolve_MissingCredential(t *testing.T) {
	r := NewResolver(zap.NewNop(), WithEnvLookup(envFrom(nil)))
	_, err := r.Resolve("gpt-4o-mini")

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want *ConfigurationError", err)
	}
	if cfgErr.Vendor != catalog.VendorOpenAI {
		t.Errorf("Vendor = %q", cfgErr.Vendor)
	}
}

func TestResolve_PlaceholderCredentialTreatedAsAbsent(t *testing.T) {
	r := NewResolver(zap.NewNop(), WithEnvLookup(envFrom(map[string]string{
		"OPENAI_API_KEY": "your-openai-api-key",
	})))
	_, err := r.Resolve("gpt-4o")

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want *ConfigurationError", err)
	}
}

func TestResolve_ReturnsHandlePerVendor(t *testing.T) {
	env := envFrom(map[string]string{
		"OPENAI_API_KEY":     "sk-test",
		"ANTHROPIC_API_KEY":  "sk-ant-test",
		"GEMINI_API_KEY":     "g-test",
		"MISTRAL_API_KEY":    "m-test",
		"GROQ_API_KEY":       "gsk-test",
		"DEEPSEEK_API_KEY":   "ds-test",
		"XAI_API_KEY":        "xai-test",
		"OPENROUTER_API_KEY": "or-test",
	})
	r := NewResolver(zap.NewNop(), WithEnvLookup(env))

	tests := []struct {
		modelID string
		vendor  catalog.Vendor
	}{
		{"gpt-4o", catalog.VendorOpenAI},
		{"claude-sonnet-4", catalog.VendorAnthropic},
		{"gemini-2.0-flash", catalog.VendorGemini},
		{"mistral-large", catalog.VendorMistral},
		{"llama-3.3-70b", catalog.VendorGroq},
		{"deepseek-chat", catalog.VendorDeepSeek},
		{"grok-2", catalog.VendorXAI},
		{"or-llama-3.1-70b", catalog.VendorOpenRouter},
	}
	for _, tt := range tests {
		t.Run(tt.modelID, func(t *testing.T) {
			h, err := r.Resolve(tt.modelID)
			if err != nil {
				t.Fatalf("Resolve(%s) error = %v", tt.modelID, err)
			}
			if h.Vendor() != tt.vendor {
				t.Errorf("Vendor() = %s, want %s", h.Vendor(), tt.vendor)
			}
			if h.ModelID() != tt.modelID {
				t.Errorf("ModelID() = %s, want %s", h.ModelID(), tt.modelID)
			}
		})
	}
}

func TestConfiguredVendors_FallbackEnvVar(t *testing.T) {
	// GOOGLE_API_KEY is an accepted alias for GEMINI_API_KEY.
	r := NewResolver(zap.NewNop(), WithEnvLookup(envFrom(map[string]string{
		"GOOGLE_API_KEY": "g-test",
	})))
	got := r.ConfiguredVendors()
	if !got[catalog.VendorGemini] {
		t.Errorf("ConfiguredVendors() = %v, want gemini configured", got)
	}
	if len(got) != 1 {
		t.Errorf("ConfiguredVendors() = %v, want exactly one vendor", got)
	}
}

func TestConfiguredVendors_NoneConfigured(t *testing.T) {
	r := NewResolver(zap.NewNop(), WithEnvLookup(envFrom(nil)))
	if got := r.ConfiguredVendors(); len(got) != 0 {
		t.Errorf("ConfiguredVendors() = %v, want empty", got)
	}
	if avail := catalog.ListAvailable(r.ConfiguredVendors()); len(avail) != 0 {
		t.Errorf("ListAvailable = %v, want empty", avail)
	}
}
