// Package catalog is the static model registry: every model the product can
// generate with, keyed by a stable id, with its vendor and context window.
package catalog

// Vendor identifies an external AI provider.
type Vendor string

const (
	VendorOpenAI     Vendor = "openai"
	VendorAnthropic  Vendor = "anthropic"
	VendorGemini     Vendor = "gemini"
	VendorMistral    Vendor = "mistral"
	VendorGroq       Vendor = "groq"
	VendorDeepSeek   Vendor = "deepseek"
	VendorXAI        Vendor = "xai"
	VendorOpenRouter Vendor = "openrouter"
)

// vendorOrder fixes the presentation grouping of ListAvailable.
var vendorOrder = []Vendor{
	VendorOpenAI,
	VendorAnthropic,
	VendorGemini,
	VendorMistral,
	VendorGroq,
	VendorDeepSeek,
	VendorXAI,
	VendorOpenRouter,
}

// ModelDescriptor describes one generation model. Immutable after process
// start.
type ModelDescriptor struct {
	ID               string
	Vendor           Vendor
	VendorModelName  string
	DisplayName      string
	MaxContextTokens int
}

var models = []ModelDescriptor{
	// OpenAI
	{ID: "gpt-4o", Vendor: VendorOpenAI, VendorModelName: "gpt-4o", DisplayName: "GPT-4o", MaxContextTokens: 128000},
	{ID: "gpt-4o-mini", Vendor: VendorOpenAI, VendorModelName: "gpt-4o-mini", DisplayName: "GPT-4o Mini", MaxContextTokens: 128000},
	{ID: "gpt-4.1", Vendor: VendorOpenAI, VendorModelName: "gpt-4.1", DisplayName: "GPT-4.1", MaxContextTokens: 1047576},
	{ID: "o3-mini", Vendor: VendorOpenAI, VendorModelName: "o3-mini", DisplayName: "o3 Mini", MaxContextTokens: 200000},

	// Anthropic
	{ID: "claude-sonnet-4", Vendor: VendorAnthropic, VendorModelName: "claude-sonnet-4-20250514", DisplayName: "Claude Sonnet 4", MaxContextTokens: 200000},
	{ID: "claude-opus-4", Vendor: VendorAnthropic, VendorModelName: "claude-opus-4-20250514", DisplayName: "Claude Opus 4", MaxContextTokens: 200000},
	{ID: "claude-3-5-haiku", Vendor: VendorAnthropic, VendorModelName: "claude-3-5-haiku-20241022", DisplayName: "Claude 3.5 Haiku", MaxContextTokens: 200000},

	// Google Gemini
	{ID: "gemini-2.0-flash", Vendor: VendorGemini, VendorModelName: "gemini-2.0-flash", DisplayName: "Gemini 2.0 Flash", MaxContextTokens: 1048576},
	{ID: "gemini-1.5-pro", Vendor: VendorGemini, VendorModelName: "gemini-1.5-pro", DisplayName: "Gemini 1.5 Pro", MaxContextTokens: 2097152},
	{ID: "gemini-1.5-flash", Vendor: VendorGemini, VendorModelName: "gemini-1.5-flash", DisplayName: "Gemini 1.5 Flash", MaxContextTokens: 1048576},

	// Mistral
	{ID: "mistral-large", Vendor: VendorMistral, VendorModelName: "mistral-large-latest", DisplayName: "Mistral Large", MaxContextTokens: 128000},
	{ID: "mistral-small", Vendor: VendorMistral, VendorModelName: "mistral-small-latest", DisplayName: "Mistral Small", MaxContextTokens: 32000},

	// Groq
	{ID: "llama-3.3-70b", Vendor: VendorGroq, VendorModelName: "llama-3.3-70b-versatile", DisplayName: "Llama 3.3 70B (Groq)", MaxContextTokens: 128000},
	{ID: "llama-3.1-8b-instant", Vendor: VendorGroq, VendorModelName: "llama-3.1-8b-instant", DisplayName: "Llama 3.1 8B Instant (Groq)", MaxContextTokens: 128000},

	// DeepSeek
	{ID: "deepseek-chat", Vendor: VendorDeepSeek, VendorModelName: "deepseek-chat", DisplayName: "DeepSeek Chat", MaxContextTokens: 64000},
	{ID: "deepseek-reasoner", Vendor: VendorDeepSeek, VendorModelName: "deepseek-reasoner", DisplayName: "DeepSeek Reasoner", MaxContextTokens: 64000},

	// xAI
	{ID: "grok-2", Vendor: VendorXAI, VendorModelName: "grok-2-latest", DisplayName: "Grok 2", MaxContextTokens: 131072},

	// OpenRouter (proxied models, vendor/model naming)
	{ID: "or-llama-3.1-70b", Vendor: VendorOpenRouter, VendorModelName: "meta-llama/llama-3.1-70b-instruct", DisplayName: "Llama 3.1 70B (OpenRouter)", MaxContextTokens: 131072},
	{ID: "or-qwen-2.5-72b", Vendor: VendorOpenRouter, VendorModelName: "qwen/qwen-2.5-72b-instruct", DisplayName: "Qwen 2.5 72B (OpenRouter)", MaxContextTokens: 131072},
	{ID: "or-claude-3.5-sonnet", Vendor: VendorOpenRouter, VendorModelName: "anthropic/claude-3.5-sonnet", DisplayName: "Claude 3.5 Sonnet (OpenRouter)", MaxContextTokens: 200000},
}

var byID = func() map[string]ModelDescriptor {
	m := make(map[string]ModelDescriptor, len(models))
	for _, d := range models {
		m[d.ID] = d
	}
	return m
}()

// Describe looks up a model by id.
func Describe(id string) (ModelDescriptor, bool) {
	d, ok := byID[id]
	return d, ok
}

// All returns every registered model, grouped by vendor.
func All() []ModelDescriptor {
	return listByVendor(func(Vendor) bool { return true })
}

// ListAvailable returns the models whose vendor has a configured credential,
// grouped by vendor for presentation.
func ListAvailable(configured map[Vendor]bool) []ModelDescriptor {
	return listByVendor(func(v Vendor) bool { return configured[v] })
}

// Vendors returns all known vendors in presentation order.
func Vendors() []Vendor {
	return append([]Vendor(nil), vendorOrder...)
}

func listByVendor(include func(Vendor) bool) []ModelDescriptor {
	var out []ModelDescriptor
	for _, v := range vendorOrder {
		if !include(v) {
			continue
		}
		for _, d := range models {
			if d.Vendor == v {
				out = append(out, d)
			}
		}
	}
	return out
}
