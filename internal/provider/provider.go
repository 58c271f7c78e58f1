// Package provider hides the vendor AI SDKs behind a single generation
// capability. The Resolver is the only place that switches on vendor type;
// everything downstream works against the Handle interface.
package provider

import (
	"context"
	"fmt"

	"vidscribe/internal/catalog"
)

// Mode selects how the vendor is asked to shape its output.
type Mode string

const (
	// ModeStructured requests output constrained to a JSON schema via the
	// vendor's native support where it exists. Vendors without schema
	// enforcement fall back to JSON mode or prompt-level instructions.
	ModeStructured Mode = "structured"

	// ModeText requests unconstrained free text.
	ModeText Mode = "text"
)

// Request is the provider-agnostic generation request.
type Request struct {
	System      string
	User        string
	Schema      map[string]any // JSON schema for ModeStructured
	SchemaName  string
	MaxTokens   int
	Temperature float64
}

// RawOutput is the untyped union a vendor call produces: a decoded object
// when the structured path yielded valid JSON, or free text otherwise.
// Exactly one of the two fields is set.
type RawOutput struct {
	Object map[string]any
	Text   string
}

// Value returns the output as the union the normalizer consumes.
func (o RawOutput) Value() any {
	if o.Object != nil {
		return o.Object
	}
	return o.Text
}

// Handle is a resolved, callable provider bound to one model.
type Handle interface {
	Vendor() catalog.Vendor
	ModelID() string
	Generate(ctx context.Context, req Request, mode Mode) (RawOutput, error)
}

// ConfigurationError means the requested model cannot be reached at all:
// the id is unknown, or its vendor has no usable credential.
type ConfigurationError struct {
	ModelID string
	Vendor  catalog.Vendor
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if e.Vendor != "" {
		return fmt.Sprintf("model %s not configured: %s (vendor %s)", e.ModelID, e.Reason, e.Vendor)
	}
	return fmt.Sprintf("model %s not configured: %s", e.ModelID, e.Reason)
}
