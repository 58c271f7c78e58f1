package generate

import (
	"fmt"
	"strings"
)

// Attempt records one model tried during generation and why it failed.
type Attempt struct {
	ModelID string
	Reason  string
}

// GenerationError means the requested model and every fallback were
// exhausted without producing usable blog content. Attempts holds the
// ordered history for diagnostics.
type GenerationError struct {
	Attempts []Attempt
}

func (e *GenerationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "blog generation failed after %d attempt(s)", len(e.Attempts))
	for _, a := range e.Attempts {
		fmt.Fprintf(&sb, "; %s: %s", a.ModelID, a.Reason)
	}
	return sb.String()
}
