package oracle

import (
	"context"
	"errors"
)

// ErrDisabled marks the null client. Callers treat it like any other call
// failure: degrade to rule-only or structural-only behavior.
var ErrDisabled = errors.New("oracle disabled: no credential configured")

// Client is the text-understanding oracle boundary. Implementations must be
// safe for concurrent use.
type Client interface {
	// Generate sends one prompt and returns the model's raw text output.
	Generate(ctx context.Context, prompt string) (string, error)
	// Enabled reports whether calls can possibly succeed. The pipeline uses
	// it only to skip pointless network attempts, never for correctness.
	Enabled() bool
}

// Disabled is the null client selected when no credential is configured.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, error) { return "", ErrDisabled }

func (Disabled) Enabled() bool { return false }
