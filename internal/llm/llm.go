// Package llm provides completion clients for the external text-generation service.
package llm

import (
	"context"
	"fmt"

	"vibedezine_server/internal/types"
)

// Request is a conversation sent to the completion service: an optional
// system instruction followed by ordered user/assistant turns.
type Request struct {
	System   string
	Messages []types.Turn
}

// Completer sends a conversation to the completion service and returns its raw text.
type Completer interface {
	// Complete performs a single blocking round trip. It never retries.
	Complete(ctx context.Context, req Request) (string, error)

	// Ready returns a config error when the service credential is missing.
	Ready() error
}

// Unconfigured is the Completer used when no credential is present.
// Every call fails with a config error naming the provider.
type Unconfigured struct {
	Provider string
}

var _ Completer = Unconfigured{}

func (u Unconfigured) Ready() error {
	return types.Errorf(types.ECONFIG, "%s API key not configured", u.Provider)
}

func (u Unconfigured) Complete(context.Context, Request) (string, error) {
	return "", u.Ready()
}

// UserPrompt is a convenience for single-turn requests.
func UserPrompt(system, prompt string) Request {
	return Request{
		System:   system,
		Messages: []types.Turn{{Role: types.RoleUser, Content: prompt}},
	}
}

func emptyResponse(provider string) error {
	return types.WrapError(types.EINTERNAL, fmt.Errorf("%s returned no content", provider), "No response from AI")
}
