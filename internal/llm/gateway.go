package llm

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/avast/retry-go/v4"

	"choubo/internal/port"
)

// LocalProvider is a completion provider hosted on this machine whose
// availability must be probed before use.
type LocalProvider interface {
	port.CompletionProvider
	Reachable(ctx context.Context) bool
}

// RemoteProvider is a hosted completion provider that may be left
// unconfigured (no API key).
type RemoteProvider interface {
	port.CompletionProvider
	Configured() bool
}

// Gateway obtains a completion by trying providers in preference order:
// the local vision path when an image is supplied, then the local text
// model, then the remote API. Each provider gets a fixed number of
// attempts with a fixed delay; once a provider has exhausted them the
// gateway never returns to it within the same call.
type Gateway struct {
	local       LocalProvider
	remote      RemoteProvider
	maxAttempts int
	retryDelay  time.Duration
}

// NewGateway creates a Gateway. Either provider may be nil.
func NewGateway(local LocalProvider, remote RemoteProvider, maxAttempts int, retryDelay time.Duration) *Gateway {
	if maxAttempts <= 0 {
		maxAttempts = 2
	}
	if retryDelay <= 0 {
		retryDelay = 2 * time.Second
	}
	return &Gateway{
		local:       local,
		remote:      remote,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
	}
}

// Complete runs the provider decision sequence for one request. It
// returns ErrNoProvider when nothing is configured or reachable;
// any other error is the last provider failure.
func (g *Gateway) Complete(ctx context.Context, req port.CompletionRequest) (*port.CompletionResult, error) {
	localUp := g.local != nil && g.local.Reachable(ctx)

	// Vision short-circuit: a reachable local runtime analyzes the image
	// directly and skips the text path entirely on success.
	if len(req.ImageData) > 0 && localUp {
		visionReq := req
		if req.VisionSystem != "" {
			visionReq.System = req.VisionSystem
		}
		if req.VisionPrompt != "" {
			visionReq.Prompt = req.VisionPrompt
		}
		result, err := g.attempt(ctx, g.local, visionReq)
		if err == nil {
			return result, nil
		}
		log.Printf("llm.Gateway: vision path failed, falling back to text: %v", err)
	}

	textReq := req
	textReq.ImageData = nil
	textReq.ImageMIME = ""

	var providers []port.CompletionProvider
	if localUp {
		providers = append(providers, g.local)
	}
	if g.remote != nil && g.remote.Configured() {
		providers = append(providers, g.remote)
	}
	if len(providers) == 0 {
		return nil, ErrNoProvider
	}

	var lastErr error
	for _, p := range providers {
		result, err := g.attempt(ctx, p, textReq)
		if err == nil {
			return result, nil
		}
		log.Printf("llm.Gateway: %s failed after %d attempts: %v", p.Name(), g.maxAttempts, err)
		lastErr = err
	}
	return nil, lastErr
}

// attempt wraps one provider in the retry decorator. Rate-limited calls
// are not retried against the same provider.
func (g *Gateway) attempt(ctx context.Context, p port.CompletionProvider, req port.CompletionRequest) (*port.CompletionResult, error) {
	return retry.DoWithData(
		func() (*port.CompletionResult, error) {
			return p.Complete(ctx, req)
		},
		retry.Context(ctx),
		retry.Attempts(uint(g.maxAttempts)),
		retry.Delay(g.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var rlErr *RateLimitError
			return !errors.As(err, &rlErr)
		}),
	)
}
