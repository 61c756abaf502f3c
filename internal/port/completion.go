package port

import "context"

// CompletionRequest is one chat-completion exchange: a system
// instruction, a user prompt, and an optional scanned image for
// vision-capable providers. VisionSystem and VisionPrompt replace the
// text pair when a provider analyzes the image directly.
type CompletionRequest struct {
	System       string
	Prompt       string
	VisionSystem string
	VisionPrompt string
	ImageData    []byte
	ImageMIME    string
}

// CompletionResult carries the free-text completion and which provider
// and model produced it.
type CompletionResult struct {
	Content  string
	Provider string
	Model    string
}

// CompletionProvider produces a free-text completion for a prompt.
type CompletionProvider interface {
	Name() string
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error)
}
