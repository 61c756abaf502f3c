package interpreter

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"choubo/internal/domain"
	"choubo/internal/llm"
	"choubo/internal/ocr"
	"choubo/internal/port"
	"choubo/internal/prompt"
)

// CompletionGateway obtains a free-text completion for a prompt.
type CompletionGateway interface {
	Complete(ctx context.Context, req port.CompletionRequest) (*port.CompletionResult, error)
}

// Request is one interpretation call.
type Request struct {
	Raw          *domain.RawDocument
	DocumentType domain.DocumentType
	CompanyID    string
	ImageData    []byte
	ImageMIME    string
}

// Result is the finalized document plus provenance.
type Result struct {
	Document  *domain.StructuredDocument
	Provider  string
	ModelUsed string
}

// Interpreter runs the interpretation pipeline: compact the OCR payload,
// build the prompt, obtain a completion, extract and validate the JSON.
// Any failure past the gateway-configuration check is absorbed by the
// heuristic fallback, so a configured Interpreter never returns an error
// for ordinary OCR noise.
type Interpreter struct {
	gateway           CompletionGateway
	defaultVendorName string
}

// New creates an Interpreter.
func New(gateway CompletionGateway, defaultVendorName string) *Interpreter {
	return &Interpreter{
		gateway:           gateway,
		defaultVendorName: defaultVendorName,
	}
}

// Interpret converts a raw OCR document into a StructuredDocument. The
// only returned errors are domain.ErrInvalidDocumentType and
// llm.ErrNoProvider; everything else degrades to the fallback path.
func (i *Interpreter) Interpret(ctx context.Context, req Request) (*Result, error) {
	if !req.DocumentType.Valid() {
		return nil, domain.ErrInvalidDocumentType
	}

	compact, err := ocr.CompactPayload(req.Raw)
	if err != nil {
		return nil, err
	}

	analysis := ocr.Analyze(req.Raw)
	log.Printf("interpreter: pre-analysis companies=%d honorifics=%d amounts=%d dates=%d",
		len(analysis.CompaniesFound), len(analysis.HonorificsFound),
		len(analysis.AmountsFound), len(analysis.DatesFound))

	completion, err := i.gateway.Complete(ctx, port.CompletionRequest{
		System:       prompt.SystemMessage,
		Prompt:       prompt.Build(req.DocumentType, compact),
		VisionSystem: prompt.VisionSystemMessage,
		VisionPrompt: prompt.VisionUserMessage(req.DocumentType),
		ImageData:    req.ImageData,
		ImageMIME:    req.ImageMIME,
	})
	if err != nil {
		if errors.Is(err, llm.ErrNoProvider) {
			return nil, err
		}
		log.Printf("interpreter: completion failed, using fallback: %v", err)
		return i.fallbackResult(req), nil
	}

	raw, err := llm.ExtractJSON(completion.Content)
	if err != nil {
		log.Printf("interpreter: %v, using fallback", err)
		return i.fallbackResult(req), nil
	}

	var doc domain.StructuredDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Printf("interpreter: completion JSON does not fit the document schema, using fallback: %v", err)
		return i.fallbackResult(req), nil
	}

	i.validateAndEnhance(&doc, req.Raw)
	doc.Confidence = domain.ConfidenceLLM

	return &Result{
		Document:  &doc,
		Provider:  completion.Provider,
		ModelUsed: completion.Model,
	}, nil
}

func (i *Interpreter) fallbackResult(req Request) *Result {
	return &Result{
		Document: i.Synthesize(req),
		Provider: "heuristic",
	}
}
