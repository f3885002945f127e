// Package rewrite localizes scraped product copy for the Swedish
// market using a generative model, and parses the model's two-field
// reply back into a title and an HTML description.
package rewrite

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Rewriter produces localized product copy from scraped copy.
type Rewriter interface {
	Rewrite(ctx context.Context, title, description string) (*Result, error)
}

// Result is the rewritten product copy.
type Result struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Error reports a failed rewrite. The pipeline never falls back to
// publishing the unrewritten supplier copy.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rewrite failed: %s: %v", e.Message, e.Cause)
	}
	return "rewrite failed: " + e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// CompletionClient is the model call behind a rewrite.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service is the production Rewriter.
type Service struct {
	client CompletionClient
	logger *zap.Logger
}

// NewService creates a Rewriter on top of a completion client.
func NewService(client CompletionClient, logger *zap.Logger) *Service {
	return &Service{client: client, logger: logger}
}

const promptTemplate = `Du är en copywriter för svensk e-handel.

Produkt från leverantör:
Titel: %s
Beskrivning: %s

Skriv om produkten för den svenska marknaden:
1. En kort, slagkraftig svensk titel.
2. En lång, säljande och SEO-optimerad produktbeskrivning i HTML enligt
   AIDA-modellen (uppmärksamhet, intresse, önskan, handling). Använd
   rubriker, stycken och punktlistor. Inga knappar och inga explicita
   köpuppmaningar.

Svara exakt i detta format och ingenting annat:
Titel: <din titel>
Beskrivning (HTML): <din beskrivning>`

// Rewrite builds the fixed prompt, calls the model once and parses the
// reply. A transport or model failure surfaces as *Error; a reply with
// no recognizable title label falls back to the input title per the
// parsing rules.
func (s *Service) Rewrite(ctx context.Context, title, description string) (*Result, error) {
	prompt := fmt.Sprintf(promptTemplate, title, description)

	reply, err := s.client.Complete(ctx, prompt)
	if err != nil {
		return nil, &Error{Message: "model call failed", Cause: err}
	}
	if strings.TrimSpace(reply) == "" {
		return nil, &Error{Message: "model returned an empty reply"}
	}

	newTitle, newDescription := ParseResponse(reply, title)
	if newDescription == "" {
		return nil, &Error{Message: "model reply contained no description"}
	}

	s.logger.Debug("Rewrote product copy",
		zap.Int("reply_len", len(reply)),
		zap.String("title", newTitle),
	)

	return &Result{Title: newTitle, Description: newDescription}, nil
}
