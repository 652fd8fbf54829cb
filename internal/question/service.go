// Package question generates mock interview questions through an external
// completion provider, validating its output and falling back to static sets
// when the provider misbehaves.
package question

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"interview-prep/internal/domain"
)

// ErrUnsupportedCategory is returned for categories outside the allow-list.
// The provider is never contacted in that case.
var ErrUnsupportedCategory = errors.New("unsupported interview type")

const (
	// DefaultRounds is used when the request does not ask for a count.
	DefaultRounds = 3
	maxRounds     = 5
)

// categories maps a lowercased request identifier to its canonical label.
var categories = map[string]string{
	"general":    "general",
	"technical":  "technical",
	"behavioral": "behavioral",
	"google":     "Google",
	"amazon":     "Amazon",
	"microsoft":  "Microsoft",
}

// Source says where a result's questions came from.
type Source string

const (
	SourceProvider Source = "provider"
	SourceFallback Source = "fallback"
)

// Result is the outcome of one generation request. Source is provider when
// the completion validated, fallback otherwise; Reason explains the fallback.
type Result struct {
	Source Source
	Rounds []domain.Round
	Reason string
}

// Service is the generation gateway. It is stateless.
type Service struct {
	provider Provider
	logger   *logrus.Logger
}

func NewService(provider Provider, logger *logrus.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// Generate runs one request through the gateway: allow-list check, a single
// provider call, parse and shape validation, fallback on any failure.
func (s *Service) Generate(ctx context.Context, category string, numRounds int) (*Result, error) {
	canonical, ok := categories[strings.ToLower(strings.TrimSpace(category))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCategory, category)
	}

	if numRounds <= 0 {
		numRounds = DefaultRounds
	}
	if numRounds > maxRounds {
		numRounds = maxRounds
	}

	completion, err := s.provider.Complete(ctx, buildPrompt(canonical, numRounds))
	if err != nil {
		return s.fallback(canonical, numRounds, fmt.Sprintf("provider call failed: %v", err)), nil
	}

	rounds, err := parseRounds(completion, numRounds)
	if err != nil {
		return s.fallback(canonical, numRounds, fmt.Sprintf("invalid completion: %v", err)), nil
	}

	return &Result{Source: SourceProvider, Rounds: rounds}, nil
}

func (s *Service) fallback(category string, numRounds int, reason string) *Result {
	if s.logger != nil {
		s.logger.Warnf("serving fallback questions for %s: %s", category, reason)
	}
	return &Result{
		Source: SourceFallback,
		Rounds: fallbackRounds(category, numRounds),
		Reason: reason,
	}
}

func buildPrompt(category string, numRounds int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate mock interview questions for a %q interview.\n", category)
	fmt.Fprintf(&b, "Produce exactly %d rounds with exactly %d questions per round.\n", numRounds, domain.QuestionsPerRound)
	b.WriteString("Respond with JSON only, no prose and no markdown: an array of rounds, ")
	b.WriteString("each round an array of question objects.\n")
	b.WriteString("Each question object must have exactly these fields:\n")
	b.WriteString(`  "id": integer, unique across all rounds, starting at 1` + "\n")
	fmt.Fprintf(&b, "  %q: string, the interview category (use %q)\n", "type", category)
	b.WriteString(`  "question": string, the question text` + "\n")
	b.WriteString(`  "requiresCode": boolean, true when the candidate should write code` + "\n")
	b.WriteString("Mix conceptual and coding questions appropriate for the category.")
	return b.String()
}
