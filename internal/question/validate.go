package question

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"interview-prep/internal/domain"
)

// parseRounds parses a completion into rounds and enforces the structural
// contract: a sequence of rounds, each with exactly three question objects,
// each object carrying exactly id/type/question/requiresCode with the right
// types.
func parseRounds(raw string, wantRounds int) ([]domain.Round, error) {
	cleaned := stripCodeFence(raw)

	var parsed []([]map[string]any)
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("parse completion: %w", err)
	}

	if len(parsed) != wantRounds {
		return nil, fmt.Errorf("expected %d rounds, got %d", wantRounds, len(parsed))
	}

	rounds := make([]domain.Round, 0, len(parsed))
	for i, rawRound := range parsed {
		if len(rawRound) != domain.QuestionsPerRound {
			return nil, fmt.Errorf("round %d: expected %d questions, got %d", i+1, domain.QuestionsPerRound, len(rawRound))
		}
		round := make(domain.Round, 0, len(rawRound))
		for j, obj := range rawRound {
			q, err := parseQuestion(obj)
			if err != nil {
				return nil, fmt.Errorf("round %d question %d: %w", i+1, j+1, err)
			}
			round = append(round, q)
		}
		rounds = append(rounds, round)
	}
	return rounds, nil
}

func parseQuestion(obj map[string]any) (domain.Question, error) {
	if len(obj) != 4 {
		return domain.Question{}, fmt.Errorf("expected exactly 4 fields, got %d", len(obj))
	}

	idVal, ok := obj["id"].(float64)
	if !ok || idVal != math.Trunc(idVal) {
		return domain.Question{}, fmt.Errorf("field id must be an integer")
	}
	typeVal, ok := obj["type"].(string)
	if !ok || typeVal == "" {
		return domain.Question{}, fmt.Errorf("field type must be a non-empty string")
	}
	questionVal, ok := obj["question"].(string)
	if !ok || questionVal == "" {
		return domain.Question{}, fmt.Errorf("field question must be a non-empty string")
	}
	requiresCode, ok := obj["requiresCode"].(bool)
	if !ok {
		return domain.Question{}, fmt.Errorf("field requiresCode must be a boolean")
	}

	return domain.Question{
		ID:           int(idVal),
		Type:         typeVal,
		Question:     questionVal,
		RequiresCode: requiresCode,
	}, nil
}

// stripCodeFence removes a markdown fence wrapping the JSON, a common
// decoration in model output.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// drop the language tag line ("json", usually)
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
