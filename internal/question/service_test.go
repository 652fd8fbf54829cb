package question

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"interview-prep/internal/domain"
)

type fakeProvider struct {
	completion string
	err        error
	calls      int
}

func (f *fakeProvider) Complete(context.Context, string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.completion, nil
}

// validCompletion builds a completion matching the structural contract.
func validCompletion(category string, numRounds int) string {
	var rounds []([]map[string]any)
	id := 1
	for r := 0; r < numRounds; r++ {
		var round []map[string]any
		for q := 0; q < domain.QuestionsPerRound; q++ {
			round = append(round, map[string]any{
				"id":           id,
				"type":         category,
				"question":     fmt.Sprintf("Question %d?", id),
				"requiresCode": id%2 == 0,
			})
			id++
		}
		rounds = append(rounds, round)
	}
	data, _ := json.Marshal(rounds)
	return string(data)
}

func TestGenerate_ProviderSuccess(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{completion: validCompletion("Google", 3)}
	svc := NewService(provider, nil)

	result, err := svc.Generate(context.Background(), "Google", 3)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if result.Source != SourceProvider {
		t.Fatalf("expected provider source, got %s (%s)", result.Source, result.Reason)
	}
	if len(result.Rounds) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(result.Rounds))
	}
	for i, round := range result.Rounds {
		if len(round) != domain.QuestionsPerRound {
			t.Fatalf("round %d: expected %d questions, got %d", i, domain.QuestionsPerRound, len(round))
		}
	}
	if provider.calls != 1 {
		t.Fatalf("expected exactly one provider call, got %d", provider.calls)
	}
}

func TestGenerate_FencedCompletion(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{completion: "```json\n" + validCompletion("general", 2) + "\n```"}
	svc := NewService(provider, nil)

	result, err := svc.Generate(context.Background(), "general", 2)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if result.Source != SourceProvider {
		t.Fatalf("fenced but valid completion should validate, got fallback: %s", result.Reason)
	}
}

func TestGenerate_UnsupportedCategory(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{completion: validCompletion("x", 3)}
	svc := NewService(provider, nil)

	_, err := svc.Generate(context.Background(), "Facebook", 3)
	if !errors.Is(err, ErrUnsupportedCategory) {
		t.Fatalf("expected ErrUnsupportedCategory, got %v", err)
	}
	if provider.calls != 0 {
		t.Fatalf("provider contacted for unsupported category: %d calls", provider.calls)
	}
}

func TestGenerate_CategoryCaseInsensitive(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{completion: validCompletion("Google", 3)}
	svc := NewService(provider, nil)

	if _, err := svc.Generate(context.Background(), "google", 3); err != nil {
		t.Fatalf("lowercase category rejected: %v", err)
	}
	if _, err := svc.Generate(context.Background(), " GOOGLE ", 3); err != nil {
		t.Fatalf("padded uppercase category rejected: %v", err)
	}
}

func TestGenerate_ProviderFailureFallsBack(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{err: errors.New("connection refused")}
	svc := NewService(provider, nil)

	result, err := svc.Generate(context.Background(), "Amazon", 2)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if result.Source != SourceFallback {
		t.Fatal("expected fallback on provider failure")
	}
	if result.Reason == "" {
		t.Fatal("fallback result must carry a reason")
	}
	assertShape(t, result.Rounds, 2)
}

func TestGenerate_MalformedCompletionFallsBack(t *testing.T) {
	t.Parallel()

	for _, completion := range []string{
		"I'm sorry, I can't help with that.",
		"{not json",
		`{"rounds": []}`,
		"[]",
	} {
		provider := &fakeProvider{completion: completion}
		svc := NewService(provider, nil)

		result, err := svc.Generate(context.Background(), "technical", 2)
		if err != nil {
			t.Fatalf("Generate(%q) error: %v", completion, err)
		}
		if result.Source != SourceFallback {
			t.Fatalf("completion %q should fall back", completion)
		}
		assertShape(t, result.Rounds, 2)
	}
}

func TestGenerate_WrongShapeFallsBack(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"two questions per round": `[[{"id":1,"type":"t","question":"q","requiresCode":false},{"id":2,"type":"t","question":"q","requiresCode":false}]]`,
		"extra field":             `[[{"id":1,"type":"t","question":"q","requiresCode":false,"hint":"x"},{"id":2,"type":"t","question":"q","requiresCode":false},{"id":3,"type":"t","question":"q","requiresCode":false}]]`,
		"missing requiresCode":    `[[{"id":1,"type":"t","question":"q","answer":"a"},{"id":2,"type":"t","question":"q","requiresCode":false},{"id":3,"type":"t","question":"q","requiresCode":false}]]`,
		"id not integer":          `[[{"id":1.5,"type":"t","question":"q","requiresCode":false},{"id":2,"type":"t","question":"q","requiresCode":false},{"id":3,"type":"t","question":"q","requiresCode":false}]]`,
		"requiresCode as string":  `[[{"id":1,"type":"t","question":"q","requiresCode":"yes"},{"id":2,"type":"t","question":"q","requiresCode":false},{"id":3,"type":"t","question":"q","requiresCode":false}]]`,
	}
	for name, completion := range cases {
		provider := &fakeProvider{completion: completion}
		svc := NewService(provider, nil)

		result, err := svc.Generate(context.Background(), "general", 1)
		if err != nil {
			t.Fatalf("%s: Generate error: %v", name, err)
		}
		if result.Source != SourceFallback {
			t.Fatalf("%s: malformed shape surfaced as success", name)
		}
	}
}

func TestGenerate_RoundCountDefaultsAndClamps(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{err: errors.New("down")}
	svc := NewService(provider, nil)

	result, err := svc.Generate(context.Background(), "general", 0)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(result.Rounds) != DefaultRounds {
		t.Fatalf("expected %d default rounds, got %d", DefaultRounds, len(result.Rounds))
	}

	result, err = svc.Generate(context.Background(), "general", 50)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(result.Rounds) != maxRounds {
		t.Fatalf("expected clamp to %d rounds, got %d", maxRounds, len(result.Rounds))
	}
}

func assertShape(t *testing.T, rounds []domain.Round, wantRounds int) {
	t.Helper()
	if len(rounds) != wantRounds {
		t.Fatalf("expected %d rounds, got %d", wantRounds, len(rounds))
	}
	for i, round := range rounds {
		if len(round) != domain.QuestionsPerRound {
			t.Fatalf("round %d: expected %d questions, got %d", i, domain.QuestionsPerRound, len(round))
		}
		for j, q := range round {
			if q.ID == 0 || q.Type == "" || q.Question == "" {
				t.Fatalf("round %d question %d incomplete: %+v", i, j, q)
			}
		}
	}
}
