package question

import (
	"testing"

	"interview-prep/internal/domain"
)

func TestFallbackPoolsCoverAllCategories(t *testing.T) {
	t.Parallel()

	for _, canonical := range categories {
		pool, ok := fallbackPools[canonical]
		if !ok {
			t.Fatalf("no fallback pool for category %q", canonical)
		}
		if len(pool) < domain.QuestionsPerRound {
			t.Fatalf("pool %q too small: %d", canonical, len(pool))
		}
	}
}

func TestFallbackRounds_ShapeAndIDs(t *testing.T) {
	t.Parallel()

	rounds := fallbackRounds("Google", 5)
	assertShape(t, rounds, 5)

	id := 1
	for _, round := range rounds {
		for _, q := range round {
			if q.ID != id {
				t.Fatalf("ids not sequential: got %d want %d", q.ID, id)
			}
			if q.Type != "Google" {
				t.Fatalf("question type mismatch: %q", q.Type)
			}
			id++
		}
	}
}

func TestFallbackRounds_UnknownCategoryUsesGeneral(t *testing.T) {
	t.Parallel()

	rounds := fallbackRounds("nonexistent", 1)
	assertShape(t, rounds, 1)
	if rounds[0][0].Question != fallbackPools["general"][0].text {
		t.Fatal("unknown category should fall back to the general pool")
	}
}
