package similarity

import (
	"errors"
	"math"
	"testing"

	"github.com/casefind/casefind/internal/domain"
)

func TestCosine_SelfSimilarity(t *testing.T) {
	vectors := [][]float32{
		{1, 0, 0},
		{0.3, -0.7, 0.2},
		{5, 5, 5, 5},
	}
	for _, v := range vectors {
		got, err := Cosine(v, v)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(got-1.0) > 1e-9 {
			t.Errorf("Cosine(v, v) = %v, want 1.0", got)
		}
	}
}

func TestCosine_ZeroVector(t *testing.T) {
	got, err := Cosine([]float32{1, 2, 3}, []float32{0, 0, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("similarity against zero vector = %v, want 0", got)
	}
}

func TestCosine_DimensionMismatch(t *testing.T) {
	_, err := Cosine([]float32{1, 2}, []float32{1, 2, 3})
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestCosine_Orthogonal(t *testing.T) {
	got, err := Cosine([]float32{1, 0}, []float32{0, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got) > 1e-9 {
		t.Errorf("orthogonal similarity = %v, want 0", got)
	}
}

func TestTopK_OrdersByScore(t *testing.T) {
	query := []float32{1, 0}
	candidates := []Candidate{
		{ID: "far", Vector: []float32{0, 1}},
		{ID: "near", Vector: []float32{1, 0.1}},
		{ID: "exact", Vector: []float32{2, 0}},
	}

	matches, err := TopK(query, candidates, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	if matches[0].ID != "exact" || matches[1].ID != "near" || matches[2].ID != "far" {
		t.Errorf("unexpected order: %s, %s, %s", matches[0].ID, matches[1].ID, matches[2].ID)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Errorf("scores not non-increasing at %d", i)
		}
	}
}

func TestTopK_StableOnTies(t *testing.T) {
	query := []float32{1, 0}
	// Identical vectors produce bit-identical scores; input order must
	// hold. Scaled copies like {1,1}/{2,2} are not reliable ties: the
	// float division rounds them differently.
	candidates := []Candidate{
		{ID: "first", Vector: []float32{1, 1}},
		{ID: "second", Vector: []float32{1, 1}},
		{ID: "third", Vector: []float32{1, 1}},
	}

	matches, err := TopK(query, candidates, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matches[0].ID != "first" || matches[1].ID != "second" || matches[2].ID != "third" {
		t.Errorf("tie order not preserved: %s, %s, %s", matches[0].ID, matches[1].ID, matches[2].ID)
	}
}

func TestTopK_Truncates(t *testing.T) {
	query := []float32{1}
	candidates := []Candidate{
		{ID: "a", Vector: []float32{1}},
		{ID: "b", Vector: []float32{2}},
		{ID: "c", Vector: []float32{3}},
	}
	matches, err := TopK(query, candidates, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("expected 2 matches, got %d", len(matches))
	}
}

func TestTopK_DimensionFault(t *testing.T) {
	_, err := TopK([]float32{1, 0}, []Candidate{{ID: "bad", Vector: []float32{1}}}, 5)
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}
