package vectorize

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/casefind/casefind/internal/domain"
)

func TestHashing_Deterministic(t *testing.T) {
	v := NewHashingVectorizer(0)
	ctx := context.Background()

	a, err := v.Embed(ctx, "salary not paid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := v.Embed(ctx, "salary not paid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != DefaultDimension {
		t.Fatalf("got dimension %d, want %d", len(a), DefaultDimension)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("vectors differ at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestHashing_DifferentTextsDiffer(t *testing.T) {
	v := NewHashingVectorizer(64)
	ctx := context.Background()

	a, _ := v.Embed(ctx, "salary not paid")
	b, _ := v.Embed(ctx, "eviction notice received")

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("distinct texts produced identical vectors")
	}
}

func TestHashing_RejectsBlankText(t *testing.T) {
	v := NewHashingVectorizer(0)
	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := v.Embed(context.Background(), text)
		if !errors.Is(err, domain.ErrEmptyInput) {
			t.Errorf("text %q: expected ErrEmptyInput, got %v", text, err)
		}
	}
}

func TestHashing_UnitNorm(t *testing.T) {
	v := NewHashingVectorizer(128)
	vec, err := v.Embed(context.Background(), "wages withheld by employer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var norm float64
	for _, x := range vec {
		norm += float64(x) * float64(x)
	}
	if math.Abs(math.Sqrt(norm)-1.0) > 1e-6 {
		t.Errorf("vector norm %v, want 1.0", math.Sqrt(norm))
	}
}

func TestBatch_PreservesOrder(t *testing.T) {
	inner := NewHashingVectorizer(32)
	batch, err := NewBatch(inner, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer batch.Release()

	texts := []string{"first text", "second text", "third text", "fourth text"}
	got, err := batch.EmbedBatch(context.Background(), texts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(texts) {
		t.Fatalf("got %d vectors, want %d", len(got), len(texts))
	}

	for i, text := range texts {
		want, _ := inner.Embed(context.Background(), text)
		for j := range want {
			if got[i][j] != want[j] {
				t.Fatalf("vector %d does not match sequential embedding", i)
			}
		}
	}
}

func TestBatch_PropagatesError(t *testing.T) {
	inner := NewHashingVectorizer(32)
	batch, err := NewBatch(inner, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer batch.Release()

	_, err = batch.EmbedBatch(context.Background(), []string{"ok text", "   "})
	if !errors.Is(err, domain.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}
