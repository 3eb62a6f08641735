package analytics

import (
	"fmt"
	"math"
	"sync"
	"testing"
	"time"
)

func TestRecordSearch_Counters(t *testing.T) {
	r := New()
	r.RecordSearch("salary not paid", []string{"employment"}, 10*time.Millisecond, 3)
	r.RecordSearch("salary not paid", nil, 20*time.Millisecond, 0)
	r.RecordSearch("eviction", []string{"housing", "employment"}, 30*time.Millisecond, 1)

	rep := r.Snapshot(10)
	if rep.TotalSearches != 3 {
		t.Errorf("total searches = %d, want 3", rep.TotalSearches)
	}
	if math.Abs(rep.SuccessRate-2.0/3.0) > 1e-9 {
		t.Errorf("success rate = %v, want 2/3", rep.SuccessRate)
	}
	if math.Abs(rep.AvgResponseMs-20) > 1e-9 {
		t.Errorf("avg response = %v, want 20", rep.AvgResponseMs)
	}
}

func TestSnapshot_TopQueriesOrdered(t *testing.T) {
	r := New()
	for i := 0; i < 5; i++ {
		r.RecordSearch("salary", nil, time.Millisecond, 1)
	}
	for i := 0; i < 2; i++ {
		r.RecordSearch("eviction", nil, time.Millisecond, 1)
	}
	r.RecordSearch("visa", nil, time.Millisecond, 1)

	rep := r.Snapshot(2)
	if len(rep.TopQueries) != 2 {
		t.Fatalf("expected 2 top queries, got %d", len(rep.TopQueries))
	}
	if rep.TopQueries[0].Name != "salary" || rep.TopQueries[0].Count != 5 {
		t.Errorf("top query = %+v, want salary/5", rep.TopQueries[0])
	}
	if rep.TopQueries[1].Name != "eviction" {
		t.Errorf("second query = %+v, want eviction", rep.TopQueries[1])
	}
}

func TestSnapshot_QueriesNormalized(t *testing.T) {
	r := New()
	r.RecordSearch("Salary", nil, time.Millisecond, 1)
	r.RecordSearch("  salary ", nil, time.Millisecond, 1)

	rep := r.Snapshot(10)
	if len(rep.TopQueries) != 1 || rep.TopQueries[0].Count != 2 {
		t.Errorf("case/space variants not merged: %+v", rep.TopQueries)
	}
}

func TestSnapshot_CategoryCounts(t *testing.T) {
	r := New()
	r.RecordSearch("a", []string{"employment"}, time.Millisecond, 1)
	r.RecordSearch("b", []string{"employment", "housing"}, time.Millisecond, 1)

	rep := r.Snapshot(10)
	if len(rep.CategoryCounts) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(rep.CategoryCounts))
	}
	if rep.CategoryCounts[0].Name != "employment" || rep.CategoryCounts[0].Count != 2 {
		t.Errorf("top category = %+v, want employment/2", rep.CategoryCounts[0])
	}
}

func TestRecorder_ConcurrentUpdates(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				r.RecordSearch(fmt.Sprintf("query-%d", i%10), []string{"employment"}, time.Millisecond, i%2)
				r.RecordSuggest()
			}
		}()
	}
	wg.Wait()

	rep := r.Snapshot(0)
	if rep.TotalSearches != 800 {
		t.Errorf("total searches = %d, want 800", rep.TotalSearches)
	}
	if rep.TotalSuggests != 800 {
		t.Errorf("total suggests = %d, want 800", rep.TotalSuggests)
	}
}
