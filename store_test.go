package main

import (
	"fmt"
	"sync"
	"testing"
)

func newStoredPuzzle(t *testing.T, s *Store) *Puzzle {
	t.Helper()
	p, err := NewPuzzle("test", []string{"LCD"}, []string{"XXX", "LXX", "CXX", "DXX"})
	if err != nil {
		t.Fatalf("new puzzle: %v", err)
	}
	return s.SavePuzzle(p)
}

func TestSaveAndGetPuzzle(t *testing.T) {
	s := NewStore()
	p := newStoredPuzzle(t, s)

	if p.ID == "" {
		t.Fatal("expected puzzle to have an ID")
	}
	if got := s.GetPuzzle(p.ID); got == nil {
		t.Fatal("expected to find saved puzzle")
	}
	if got := s.GetPuzzle("nonexistent"); got != nil {
		t.Fatal("expected nil for unknown ID")
	}
}

func TestListPuzzles(t *testing.T) {
	s := NewStore()
	newStoredPuzzle(t, s)
	newStoredPuzzle(t, s)

	list := s.ListPuzzles()
	if len(list) != 2 {
		t.Fatalf("expected 2 puzzles, got %d", len(list))
	}
	// Most recent first.
	if list[0].CreatedAt.Before(list[1].CreatedAt) {
		t.Fatal("expected puzzles sorted by descending creation time")
	}
}

func TestSaveAndGetSolution(t *testing.T) {
	s := NewStore()
	p := newStoredPuzzle(t, s)

	if got := s.GetSolution(p.ID); got != nil {
		t.Fatal("expected nil before solving")
	}

	result := Solve(p.Words, p.Rows)
	s.SaveSolution(&Solution{
		PuzzleID: p.ID,
		Found:    result,
		Words:    len(result),
		Matched:  result.Matched(),
	})

	got := s.GetSolution(p.ID)
	if got == nil {
		t.Fatal("expected to find saved solution")
	}
	if got.Matched != 1 {
		t.Fatalf("expected 1 matched word, got %d", got.Matched)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("expected solution creation time to be set")
	}

	// Saving again replaces the previous solution.
	again := s.SaveSolution(&Solution{PuzzleID: p.ID, Found: result})
	if s.GetSolution(p.ID) != again {
		t.Fatal("expected the latest solution")
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()
	p := newStoredPuzzle(t, s)

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				q, _ := NewPuzzle(fmt.Sprintf("p%d", i), []string{"AB"}, []string{"AB", "BA"})
				s.SavePuzzle(q)
			} else {
				s.SaveSolution(&Solution{PuzzleID: p.ID, Found: Result{}})
			}
			s.GetPuzzle(p.ID)
			s.GetSolution(p.ID)
			s.ListPuzzles()
		}(i)
	}
	wg.Wait()
}
