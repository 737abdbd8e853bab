package main

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// Solution records the outcome of solving a puzzle.
type Solution struct {
	PuzzleID  string        `json:"puzzle_id"`
	Found     Result        `json:"found"`
	Words     int           `json:"words"`
	Matched   int           `json:"matched"`
	Duration  time.Duration `json:"duration_ns"`
	CreatedAt time.Time     `json:"created_at"`
}

// Store holds all puzzles and their solutions in memory.
type Store struct {
	mu        sync.RWMutex
	puzzles   map[string]*Puzzle
	solutions map[string]*Solution // keyed by puzzle ID
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		puzzles:   make(map[string]*Puzzle),
		solutions: make(map[string]*Solution),
	}
}

// SavePuzzle persists a puzzle and returns it with a generated ID.
func (s *Store) SavePuzzle(p *Puzzle) *Puzzle {
	p.ID = generateID()
	p.CreatedAt = time.Now()

	s.mu.Lock()
	s.puzzles[p.ID] = p
	s.mu.Unlock()

	return p
}

// GetPuzzle returns a puzzle by ID, or nil if not found.
func (s *Store) GetPuzzle(id string) *Puzzle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.puzzles[id]
}

// ListPuzzles returns all puzzles, most recent first.
func (s *Store) ListPuzzles() []*Puzzle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*Puzzle, 0, len(s.puzzles))
	for _, p := range s.puzzles {
		list = append(list, p)
	}
	// Sort by CreatedAt descending (simple insertion, small N).
	for i := 1; i < len(list); i++ {
		for j := i; j > 0 && list[j].CreatedAt.After(list[j-1].CreatedAt); j-- {
			list[j], list[j-1] = list[j-1], list[j]
		}
	}
	return list
}

// SaveSolution records the solution for a puzzle, replacing any
// previous one.
func (s *Store) SaveSolution(sol *Solution) *Solution {
	sol.CreatedAt = time.Now()

	s.mu.Lock()
	s.solutions[sol.PuzzleID] = sol
	s.mu.Unlock()

	return sol
}

// GetSolution returns the latest solution for a puzzle, or nil if the
// puzzle has not been solved yet.
func (s *Store) GetSolution(puzzleID string) *Solution {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.solutions[puzzleID]
}

func generateID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}
