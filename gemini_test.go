package main

import (
	"context"
	"os"
	"testing"
)

func TestGeneratePuzzle(t *testing.T) {
	projectID := os.Getenv("GCP_PROJECT_ID")
	if projectID == "" {
		t.Skip("GCP_PROJECT_ID not set, skipping integration test")
	}

	ctx := context.Background()
	client, err := NewGeminiClient(ctx, projectID, "")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	defer client.Close()

	puzzle, err := client.GeneratePuzzle(ctx, "animaux", 10, 6)
	if err != nil {
		t.Fatalf("generate puzzle: %v", err)
	}

	if len(puzzle.Rows) == 0 || len(puzzle.Words) == 0 {
		t.Fatalf("invalid puzzle: %d rows, %d words", len(puzzle.Rows), len(puzzle.Words))
	}

	// Every kept word must be findable in the grid.
	result := Solve(puzzle.Words, puzzle.Rows)
	for _, word := range puzzle.Words {
		if len(result[word]) == 0 {
			t.Errorf("word %q not found in generated grid", word)
		}
	}

	t.Logf("Puzzle: %dx%d, %d words", len(puzzle.Rows), len(puzzle.Rows[0]), len(puzzle.Words))
}
