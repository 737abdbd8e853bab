package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// loadLines reads a newline-delimited text file and returns its lines,
// without trailing newlines and without any other transformation.
func loadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

// NewPuzzle validates raw word and grid lines and builds a puzzle.
// Grid rows are uppercased on the way in; the solver assumes uppercase
// letters. Returns an error for an empty word list, an empty grid or a
// non-rectangular grid.
func NewPuzzle(name string, words, rows []string) (*Puzzle, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("empty word list")
	}
	if len(rows) == 0 || rows[0] == "" {
		return nil, fmt.Errorf("empty grid")
	}

	width := utf8.RuneCountInString(rows[0])
	upper := make([]string, len(rows))
	for i, row := range rows {
		if n := utf8.RuneCountInString(row); n != width {
			return nil, fmt.Errorf("grid is not rectangular: row %d has %d letters, expected %d", i, n, width)
		}
		upper[i] = strings.ToUpper(row)
	}

	return &Puzzle{Name: name, Rows: upper, Words: words}, nil
}
