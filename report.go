package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
)

const reportHeader = "\nFormat of this file:" +
	"\n\nEach word found:" +
	"\n\tEach direction the word was found in:" +
	"\n\t\t(X, Y) coordinates of first letter in the word." +
	"\n\n"

// WriteReport renders a result as a human-readable report: words
// sorted alphabetically, each direction indented under its word with
// the (X, Y) start of every occurrence, and a "Not found." annotation
// for words absent from the grid.
func WriteReport(w io.Writer, result Result) error {
	if _, err := io.WriteString(w, reportHeader); err != nil {
		return err
	}

	words := make([]string, 0, len(result))
	for word := range result {
		words = append(words, word)
	}
	sort.Strings(words)

	for _, word := range words {
		if _, err := fmt.Fprintf(w, "\n\n%s:", word); err != nil {
			return err
		}

		if len(result[word]) == 0 {
			if _, err := io.WriteString(w, "\n\tNot found."); err != nil {
				return err
			}
			continue
		}

		// Directions in the solver's canonical order, so two runs
		// over the same puzzle produce identical reports.
		for _, dir := range directions {
			locs, ok := result[word][dir.Name]
			if !ok {
				continue
			}
			if _, err := fmt.Fprintf(w, "\n\t%s:", dir.Name); err != nil {
				return err
			}
			for _, loc := range locs {
				if _, err := fmt.Fprintf(w, "\n\t\t(%d, %d)", loc.X, loc.Y); err != nil {
					return err
				}
			}
		}
	}

	_, err := io.WriteString(w, "\n")
	return err
}

// writeReportFile writes the report for a result to path.
func writeReportFile(path string, result Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteReport(f, result); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// sameContents reports whether two text files hold identical lines.
// Used to compare a fresh solution file against a known-good one.
func sameContents(pathA, pathB string) (bool, error) {
	a, err := loadLines(pathA)
	if err != nil {
		return false, err
	}
	b, err := loadLines(pathB)
	if err != nil {
		return false, err
	}
	return slices.Equal(a, b), nil
}
