package main

import (
	"strings"
	"sync"
)

// Result maps each word to the directions it was found in, and for
// each direction the start of every occurrence. A word with no match
// in any direction maps to an empty inner map.
type Result map[string]map[string][]Location

// searchWord returns every start coordinate from which word can be
// read contiguously in the given direction.
//
// Matching is case-insensitive. A space inside a word is a positional
// skip: it consumes no grid cell and no step. Candidate starts are the
// index entries for the word's literal first character, so an empty or
// all-space word has no candidates in a letters-only grid and simply
// reports no matches.
func searchWord(word string, dir Direction, index *Index) []Location {
	letters := []rune(strings.ToUpper(word))
	if len(letters) == 0 {
		return nil
	}

	var found []Location
	for _, start := range index.Locations(letters[0]) {
		pos := start
		matched := true

		for _, r := range letters {
			if r == ' ' {
				continue
			}
			if !index.Holds(pos, r) {
				matched = false
				break
			}
			// The first letter is checked in place; the step
			// only applies after a successful match.
			pos.Row += dir.DY
			pos.Col += dir.DX
		}

		if matched {
			found = append(found, Location{X: start.Col, Y: start.Row})
		}
	}
	return found
}

// Solve finds every occurrence of every word in the grid, in all eight
// directions. The index is built once; each word is then searched by
// its own goroutine against the shared read-only index.
//
// The result holds exactly one key per distinct input word, with an
// empty inner map for words that were not found anywhere.
func Solve(words []string, rows []string) Result {
	index := BuildIndex(rows)

	type wordMatches struct {
		word string
		dirs map[string][]Location
	}

	ch := make(chan wordMatches, len(words))
	var wg sync.WaitGroup

	for _, word := range words {
		wg.Add(1)
		go func(word string) {
			defer wg.Done()

			dirs := make(map[string][]Location)
			for _, dir := range directions {
				if locs := searchWord(word, dir, index); len(locs) > 0 {
					dirs[dir.Name] = locs
				}
			}
			ch <- wordMatches{word: word, dirs: dirs}
		}(word)
	}

	wg.Wait()
	close(ch)

	result := make(Result, len(words))
	for m := range ch {
		result[m.word] = m.dirs
	}
	return result
}

// Matched counts the words with at least one occurrence.
func (r Result) Matched() int {
	n := 0
	for _, dirs := range r {
		if len(dirs) > 0 {
			n++
		}
	}
	return n
}
