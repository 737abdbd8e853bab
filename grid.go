package main

import "time"

// Coordinate is an internal grid position in (row, column) order,
// zero-indexed, row growing downward and column growing rightward.
type Coordinate struct {
	Row int
	Col int
}

// Location is a match start position in (column, row) order, the
// convention used in reports and API responses.
type Location struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Direction is one of the eight straight paths a word can follow,
// expressed as a (row, column) step vector.
type Direction struct {
	Name string
	DY   int
	DX   int
}

// directions lists the eight search directions, in the order the
// solver tries them.
var directions = []Direction{
	{Name: "left-to-right", DY: 0, DX: 1},
	{Name: "right-to-left", DY: 0, DX: -1},
	{Name: "up", DY: -1, DX: 0},
	{Name: "down", DY: 1, DX: 0},
	{Name: "up-diagonal-left", DY: -1, DX: -1},
	{Name: "up-diagonal-right", DY: -1, DX: 1},
	{Name: "down-diagonal-left", DY: 1, DX: -1},
	{Name: "down-diagonal-right", DY: 1, DX: 1},
}

// Puzzle is a word search: a rectangular grid of uppercase letters and
// the list of words hidden in it.
type Puzzle struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Rows      []string  `json:"grid"`
	Words     []string  `json:"words"`
	CreatedAt time.Time `json:"created_at"`
}

// Index maps every letter of a grid to the coordinates holding it.
// Built once per grid, read-only afterward.
//
// letterAt only ever contains in-grid coordinates, so a failed lookup
// covers both "wrong letter" and "stepped off the grid". The solver
// relies on this instead of bounds arithmetic.
type Index struct {
	byLetter map[rune][]Coordinate
	letterAt map[Coordinate]rune
}

// BuildIndex scans a grid row by row and records every letter position.
// An empty grid yields an empty index.
func BuildIndex(rows []string) *Index {
	ix := &Index{
		byLetter: make(map[rune][]Coordinate),
		letterAt: make(map[Coordinate]rune),
	}
	for y, row := range rows {
		for x, r := range []rune(row) {
			c := Coordinate{Row: y, Col: x}
			ix.byLetter[r] = append(ix.byLetter[r], c)
			ix.letterAt[c] = r
		}
	}
	return ix
}

// Locations returns every coordinate holding the given letter, in
// row-major grid order.
func (ix *Index) Locations(r rune) []Coordinate {
	return ix.byLetter[r]
}

// Holds reports whether the grid holds the given letter at c. Any
// coordinate outside the grid reports false.
func (ix *Index) Holds(c Coordinate, r rune) bool {
	return ix.letterAt[c] == r
}
