package model

import (
	"slices"
	"unicode"
)

// Rack is a player's private holding of tiles. Order carries no meaning.
type Rack []rune

// Reservation is the outcome of checking a word against a rack
type Reservation struct {
	// Used holds, per letter of the word, the tile consumed for it:
	// the letter itself or BlankLetter when a blank stood in
	Used []rune
	// Remaining is the rack left after the word's tiles are taken
	Remaining Rack
}

// BlankIndexes returns the word positions that were covered by a blank
func (r Reservation) BlankIndexes() []int {
	var idx []int
	for i, t := range r.Used {
		if t == BlankLetter {
			idx = append(idx, i)
		}
	}
	return idx
}

// Reserve works out which tiles the word would consume, left to right.
// Each letter takes an identical tile if one is left, otherwise a blank.
// The first letter with neither fails the whole reservation with an
// *InsufficientTilesError. The receiver is never modified.
//
// The assignment is greedy: an early letter may spend a blank that a later
// letter needed, even if a different assignment would have succeeded.
func (r Rack) Reserve(word string) (Reservation, error) {
	remaining := r.Clone()
	used := make([]rune, 0, len(word))

	for _, letter := range word {
		letter = unicode.ToUpper(letter)
		if i := slices.Index(remaining, letter); i >= 0 {
			remaining = slices.Delete(remaining, i, i+1)
			used = append(used, letter)
			continue
		}
		if i := slices.Index(remaining, BlankLetter); i >= 0 {
			remaining = slices.Delete(remaining, i, i+1)
			used = append(used, BlankLetter)
			continue
		}
		return Reservation{}, &InsufficientTilesError{Letter: letter}
	}

	return Reservation{Used: used, Remaining: remaining}, nil
}

// Count returns the number of tiles on the rack
func (r Rack) Count() int {
	return len(r)
}

// Clone returns an independent copy of the rack
func (r Rack) Clone() Rack {
	if r == nil {
		return Rack{}
	}
	return slices.Clone(r)
}

// String renders the rack as its tile symbols
func (r Rack) String() string {
	return string(r)
}
