// Package ordering maintains the contiguous 1..N slide_number sequence of a
// presentation. Every operation takes the full current slide set and returns
// the full next set, renumbered, leaving the input untouched. Callers write
// the result back as a single batch.
package ordering

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/JaimeStill/slide-lab/internal/deck"
)

// Sort returns a copy of slides ordered by slide_number.
func Sort(slides []deck.Slide) []deck.Slide {
	out := slices.Clone(slides)
	slices.SortStableFunc(out, func(a, b deck.Slide) int {
		return a.SlideNumber - b.SlideNumber
	})
	return out
}

// Validate reports whether slide numbers are exactly {1..N}.
func Validate(slides []deck.Slide) error {
	seen := make([]bool, len(slides)+1)
	for _, s := range slides {
		if s.SlideNumber < 1 || s.SlideNumber > len(slides) {
			return fmt.Errorf("slide %s has number %d outside 1..%d", s.ID, s.SlideNumber, len(slides))
		}
		if seen[s.SlideNumber] {
			return fmt.Errorf("slide number %d assigned twice", s.SlideNumber)
		}
		seen[s.SlideNumber] = true
	}
	return nil
}

// InsertAt places slide at position, shifting every slide at or after
// position up by one. position must be in [1, N+1].
func InsertAt(slides []deck.Slide, position int, slide deck.Slide) ([]deck.Slide, deck.Slide, error) {
	n := len(slides)
	if position < 1 || position > n+1 {
		return nil, deck.Slide{}, fmt.Errorf("%w: insert position %d not in [1, %d]", deck.ErrOrderingConflict, position, n+1)
	}

	ordered := Sort(slides)
	ordered = slices.Insert(ordered, position-1, slide)
	renumber(ordered)

	return ordered, ordered[position-1], nil
}

// Append places slide after the last slide.
func Append(slides []deck.Slide, slide deck.Slide) ([]deck.Slide, deck.Slide) {
	next, placed, _ := InsertAt(slides, len(slides)+1, slide)
	return next, placed
}

// Remove deletes the slide with id and closes the gap it leaves.
func Remove(slides []deck.Slide, id uuid.UUID) ([]deck.Slide, deck.Slide, error) {
	ordered := Sort(slides)
	idx := indexOf(ordered, id)
	if idx < 0 {
		return nil, deck.Slide{}, fmt.Errorf("%w: slide %s", deck.ErrNotFound, id)
	}

	removed := ordered[idx]
	ordered = slices.Delete(ordered, idx, idx+1)
	renumber(ordered)

	return ordered, removed, nil
}

// Move relocates the slide with id to position. Moving earlier shifts the
// slides in [position, old) up by one; moving later shifts (old, position]
// down by one. position must be in [1, N].
func Move(slides []deck.Slide, id uuid.UUID, position int) ([]deck.Slide, error) {
	ordered := Sort(slides)
	idx := indexOf(ordered, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: slide %s", deck.ErrNotFound, id)
	}

	n := len(ordered)
	if position < 1 || position > n {
		return nil, fmt.Errorf("%w: move position %d not in [1, %d]", deck.ErrOrderingConflict, position, n)
	}

	if position == idx+1 {
		return ordered, nil
	}

	moved := ordered[idx]
	ordered = slices.Delete(ordered, idx, idx+1)
	ordered = slices.Insert(ordered, position-1, moved)
	renumber(ordered)

	return ordered, nil
}

// Duplicate deep-copies the slide with id under newID and places the copy
// directly after its source. Element ids are preserved in the copy.
func Duplicate(slides []deck.Slide, id, newID uuid.UUID) ([]deck.Slide, deck.Slide, error) {
	ordered := Sort(slides)
	idx := indexOf(ordered, id)
	if idx < 0 {
		return nil, deck.Slide{}, fmt.Errorf("%w: slide %s", deck.ErrNotFound, id)
	}

	dup := ordered[idx].Clone()
	dup.ID = newID

	ordered = slices.Insert(ordered, idx+1, dup)
	renumber(ordered)

	return ordered, ordered[idx+1], nil
}

// Shifted returns the ids in next that are new or whose slide_number differs
// from before.
func Shifted(before, next []deck.Slide) []uuid.UUID {
	prior := make(map[uuid.UUID]int, len(before))
	for _, s := range before {
		prior[s.ID] = s.SlideNumber
	}

	var ids []uuid.UUID
	for _, s := range next {
		if n, ok := prior[s.ID]; !ok || n != s.SlideNumber {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// IDs returns slide ids in slide_number order.
func IDs(slides []deck.Slide) []uuid.UUID {
	ordered := Sort(slides)
	ids := make([]uuid.UUID, len(ordered))
	for i, s := range ordered {
		ids[i] = s.ID
	}
	return ids
}

func renumber(slides []deck.Slide) {
	for i := range slides {
		slides[i].SlideNumber = i + 1
	}
}

func indexOf(slides []deck.Slide, id uuid.UUID) int {
	return slices.IndexFunc(slides, func(s deck.Slide) bool { return s.ID == id })
}
