package ordering_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/slide-lab/internal/deck"
	"github.com/JaimeStill/slide-lab/internal/ordering"
)

func newSlides(n int) []deck.Slide {
	slides := make([]deck.Slide, n)
	for i := range slides {
		slides[i] = deck.Slide{
			ID:          uuid.New(),
			SlideNumber: i + 1,
			Title:       "slide",
			Layout:      deck.LayoutContent,
			Elements: []deck.Element{
				{ID: "e1", Type: deck.ElementText, Content: map[string]any{"text": "body"}},
			},
		}
	}
	return slides
}

func numberOf(slides []deck.Slide, id uuid.UUID) int {
	for _, s := range slides {
		if s.ID == id {
			return s.SlideNumber
		}
	}
	return -1
}

func TestInsertAt(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		position int
	}{
		{"into empty", 0, 1},
		{"at front", 3, 1},
		{"in middle", 3, 2},
		{"append", 3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slides := newSlides(tt.count)
			fresh := deck.Slide{ID: uuid.New(), Layout: deck.LayoutBlank}

			next, placed, err := ordering.InsertAt(slides, tt.position, fresh)
			if err != nil {
				t.Fatalf("InsertAt() error = %v", err)
			}

			if len(next) != tt.count+1 {
				t.Fatalf("len = %d, want %d", len(next), tt.count+1)
			}
			if placed.SlideNumber != tt.position {
				t.Errorf("placed.SlideNumber = %d, want %d", placed.SlideNumber, tt.position)
			}
			for _, s := range slides {
				want := s.SlideNumber
				if s.SlideNumber >= tt.position {
					want++
				}
				if got := numberOf(next, s.ID); got != want {
					t.Errorf("slide at %d moved to %d, want %d", s.SlideNumber, got, want)
				}
			}
			if err := ordering.Validate(next); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestInsertAt_OutOfRange(t *testing.T) {
	slides := newSlides(3)

	for _, pos := range []int{0, -1, 5} {
		_, _, err := ordering.InsertAt(slides, pos, deck.Slide{ID: uuid.New()})
		if !errors.Is(err, deck.ErrOrderingConflict) {
			t.Errorf("InsertAt(%d) error = %v, want ErrOrderingConflict", pos, err)
		}
	}

	for i, s := range slides {
		if s.SlideNumber != i+1 {
			t.Errorf("input mutated: slide %d has number %d", i, s.SlideNumber)
		}
	}
}

func TestRemove(t *testing.T) {
	slides := newSlides(5)
	target := slides[1]

	next, removed, err := ordering.Remove(slides, target.ID)
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if removed.ID != target.ID {
		t.Errorf("removed.ID = %s, want %s", removed.ID, target.ID)
	}
	if len(next) != 4 {
		t.Fatalf("len = %d, want 4", len(next))
	}
	if numberOf(next, slides[0].ID) != 1 {
		t.Error("slide before the removed one should keep its number")
	}
	for _, s := range slides[2:] {
		if got := numberOf(next, s.ID); got != s.SlideNumber-1 {
			t.Errorf("slide %d now at %d, want %d", s.SlideNumber, got, s.SlideNumber-1)
		}
	}
}

func TestRemove_NotFound(t *testing.T) {
	_, _, err := ordering.Remove(newSlides(2), uuid.New())
	if !errors.Is(err, deck.ErrNotFound) {
		t.Errorf("Remove() error = %v, want ErrNotFound", err)
	}
}

func TestMove_LaterToEarlier(t *testing.T) {
	slides := newSlides(5)

	next, err := ordering.Move(slides, slides[4].ID, 2)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}

	want := map[uuid.UUID]int{
		slides[0].ID: 1,
		slides[4].ID: 2,
		slides[1].ID: 3,
		slides[2].ID: 4,
		slides[3].ID: 5,
	}
	for id, n := range want {
		if got := numberOf(next, id); got != n {
			t.Errorf("slide %s at %d, want %d", id, got, n)
		}
	}
}

func TestMove_EarlierToLater(t *testing.T) {
	slides := newSlides(5)

	next, err := ordering.Move(slides, slides[1].ID, 4)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}

	want := []uuid.UUID{slides[0].ID, slides[2].ID, slides[3].ID, slides[1].ID, slides[4].ID}
	got := ordering.IDs(next)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d = %s, want %s", i+1, got[i], want[i])
		}
	}
}

func TestMove_SamePositionIsNoop(t *testing.T) {
	slides := newSlides(3)

	next, err := ordering.Move(slides, slides[1].ID, 2)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if shifted := ordering.Shifted(slides, next); len(shifted) != 0 {
		t.Errorf("Shifted() = %v, want none", shifted)
	}
}

func TestMove_OutOfRange(t *testing.T) {
	slides := newSlides(3)

	for _, pos := range []int{0, 4} {
		if _, err := ordering.Move(slides, slides[0].ID, pos); !errors.Is(err, deck.ErrOrderingConflict) {
			t.Errorf("Move(%d) error = %v, want ErrOrderingConflict", pos, err)
		}
	}
}

func TestMove_RoundTripRestoresOrder(t *testing.T) {
	slides := newSlides(6)
	original := ordering.IDs(slides)

	for _, tc := range []struct{ from, to int }{{1, 6}, {6, 1}, {3, 4}, {4, 2}} {
		id := original[tc.from-1]

		moved, err := ordering.Move(slides, id, tc.to)
		if err != nil {
			t.Fatalf("Move(%d→%d) error = %v", tc.from, tc.to, err)
		}
		restored, err := ordering.Move(moved, id, tc.from)
		if err != nil {
			t.Fatalf("Move(%d→%d) error = %v", tc.to, tc.from, err)
		}

		got := ordering.IDs(restored)
		for i := range original {
			if got[i] != original[i] {
				t.Fatalf("round trip %d→%d: position %d = %s, want %s", tc.from, tc.to, i+1, got[i], original[i])
			}
		}
	}
}

func TestDuplicate(t *testing.T) {
	slides := newSlides(4)
	source := slides[1]
	newID := uuid.New()

	next, dup, err := ordering.Duplicate(slides, source.ID, newID)
	if err != nil {
		t.Fatalf("Duplicate() error = %v", err)
	}

	if len(next) != 5 {
		t.Fatalf("len = %d, want 5", len(next))
	}
	if dup.ID != newID {
		t.Errorf("dup.ID = %s, want %s", dup.ID, newID)
	}
	if dup.SlideNumber != source.SlideNumber+1 {
		t.Errorf("dup.SlideNumber = %d, want %d", dup.SlideNumber, source.SlideNumber+1)
	}
	if dup.Elements[0].Content["text"] != "body" {
		t.Error("duplicate should carry source element content")
	}
	for _, s := range slides[2:] {
		if got := numberOf(next, s.ID); got != s.SlideNumber+1 {
			t.Errorf("slide %d now at %d, want %d", s.SlideNumber, got, s.SlideNumber+1)
		}
	}

	dup.Elements[0].Content["text"] = "changed"
	if source.Elements[0].Content["text"] != "body" {
		t.Error("mutating the duplicate changed the source")
	}
}

func TestDuplicate_Last(t *testing.T) {
	slides := newSlides(3)

	next, dup, err := ordering.Duplicate(slides, slides[2].ID, uuid.New())
	if err != nil {
		t.Fatalf("Duplicate() error = %v", err)
	}
	if dup.SlideNumber != 4 {
		t.Errorf("dup.SlideNumber = %d, want 4", dup.SlideNumber)
	}
	if err := ordering.Validate(next); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		numbers []int
		wantErr bool
	}{
		{"empty", nil, false},
		{"contiguous", []int{1, 2, 3}, false},
		{"unordered contiguous", []int{3, 1, 2}, false},
		{"gap", []int{1, 3}, true},
		{"duplicate", []int{1, 1}, true},
		{"zero", []int{0, 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slides := make([]deck.Slide, len(tt.numbers))
			for i, n := range tt.numbers {
				slides[i] = deck.Slide{ID: uuid.New(), SlideNumber: n}
			}
			err := ordering.Validate(slides)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRandomSequencesPreserveContiguity(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	slides := newSlides(3)

	for step := 0; step < 500; step++ {
		n := len(slides)
		var err error

		switch op := rng.IntN(4); {
		case op == 0 || n == 0:
			slides, _, err = ordering.InsertAt(slides, rng.IntN(n+1)+1, deck.Slide{ID: uuid.New()})
		case op == 1:
			slides, _, err = ordering.Remove(slides, slides[rng.IntN(n)].ID)
		case op == 2:
			slides, err = ordering.Move(slides, slides[rng.IntN(n)].ID, rng.IntN(n)+1)
		default:
			slides, _, err = ordering.Duplicate(slides, slides[rng.IntN(n)].ID, uuid.New())
		}

		if err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		if err := ordering.Validate(slides); err != nil {
			t.Fatalf("step %d: numbering broken: %v", step, err)
		}
	}
}
