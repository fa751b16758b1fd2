package slides_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/slide-lab/internal/deck"
	"github.com/JaimeStill/slide-lab/internal/gateway"
	"github.com/JaimeStill/slide-lab/internal/locks"
	"github.com/JaimeStill/slide-lab/internal/ordering"
	"github.com/JaimeStill/slide-lab/internal/slides"
	"github.com/JaimeStill/slide-lab/internal/suggestions"
	"github.com/JaimeStill/slide-lab/pkg/logging"
	"github.com/JaimeStill/slide-lab/pkg/pagination"
)

const owner = "alice"

type fixture struct {
	gw  gateway.Gateway
	sys slides.System
	p   deck.Presentation
	ids []uuid.UUID
}

func setup(t *testing.T, n int) *fixture {
	t.Helper()

	gw := gateway.NewMemory(logging.Discard(), pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
	sys := slides.New(gw, locks.NewMemory(), logging.Discard())

	now := time.Now().UTC()
	p := deck.Presentation{ID: uuid.New(), OwnerID: owner, Title: "Deck", CreatedAt: now, UpdatedAt: now}
	if err := gw.Create(context.Background(), p, nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	f := &fixture{gw: gw, sys: sys, p: p}
	for i := range n {
		s, err := sys.Create(context.Background(), owner, p.ID, slides.CreateCommand{Title: titleFor(i), Layout: "content"})
		if err != nil {
			t.Fatalf("Create slide %d failed: %v", i, err)
		}
		f.ids = append(f.ids, s.ID)
	}
	return f
}

func titleFor(i int) string {
	return string(rune('A' + i))
}

func (f *fixture) order(t *testing.T) []uuid.UUID {
	t.Helper()
	current, err := f.gw.FindSlides(context.Background(), f.p.ID)
	if err != nil {
		t.Fatalf("FindSlides failed: %v", err)
	}
	if err := ordering.Validate(current); err != nil {
		t.Fatalf("ordering numbering broken: %v", err)
	}
	return ordering.IDs(current)
}

func assertOrder(t *testing.T, got, want []uuid.UUID) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d slides, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %s, want %s", i+1, got[i], want[i])
		}
	}
}

func TestCreate_Defaults(t *testing.T) {
	f := setup(t, 0)

	s, err := f.sys.Create(context.Background(), owner, f.p.ID, slides.CreateCommand{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if s.Title != deck.DefaultTitle || s.Layout != deck.LayoutBlank || s.SlideNumber != 1 {
		t.Errorf("slide = %q %s #%d", s.Title, s.Layout, s.SlideNumber)
	}
	if len(s.Elements) != 0 {
		t.Errorf("blank slide has %d elements", len(s.Elements))
	}
	if !reflect.DeepEqual(s.Background, deck.DefaultBackground()) {
		t.Errorf("background = %+v", s.Background)
	}
}

func TestCreate_InsertAtShifts(t *testing.T) {
	f := setup(t, 3)

	pos := 2
	s, err := f.sys.Create(context.Background(), owner, f.p.ID, slides.CreateCommand{Position: &pos, Title: "New", Layout: "content"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if s.SlideNumber != 2 || len(s.Elements) != 1 {
		t.Errorf("slide #%d with %d elements", s.SlideNumber, len(s.Elements))
	}

	assertOrder(t, f.order(t), []uuid.UUID{f.ids[0], s.ID, f.ids[1], f.ids[2]})
}

func TestCreate_Rejections(t *testing.T) {
	f := setup(t, 2)
	ctx := context.Background()

	zero, four := 0, 4
	tests := []struct {
		name   string
		caller string
		cmd    slides.CreateCommand
		want   error
	}{
		{"position zero", owner, slides.CreateCommand{Position: &zero}, deck.ErrOrderingConflict},
		{"position past end", owner, slides.CreateCommand{Position: &four}, deck.ErrOrderingConflict},
		{"unknown layout", owner, slides.CreateCommand{Layout: "mosaic"}, deck.ErrSchemaValidation},
		{"other owner", "mallory", slides.CreateCommand{}, deck.ErrOwnership},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.sys.Create(ctx, tt.caller, f.p.ID, tt.cmd); !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			assertOrder(t, f.order(t), f.ids)
		})
	}

	if _, err := f.sys.Create(ctx, owner, uuid.New(), slides.CreateCommand{}); !errors.Is(err, deck.ErrNotFound) {
		t.Errorf("unknown presentation error = %v, want not found", err)
	}
}

func TestMove_FiveToTwo(t *testing.T) {
	f := setup(t, 5)

	if _, err := f.sys.Move(context.Background(), owner, f.ids[4], 2); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	assertOrder(t, f.order(t), []uuid.UUID{f.ids[0], f.ids[4], f.ids[1], f.ids[2], f.ids[3]})
}

func TestMove_OutOfRangeLeavesOrder(t *testing.T) {
	f := setup(t, 3)

	if _, err := f.sys.Move(context.Background(), owner, f.ids[0], 4); !errors.Is(err, deck.ErrOrderingConflict) {
		t.Fatalf("error = %v, want ordering conflict", err)
	}
	assertOrder(t, f.order(t), f.ids)
}

func TestDelete_Renumbers(t *testing.T) {
	f := setup(t, 4)

	if err := f.sys.Delete(context.Background(), owner, f.ids[1]); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	assertOrder(t, f.order(t), []uuid.UUID{f.ids[0], f.ids[2], f.ids[3]})

	if err := f.sys.Delete(context.Background(), owner, f.ids[1]); !errors.Is(err, deck.ErrNotFound) {
		t.Errorf("second delete error = %v, want not found", err)
	}

	p, _ := f.gw.Find(context.Background(), f.p.ID)
	assertOrder(t, p.SlideIDs, []uuid.UUID{f.ids[0], f.ids[2], f.ids[3]})
}

func TestDuplicate(t *testing.T) {
	f := setup(t, 3)

	dup, err := f.sys.Duplicate(context.Background(), owner, f.ids[1])
	if err != nil {
		t.Fatalf("Duplicate failed: %v", err)
	}
	if dup.SlideNumber != 3 || dup.ID == f.ids[1] {
		t.Errorf("duplicate #%d id %s", dup.SlideNumber, dup.ID)
	}

	src, _ := f.gw.FindSlide(context.Background(), f.ids[1])
	if dup.Title != src.Title || len(dup.Elements) != len(src.Elements) {
		t.Errorf("duplicate content differs from source")
	}
	if dup.Elements[0].Content["text"] != src.Elements[0].Content["text"] {
		t.Errorf("duplicate element content = %v", dup.Elements[0].Content)
	}

	assertOrder(t, f.order(t), []uuid.UUID{f.ids[0], f.ids[1], dup.ID, f.ids[2]})
}

func TestUpdate(t *testing.T) {
	f := setup(t, 2)
	ctx := context.Background()

	title := "Renamed"
	notes := "talk slowly"
	got, err := f.sys.Update(ctx, owner, f.ids[1], slides.UpdateCommand{
		Title: &title,
		Notes: &notes,
		Elements: []deck.Element{
			{Type: deck.ElementShape, Position: deck.Position{Width: 50, Height: 50}, Visible: true},
		},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if got.Title != title || got.Notes != notes || got.SlideNumber != 2 {
		t.Errorf("updated slide = %+v", got)
	}
	if len(got.Elements) != 1 || got.Elements[0].ID == "" {
		t.Errorf("elements = %+v, want one with a generated id", got.Elements)
	}

	long := make([]byte, deck.MaxNotesLength+1)
	for i := range long {
		long[i] = 'n'
	}
	tooLong := string(long)
	if _, err := f.sys.Update(ctx, owner, f.ids[1], slides.UpdateCommand{Notes: &tooLong}); !errors.Is(err, deck.ErrSchemaValidation) {
		t.Errorf("long notes error = %v, want schema validation", err)
	}

	stored, _ := f.gw.FindSlide(ctx, f.ids[1])
	if stored.Notes != notes {
		t.Error("failed update changed the stored slide")
	}
}

func TestUpdate_NewElementsStackOnTop(t *testing.T) {
	f := setup(t, 1)
	ctx := context.Background()

	before, err := f.gw.FindSlide(ctx, f.ids[0])
	if err != nil {
		t.Fatalf("FindSlide failed: %v", err)
	}
	title := before.Elements[0]

	got, err := f.sys.Update(ctx, owner, f.ids[0], slides.UpdateCommand{
		Elements: []deck.Element{
			title,
			{Type: deck.ElementShape, Position: deck.Position{Width: 20, Height: 20}, Visible: true},
		},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if got.Elements[0].ID != title.ID || got.Elements[0].Position.ZIndex != title.Position.ZIndex {
		t.Errorf("existing element changed: %+v", got.Elements[0])
	}
	if want := title.Position.ZIndex + 1; got.Elements[1].Position.ZIndex != want {
		t.Errorf("new element z_index = %d, want %d", got.Elements[1].Position.ZIndex, want)
	}
}

func TestApplySuggestion(t *testing.T) {
	f := setup(t, 1)
	ctx := context.Background()

	before, _ := f.gw.FindSlide(ctx, f.ids[0])
	elementID := before.Elements[0].ID

	x := 5.0
	got, err := f.sys.ApplySuggestion(ctx, owner, f.ids[0], suggestions.Suggestion{
		Kind: suggestions.KindLayout,
		LayoutUpdates: []suggestions.LayoutPatch{
			{ElementID: elementID, Position: suggestions.PositionPatch{X: &x}},
		},
	})
	if err != nil {
		t.Fatalf("ApplySuggestion failed: %v", err)
	}

	want := before.Elements[0].Position
	want.X = 5
	if got.Elements[0].Position != want {
		t.Errorf("position = %+v, want %+v", got.Elements[0].Position, want)
	}

	if _, err := f.sys.ApplySuggestion(ctx, owner, f.ids[0], suggestions.Suggestion{Kind: "theme"}); !errors.Is(err, deck.ErrSchemaValidation) {
		t.Errorf("unknown kind error = %v, want schema validation", err)
	}
	if _, err := f.sys.ApplySuggestion(ctx, "mallory", f.ids[0], suggestions.Suggestion{Kind: suggestions.KindStyle}); !errors.Is(err, deck.ErrOwnership) {
		t.Errorf("other owner error = %v, want ownership", err)
	}
}

func TestFind_PublicReadable(t *testing.T) {
	f := setup(t, 1)
	ctx := context.Background()

	if _, err := f.sys.Find(ctx, "bob", f.ids[0]); !errors.Is(err, deck.ErrOwnership) {
		t.Fatalf("private read error = %v, want ownership", err)
	}

	p := f.p
	p.IsPublic = true
	if err := f.gw.PutPresentation(ctx, p); err != nil {
		t.Fatalf("PutPresentation failed: %v", err)
	}

	if _, err := f.sys.Find(ctx, "bob", f.ids[0]); err != nil {
		t.Errorf("public read failed: %v", err)
	}
	if _, err := f.sys.List(ctx, "bob", f.p.ID); err != nil {
		t.Errorf("public list failed: %v", err)
	}
}

func TestConcurrentOperationsKeepOrdering(t *testing.T) {
	f := setup(t, 6)
	ctx := context.Background()

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(seed, seed+1))

			for range 40 {
				current, err := f.gw.FindSlides(ctx, f.p.ID)
				if err != nil || len(current) == 0 {
					pos := 1
					f.sys.Create(ctx, owner, f.p.ID, slides.CreateCommand{Position: &pos})
					continue
				}
				target := current[rng.IntN(len(current))]

				switch rng.IntN(4) {
				case 0:
					pos := rng.IntN(len(current)+1) + 1
					f.sys.Create(ctx, owner, f.p.ID, slides.CreateCommand{Position: &pos})
				case 1:
					f.sys.Delete(ctx, owner, target.ID)
				case 2:
					f.sys.Move(ctx, owner, target.ID, rng.IntN(len(current))+1)
				case 3:
					f.sys.Duplicate(ctx, owner, target.ID)
				}
			}
		}(uint64(w + 1))
	}
	wg.Wait()

	ids := f.order(t)
	p, _ := f.gw.Find(ctx, f.p.ID)
	assertOrder(t, p.SlideIDs, ids)
}
