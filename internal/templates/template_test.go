package templates_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/JaimeStill/slide-lab/internal/deck"
	"github.com/JaimeStill/slide-lab/internal/templates"
)

func load(t *testing.T) *templates.Catalog {
	t.Helper()
	c, err := templates.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return c
}

func TestLoad_BuiltInCatalog(t *testing.T) {
	c := load(t)

	all := c.List("")
	if len(all) != 8 {
		t.Fatalf("got %d templates, want 8", len(all))
	}
	if all[0].ID != "template-modern-business" {
		t.Errorf("first template = %s", all[0].ID)
	}

	want := []string{"Business", "Creative", "Education", "Minimal", "Premium"}
	if got := c.Categories(); !slices.Equal(got, want) {
		t.Errorf("categories = %v, want %v", got, want)
	}
}

func TestCatalog_ListByCategory(t *testing.T) {
	c := load(t)

	tests := []struct {
		category string
		want     int
	}{
		{"Business", 3},
		{"Creative", 2},
		{"Premium", 1},
		{"Unknown", 0},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got := c.List(tt.category)
			if len(got) != tt.want {
				t.Fatalf("got %d templates, want %d", len(got), tt.want)
			}
			for _, tmpl := range got {
				if tmpl.Category != tt.category {
					t.Errorf("template %s has category %s", tmpl.ID, tmpl.Category)
				}
			}
		})
	}
}

func TestCatalog_Find(t *testing.T) {
	c := load(t)

	tmpl, err := c.Find("template-dark-elegance")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if tmpl.ColorScheme.Background != "#1F2937" || tmpl.FontFamily != "Cormorant Garamond" {
		t.Errorf("template = %+v", tmpl)
	}
	if len(tmpl.SlideLayouts) == 0 {
		t.Error("slide layouts not decoded")
	}

	tmpl.SlideLayouts[0].Layout = "changed"
	again, _ := c.Find("template-dark-elegance")
	if again.SlideLayouts[0].Layout == "changed" {
		t.Error("mutating a found template changed the catalog")
	}

	if _, err := c.Find("template-missing"); !errors.Is(err, deck.ErrNotFound) {
		t.Errorf("Find(missing) error = %v, want not found", err)
	}
}

func TestParse_Rejects(t *testing.T) {
	valid := `
[[templates]]
id = "a"
name = "A"
category = "Business"
font_family = "Inter"
color_scheme = { primary = "#000000", secondary = "#111111", background = "#FFFFFF", text = "#222222" }
`
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `[[templates]` + "\n"},
		{"duplicate id", valid + valid},
		{"bad color", `
[[templates]]
id = "a"
name = "A"
font_family = "Inter"
color_scheme = { primary = "blue", secondary = "#111111", background = "#FFFFFF", text = "#222222" }
`},
		{"missing font", `
[[templates]]
id = "a"
name = "A"
color_scheme = { primary = "#000000", secondary = "#111111", background = "#FFFFFF", text = "#222222" }
`},
		{"missing id", `
[[templates]]
name = "A"
font_family = "Inter"
color_scheme = { primary = "#000000", secondary = "#111111", background = "#FFFFFF", text = "#222222" }
`},
	}

	if _, err := templates.Parse([]byte(valid)); err != nil {
		t.Fatalf("Parse(valid) failed: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := templates.Parse([]byte(tt.data)); err == nil {
				t.Error("Parse succeeded")
			}
		})
	}
}
