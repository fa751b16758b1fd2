package templates

import (
	_ "embed"
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/slide-lab/internal/deck"
)

//go:embed catalog.toml
var catalogData []byte

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ColorScheme is the palette a template restyles slides with.
type ColorScheme struct {
	Primary    string `toml:"primary" json:"primary"`
	Secondary  string `toml:"secondary" json:"secondary"`
	Background string `toml:"background" json:"background"`
	Text       string `toml:"text" json:"text"`
}

// FontPairing selects the heading and body typefaces for text elements.
type FontPairing struct {
	Heading string `toml:"heading" json:"heading"`
	Body    string `toml:"body" json:"body"`
}

// LayoutHint names a layout a template was designed around.
type LayoutHint struct {
	Type   string `toml:"type" json:"type"`
	Layout string `toml:"layout" json:"layout"`
}

// Template is a named visual theme from the catalog.
type Template struct {
	ID           string       `toml:"id" json:"id"`
	Name         string       `toml:"name" json:"name"`
	Category     string       `toml:"category" json:"category"`
	Description  string       `toml:"description" json:"description"`
	ThumbnailURL string       `toml:"thumbnail_url" json:"thumbnail_url"`
	ColorScheme  ColorScheme  `toml:"color_scheme" json:"color_scheme"`
	FontFamily   string       `toml:"font_family" json:"font_family"`
	SlideLayouts []LayoutHint `toml:"slide_layouts" json:"slide_layouts"`
}

// Fonts pairs the template's font family for both headings and body text.
func (t Template) Fonts() FontPairing {
	return FontPairing{Heading: t.FontFamily, Body: t.FontFamily}
}

func (t Template) validate() error {
	if t.ID == "" || t.Name == "" {
		return errors.New("template requires id and name")
	}
	colors := []string{t.ColorScheme.Primary, t.ColorScheme.Secondary, t.ColorScheme.Background, t.ColorScheme.Text}
	for _, c := range colors {
		if !hexColor.MatchString(c) {
			return fmt.Errorf("template %s: invalid color %q", t.ID, c)
		}
	}
	if t.FontFamily == "" {
		return fmt.Errorf("template %s: font_family required", t.ID)
	}
	return nil
}

// Catalog is a read-only set of templates in declaration order.
type Catalog struct {
	templates []Template
	index     map[string]int
}

// Load parses the built-in catalog.
func Load() (*Catalog, error) {
	return Parse(catalogData)
}

// Parse decodes a TOML catalog of [[templates]] tables.
func Parse(data []byte) (*Catalog, error) {
	var doc struct {
		Templates []Template `toml:"templates"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse template catalog: %w", err)
	}

	c := &Catalog{
		templates: doc.Templates,
		index:     make(map[string]int, len(doc.Templates)),
	}
	for i, t := range doc.Templates {
		if err := t.validate(); err != nil {
			return nil, err
		}
		if _, dup := c.index[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %s", t.ID)
		}
		c.index[t.ID] = i
	}
	return c, nil
}

// List returns every template, or only those in category when it is set.
func (c *Catalog) List(category string) []Template {
	out := make([]Template, 0, len(c.templates))
	for _, t := range c.templates {
		if category == "" || t.Category == category {
			out = append(out, t.clone())
		}
	}
	return out
}

// Categories returns the distinct template categories, sorted.
func (c *Catalog) Categories() []string {
	var out []string
	for _, t := range c.templates {
		if !slices.Contains(out, t.Category) {
			out = append(out, t.Category)
		}
	}
	slices.Sort(out)
	return out
}

func (c *Catalog) Find(id string) (Template, error) {
	i, ok := c.index[id]
	if !ok {
		return Template{}, fmt.Errorf("template %s: %w", id, deck.ErrNotFound)
	}
	return c.templates[i].clone(), nil
}

func (t Template) clone() Template {
	t.SlideLayouts = slices.Clone(t.SlideLayouts)
	return t
}
