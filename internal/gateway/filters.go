package gateway

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/JaimeStill/slide-lab/internal/deck"
	"github.com/JaimeStill/slide-lab/pkg/query"
)

// Filters contains optional filtering criteria for presentation queries.
type Filters struct {
	Title    *string
	IsPublic *bool
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if t := values.Get("title"); t != "" {
		f.Title = &t
	}
	if p := values.Get("is_public"); p != "" {
		if b, err := strconv.ParseBool(p); err == nil {
			f.IsPublic = &b
		}
	}
	return f
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereContains("Title", f.Title)
	if f.IsPublic != nil {
		b.WhereEquals("IsPublic", *f.IsPublic)
	}
	return b
}

func (f Filters) matches(p deck.Presentation) bool {
	if f.Title != nil && *f.Title != "" && !containsFold(p.Title, *f.Title) {
		return false
	}
	if f.IsPublic != nil && p.IsPublic != *f.IsPublic {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
