package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/JaimeStill/slide-lab/internal/api"
	"github.com/JaimeStill/slide-lab/internal/config"
	"github.com/JaimeStill/slide-lab/internal/gateway"
	"github.com/JaimeStill/slide-lab/internal/infrastructure"
	"github.com/JaimeStill/slide-lab/internal/locks"
	"github.com/JaimeStill/slide-lab/pkg/lifecycle"
	"github.com/JaimeStill/slide-lab/pkg/logging"
	"github.com/JaimeStill/slide-lab/pkg/module"
)

type canned string

func (c canned) Generate(ctx context.Context, prompt, systemPrompt, sessionID string) (string, error) {
	return string(c), nil
}

const deckText = `{"title": "Orbits", "slides": [
	{"title": "Orbits", "content": "How things stay up"},
	{"title": "Kepler", "content": ["Ellipses", "Equal areas", "Periods"]},
	{"title": "Questions", "content": "Thanks"}
]}`

func newRouter(t *testing.T) *module.Router {
	t.Helper()

	var cfg config.Config
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	logger := logging.Discard()
	infra := &infrastructure.Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Gateway:   gateway.NewMemory(logger, cfg.API.Pagination),
		Locks:     locks.NewMemory(),
		Generator: canned(deckText),
	}

	m, err := api.NewModule(&cfg, infra)
	if err != nil {
		t.Fatalf("NewModule failed: %v", err)
	}

	router := module.NewRouter()
	router.Mount(m)
	return router
}

func send(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	r.Header.Set("X-User-ID", "alice")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestModule_OpenAPI(t *testing.T) {
	router := newRouter(t)

	w := send(t, router, "GET", "/api/openapi.json", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var doc struct {
		Paths      map[string]any `json:"paths"`
		Components struct {
			Schemas map[string]any `json:"schemas"`
		} `json:"components"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode spec: %v", err)
	}

	for _, path := range []string{
		"/api/presentations",
		"/api/presentations/{id}/slides",
		"/api/presentations/{id}/chat",
		"/api/slides/{id}/move",
		"/api/assistant/improve",
		"/api/presentations/{id}/share",
		"/api/presentations/{id}/preview",
		"/api/templates",
		"/api/templates/categories",
		"/api/templates/apply",
	} {
		if _, ok := doc.Paths[path]; !ok {
			t.Errorf("spec missing path %s", path)
		}
	}
	for _, schema := range []string{"Presentation", "Slide", "ChatExchange", "Template", "ShareLink"} {
		if _, ok := doc.Components.Schemas[schema]; !ok {
			t.Errorf("spec missing schema %s", schema)
		}
	}
}

func TestModule_GenerateThenEdit(t *testing.T) {
	router := newRouter(t)

	w := send(t, router, "POST", "/api/presentations/generate", `{"topic":"Orbital mechanics","slide_count":3}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("generate status = %d body %s", w.Code, w.Body)
	}

	var p struct {
		ID     string `json:"id"`
		Slides []struct {
			ID          string `json:"id"`
			SlideNumber int    `json:"slide_number"`
			Title       string `json:"title"`
		} `json:"slides"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode presentation: %v", err)
	}
	if len(p.Slides) != 3 {
		t.Fatalf("slides = %d, want 3", len(p.Slides))
	}

	last := p.Slides[2].ID
	w = send(t, router, "POST", "/api/slides/"+last+"/move", `{"position":1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("move status = %d body %s", w.Code, w.Body)
	}

	w = send(t, router, "GET", "/api/presentations/"+p.ID+"/slides", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}

	var listed []struct {
		ID          string `json:"id"`
		SlideNumber int    `json:"slide_number"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode slides: %v", err)
	}
	if len(listed) != 3 || listed[0].ID != last {
		t.Fatalf("order after move = %+v", listed)
	}
	for i, s := range listed {
		if s.SlideNumber != i+1 {
			t.Errorf("slide %d numbered %d", i, s.SlideNumber)
		}
	}
}

func TestModule_TemplateThenShare(t *testing.T) {
	router := newRouter(t)

	w := send(t, router, "POST", "/api/presentations/generate", `{"topic":"Orbital mechanics","slide_count":3}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("generate status = %d body %s", w.Code, w.Body)
	}
	var p struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode presentation: %v", err)
	}

	w = send(t, router, "POST", "/api/templates/apply", `{"presentation_id":"`+p.ID+`","template_id":"template-educational"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("apply status = %d body %s", w.Code, w.Body)
	}

	w = send(t, router, "POST", "/api/presentations/"+p.ID+"/share", "")
	if w.Code != http.StatusOK {
		t.Fatalf("share status = %d body %s", w.Code, w.Body)
	}
	var link struct {
		ShareLink string `json:"share_link"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &link); err != nil {
		t.Fatalf("decode link: %v", err)
	}
	u, err := url.Parse(link.ShareLink)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}

	w = send(t, router, "GET", u.Path+"?"+u.RawQuery, "")
	if w.Code != http.StatusOK {
		t.Fatalf("preview status = %d body %s", w.Code, w.Body)
	}
	var preview struct {
		TemplateID string `json:"template_id"`
		IsPublic   bool   `json:"is_public"`
		Slides     []struct {
			Background struct {
				Color string `json:"color"`
			} `json:"background"`
		} `json:"slides"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &preview); err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	if preview.TemplateID != "template-educational" || !preview.IsPublic {
		t.Errorf("preview template %q public %v", preview.TemplateID, preview.IsPublic)
	}
	for i, s := range preview.Slides {
		if s.Background.Color != "#F8FAFC" {
			t.Errorf("slide %d background = %s", i+1, s.Background.Color)
		}
	}
}

func TestModule_TrailingSlash(t *testing.T) {
	router := newRouter(t)

	if w := send(t, router, "GET", "/api/presentations/", ""); w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}
