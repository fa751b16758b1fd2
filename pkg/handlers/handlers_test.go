package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/slide-lab/pkg/handlers"
	"github.com/JaimeStill/slide-lab/pkg/logging"
)

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()
	handlers.RespondError(w, logging.Discard(), http.StatusForbidden, errors.New("not yours"))

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d", w.Code)
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("content type = %q", w.Header().Get("Content-Type"))
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "not yours" {
		t.Errorf("body = %v", body)
	}
}

func TestDecodeJSON(t *testing.T) {
	type command struct {
		Title string `json:"title"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"title":"Orbits"}`, false},
		{"unknown field", `{"title":"Orbits","colour":"red"}`, true},
		{"malformed", `{"title":`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			cmd, err := handlers.DecodeJSON[command](r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cmd.Title != "Orbits" {
				t.Errorf("title = %q", cmd.Title)
			}
		})
	}
}

func TestCallerID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if handlers.CallerID(r) != "" {
		t.Error("caller without header should be empty")
	}

	r.Header.Set(handlers.UserHeader, "alice")
	if handlers.CallerID(r) != "alice" {
		t.Errorf("caller = %q", handlers.CallerID(r))
	}
}
