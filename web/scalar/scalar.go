// Package scalar serves the interactive API reference rendered by Scalar
// from the API module's OpenAPI document.
package scalar

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/JaimeStill/slide-lab/pkg/module"
)

//go:embed index.html
var indexHTML string

var page = template.Must(template.New("scalar").Parse(indexHTML))

type pageData struct {
	Title   string
	SpecURL string
}

// NewModule mounts the reference at prefix. specURL is the absolute path of
// the OpenAPI document, typically "/api/openapi.json".
func NewModule(prefix, title, specURL string) (*module.Module, error) {
	var buf bytes.Buffer
	if err := page.Execute(&buf, pageData{Title: title, SpecURL: specURL}); err != nil {
		return nil, err
	}
	body := buf.Bytes()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	})

	return module.New(prefix, mux), nil
}
