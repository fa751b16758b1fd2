package server_test

import (
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/slide-lab/internal/config"
	"github.com/JaimeStill/slide-lab/internal/server"
	"github.com/JaimeStill/slide-lab/pkg/lifecycle"
	"github.com/JaimeStill/slide-lab/pkg/logging"
)

func echo(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	w.Write(body)
}

func serverConfig(port int) *config.ServerConfig {
	return &config.ServerConfig{
		Host:              "127.0.0.1",
		Port:              port,
		ReadTimeout:       "5s",
		ReadHeaderTimeout: "5s",
		WriteTimeout:      "5s",
		ShutdownTimeout:   "5s",
		MaxBodySize:       "16B",
	}
}

func TestServer_LimitsBodyAndShutsDown(t *testing.T) {
	lc := lifecycle.New()
	srv := server.New(serverConfig(0), http.HandlerFunc(echo), logging.Discard())

	if err := srv.Start(lc); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	url := "http://" + srv.Addr()

	resp, err := http.Post(url, "text/plain", strings.NewReader("small"))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "small" {
		t.Errorf("small body: status %d body %q", resp.StatusCode, body)
	}

	resp, err = http.Post(url, "text/plain", strings.NewReader(strings.Repeat("x", 64)))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("large body status = %d, want 413", resp.StatusCode)
	}

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if _, err := http.Get(url); err == nil {
		t.Error("server still accepting after shutdown")
	}
}

func TestServer_StartReportsBindFailure(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	defer taken.Close()

	port := taken.Addr().(*net.TCPAddr).Port
	srv := server.New(serverConfig(port), http.HandlerFunc(echo), logging.Discard())

	if err := srv.Start(lifecycle.New()); err == nil {
		t.Error("Start succeeded on a port already in use")
	}
}
