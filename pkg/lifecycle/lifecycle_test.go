package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/slide-lab/pkg/lifecycle"
)

func TestCoordinator_Startup(t *testing.T) {
	lc := lifecycle.New()
	release := make(chan struct{})

	lc.OnStartup(func() { <-release })

	if lc.Ready() {
		t.Fatal("ready before startup hooks finished")
	}

	close(release)
	lc.WaitForStartup()

	if !lc.Ready() {
		t.Error("not ready after WaitForStartup")
	}
}

func TestCoordinator_Shutdown(t *testing.T) {
	lc := lifecycle.New()
	var closed atomic.Int32

	for range 3 {
		lc.OnShutdown(func() {
			<-lc.Context().Done()
			closed.Add(1)
		})
	}

	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if closed.Load() != 3 {
		t.Errorf("hooks run = %d, want 3", closed.Load())
	}
	if lc.Context().Err() == nil {
		t.Error("root context not cancelled")
	}
}

func TestCoordinator_ShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()
	block := make(chan struct{})
	defer close(block)

	lc.OnShutdown(func() { <-block })

	if err := lc.Shutdown(20 * time.Millisecond); err == nil {
		t.Error("Shutdown returned nil while a hook was blocked")
	}
}
