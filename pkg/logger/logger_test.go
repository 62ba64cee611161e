package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

// Declared first so it runs before anything calls Init in this binary.
func TestGetBeforeInitPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Get to panic before Init")
		}
	}()
	Get()
}

func TestConcurrentInitAndGet(t *testing.T) {
	var buf bytes.Buffer

	// Run under -race: Init publishes the instance once, every Get after a
	// returned Init must observe it without a data race.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Init(Options{Level: "debug", Output: &buf})
			Get()
		}()
	}
	wg.Wait()

	log := Get()
	log.Info().Msg("logger ready")
	if !strings.Contains(buf.String(), "logger ready") {
		t.Fatalf("expected log output, got %q", buf.String())
	}
}
