package debug

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestProbeAttrs_SkipsIncomplete(t *testing.T) {
	attrs := probeAttrs([]Probe{
		{Name: "filter_calls", Value: func() uint64 { return 7 }},
		{Name: "", Value: func() uint64 { return 1 }},
		{Name: "nil_value"},
	})
	if len(attrs) != 1 {
		t.Fatalf("expected 1 attr, got %d", len(attrs))
	}
	a, ok := attrs[0].(slog.Attr)
	if !ok || a.Key != "filter_calls" || a.Value.Uint64() != 7 {
		t.Fatalf("unexpected attr %#v", attrs[0])
	}
}

func TestStartRuntimeLogger_LogsProbesUntilCancelled(t *testing.T) {
	var out syncBuffer
	logger := slog.New(slog.NewJSONHandler(&out, nil))
	ctx, cancel := context.WithCancel(context.Background())
	done := StartRuntimeLogger(ctx, 5*time.Millisecond, logger, Probe{Name: "ui_ticks", Value: func() uint64 { return 42 }})

	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), `"ui_ticks":42`) {
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("probe never logged; output=%q", out.String())
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("logger did not stop after cancel")
	}
}
