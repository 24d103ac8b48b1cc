package debug

// Debug runtime logger. Started only when config.Debug is true.
// Emits goroutine count, stack usage and the booth's pipeline counters
// (filter calls, render iterations, preview pushes) at a fixed interval.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"
)

// Probe is a named counter sampled on every log line.
type Probe struct {
	Name  string
	Value func() uint64
}

// StartRuntimeLogger launches a ticker that logs goroutine count, stack memory
// and every probe until ctx is cancelled. The returned channel closes when the
// goroutine has exited.
func StartRuntimeLogger(ctx context.Context, interval time.Duration, logger *slog.Logger, probes ...Probe) <-chan struct{} {
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		t := time.NewTicker(interval)
		defer t.Stop()
		samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			metrics.Read(samples)
			var goroutines uint64
			if samples[0].Value.Kind() == metrics.KindUint64 {
				goroutines = samples[0].Value.Uint64()
			}
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			attrs := []any{
				slog.Uint64("goroutines", goroutines),
				slog.Uint64("stack_inuse", ms.StackInuse),
				slog.Uint64("heap_alloc", ms.HeapAlloc),
			}
			attrs = append(attrs, probeAttrs(probes)...)
			logger.Info("runtime", attrs...)
		}
	}()
	return done
}

func probeAttrs(probes []Probe) []any {
	out := make([]any, 0, len(probes))
	for _, p := range probes {
		if p.Name == "" || p.Value == nil {
			continue
		}
		out = append(out, slog.Uint64(p.Name, p.Value()))
	}
	return out
}
