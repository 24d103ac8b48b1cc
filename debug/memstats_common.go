package debug

import (
	"log/slog"
	"runtime"
)

// logMem writes one memstats line. rss is zero where the platform query is
// unavailable.
func logMem(logger *slog.Logger, rss uint64) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	logger.Info("memstats",
		slog.Int("goroutines", runtime.NumGoroutine()),
		slog.Uint64("heap_alloc", ms.HeapAlloc),
		slog.Uint64("heap_inuse", ms.HeapInuse),
		slog.Uint64("heap_idle", ms.HeapIdle),
		slog.Uint64("heap_sys", ms.HeapSys),
		slog.Uint64("next_gc", ms.NextGC),
		slog.Uint64("rss", rss),
		slog.Uint64("num_gc", uint64(ms.NumGC)),
	)
}
