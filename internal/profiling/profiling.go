package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Lightweight per-tick CPU profiler. Totals accumulate until ResetFrame.

type entry struct {
	total time.Duration
	calls int
}

var (
	mu          sync.Mutex
	frameTotals = make(map[string]entry)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("world.ProcessOne")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		e := frameTotals[name]
		e.total += d
		e.calls++
		frameTotals[name] = e
		mu.Unlock()
	}
}

// ResetFrame clears current totals. Call at the start of each tick.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	mu.Unlock()
}

// Snapshot returns a copy of current totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v.total
	}
	return out
}

// SumWithPrefix returns the total time of every name starting with prefix.
func SumWithPrefix(prefix string) time.Duration {
	mu.Lock()
	defer mu.Unlock()
	var total time.Duration
	for k, v := range frameTotals {
		if strings.HasPrefix(k, prefix) {
			total += v.total
		}
	}
	return total
}

// Calls returns how many times name was tracked since the last reset.
func Calls(name string) int {
	mu.Lock()
	defer mu.Unlock()
	return frameTotals[name].calls
}

// TopN formats top N durations from the current totals.
// Example: "world.Generate:4.2ms(1), meshing.Polygonize:2.1ms(1)"
func TopN(n int) string {
	mu.Lock()
	type pair struct {
		name string
		e    entry
	}
	list := make([]pair, 0, len(frameTotals))
	for k, v := range frameTotals {
		list = append(list, pair{name: k, e: v})
	}
	mu.Unlock()

	sort.Slice(list, func(i, j int) bool { return list[i].e.total > list[j].e.total })
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		ms := float64(p.e.total.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms(%d)", p.name, ms, p.e.calls))
	}
	return strings.Join(parts, ", ")
}
