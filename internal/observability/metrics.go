package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters. All methods tolerate a nil
// receiver so callers can run without metrics wired.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
	authCount    map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		authCount:    make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordAuthAttempt counts authentication attempts by method and outcome
// ("success", "failure", "token_missing").
func (m *Metrics) RecordAuthAttempt(method, outcome string) {
	if m == nil {
		return
	}
	key := method + "|" + outcome
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authCount[key]++
}

// Snapshot returns a point-in-time copy of all counters.
func (m *Metrics) Snapshot() map[string]map[string]int64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return map[string]map[string]int64{
		"requests":      copyCounts(m.requestCount),
		"errors":        copyCounts(m.errorCount),
		"auth_attempts": copyCounts(m.authCount),
	}
}

func copyCounts(src map[string]int64) map[string]int64 {
	dst := make(map[string]int64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
