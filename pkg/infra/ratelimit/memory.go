package ratelimit

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/NeuralTrust/ChapterGenie/pkg/domain"
)

// MemoryLimiter keeps request timestamps per client in process memory.
// A single mutex guards the whole map so check-and-record is atomic.
type MemoryLimiter struct {
	mu      sync.Mutex
	opts    Options
	clients map[string][]time.Time
}

func NewMemoryLimiter(opts Options) *MemoryLimiter {
	return &MemoryLimiter{
		opts:    opts.withDefaults(),
		clients: make(map[string][]time.Time),
	}
}

func (l *MemoryLimiter) Check(_ context.Context, clientID string, now time.Time) (*Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	history := l.prune(l.clients[clientID], now)

	if len(history) >= l.opts.MaxRequests {
		l.clients[clientID] = history
		return &Result{
			Allowed:    false,
			Count:      len(history),
			Limit:      l.opts.MaxRequests,
			RetryAfter: history[0].Add(l.opts.Window).Sub(now),
		}, domain.ErrRateLimitExceeded
	}

	history = insertSorted(history, now)
	l.clients[clientID] = history

	if len(l.clients) > l.opts.CleanupThreshold {
		l.compact(now)
	}

	return &Result{
		Allowed: true,
		Count:   len(history),
		Limit:   l.opts.MaxRequests,
	}, nil
}

// prune drops timestamps that are a full window or more in the past.
// history is ordered, so the first live entry ends the scan.
func (l *MemoryLimiter) prune(history []time.Time, now time.Time) []time.Time {
	i := 0
	for i < len(history) && now.Sub(history[i]) >= l.opts.Window {
		i++
	}
	if i == 0 {
		return history
	}
	return append(history[:0:0], history[i:]...)
}

// insertSorted keeps history ordered when callers sampled the clock before
// taking the lock and arrive out of order.
func insertSorted(history []time.Time, t time.Time) []time.Time {
	i := sort.Search(len(history), func(i int) bool { return history[i].After(t) })
	history = append(history, time.Time{})
	copy(history[i+1:], history[i:])
	history[i] = t
	return history
}

// compact removes clients left with no live timestamps. It only slows the
// growth of the map, a burst of distinct live clients still grows it.
func (l *MemoryLimiter) compact(now time.Time) {
	for id, history := range l.clients {
		history = l.prune(history, now)
		if len(history) == 0 {
			delete(l.clients, id)
			continue
		}
		l.clients[id] = history
	}
}

// Len reports how many clients are currently tracked.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *MemoryLimiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.clients = make(map[string][]time.Time)
}
