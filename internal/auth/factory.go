package auth

import "sync"

// StrategyFactory is an ordered strategy registry. Lookups walk the list in
// insertion order and return the first strategy claiming the token type.
// Mutation is expected at startup, but the registry is synchronized so
// runtime Add/Remove cannot race concurrent dispatch.
type StrategyFactory struct {
	mu         sync.RWMutex
	strategies []Strategy
}

// NewStrategyFactory builds a registry with the given strategies, in order.
func NewStrategyFactory(strategies ...Strategy) *StrategyFactory {
	return &StrategyFactory{strategies: strategies}
}

// Strategy returns the first registered strategy handling the token type,
// or nil when none matches. It never panics on unknown input.
func (f *StrategyFactory) Strategy(tokenType TokenType) Strategy {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, s := range f.strategies {
		if s.CanHandle(tokenType) {
			return s
		}
	}
	return nil
}

// All returns the registered strategies in order. The slice is a copy; the
// strategy values keep their identity across calls.
func (f *StrategyFactory) All() []Strategy {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]Strategy(nil), f.strategies...)
}

// Add appends a strategy to the registry.
func (f *StrategyFactory) Add(s Strategy) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.strategies = append(f.strategies, s)
}

// Remove deletes every strategy whose method matches, including duplicates.
func (f *StrategyFactory) Remove(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.strategies[:0]
	for _, s := range f.strategies {
		if s.Method() != method {
			kept = append(kept, s)
		}
	}
	f.strategies = kept
}
