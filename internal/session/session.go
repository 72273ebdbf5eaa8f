// Package session keeps each browser's form state and last forecast in
// memory and enforces one outstanding forecast request per browser.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/finopsmind/costmeter/internal/form"
	"github.com/finopsmind/costmeter/internal/model"
)

// Session is one browser's calculator state.
type Session struct {
	id string

	mu       sync.Mutex
	state    model.InputState
	result   *model.ForecastResult
	cancel   context.CancelFunc
	lastSeen time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{id: id, state: form.Defaults(), lastSeen: now}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns a copy of the current form state.
func (s *Session) State() model.InputState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetState replaces the form state.
func (s *Session) SetState(st model.InputState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
}

// Result returns the last successful forecast, or nil.
func (s *Session) Result() *model.ForecastResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// InFlight reports whether a forecast request is outstanding.
func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Begin records st as the submitted state and starts a forecast. It returns
// false if another forecast is still outstanding. The returned context is
// canceled when the session is torn down; pass it to Complete.
func (s *Session) Begin(parent context.Context, st model.InputState) (context.Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return nil, false
	}
	ctx, cancel := context.WithCancel(parent)
	s.state = st
	s.cancel = cancel
	return ctx, true
}

// Complete ends the outstanding forecast. A nil result leaves the previous
// result in place. A result arriving after ctx was canceled is discarded.
// It reports whether res was stored.
func (s *Session) Complete(ctx context.Context, res *model.ForecastResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	abandoned := ctx.Err() != nil
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if res == nil || abandoned {
		return false
	}
	s.result = res
	return true
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// close abandons any outstanding forecast.
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}
