package genai

import (
	"context"
	"sync"
	"time"
)

type inflightRequest struct {
	seq    uint64
	cancel context.CancelFunc
}

// Session serializes suggestion requests per field: typing in a field fires a
// new request, and the newest one supersedes any still in flight for that same
// field. Results for superseded requests are discarded.
type Session struct {
	ranker  *Ranker
	latency time.Duration

	mu       sync.Mutex
	seq      uint64
	inflight map[string]inflightRequest
}

// NewSession creates a Session. latency simulates the round trip of a real
// inference call so cancellation behaviour matches production pacing.
func NewSession(ranker *Ranker, latency time.Duration) *Session {
	return &Session{
		ranker:   ranker,
		latency:  latency,
		inflight: map[string]inflightRequest{},
	}
}

// Suggest computes the variant set for field after the configured latency.
// It blocks until the result is ready or the request is superseded or the
// caller's context is cancelled, in which case it returns ctx.Err().
func (s *Session) Suggest(ctx context.Context, field, value string) ([]Suggestion, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	s.seq++
	seq := s.seq
	if prev, ok := s.inflight[field]; ok {
		prev.cancel()
	}
	s.inflight[field] = inflightRequest{seq: seq, cancel: cancel}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if current, ok := s.inflight[field]; ok && current.seq == seq {
			delete(s.inflight, field)
		}
		s.mu.Unlock()
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(s.latency):
	}

	return s.ranker.Suggest(field, value), nil
}

// Cancel aborts any in-flight request for field.
func (s *Session) Cancel(field string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if req, ok := s.inflight[field]; ok {
		req.cancel()
		delete(s.inflight, field)
	}
}
