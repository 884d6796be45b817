package usecase

import (
	"context"
	"sort"
	"sync"

	"TrendCast/internal/domain/models"
	domrepo "TrendCast/internal/domain/repository"
)

// LiveSeries keeps a bounded window of the most recent observations
// ingested at runtime. It doubles as a SeriesSource so reports can be
// built over the live window, and it notifies subscribers on every
// accepted point.
type LiveSeries struct {
	mu        sync.RWMutex
	points    models.Series
	maxPoints int
	subs      map[chan struct{}]struct{}
}

func NewLiveSeries(maxPoints int) *LiveSeries {
	if maxPoints <= 0 {
		maxPoints = 500
	}
	return &LiveSeries{
		maxPoints: maxPoints,
		subs:      make(map[chan struct{}]struct{}),
	}
}

// Seed preloads the window, typically from the configured source at
// startup, so the first live report is not built from a single point.
func (s *LiveSeries) Seed(series models.Series) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points = series.Tail(s.maxPoints)
}

// Ingest appends one observation, evicting the oldest when the window
// is full. Out-of-order dates are inserted in position.
func (s *LiveSeries) Ingest(_ context.Context, p models.Point) error {
	s.mu.Lock()
	s.points = append(s.points, p)
	if n := len(s.points); n > 1 && s.points[n-2].Date.After(p.Date) {
		sort.Slice(s.points, func(i, j int) bool { return s.points[i].Date.Before(s.points[j].Date) })
	}
	if len(s.points) > s.maxPoints {
		s.points = s.points[len(s.points)-s.maxPoints:]
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// Name implements SeriesSource.
func (s *LiveSeries) Name() string { return "live" }

// Load implements SeriesSource with a snapshot of the current window.
func (s *LiveSeries) Load(_ context.Context) (models.Series, error) {
	return s.Snapshot(), nil
}

// Snapshot copies the current window.
func (s *LiveSeries) Snapshot() models.Series {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(models.Series, len(s.points))
	copy(out, s.points)
	return out
}

// Len reports the number of buffered observations.
func (s *LiveSeries) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}

// Subscribe returns a channel that receives a signal after each
// accepted observation. Signals are dropped, not queued, when the
// subscriber lags.
func (s *LiveSeries) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

func (s *LiveSeries) Unsubscribe(ch chan struct{}) {
	s.mu.Lock()
	delete(s.subs, ch)
	s.mu.Unlock()
}

func (s *LiveSeries) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

var _ domrepo.SeriesSource = (*LiveSeries)(nil)
