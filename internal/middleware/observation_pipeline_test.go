package middleware

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"TrendCast/internal/domain/models"
)

type recordingSink struct {
	mu     sync.Mutex
	points []models.Point
	err    error
}

func (s *recordingSink) Ingest(_ context.Context, p models.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.points = append(s.points, p)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.points)
}

type noopMetrics struct{}

func (noopMetrics) RecordReportBuild(string)      {}
func (noopMetrics) RecordError(string)            {}
func (noopMetrics) RecordLastForecast(float64)    {}
func (noopMetrics) RecordLatency(string, float64) {}
func (noopMetrics) SetWSClients(int)              {}

func TestPipelineForwards(t *testing.T) {
	sink := &recordingSink{}
	p := NewObservationPipeline(sink, noopMetrics{}, WithMaxRPS(0))

	pt := models.Point{Date: time.Now(), Value: 1.5}
	if err := p.Process(context.Background(), pt); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if sink.count() != 1 {
		t.Fatalf("forwarded = %d, want 1", sink.count())
	}
}

func TestPipelineUnlimitedWhenMaxRPSZero(t *testing.T) {
	sink := &recordingSink{}
	p := NewObservationPipeline(sink, noopMetrics{}, WithMaxRPS(0))
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		pt := models.Point{Date: base.AddDate(0, 0, i), Value: float64(i)}
		if err := p.Process(ctx, pt); err != nil {
			t.Fatalf("Process #%d: %v", i, err)
		}
	}
	if sink.count() != 5 {
		t.Fatalf("forwarded = %d, want 5 (throttle must be off)", sink.count())
	}
}

func TestPipelineValidation(t *testing.T) {
	sink := &recordingSink{}
	p := NewObservationPipeline(sink, noopMetrics{}, WithMaxRPS(0))
	ctx := context.Background()

	if err := p.Process(ctx, models.Point{Value: 1}); err == nil {
		t.Error("expected error for zero date")
	}
	if err := p.Process(ctx, models.Point{Date: time.Now(), Value: math.NaN()}); err == nil {
		t.Error("expected error for NaN value")
	}
	if err := p.Process(ctx, models.Point{Date: time.Now(), Value: math.Inf(1)}); err == nil {
		t.Error("expected error for Inf value")
	}
	if sink.count() != 0 {
		t.Errorf("invalid points reached sink: %d", sink.count())
	}
}

func TestPipelineThrottle(t *testing.T) {
	sink := &recordingSink{}
	p := NewObservationPipeline(sink, noopMetrics{}, WithMaxRPS(1))
	ctx := context.Background()

	now := time.Now()
	for i := 0; i < 5; i++ {
		// throttled points are dropped without error
		if err := p.Process(ctx, models.Point{Date: now, Value: float64(i)}); err != nil {
			t.Fatalf("Process: %v", err)
		}
	}
	if sink.count() != 1 {
		t.Errorf("accepted = %d, want 1 within one interval", sink.count())
	}
}

func TestPipelineBuffersOnSinkError(t *testing.T) {
	sink := &recordingSink{err: errors.New("downstream down")}
	p := NewObservationPipeline(sink, noopMetrics{}, WithMaxRPS(0), WithBufferSize(4))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pt := models.Point{Date: time.Now(), Value: 7}
	if err := p.Process(ctx, pt); err == nil {
		t.Fatal("expected downstream error")
	}

	// Recover the sink and let the flusher drain the buffer.
	sink.mu.Lock()
	sink.err = nil
	sink.mu.Unlock()

	p.Start(ctx)
	defer p.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for sink.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if sink.count() != 1 {
		t.Fatalf("buffered point not flushed, sink count = %d", sink.count())
	}
}
