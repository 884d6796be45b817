package middleware

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"TrendCast/internal/domain/models"
	domrepo "TrendCast/internal/domain/repository"
)

// Sink is the downstream an observation pipeline feeds into.
type Sink interface {
	Ingest(ctx context.Context, p models.Point) error
}

// ObservationPipeline sits between the Kafka consumer and the live
// series. It validates, throttles, and buffers observations when the
// downstream is unavailable.
type ObservationPipeline struct {
	sink    Sink
	metrics domrepo.Metrics
	maxRPS  int
	bufSize int
	bufCh   chan models.Point
	stopCh  chan struct{}
	started bool
	mu      sync.Mutex
	last    time.Time // last accepted time
}

type PipelineOption func(*ObservationPipeline)

// WithMaxRPS sets the max observations accepted per second. Zero or
// negative disables throttling.
func WithMaxRPS(n int) PipelineOption {
	return func(p *ObservationPipeline) {
		p.maxRPS = n
	}
}

// WithBufferSize sets the temporary buffer size when downstream is unavailable.
func WithBufferSize(n int) PipelineOption {
	return func(p *ObservationPipeline) {
		if n > 0 {
			p.bufSize = n
		}
	}
}

// NewObservationPipeline creates a new pipeline.
func NewObservationPipeline(sink Sink, metrics domrepo.Metrics, opts ...PipelineOption) *ObservationPipeline {
	p := &ObservationPipeline{
		sink:    sink,
		metrics: metrics,
		maxRPS:  20,   // default throttle
		bufSize: 1000, // default buffer
		stopCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.bufCh = make(chan models.Point, p.bufSize)
	return p
}

// Start launches background flushing of buffered observations.
func (p *ObservationPipeline) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		backoff := 50 * time.Millisecond
		for {
			select {
			case <-p.stopCh:
				return
			case pt := <-p.bufCh:
				if err := p.sink.Ingest(ctx, pt); err != nil {
					// exponential backoff with cap
					if backoff < 2*time.Second {
						backoff *= 2
					}
					p.metrics.RecordError("pipeline_flush")
					time.Sleep(backoff)
					// requeue if space; drop otherwise
					select {
					case p.bufCh <- pt:
					default:
						p.metrics.RecordError("pipeline_buffer_drop")
					}
				} else {
					backoff = 50 * time.Millisecond
				}
			}
		}
	}()
}

// Stop stops the background flushing.
func (p *ObservationPipeline) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	p.mu.Unlock()
	close(p.stopCh)
}

// Process validates, throttles, and forwards an observation to the
// sink, buffering on errors.
func (p *ObservationPipeline) Process(ctx context.Context, pt models.Point) error {
	start := time.Now()
	if err := validatePoint(pt); err != nil {
		p.metrics.RecordError("pipeline_validate")
		return err
	}
	if !p.allow(start) {
		// throttled; record and drop silently
		p.metrics.RecordError("pipeline_throttle")
		return nil
	}

	if err := p.sink.Ingest(ctx, pt); err != nil {
		p.metrics.RecordError("pipeline_ingest")
		// buffer non-blocking
		select {
		case p.bufCh <- pt:
		default:
			p.metrics.RecordError("pipeline_buffer_full")
		}
		return fmt.Errorf("pipeline downstream: %w", err)
	}
	p.metrics.RecordLatency("pipeline_process", time.Since(start).Seconds())
	return nil
}

func validatePoint(pt models.Point) error {
	if pt.Date.IsZero() {
		return fmt.Errorf("date missing")
	}
	if math.IsNaN(pt.Value) || math.IsInf(pt.Value, 0) {
		return fmt.Errorf("value not finite")
	}
	return nil
}

func (p *ObservationPipeline) allow(now time.Time) bool {
	if p.maxRPS <= 0 {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last.IsZero() || now.Sub(p.last) >= time.Second/time.Duration(p.maxRPS) {
		p.last = now
		return true
	}
	return false
}
