package usecase

import (
	"context"
	"testing"
	"time"

	"TrendCast/internal/domain/models"
	mid "TrendCast/internal/middleware"
)

func TestLiveSeriesIngest(t *testing.T) {
	ls := NewLiveSeries(3)
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		if err := ls.Ingest(ctx, models.Point{Date: start.AddDate(0, 0, i), Value: float64(i)}); err != nil {
			t.Fatalf("Ingest: %v", err)
		}
	}

	snap := ls.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("window size = %d, want 3", len(snap))
	}
	if snap[0].Value != 2 || snap[2].Value != 4 {
		t.Errorf("window = %v, want values 2..4", snap.Values())
	}
}

func TestLiveSeriesOutOfOrder(t *testing.T) {
	ls := NewLiveSeries(10)
	ctx := context.Background()
	d := func(day int) time.Time { return time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC) }

	_ = ls.Ingest(ctx, models.Point{Date: d(1), Value: 1})
	_ = ls.Ingest(ctx, models.Point{Date: d(3), Value: 3})
	_ = ls.Ingest(ctx, models.Point{Date: d(2), Value: 2})

	snap := ls.Snapshot()
	for i := 1; i < len(snap); i++ {
		if snap[i].Date.Before(snap[i-1].Date) {
			t.Fatalf("window not sorted: %v", snap)
		}
	}
	if snap[1].Value != 2 {
		t.Errorf("middle value = %v, want 2", snap[1].Value)
	}
}

func TestLiveSeriesSeedAndSubscribe(t *testing.T) {
	ls := NewLiveSeries(5)
	ls.Seed(monthlySeries(1, 2, 3, 4, 5, 6, 7))
	if ls.Len() != 5 {
		t.Fatalf("seeded window = %d, want 5 (tail of seed)", ls.Len())
	}

	ch := ls.Subscribe()
	defer ls.Unsubscribe(ch)

	_ = ls.Ingest(context.Background(), models.Point{Date: time.Now(), Value: 8})
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no notification after ingest")
	}
}

func TestKafkaObservationsHandler(t *testing.T) {
	ls := NewLiveSeries(10)
	metrics := &stubMetrics{}
	pipe := mid.NewObservationPipeline(ls, metrics, mid.WithMaxRPS(0))
	h := NewKafkaObservationsHandler("observations", pipe, metrics)

	if h.Topic() != "observations" {
		t.Errorf("topic = %q", h.Topic())
	}

	ctx := context.Background()
	if err := h.Handle(ctx, []byte(`{"date":"2024-06-01","value":42.5}`)); err != nil {
		t.Fatalf("Handle date-only: %v", err)
	}
	if err := h.Handle(ctx, []byte(`{"date":"2024-06-02T10:30:00Z","value":43}`)); err != nil {
		t.Fatalf("Handle RFC3339: %v", err)
	}

	snap := ls.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("live points = %d, want 2", len(snap))
	}
	if snap[0].Value != 42.5 || snap[1].Value != 43 {
		t.Errorf("live values = %v", snap.Values())
	}

	if err := h.Handle(ctx, []byte(`not json`)); err == nil {
		t.Error("expected unmarshal error")
	}
	if err := h.Handle(ctx, []byte(`{"date":"yesterday","value":1}`)); err == nil {
		t.Error("expected date parse error")
	}
}
