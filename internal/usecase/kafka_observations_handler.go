package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"TrendCast/internal/domain/models"
	domrepo "TrendCast/internal/domain/repository"
	mid "TrendCast/internal/middleware"
	pkgkafka "TrendCast/pkg/kafka"
)

// KafkaObservationsHandler consumes observation messages and feeds them
// through the pipeline into the live series.
type KafkaObservationsHandler struct {
	topic   string
	pipe    *mid.ObservationPipeline
	metrics domrepo.Metrics
}

func NewKafkaObservationsHandler(topic string, pipe *mid.ObservationPipeline, metrics domrepo.Metrics) *KafkaObservationsHandler {
	return &KafkaObservationsHandler{topic: topic, pipe: pipe, metrics: metrics}
}

func (h *KafkaObservationsHandler) Topic() string { return h.topic }

// incoming message schema: {date, value}; date is RFC 3339 or YYYY-MM-DD
func (h *KafkaObservationsHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		Date  string  `json:"date"`
		Value float64 `json:"value"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}

	date, err := parseObservationDate(m.Date)
	if err != nil {
		h.metrics.RecordError("consumer_date")
		return err
	}
	// E2E latency from event time to now (approx)
	h.metrics.RecordLatency("ingest_e2e_seconds", time.Since(date).Seconds())

	return h.pipe.Process(ctx, models.Point{Date: date, Value: m.Value})
}

func parseObservationDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

var _ pkgkafka.MessageHandler = (*KafkaObservationsHandler)(nil)
