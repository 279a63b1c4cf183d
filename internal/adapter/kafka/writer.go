package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/recall-search-service/internal/config"
	"github.com/couchcryptid/recall-search-service/internal/domain"
)

// Writer publishes normalized recall records to the sink topic.
// It implements feed.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishBatch serializes and publishes a batch of recall records in a
// single WriteMessages call.
func (w *Writer) PublishBatch(ctx context.Context, records []domain.RecallRecord) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msg, err := serializeToMessage(records[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a RecallRecord into a Kafka message. Messages
// are keyed by recall_number so re-publishing the same report overwrites
// rather than duplicates under log compaction; records without one fall back
// to their event_id.
func serializeToMessage(record domain.RecallRecord) (kafkago.Message, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize recall record: %w", err)
	}

	var key []byte
	switch {
	case record.RecallNumber != nil:
		key = []byte(*record.RecallNumber)
	case record.EventID != nil:
		key = []byte(*record.EventID)
	}

	msg := kafkago.Message{
		Key:   key,
		Value: data,
		Headers: []kafkago.Header{
			{Key: "published_at", Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		},
	}
	if record.EventID != nil {
		msg.Headers = append(msg.Headers, kafkago.Header{Key: "event_id", Value: []byte(*record.EventID)})
	}
	if record.ReportDate != nil {
		msg.Headers = append(msg.Headers, kafkago.Header{Key: "report_date", Value: []byte(*record.ReportDate)})
	}
	return msg, nil
}
