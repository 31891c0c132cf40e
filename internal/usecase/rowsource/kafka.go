package rowsource

import (
	"context"

	rowsourcev1 "github.com/ChristopherRussell/polars-order-book/internal/domain/rowsource/v1"
	"github.com/ChristopherRussell/polars-order-book/pkg/config"
	"github.com/ChristopherRussell/polars-order-book/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// KafkaReader reads update rows from a Kafka topic as a member of the
// configured consumer group, which assigns it partitions; each message's
// offset is committed by ReadMessage as the message is read.
type KafkaReader struct {
	reader *kafka.Reader
	log    *logger.Logger
}

var _ rowsourcev1.Reader = (*KafkaReader)(nil)

// NewKafkaReader opens a Kafka reader over cfg.Topic using cfg.ConsumerGroup
// for partition assignment.
func NewKafkaReader(cfg config.KafkaConfig, log *logger.Logger) *KafkaReader {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.ConsumerGroup,
		MinBytes:    cfg.MinBytes,
		MaxBytes:    cfg.MaxBytes,
		StartOffset: kafka.LastOffset,
	})
	return &KafkaReader{reader: reader, log: log}
}

// Read blocks until the next message is available, ctx is canceled, or the
// broker connection fails.
func (r *KafkaReader) Read(ctx context.Context) (rowsourcev1.Row, error) {
	msg, err := r.reader.ReadMessage(ctx)
	if err != nil {
		r.log.Error(err, logger.NewField("operation", "kafka_read"))
		return rowsourcev1.Row{}, err
	}

	row, err := decodeRow(msg.Value)
	if err != nil {
		r.log.Error(err,
			logger.NewField("operation", "decode_row"),
			logger.NewField("offset", msg.Offset),
		)
		return rowsourcev1.Row{}, err
	}
	return row, nil
}

// Close closes the underlying Kafka reader.
func (r *KafkaReader) Close() error {
	return r.reader.Close()
}
