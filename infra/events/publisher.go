package events

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"

	protocols "github.com/kaapihouse/kaapi/protocols"
)

// KafkaPublisher announces created bookings on a Kafka topic. It is wired
// only when a broker address is configured; publishing is best-effort and
// never fails the request that created the booking.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(broker, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(broker),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *KafkaPublisher) BookingCreated(ctx context.Context, booking *protocols.Booking) error {
	raw, err := json.Marshal(booking)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(booking.ID, 10)),
		Value: raw,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
