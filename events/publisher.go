package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"menuva/models"
)

// OrderStatusChanged is published after every successful transition. It is
// the side-effect boundary: notifications and dispatch hang off this topic,
// never off the engine itself.
type OrderStatusChanged struct {
	OrderID    uint               `json:"order_id"`
	Number     string             `json:"order_number"`
	Restaurant uint               `json:"restaurant_id"`
	From       models.OrderStatus `json:"from_status"`
	To         models.OrderStatus `json:"to_status"`
	Actor      models.Role        `json:"actor"`
	At         time.Time          `json:"at"`
}

type Publisher interface {
	PublishStatusChange(ctx context.Context, event OrderStatusChanged) error
}

type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) PublishStatusChange(ctx context.Context, event OrderStatusChanged) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.OrderID), 10)),
		Value: payload,
	})
}

// Noop stands in when no broker is configured.
type Noop struct{}

func (Noop) PublishStatusChange(context.Context, OrderStatusChanged) error { return nil }
