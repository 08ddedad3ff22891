package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Jacky088/Edgeone-Imgbed/internal/dto"
	"github.com/Jacky088/Edgeone-Imgbed/internal/entity"
	"github.com/Jacky088/Edgeone-Imgbed/pkg/kafka/producer"
	"github.com/segmentio/kafka-go"
)

type EventProducer struct {
	*producer.Producer
	topic string
}

func NewEventProducer(producer *producer.Producer, topic string) *EventProducer {
	return &EventProducer{
		producer,
		topic,
	}
}

func (ep *EventProducer) SendImageEvent(ctx context.Context, action string, record *entity.ImageRecord) error {
	payload, err := json.Marshal(dto.ImageEvent{
		Action: action,
		ID:     record.ID,
		Name:   record.Name,
		Size:   record.Size,
		Type:   record.Type,
		At:     time.Now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("EventProducer - SendImageEvent - json.Marshal: %w", err)
	}

	msg := kafka.Message{
		Topic: ep.topic,
		Key:   []byte(record.ID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "action", Value: []byte(action)},
		},
	}

	err = ep.Writer.WriteMessages(ctx, msg)
	if err != nil {
		return fmt.Errorf("EventProducer - SendImageEvent - ep.Writer.WriteMessages: %w", err)
	}

	return nil
}

func (ep *EventProducer) Close() error {
	err := ep.Producer.Close()
	if err != nil {
		return fmt.Errorf("EventProducer - Close: %w", err)
	}

	return nil
}
