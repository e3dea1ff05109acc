package notify

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaStream publishes socket events to a topic keyed by user id, so one user's
// events stay ordered on one partition.
type KafkaStream struct {
	writer messageWriter
}

func NewKafkaStream(brokers []string, topic string) (*KafkaStream, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	if topic == "" {
		return nil, errors.New("topic is required")
	}
	return &KafkaStream{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  3,
	}}, nil
}

type streamEnvelope struct {
	UserID string      `json:"userId"`
	Event  SocketEvent `json:"event"`
}

func (k *KafkaStream) Publish(ctx context.Context, userID string, ev SocketEvent) error {
	data, err := json.Marshal(streamEnvelope{UserID: userID, Event: ev})
	if err != nil {
		return err
	}
	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(userID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "flag", Value: []byte(ev.Flag)},
		},
	})
	if err != nil {
		common.GetLoggerWith(
			common.LoggerNameNotify,
			zap.String(common.LoggerFieldCategory, common.LoggerCategoryStream),
		).Warn("Stream publish failed", zap.String("userId", userID), zap.Error(err))
	}
	return err
}

func (k *KafkaStream) Close() error {
	return k.writer.Close()
}
