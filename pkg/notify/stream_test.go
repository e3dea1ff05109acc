package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestKafkaStreamPublishKeysByUser(t *testing.T) {
	common.SetTestLoggerNop()
	w := &recordingWriter{}
	stream := &KafkaStream{writer: w}

	ev := SocketEvent{TaskID: 9, Message: "m", CreatedAt: time.Unix(0, 0).UTC(), TotalUnresolvedCount: 2, Flag: FlagDelete}
	require.NoError(t, stream.Publish(context.Background(), "user-1", ev))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte("user-1"), w.msgs[0].Key)
	assert.Equal(t, "flag", w.msgs[0].Headers[0].Key)
	assert.Equal(t, []byte("DELETE"), w.msgs[0].Headers[0].Value)

	var env streamEnvelope
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &env))
	assert.Equal(t, "user-1", env.UserID)
	assert.Equal(t, ev, env.Event)
}

func TestKafkaStreamPublishError(t *testing.T) {
	common.SetTestLoggerNop()
	stream := &KafkaStream{writer: &recordingWriter{err: errors.New("broker down")}}

	err := stream.Publish(context.Background(), "user-1", SocketEvent{})
	assert.EqualError(t, err, "broker down")
}

func TestNewKafkaStreamValidates(t *testing.T) {
	_, err := NewKafkaStream(nil, "topic")
	assert.Error(t, err)
	_, err = NewKafkaStream([]string{"localhost:9092"}, "")
	assert.Error(t, err)

	stream, err := NewKafkaStream([]string{"localhost:9092"}, "aqua-tasks")
	require.NoError(t, err)
	assert.NoError(t, stream.Close())
}
