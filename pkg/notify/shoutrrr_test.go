package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShoutrrrSinkSendsToLoggerService(t *testing.T) {
	sink := NewShoutrrrSink(time.Second)

	err := sink.Send(context.Background(), "logger://", PushMessage{
		Title:    "긴급 작업이 있습니다",
		Body:     "Feeding Alert",
		Priority: PriorityHigh,
	})
	assert.NoError(t, err)
	assert.Equal(t, "shoutrrr", sink.Name())
}

func TestShoutrrrSinkRejectsUnknownService(t *testing.T) {
	sink := NewShoutrrrSink(time.Second)

	err := sink.Send(context.Background(), "carrier-pigeon://coop", PushMessage{Body: "x"})
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestShoutrrrSinkHonoursCancelledContext(t *testing.T) {
	sink := NewShoutrrrSink(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sink.Send(ctx, "logger://", PushMessage{Body: "x"})
	// either the send won the race or the context did; neither may report an invalid token
	assert.False(t, errors.Is(err, ErrInvalidToken))
}
