package notify

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/nicholas-fedor/shoutrrr"
	"github.com/nicholas-fedor/shoutrrr/pkg/router"
	stypes "github.com/nicholas-fedor/shoutrrr/pkg/types"
)

// ShoutrrrSink treats each registered token as a shoutrrr service URL
// (ntfy://, telegram://, pushover://, ...).
type ShoutrrrSink struct {
	timeout time.Duration
	build   func(url string) (*router.ServiceRouter, error)
}

func NewShoutrrrSink(timeout time.Duration) *ShoutrrrSink {
	return &ShoutrrrSink{
		timeout: timeout,
		build: func(url string) (*router.ServiceRouter, error) {
			return shoutrrr.CreateSender(url)
		},
	}
}

func (s *ShoutrrrSink) Name() string { return "shoutrrr" }

func (s *ShoutrrrSink) Send(ctx context.Context, token string, msg PushMessage) error {
	sender, err := s.build(token)
	if err != nil {
		// a URL that cannot be parsed will never deliver
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	sender.SetLogger(log.New(io.Discard, "", 0))
	if s.timeout > 0 {
		sender.Timeout = s.timeout
	}

	params := stypes.Params{}
	params.SetTitle(msg.Title)
	if msg.Priority == PriorityHigh {
		params["priority"] = "high"
	}

	done := make(chan []error, 1)
	go func() { done <- sender.Send(msg.Body, &params) }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case errs := <-done:
		for _, e := range errs {
			if e != nil {
				return fmt.Errorf("shoutrrr send: %w", e)
			}
		}
		return nil
	}
}
