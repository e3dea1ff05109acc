// Package notify delivers task events to the push, socket and stream sinks.
package notify

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
	"liyu1981.xyz/aqua-condition-service/pkg/metrics"
)

type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

type Flag string

const (
	FlagCreate Flag = "CREATE"
	FlagDelete Flag = "DELETE"
)

// ErrInvalidToken is returned by a PushSink when the provider rejects the device token for good.
var ErrInvalidToken = errors.New("device token is no longer valid")

type PushMessage struct {
	Title      string            `json:"title"`
	Body       string            `json:"body"`
	Priority   Priority          `json:"priority"`
	TTLSeconds int               `json:"ttlSeconds"`
	Data       map[string]string `json:"data"`
}

type SocketEvent struct {
	TaskID               uint      `json:"taskId"`
	Message              string    `json:"message"`
	CreatedAt            time.Time `json:"createdAt"`
	TotalUnresolvedCount int64     `json:"totalUnresolvedCount"`
	Flag                 Flag      `json:"flag"`
}

type Dispatch struct {
	UserID    string
	TankID    string
	TankName  string
	TaskID    uint
	Message   string
	CreatedAt time.Time
	Deleted   bool
}

type PushSink interface {
	Name() string
	Send(ctx context.Context, token string, msg PushMessage) error
}

type SocketSink interface {
	Emit(ctx context.Context, userID string, ev SocketEvent) error
}

type EventStream interface {
	Publish(ctx context.Context, userID string, ev SocketEvent) error
}

type TokenStore interface {
	ListTokens(ctx context.Context, userID string) ([]string, error)
	PruneToken(ctx context.Context, token string) error
}

type TaskCounter interface {
	CountUnresolved(ctx context.Context, userID string) (int64, error)
}

type IDispatcher interface {
	Dispatch(ctx context.Context, d Dispatch) error
}

type DispatcherOpts struct {
	Push       PushSink
	Socket     SocketSink
	Stream     EventStream
	Tokens     TokenStore
	Counter    TaskCounter
	Title      string
	TTLSeconds int
}

// Dispatcher fans one task event out to every configured sink. Sinks run concurrently and
// a failing sink never prevents delivery on the others.
type Dispatcher struct {
	opts DispatcherOpts
}

func NewDispatcher(opts DispatcherOpts) *Dispatcher {
	if opts.Title == "" {
		opts.Title = common.DefaultPushTitle
	}
	return &Dispatcher{opts: opts}
}

func (d *Dispatcher) Dispatch(ctx context.Context, dispatch Dispatch) error {
	logger := common.GetLoggerWith(
		common.LoggerNameNotify,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryFanout),
	)

	var g multierror.Group
	if !dispatch.Deleted {
		g.Go(func() error { return d.push(ctx, dispatch) })
	} else {
		metrics.DispatchesTotal.WithLabelValues("push", "skipped").Inc()
	}
	g.Go(func() error { return d.socket(ctx, dispatch) })

	err := common.SinkFailure(g.Wait())
	if err != nil {
		logger.Warn("Dispatch failed", zap.Reflect("dispatch", dispatch), zap.Error(err))
		return err
	}

	logger.Info("Dispatch delivered", zap.Reflect("dispatch", dispatch))
	return nil
}

func (d *Dispatcher) pushMessage(dispatch Dispatch) PushMessage {
	return PushMessage{
		Title:      d.opts.Title,
		Body:       dispatch.Message,
		Priority:   PriorityHigh,
		TTLSeconds: d.opts.TTLSeconds,
		Data: map[string]string{
			"taskId":   strconv.FormatUint(uint64(dispatch.TaskID), 10),
			"tankId":   dispatch.TankID,
			"tankName": dispatch.TankName,
		},
	}
}

func (d *Dispatcher) push(ctx context.Context, dispatch Dispatch) error {
	if d.opts.Push == nil || d.opts.Tokens == nil {
		return nil
	}

	logger := common.GetLoggerWith(
		common.LoggerNameNotify,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryPush),
	)

	tokens, err := d.opts.Tokens.ListTokens(ctx, dispatch.UserID)
	if err != nil {
		metrics.DispatchesTotal.WithLabelValues("push", "failed").Inc()
		return err
	}
	if len(tokens) == 0 {
		metrics.DispatchesTotal.WithLabelValues("push", "skipped").Inc()
		return nil
	}

	msg := d.pushMessage(dispatch)
	var merr *multierror.Error
	for _, token := range tokens {
		err := d.opts.Push.Send(ctx, token, msg)
		switch {
		case err == nil:
			metrics.DispatchesTotal.WithLabelValues("push", "ok").Inc()
		case errors.Is(err, ErrInvalidToken):
			logger.Info("Invalid device token found", zap.String("sink", d.opts.Push.Name()), zap.String("userId", dispatch.UserID))
			if perr := d.opts.Tokens.PruneToken(ctx, token); perr != nil {
				merr = multierror.Append(merr, perr)
				continue
			}
			metrics.PrunedTokensTotal.Inc()
			logger.Info("Invalid device token pruned", zap.String("userId", dispatch.UserID))
		default:
			metrics.DispatchesTotal.WithLabelValues("push", "failed").Inc()
			merr = multierror.Append(merr, err)
		}
	}
	return merr.ErrorOrNil()
}

func (d *Dispatcher) socket(ctx context.Context, dispatch Dispatch) error {
	if d.opts.Socket == nil && d.opts.Stream == nil {
		return nil
	}

	ev := SocketEvent{
		TaskID:    dispatch.TaskID,
		Message:   dispatch.Message,
		CreatedAt: dispatch.CreatedAt,
		Flag:      FlagCreate,
	}
	if dispatch.Deleted {
		ev.Flag = FlagDelete
	}

	var merr *multierror.Error
	if d.opts.Counter != nil {
		total, err := d.opts.Counter.CountUnresolved(ctx, dispatch.UserID)
		if err != nil {
			merr = multierror.Append(merr, err)
		}
		ev.TotalUnresolvedCount = total
	}

	if d.opts.Socket != nil {
		if err := d.opts.Socket.Emit(ctx, dispatch.UserID, ev); err != nil {
			metrics.DispatchesTotal.WithLabelValues("socket", "failed").Inc()
			merr = multierror.Append(merr, err)
		} else {
			metrics.DispatchesTotal.WithLabelValues("socket", "ok").Inc()
		}
	}

	if d.opts.Stream != nil {
		if err := d.opts.Stream.Publish(ctx, dispatch.UserID, ev); err != nil {
			metrics.DispatchesTotal.WithLabelValues("stream", "failed").Inc()
			merr = multierror.Append(merr, err)
		} else {
			metrics.DispatchesTotal.WithLabelValues("stream", "ok").Inc()
		}
	}

	return merr.ErrorOrNil()
}

// NopPushSink accepts and drops every message.
type NopPushSink struct{}

func (NopPushSink) Name() string { return "none" }

func (NopPushSink) Send(context.Context, string, PushMessage) error { return nil }
