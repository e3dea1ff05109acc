package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	fcm "google.golang.org/api/fcm/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
)

// FCMSink sends through the Firebase Cloud Messaging HTTP v1 API. The underlying service
// is safe for concurrent use.
type FCMSink struct {
	svc       *fcm.Service
	projectID string
	now       func() time.Time
}

var (
	fcmOnce sync.Once
	fcmSink *FCMSink
	fcmErr  error
)

// InitFCM builds the process-wide FCM client. Later calls return the first result.
func InitFCM(ctx context.Context, projectID string, opts ...option.ClientOption) (*FCMSink, error) {
	fcmOnce.Do(func() {
		fcmSink, fcmErr = NewFCMSink(ctx, projectID, opts...)
		if fcmErr == nil {
			common.GetLoggerWith(
				common.LoggerNameNotify,
				zap.String(common.LoggerFieldCategory, common.LoggerCategoryPush),
			).Info("FCM client initialised", zap.String("projectId", projectID))
		}
	})
	return fcmSink, fcmErr
}

func NewFCMSink(ctx context.Context, projectID string, opts ...option.ClientOption) (*FCMSink, error) {
	if projectID == "" {
		return nil, errors.New("fcm project id is required")
	}
	svc, err := fcm.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating fcm service: %w", err)
	}
	return &FCMSink{svc: svc, projectID: projectID, now: time.Now}, nil
}

func (s *FCMSink) Name() string { return "fcm" }

func (s *FCMSink) buildMessage(token string, msg PushMessage) *fcm.Message {
	androidPriority, apnsPriority := "NORMAL", "5"
	if msg.Priority == PriorityHigh {
		androidPriority, apnsPriority = "HIGH", "10"
	}

	m := &fcm.Message{
		Token: token,
		Notification: &fcm.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &fcm.AndroidConfig{
			Priority: androidPriority,
		},
		Apns: &fcm.ApnsConfig{
			Headers: map[string]string{
				"apns-priority": apnsPriority,
			},
		},
	}
	if msg.TTLSeconds > 0 {
		m.Android.Ttl = fmt.Sprintf("%ds", msg.TTLSeconds)
		m.Apns.Headers["apns-expiration"] = strconv.FormatInt(s.now().Add(time.Duration(msg.TTLSeconds)*time.Second).Unix(), 10)
	}
	return m
}

func (s *FCMSink) Send(ctx context.Context, token string, msg PushMessage) error {
	req := &fcm.SendMessageRequest{Message: s.buildMessage(token, msg)}
	_, err := s.svc.Projects.Messages.Send("projects/"+s.projectID, req).Context(ctx).Do()
	if err == nil {
		return nil
	}
	if isUnregistered(err) {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return fmt.Errorf("fcm send: %w", err)
}

func isUnregistered(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	switch gerr.Code {
	case http.StatusNotFound:
		return true
	case http.StatusBadRequest:
		body := gerr.Message + gerr.Body
		return strings.Contains(body, "registration token") || strings.Contains(body, "UNREGISTERED")
	}
	return false
}
