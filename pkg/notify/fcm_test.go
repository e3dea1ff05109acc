package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
)

const fcmSendURL = "https://fcm.test/v1/projects/demo/messages:send"

func newTestFCMSink(t *testing.T) (*FCMSink, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	client := &http.Client{Transport: transport}

	sink, err := NewFCMSink(context.Background(), "demo",
		option.WithHTTPClient(client),
		option.WithEndpoint("https://fcm.test/"),
	)
	require.NoError(t, err)
	sink.now = func() time.Time { return time.Unix(1_700_000_000, 0) }
	return sink, transport
}

func TestFCMSinkSendBuildsMessage(t *testing.T) {
	common.SetTestLoggerNop()
	sink, transport := newTestFCMSink(t)

	var body map[string]any
	transport.RegisterResponder(http.MethodPost, fcmSendURL,
		func(req *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				return httpmock.NewStringResponse(http.StatusBadRequest, ""), nil
			}
			return httpmock.NewJsonResponse(http.StatusOK, map[string]string{"name": "projects/demo/messages/1"})
		})

	err := sink.Send(context.Background(), "device-token", PushMessage{
		Title:      "긴급 작업이 있습니다",
		Body:       "Feeding Alert",
		Priority:   PriorityHigh,
		TTLSeconds: 60,
		Data:       map[string]string{"taskId": "7"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, transport.GetTotalCallCount())

	msg := body["message"].(map[string]any)
	assert.Equal(t, "device-token", msg["token"])
	assert.Equal(t, "Feeding Alert", msg["notification"].(map[string]any)["body"])
	assert.Equal(t, "HIGH", msg["android"].(map[string]any)["priority"])
	assert.Equal(t, "60s", msg["android"].(map[string]any)["ttl"])

	headers := msg["apns"].(map[string]any)["headers"].(map[string]any)
	assert.Equal(t, "10", headers["apns-priority"])
	assert.Equal(t, "1700000060", headers["apns-expiration"])
}

func TestFCMSinkReportsUnregisteredToken(t *testing.T) {
	common.SetTestLoggerNop()
	sink, transport := newTestFCMSink(t)

	transport.RegisterResponder(http.MethodPost, fcmSendURL,
		httpmock.NewStringResponder(http.StatusNotFound,
			`{"error":{"code":404,"message":"Requested entity was not found.","status":"NOT_FOUND"}}`))

	err := sink.Send(context.Background(), "gone", PushMessage{Body: "x", Priority: PriorityNormal})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestFCMSinkReportsMalformedToken(t *testing.T) {
	common.SetTestLoggerNop()
	sink, transport := newTestFCMSink(t)

	transport.RegisterResponder(http.MethodPost, fcmSendURL,
		httpmock.NewStringResponder(http.StatusBadRequest,
			`{"error":{"code":400,"message":"The registration token is not a valid FCM registration token","status":"INVALID_ARGUMENT"}}`))

	err := sink.Send(context.Background(), "junk", PushMessage{Body: "x"})
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestFCMSinkOtherErrorsKeepToken(t *testing.T) {
	common.SetTestLoggerNop()
	sink, transport := newTestFCMSink(t)

	transport.RegisterResponder(http.MethodPost, fcmSendURL,
		httpmock.NewStringResponder(http.StatusForbidden,
			`{"error":{"code":403,"message":"SenderId mismatch","status":"PERMISSION_DENIED"}}`))

	err := sink.Send(context.Background(), "tok", PushMessage{Body: "x"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidToken))
}

func TestInitFCMIsIdempotent(t *testing.T) {
	common.SetTestLoggerNop()
	client := &http.Client{Transport: httpmock.NewMockTransport()}

	first, err := InitFCM(context.Background(), "demo", option.WithHTTPClient(client))
	require.NoError(t, err)
	second, err := InitFCM(context.Background(), "other-project", option.WithHTTPClient(client))
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, "demo", second.projectID)
}

func TestNewFCMSinkRequiresProject(t *testing.T) {
	_, err := NewFCMSink(context.Background(), "")
	assert.Error(t, err)
}
