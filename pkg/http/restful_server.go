package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
	"liyu1981.xyz/aqua-condition-service/pkg/engine"
	"liyu1981.xyz/aqua-condition-service/pkg/notify"
)

// HeaderUserID carries the caller identity resolved by the gateway in front of us.
const HeaderUserID = "X-User-ID"

const ctxKeyUserID = "userID"

type RestfulServer struct {
	Server           *gin.Engine
	Engine           *engine.Engine
	Hub              *notify.Hub
	RateLimiterStore *engine.RateLimiterStore
}

func (rs *RestfulServer) GetLimiter(tankID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(tankID)
	}
}

func (rs *RestfulServer) CheckTankLimiter(tankID string) bool {
	limiter := rs.GetLimiter(tankID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(tankID string, tankRate float64, tankBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(tankID, rate.Limit(tankRate), tankBurst)
}

func logger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameRestfulServer)
}

func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger().Info("Request served",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// RequireUser rejects requests without an identity and stores it for the handlers.
func RequireUser(c *gin.Context) {
	userID := strings.TrimSpace(c.GetHeader(HeaderUserID))
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"category": "unauthenticated",
			"message":  "missing " + HeaderUserID + " header",
		})
		return
	}
	c.Set(ctxKeyUserID, userID)
	c.Next()
}

func userID(c *gin.Context) string {
	return c.GetString(ctxKeyUserID)
}

func (rs *RestfulServer) ForgetLimiter(tankID string) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.Forget(tankID)
}

// RenderError maps an engine error onto its HTTP status.
func RenderError(c *gin.Context, err error) {
	category, ok := common.CategoryOf(err)
	status := common.HTTPStatus(category)
	if !ok {
		category = "internal"
		logger().Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"category": category, "message": err.Error()})
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)
	rs.Server.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// devices report without a user session
	rs.Server.POST("/tanks/:tank_id/sensor-data", rs.PostSensorData)

	authorized := rs.Server.Group("/", RequireUser)
	{
		authorized.GET("/ws", rs.ServeSocket)
		authorized.POST("/device-tokens", rs.PostDeviceToken)
		authorized.GET("/tasks/unresolved-count", rs.GetUnresolvedCount)
		authorized.DELETE("/tasks/:task_id", rs.DeleteTask)
	}

	tanks := authorized.Group("/tanks/:tank_id")
	{
		tanks.POST("/husbandry", rs.PostHusbandry)
		tanks.GET("/conditions", rs.GetConditions)
		tanks.GET("/tasks", rs.GetTasks)
		tanks.POST("/limiter", rs.PostLimiter)
	}

	conditions := authorized.Group("/conditions")
	{
		conditions.POST("/threshold", rs.PostThreshold)
		conditions.PUT("/threshold/:id", rs.PutThreshold)
		conditions.DELETE("/threshold/:id", rs.DeleteThreshold)

		conditions.POST("/feed-increase", rs.PostFeedIncrease)
		conditions.PUT("/feed-increase/:id", rs.PutFeedIncrease)
		conditions.DELETE("/feed-increase/:id", rs.DeleteFeedIncrease)

		conditions.POST("/recurring", rs.PostRecurring)
		conditions.PUT("/recurring/:id", rs.PutRecurring)
		conditions.DELETE("/recurring/:id", rs.DeleteRecurring)

		conditions.POST("/copy", rs.PostCopy)
	}
}
