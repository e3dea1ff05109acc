package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
	"liyu1981.xyz/aqua-condition-service/pkg/models"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

func sensorValues(waterTemperature, dissolvedOxygen, ph, ammonium, nitrite, alkalinity *float64) models.SensorValues {
	return models.SensorValues{
		models.SensorWaterTemperature: waterTemperature,
		models.SensorDissolvedOxygen:  dissolvedOxygen,
		models.SensorPH:               ph,
		models.SensorAmmonium:         ammonium,
		models.SensorNitrite:          nitrite,
		models.SensorAlkalinity:       alkalinity,
	}
}

// withSensors adds the optional sensor columns shared by both ingestion paths.
func withSensors(shape z.Shape) z.Shape {
	shape["WaterTemperature"] = z.Ptr(z.Float64())
	shape["DissolvedOxygen"] = z.Ptr(z.Float64())
	shape["PH"] = z.Ptr(z.Float64())
	shape["Ammonium"] = z.Ptr(z.Float64())
	shape["Nitrite"] = z.Ptr(z.Float64())
	shape["Alkalinity"] = z.Ptr(z.Float64())
	return shape
}

type SensorDataRequest struct {
	Timestamp        time.Time `json:"timestamp" zog:"timestamp"`
	WaterTemperature *float64  `json:"waterTemperature,omitempty" zog:"waterTemperature"`
	DissolvedOxygen  *float64  `json:"dissolvedOxygen,omitempty" zog:"dissolvedOxygen"`
	PH               *float64  `json:"ph,omitempty" zog:"ph"`
	Ammonium         *float64  `json:"ammonium,omitempty" zog:"ammonium"`
	Nitrite          *float64  `json:"nitrite,omitempty" zog:"nitrite"`
	Alkalinity       *float64  `json:"alkalinity,omitempty" zog:"alkalinity"`
}

func (r SensorDataRequest) Values() models.SensorValues {
	return sensorValues(r.WaterTemperature, r.DissolvedOxygen, r.PH, r.Ammonium, r.Nitrite, r.Alkalinity)
}

var sensorDataRequestSchema = z.Struct(withSensors(z.Shape{
	"Timestamp": z.Time().Required(),
}))

func (rs *RestfulServer) PostSensorData(c *gin.Context) {
	tankID := c.Param("tank_id")

	if !rs.CheckTankLimiter(tankID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req SensorDataRequest
	if err := sensorDataRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		renderIssues(c, err)
		return
	}

	result, err := rs.Engine.Husbandry.IngestSensorReading(c.Request.Context(), tankID, req.Timestamp, req.Values())
	if err != nil {
		if category, _ := common.CategoryOf(err); category == common.ErrorCategoryNotFound {
			// unknown tank ids must not pin limiters
			rs.ForgetLimiter(tankID)
		}
		RenderError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type FeedingRequest struct {
	Type   string  `json:"type" zog:"type"`
	Amount float64 `json:"amount" zog:"amount"`
}

type SupplementRequest struct {
	Name   string  `json:"name" zog:"name"`
	Dosage float64 `json:"dosage" zog:"dosage"`
}

// HusbandryRequest takes either an RFC3339 timestamp or a local date and time.
// Absent feedings or supplements keep the stored rows; an empty list clears them.
type HusbandryRequest struct {
	Timestamp        *time.Time           `json:"timestamp,omitempty" zog:"timestamp"`
	Date             *string              `json:"date,omitempty" zog:"date"`
	Time             *string              `json:"time,omitempty" zog:"time"`
	IsClean          *bool                `json:"isClean,omitempty" zog:"isClean"`
	Feedings         *[]FeedingRequest    `json:"feedings,omitempty" zog:"feedings"`
	Supplements      *[]SupplementRequest `json:"supplements,omitempty" zog:"supplements"`
	WaterTemperature *float64             `json:"waterTemperature,omitempty" zog:"waterTemperature"`
	DissolvedOxygen  *float64             `json:"dissolvedOxygen,omitempty" zog:"dissolvedOxygen"`
	PH               *float64             `json:"ph,omitempty" zog:"ph"`
	Ammonium         *float64             `json:"ammonium,omitempty" zog:"ammonium"`
	Nitrite          *float64             `json:"nitrite,omitempty" zog:"nitrite"`
	Alkalinity       *float64             `json:"alkalinity,omitempty" zog:"alkalinity"`
}

func (r HusbandryRequest) Values() models.SensorValues {
	return sensorValues(r.WaterTemperature, r.DissolvedOxygen, r.PH, r.Ammonium, r.Nitrite, r.Alkalinity)
}

var husbandryRequestSchema = z.Struct(withSensors(z.Shape{
	"Timestamp": z.Ptr(z.Time()),
	"Date":      z.Ptr(z.String().Trim()),
	"Time":      z.Ptr(z.String().Trim()),
	"IsClean":   z.Ptr(z.Bool()),
	"Feedings": z.Ptr(z.Slice(z.Struct(z.Shape{
		"Type":   z.String().Trim(),
		"Amount": z.Float64().Required().GTE(0),
	}))),
	"Supplements": z.Ptr(z.Slice(z.Struct(z.Shape{
		"Name":   z.String().Trim().Required(),
		"Dosage": z.Float64().Required(),
	}))),
}))

func (rs *RestfulServer) husbandryTimestamp(req HusbandryRequest) (time.Time, error) {
	if req.Timestamp != nil {
		return *req.Timestamp, nil
	}
	if req.Date == nil || req.Time == nil {
		return time.Time{}, common.Validation("either timestamp or date and time are required")
	}
	t, err := rs.Engine.Zone.ParseLocal(*req.Date, *req.Time)
	if err != nil {
		return time.Time{}, common.Validation("%v", err)
	}
	return t, nil
}

func (rs *RestfulServer) PostHusbandry(c *gin.Context) {
	tankID := c.Param("tank_id")

	if !rs.CheckTankLimiter(tankID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req HusbandryRequest
	if err := husbandryRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		renderIssues(c, err)
		return
	}

	timestamp, err := rs.husbandryTimestamp(req)
	if err != nil {
		RenderError(c, err)
		return
	}

	in := models.HusbandryInput{
		TankID:    tankID,
		Timestamp: timestamp,
		IsClean:   req.IsClean,
		Values:    req.Values(),
	}
	if req.Feedings != nil {
		in.Feedings = common.Mapper(*req.Feedings, func(f FeedingRequest) models.FeedingInput {
			return models.FeedingInput{Type: f.Type, Amount: f.Amount}
		})
	}
	if req.Supplements != nil {
		in.Supplements = common.Mapper(*req.Supplements, func(s SupplementRequest) models.SupplementInput {
			return models.SupplementInput{Name: s.Name, Dosage: s.Dosage}
		})
	}

	result, err := rs.Engine.Husbandry.AddHusbandryRecord(c.Request.Context(), userID(c), in)
	if err != nil {
		RenderError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (rs *RestfulServer) GetConditions(c *gin.Context) {
	rules, err := rs.Engine.Rules.ListTankRules(c.Request.Context(), userID(c), c.Param("tank_id"))
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, rules)
}

func (rs *RestfulServer) GetTasks(c *gin.Context) {
	tasks, err := rs.Engine.Ledger.ListTankTasks(c.Request.Context(), userID(c), c.Param("tank_id"))
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (rs *RestfulServer) GetUnresolvedCount(c *gin.Context) {
	count, err := rs.Engine.Ledger.CountUnresolved(c.Request.Context(), userID(c))
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalUnresolvedCount": count})
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		RenderError(c, common.Validation("invalid %s %q", param, c.Param(param)))
		return 0, false
	}
	return uint(id), true
}

// DeleteTask resolves a task. A retraction that could not reach every sink is still
// a successful deletion and is reported as such.
func (rs *RestfulServer) DeleteTask(c *gin.Context) {
	taskID, ok := parseID(c, "task_id")
	if !ok {
		return
	}

	r, err := rs.Engine.DeleteTask(c.Request.Context(), userID(c), taskID)
	if err != nil && r == nil {
		RenderError(c, err)
		return
	}

	body := gin.H{"task": r.Task}
	if err != nil {
		body["fanoutError"] = err.Error()
	}
	c.JSON(http.StatusOK, body)
}

type DeviceTokenRequest struct {
	Token string `json:"token" zog:"token"`
}

var deviceTokenRequestSchema = z.Struct(z.Shape{
	"Token": z.String().Trim().Required(),
})

func (rs *RestfulServer) PostDeviceToken(c *gin.Context) {
	var req DeviceTokenRequest
	if err := deviceTokenRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		renderIssues(c, err)
		return
	}

	if err := rs.Engine.Tokens.RegisterToken(c.Request.Context(), userID(c), req.Token); err != nil {
		RenderError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (rs *RestfulServer) ServeSocket(c *gin.Context) {
	if rs.Hub == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	if err := rs.Hub.Serve(c.Writer, c.Request, userID(c)); err != nil {
		logger().Warn("Socket upgrade failed", zap.Error(err))
	}
}

type LimiterRequest struct {
	Rate  float64 `json:"rate" zog:"rate"`
	Burst int     `json:"burst" zog:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	tankID := c.Param("tank_id")

	if _, err := rs.Engine.Tanks.GetOwnedTank(c.Request.Context(), userID(c), tankID); err != nil {
		RenderError(c, err)
		return
	}

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		renderIssues(c, err)
		return
	}

	rs.SetLimiter(tankID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
