package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
	"liyu1981.xyz/aqua-condition-service/pkg/models"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

var (
	sensorKinds = common.Mapper(models.SensorKinds, func(k models.SensorKind) string { return string(k) })
	operators   = []string{
		string(models.OperatorGT), string(models.OperatorLT),
		string(models.OperatorGTE), string(models.OperatorLTE), string(models.OperatorEQ),
	}
	categories    = []string{string(models.ConditionCategoryFeeding), string(models.ConditionCategoryAlert)}
	intervalTypes = []string{
		string(models.IntervalDays), string(models.IntervalWeeks),
		string(models.IntervalMonths), string(models.IntervalYears),
	}
	ruleKinds = []string{
		string(models.RuleKindFeeding), string(models.RuleKindAlert),
		string(models.RuleKindRecurring), string(models.RuleKindFeedIncrease),
	}
)

func renderIssues(c *gin.Context, issues any) {
	c.JSON(http.StatusBadRequest, gin.H{"category": common.ErrorCategoryValidation, "error": issues})
}

type ThresholdRequest struct {
	TankID         string  `json:"tankId" zog:"tankId"`
	Name           string  `json:"name" zog:"name"`
	Sensor         string  `json:"sensor" zog:"sensor"`
	Operator       string  `json:"operator" zog:"operator"`
	Value          float64 `json:"value" zog:"value"`
	Category       string  `json:"category" zog:"category"`
	Recommendation string  `json:"recommendation" zog:"recommendation"`
}

func (r ThresholdRequest) Input() models.ThresholdInput {
	return models.ThresholdInput{
		TankID:         r.TankID,
		Name:           r.Name,
		Sensor:         models.SensorKind(r.Sensor),
		Operator:       models.Operator(r.Operator),
		Value:          r.Value,
		Category:       models.ConditionCategory(r.Category),
		Recommendation: r.Recommendation,
	}
}

func thresholdShape() z.Shape {
	return z.Shape{
		"Name":           z.String().Trim(),
		"Sensor":         z.String().Required().OneOf(sensorKinds),
		"Operator":       z.String().Required().OneOf(operators),
		"Value":          z.Float64().Required(),
		"Category":       z.String().Required().OneOf(categories),
		"Recommendation": z.String().Trim(),
	}
}

var createThresholdSchema = z.Struct(func() z.Shape {
	shape := thresholdShape()
	shape["TankID"] = z.String().Trim().Required()
	return shape
}())

var updateThresholdSchema = z.Struct(thresholdShape())

func (rs *RestfulServer) PostThreshold(c *gin.Context) {
	var req ThresholdRequest
	if issues := createThresholdSchema.Parse(zhttp.Request(c.Request), &req); issues != nil {
		renderIssues(c, issues)
		return
	}

	condition, err := rs.Engine.Rules.CreateThresholdCondition(c.Request.Context(), userID(c), req.Input())
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, condition)
}

func (rs *RestfulServer) PutThreshold(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req ThresholdRequest
	if issues := updateThresholdSchema.Parse(zhttp.Request(c.Request), &req); issues != nil {
		renderIssues(c, issues)
		return
	}

	condition, err := rs.Engine.Rules.UpdateThresholdCondition(c.Request.Context(), userID(c), id, req.Input())
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, condition)
}

func (rs *RestfulServer) DeleteThreshold(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := rs.Engine.Rules.DeleteThresholdCondition(c.Request.Context(), userID(c), id); err != nil {
		RenderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type FeedIncreaseRequest struct {
	TankID             string   `json:"tankId" zog:"tankId"`
	Name               string   `json:"name" zog:"name"`
	ReferenceHour      int      `json:"referenceHour" zog:"referenceHour"`
	ExpectedFeedAmount *float64 `json:"expectedFeedAmount,omitempty" zog:"expectedFeedAmount"`
}

func (r FeedIncreaseRequest) Input() models.FeedIncreaseInput {
	return models.FeedIncreaseInput{
		TankID:             r.TankID,
		Name:               r.Name,
		ReferenceHour:      r.ReferenceHour,
		ExpectedFeedAmount: r.ExpectedFeedAmount,
	}
}

func feedIncreaseShape() z.Shape {
	return z.Shape{
		"Name":               z.String().Trim(),
		"ReferenceHour":      z.Int().Required().GTE(0).LTE(23),
		"ExpectedFeedAmount": z.Ptr(z.Float64().GTE(0)),
	}
}

var createFeedIncreaseSchema = z.Struct(func() z.Shape {
	shape := feedIncreaseShape()
	shape["TankID"] = z.String().Trim().Required()
	return shape
}())

var updateFeedIncreaseSchema = z.Struct(feedIncreaseShape())

func (rs *RestfulServer) PostFeedIncrease(c *gin.Context) {
	var req FeedIncreaseRequest
	if issues := createFeedIncreaseSchema.Parse(zhttp.Request(c.Request), &req); issues != nil {
		renderIssues(c, issues)
		return
	}

	rule, err := rs.Engine.Rules.CreateFeedIncreaseRule(c.Request.Context(), userID(c), req.Input())
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rule)
}

func (rs *RestfulServer) PutFeedIncrease(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req FeedIncreaseRequest
	if issues := updateFeedIncreaseSchema.Parse(zhttp.Request(c.Request), &req); issues != nil {
		renderIssues(c, issues)
		return
	}

	rule, err := rs.Engine.Rules.UpdateFeedIncreaseRule(c.Request.Context(), userID(c), id, req.Input())
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, rule)
}

func (rs *RestfulServer) DeleteFeedIncrease(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := rs.Engine.Rules.DeleteFeedIncreaseRule(c.Request.Context(), userID(c), id); err != nil {
		RenderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type RecurringRequest struct {
	TankID        string  `json:"tankId" zog:"tankId"`
	Name          string  `json:"name" zog:"name"`
	IntervalType  string  `json:"intervalType" zog:"intervalType"`
	IntervalValue int     `json:"intervalValue" zog:"intervalValue"`
	Message       string  `json:"message" zog:"message"`
	EndDate       *string `json:"endDate,omitempty" zog:"endDate"`
	EndingCount   *int    `json:"endingCount,omitempty" zog:"endingCount"`
}

func (r RecurringRequest) Input() models.RecurringInput {
	return models.RecurringInput{
		TankID:        r.TankID,
		Name:          r.Name,
		IntervalType:  models.IntervalType(r.IntervalType),
		IntervalValue: r.IntervalValue,
		Message:       r.Message,
		EndDate:       r.EndDate,
		EndingCount:   r.EndingCount,
	}
}

func recurringShape() z.Shape {
	return z.Shape{
		"Name":          z.String().Trim(),
		"IntervalType":  z.String().Required().OneOf(intervalTypes),
		"IntervalValue": z.Int().Required().GT(0),
		"Message":       z.String().Trim().Required(),
		"EndDate":       z.Ptr(z.String().Trim()),
		"EndingCount":   z.Ptr(z.Int()),
	}
}

var createRecurringSchema = z.Struct(func() z.Shape {
	shape := recurringShape()
	shape["TankID"] = z.String().Trim().Required()
	return shape
}())

var updateRecurringSchema = z.Struct(recurringShape())

func (rs *RestfulServer) PostRecurring(c *gin.Context) {
	var req RecurringRequest
	if issues := createRecurringSchema.Parse(zhttp.Request(c.Request), &req); issues != nil {
		renderIssues(c, issues)
		return
	}

	rule, err := rs.Engine.Rules.CreateRecurringRule(c.Request.Context(), userID(c), req.Input())
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rule)
}

func (rs *RestfulServer) PutRecurring(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req RecurringRequest
	if issues := updateRecurringSchema.Parse(zhttp.Request(c.Request), &req); issues != nil {
		renderIssues(c, issues)
		return
	}

	rule, err := rs.Engine.Rules.UpdateRecurringRule(c.Request.Context(), userID(c), id, req.Input())
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, rule)
}

func (rs *RestfulServer) DeleteRecurring(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := rs.Engine.Rules.DeleteRecurringRule(c.Request.Context(), userID(c), id); err != nil {
		RenderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type CopyRequest struct {
	RuleID       int    `json:"ruleId" zog:"ruleId"`
	Kind         string `json:"kind" zog:"kind"`
	TargetTankID string `json:"targetTankId" zog:"targetTankId"`
}

var copyRequestSchema = z.Struct(z.Shape{
	"RuleID":       z.Int().Required().GT(0),
	"Kind":         z.String().Required().OneOf(ruleKinds),
	"TargetTankID": z.String().Trim().Required(),
})

func (rs *RestfulServer) PostCopy(c *gin.Context) {
	var req CopyRequest
	if issues := copyRequestSchema.Parse(zhttp.Request(c.Request), &req); issues != nil {
		renderIssues(c, issues)
		return
	}

	result, err := rs.Engine.Rules.CopyRule(c.Request.Context(), userID(c), models.CopyRequest{
		RuleID:       uint(req.RuleID),
		Kind:         models.RuleKind(req.Kind),
		TargetTankID: req.TargetTankID,
	})
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
