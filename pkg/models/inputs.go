package models

import "time"

type ThresholdInput struct {
	TankID         string
	Name           string
	Sensor         SensorKind
	Operator       Operator
	Value          float64
	Category       ConditionCategory
	Recommendation string
}

type FeedIncreaseInput struct {
	TankID        string
	Name          string
	ReferenceHour int
	// ExpectedFeedAmount overrides the amount derived from the last 24h of feedings.
	ExpectedFeedAmount *float64
}

type RecurringInput struct {
	TankID        string
	Name          string
	IntervalType  IntervalType
	IntervalValue int
	Message       string
	// EndDate is a local calendar date; the rule retires after 23:59 local on that day.
	EndDate     *string
	EndingCount *int
}

type RuleKind string

const (
	RuleKindFeeding      RuleKind = "FEEDING"
	RuleKindAlert        RuleKind = "ALERT"
	RuleKindRecurring    RuleKind = "RECURRING"
	RuleKindFeedIncrease RuleKind = "FEED_INCREASE"
)

type CopyRequest struct {
	RuleID       uint
	Kind         RuleKind
	TargetTankID string
}

// CopyResult holds exactly one non-nil rule matching Kind.
type CopyResult struct {
	Kind         RuleKind            `json:"kind"`
	Threshold    *ThresholdCondition `json:"threshold,omitempty"`
	Recurring    *RecurringRule      `json:"recurring,omitempty"`
	FeedIncrease *FeedIncreaseRule   `json:"feedIncrease,omitempty"`
}

type TankRules struct {
	Feeding      []ThresholdCondition `json:"feeding"`
	Alert        []ThresholdCondition `json:"alert"`
	Recurring    []RecurringRule      `json:"recurring"`
	FeedIncrease *FeedIncreaseRule    `json:"feedIncrease"`
}

// Retraction is a deleted task with the owner resolved for fan-out.
type Retraction struct {
	Task     Task   `json:"task"`
	UserID   string `json:"userId"`
	TankName string `json:"tankName"`
}

type FeedingInput struct {
	Type   string
	Amount float64
}

type SupplementInput struct {
	Name   string
	Dosage float64
}

type HusbandryInput struct {
	TankID    string
	Timestamp time.Time
	IsClean   *bool
	Values    SensorValues
	// nil keeps the stored rows, an empty slice clears them.
	Feedings    []FeedingInput
	Supplements []SupplementInput
}

type IngestResult struct {
	Record    *HusbandryRecord      `json:"record"`
	Created   bool                  `json:"created"`
	Evaluated []SensorKind          `json:"evaluated"`
	Tasks     []Task                `json:"tasks"`
	Errors    map[SensorKind]string `json:"errors,omitempty"`
}

type FeedingRollup struct {
	Total float64
	Max   float64
	Count int64
}
