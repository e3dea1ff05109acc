package models

import (
	"time"
)

type SensorKind string

const (
	SensorWaterTemperature SensorKind = "WATER_TEMPERATURE"
	SensorDissolvedOxygen  SensorKind = "DO"
	SensorPH               SensorKind = "PH"
	SensorAmmonium         SensorKind = "NH4"
	SensorNitrite          SensorKind = "NO2"
	SensorAlkalinity       SensorKind = "ALK"
)

var SensorKinds = []SensorKind{
	SensorWaterTemperature,
	SensorDissolvedOxygen,
	SensorPH,
	SensorAmmonium,
	SensorNitrite,
	SensorAlkalinity,
}

type ConditionCategory string

const (
	ConditionCategoryFeeding ConditionCategory = "FEEDING"
	ConditionCategoryAlert   ConditionCategory = "ALERT"
)

type TaskType string

const (
	TaskTypeFeeding      TaskType = "FEEDING"
	TaskTypeAlert        TaskType = "ALERT"
	TaskTypeRecurring    TaskType = "RECURRING"
	TaskTypeFeedIncrease TaskType = "FEED_INCREASE"
)

type Tank struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name      string    `json:"name"`
	UserID    string    `gorm:"index;type:varchar(64)" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type DeviceToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index;type:varchar(64)" json:"userId"`
	Token     string    `gorm:"uniqueIndex;type:varchar(512)" json:"token"`
	CreatedAt time.Time `json:"createdAt"`
}

type ThresholdCondition struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	TankID         string            `gorm:"index:idx_threshold_tank_sensor;type:varchar(64);not null" json:"tankId"`
	Tank           *Tank             `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name           string            `json:"name"`
	Sensor         SensorKind        `gorm:"index:idx_threshold_tank_sensor;type:varchar(32)" json:"sensor"`
	Operator       Operator          `gorm:"type:varchar(8)" json:"operator"`
	Value          float64           `json:"value"`
	Category       ConditionCategory `gorm:"type:varchar(16)" json:"category"`
	Recommendation string            `json:"recommendation,omitempty"`
	Message        string            `json:"message"`
	Version        int               `gorm:"not null;default:1" json:"version"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

type FeedIncreaseRule struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	TankID                string     `gorm:"uniqueIndex;type:varchar(64);not null" json:"tankId"`
	Tank                  *Tank      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name                  string     `json:"name"`
	ReferenceHour         int        `json:"referenceHour"`
	ExpectedFeedAmount    float64    `json:"expectedFeedAmount"`
	DailyMessageSentCount int        `json:"dailyMessageSentCount"`
	TotalMessageSent      int        `json:"totalMessageSent"`
	LastMessageSent       *time.Time `json:"lastMessageSent"`
	Version               int        `gorm:"not null;default:1" json:"version"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// FeedingHours are the reminder hours of the daily cycle, reference hour first.
func (r *FeedIncreaseRule) FeedingHours() [4]int {
	const interval = 6
	var hours [4]int
	for i := range hours {
		hours[i] = (r.ReferenceHour + i*interval) % 24
	}
	return hours
}

func (r *FeedIncreaseRule) IsFeedingHour(hour int) bool {
	for _, h := range r.FeedingHours() {
		if h == hour {
			return true
		}
	}
	return false
}

func (r *FeedIncreaseRule) FeedPerTime() float64 {
	return r.ExpectedFeedAmount / 4
}

type RecurringRule struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	TankID           string       `gorm:"index;type:varchar(64);not null" json:"tankId"`
	Tank             *Tank        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name             string       `json:"name"`
	IntervalType     IntervalType `gorm:"type:varchar(16)" json:"intervalType"`
	IntervalValue    int          `json:"intervalValue"`
	Message          string       `json:"message"`
	EndDate          *time.Time   `json:"endDate"`
	EndingCount      *int         `json:"endingCount"`
	LastMessageSent  time.Time    `json:"lastMessageSent"`
	TotalMessageSent int          `json:"totalMessageSent"`
	Version          int          `gorm:"not null;default:1" json:"version"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// Retired reports whether an end condition has been met at now.
func (r *RecurringRule) Retired(now time.Time) bool {
	if r.EndDate != nil && now.After(*r.EndDate) {
		return true
	}
	if r.EndingCount != nil && r.TotalMessageSent >= *r.EndingCount {
		return true
	}
	return false
}

// NextTrigger is the occurrence after LastMessageSent. Calendar units are added on the
// wall clock of loc, so month ends are those of the local calendar.
func (r *RecurringRule) NextTrigger(loc *time.Location) time.Time {
	return AddInterval(r.LastMessageSent.In(loc), r.IntervalType, r.IntervalValue)
}

type Task struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TankID    string    `gorm:"index;type:varchar(64);not null" json:"tankId"`
	Tank      *Tank     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Message   string    `json:"message"`
	Type      TaskType  `gorm:"type:varchar(16);check:type IN ('FEEDING','ALERT','RECURRING','FEED_INCREASE')" json:"type"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

type HusbandryRecord struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	TankID           string    `gorm:"uniqueIndex:idx_husbandry_tank_timestamp;type:varchar(64);not null" json:"tankId"`
	Tank             *Tank     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Timestamp        time.Time `gorm:"uniqueIndex:idx_husbandry_tank_timestamp" json:"timestamp"`
	IsClean          *bool     `json:"isClean"`
	WaterTemperature *float64  `json:"waterTemperature"`
	DissolvedOxygen  *float64  `json:"dissolvedOxygen"`
	PH               *float64  `json:"ph"`
	Ammonium         *float64  `json:"ammonium"`
	Nitrite          *float64  `json:"nitrite"`
	Alkalinity       *float64  `json:"alkalinity"`

	Feedings    []FeedingRecord    `gorm:"constraint:OnDelete:CASCADE" json:"feedings"`
	Supplements []SupplementDosing `gorm:"constraint:OnDelete:CASCADE" json:"supplements"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type FeedingRecord struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	HusbandryRecordID uint    `gorm:"index" json:"husbandryRecordId"`
	TankID            string  `gorm:"index:idx_feeding_tank_created;type:varchar(64)" json:"tankId"`
	Type              string  `json:"type"`
	Amount            float64 `json:"amount"`
	// CreatedAt is the timestamp of the owning husbandry record, not the insert time.
	CreatedAt time.Time `gorm:"index:idx_feeding_tank_created;autoCreateTime:false" json:"createdAt"`
}

type SupplementDosing struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	HusbandryRecordID uint    `gorm:"index" json:"husbandryRecordId"`
	Name              string  `json:"name"`
	Dosage            float64 `json:"dosage"`
}

// All returns every model for migration, parents first.
func All() []any {
	return []any{
		&Tank{},
		&DeviceToken{},
		&ThresholdCondition{},
		&FeedIncreaseRule{},
		&RecurringRule{},
		&Task{},
		&HusbandryRecord{},
		&FeedingRecord{},
		&SupplementDosing{},
	}
}
