package models

func (s SensorKind) Valid() bool {
	switch s {
	case SensorWaterTemperature, SensorDissolvedOxygen, SensorPH, SensorAmmonium, SensorNitrite, SensorAlkalinity:
		return true
	}
	return false
}

func (s SensorKind) DisplayName() string {
	switch s {
	case SensorWaterTemperature:
		return "water temperature"
	case SensorDissolvedOxygen:
		return "dissolved oxygen"
	case SensorPH:
		return "pH"
	case SensorAmmonium:
		return "ammonium"
	case SensorNitrite:
		return "nitrite"
	case SensorAlkalinity:
		return "alkalinity"
	}
	return string(s)
}

// SensorValues holds zero or more readings taken at one timestamp.
type SensorValues map[SensorKind]*float64

func (r *HusbandryRecord) sensorField(kind SensorKind) **float64 {
	switch kind {
	case SensorWaterTemperature:
		return &r.WaterTemperature
	case SensorDissolvedOxygen:
		return &r.DissolvedOxygen
	case SensorPH:
		return &r.PH
	case SensorAmmonium:
		return &r.Ammonium
	case SensorNitrite:
		return &r.Nitrite
	case SensorAlkalinity:
		return &r.Alkalinity
	}
	return nil
}

func (r *HusbandryRecord) Sensor(kind SensorKind) *float64 {
	if f := r.sensorField(kind); f != nil {
		return *f
	}
	return nil
}

func (r *HusbandryRecord) SetSensor(kind SensorKind, value *float64) {
	if f := r.sensorField(kind); f != nil {
		*f = value
	}
}

func (r *HusbandryRecord) SensorValues() SensorValues {
	values := SensorValues{}
	for _, kind := range SensorKinds {
		if v := r.Sensor(kind); v != nil {
			values[kind] = v
		}
	}
	return values
}
