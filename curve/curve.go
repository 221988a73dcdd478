package curve

// IsNightHour reports whether the given hour of day falls inside the night
// setback window [start, end). A window whose start exceeds its end wraps
// past midnight (e.g. 22-06 covers 22,23,0..5).
func IsNightHour(hour, start, end int) bool {
	if start > end {
		return hour >= start || hour < end
	}

	return hour >= start && hour < end
}

// RoomTarget returns the target room temperature for the given hour of day:
// the night target inside the setback window, the day target otherwise.
func (c Config) RoomTarget(hour int) float64 {
	if IsNightHour(hour, c.NightStartHour, c.NightEndHour) {
		return c.NightTarget
	}

	return c.DayTarget
}

// FlowTemperature returns the ideal flow temperature for the given outdoor
// temperature and hour of day.
//
// At or above the summer cutoff the heating is off: the second return value
// is false and the temperature must not be used. Below the cutoff the linear
// law applies, clamped to [MinFlow, MaxFlow]:
//
//	flow = clamp(base + slope*(roomTarget - outdoor), MinFlow, MaxFlow)
//
// The function is pure and defined for all finite inputs; callers must
// reject non-finite outdoor temperatures upstream.
func (c Config) FlowTemperature(outdoor float64, hour int) (float64, bool) {
	if outdoor >= c.SummerCutoff {
		return 0, false
	}

	flow := c.BaseTemperature + c.Slope*(c.RoomTarget(hour)-outdoor)
	if flow < c.MinFlow {
		flow = c.MinFlow
	} else if flow > c.MaxFlow {
		flow = c.MaxFlow
	}

	return flow, true
}
