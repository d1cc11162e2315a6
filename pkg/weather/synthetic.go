package weather

// Schedule produces a value for any Date, the Go rendering of the
// original's `Box<dyn Schedule<Float>>` per-field factories: a plain
// function value does the same job without an interface plus boxed
// allocation for what is, in every concrete use, a pure function of Date.
type Schedule func(Date) float64

// ConstantSchedule returns a Schedule that ignores its Date and always
// yields v, the equivalent of the original's EmptySchedule default.
func ConstantSchedule(v float64) Schedule {
	return func(Date) float64 { return v }
}

// SyntheticWeather synthesizes CurrentWeather samples from one Schedule per
// field, for tests and quick iteration without an EPW file. Fields left nil
// default to a constant: 20 C dry-bulb, 10 C dew point, 0.5 relative
// humidity, 101325 Pa pressure, and zero for the other numeric fields; a
// nil HorizontalIR leaves the sample's HorizontalIR nil.
type SyntheticWeather struct {
	DryBulbTemperature          Schedule
	DewPointTemperature         Schedule
	GlobalHorizontalIrradiance  Schedule
	DirectNormalIrradiance      Schedule
	DiffuseHorizontalIrradiance Schedule
	WindSpeed                   Schedule
	WindDirection               Schedule
	HorizontalIR                Schedule
	OpaqueSkyCover              Schedule
	RelativeHumidity            Schedule
	Pressure                    Schedule
}

func (s *SyntheticWeather) at(sched Schedule, date Date, def float64) float64 {
	if sched == nil {
		return def
	}
	return sched(date)
}

// CurrentWeather evaluates every configured schedule at date.
func (s *SyntheticWeather) CurrentWeather(date Date) (CurrentWeather, error) {
	ghi := s.at(s.GlobalHorizontalIrradiance, date, 0)
	dni := s.at(s.DirectNormalIrradiance, date, 0)
	dhi := s.at(s.DiffuseHorizontalIrradiance, date, 0)
	var horizIR *float64
	if s.HorizontalIR != nil {
		v := s.HorizontalIR(date)
		horizIR = &v
	}
	return CurrentWeather{
		Date:                        date,
		DryBulbTemperature:          s.at(s.DryBulbTemperature, date, 20),
		DewPointTemperature:         s.at(s.DewPointTemperature, date, 10),
		GlobalHorizontalIrradiance:  &ghi,
		DirectNormalIrradiance:      &dni,
		DiffuseHorizontalIrradiance: &dhi,
		WindSpeed:                   s.at(s.WindSpeed, date, 0),
		WindDirection:               s.at(s.WindDirection, date, 0),
		HorizontalIR:                horizIR,
		OpaqueSkyCover:             s.at(s.OpaqueSkyCover, date, 0),
		RelativeHumidity:            s.at(s.RelativeHumidity, date, 0.5),
		Pressure:                    s.at(s.Pressure, date, 101325),
	}, nil
}
