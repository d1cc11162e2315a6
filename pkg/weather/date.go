// Package weather provides the simulation's time axis (Date, Period), the
// CurrentWeather vector every physics module reads, and the two concrete
// Weather providers the engine ships with: an EPW file reader and a
// synthetic schedule-driven source for tests and quick iteration. It also
// carries the solar-position and sky-model math the optical engine needs to
// turn a CurrentWeather sample into a Reinhart sky vector.
package weather

import "fmt"

// Date is a month/day/hour stamp with no year: the engine simulates an
// abstract annual cycle, not a calendar year. Month and Day are 1-indexed;
// Hour is in [0, 24).
type Date struct {
	Month int
	Day   int
	Hour  float64
}

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the day count of the given 1-indexed month in a
// non-leap year, the convention the engine's weather files and schedules
// use throughout.
func DaysInMonth(month int) int { return daysInMonth[month-1] }

// Less reports whether d sorts before o in a (Month, Day, Hour) ordering.
func (d Date) Less(o Date) bool {
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	if d.Day != o.Day {
		return d.Day < o.Day
	}
	return d.Hour < o.Hour
}

// LessOrEqual reports d <= o.
func (d Date) LessOrEqual(o Date) bool { return d.Less(o) || d == o }

// AddSeconds returns d advanced by s seconds, rolling over day and month
// (and, since there is no year field, silently wrapping December 31st back
// to January 1st).
func (d Date) AddSeconds(s float64) Date {
	out := d
	out.Hour += s / 3600.0
	for out.Hour >= 24.0 {
		out.Hour -= 24.0
		out.Day++
		if out.Day > DaysInMonth(out.Month) {
			out.Day = 1
			out.Month++
			if out.Month > 12 {
				out.Month = 1
			}
		}
	}
	return out
}

// Interpolate linearly interpolates between d and o at parameter x in
// [0, 1], handling a single month/day rollover between the two stamps (the
// case every hourly-to-hourly weather interpolation needs).
func (d Date) Interpolate(o Date, x float64) Date {
	if o.Less(d) {
		// o wrapped around new year relative to d; treat o as one full
		// cycle ahead for the purpose of this single interpolation.
		totalHours := hoursUntilWrap(d) + hoursSinceYearStart(o)
		return d.AddSeconds(x * totalHours * 3600)
	}
	dh := hoursSinceYearStart(o) - hoursSinceYearStart(d)
	return d.AddSeconds(x * dh * 3600)
}

func hoursSinceYearStart(d Date) float64 {
	days := 0
	for m := 1; m < d.Month; m++ {
		days += DaysInMonth(m)
	}
	days += d.Day - 1
	return float64(days)*24 + d.Hour
}

func hoursUntilWrap(d Date) float64 {
	total := 0
	for m := 1; m <= 12; m++ {
		total += DaysInMonth(m)
	}
	return float64(total)*24 - hoursSinceYearStart(d)
}

func (d Date) String() string {
	return fmt.Sprintf("%02d-%02d %05.2fh", d.Month, d.Day, d.Hour)
}

// Period iterates Date stamps from Start to End (inclusive) at a fixed
// timestep, correctly rolling over a year boundary when Start is later than
// End in (Month, Day, Hour) order.
type Period struct {
	Start, End Date
	DtSeconds  float64

	current      Date
	started      bool
	wrapsNewYear bool
}

// NewPeriod builds a Period iterator. Panics on an hour outside [0, 24), the
// same guard the original date type enforces at construction.
func NewPeriod(start, end Date, dtSeconds float64) *Period {
	if start.Hour < 0 || start.Hour >= 24 || end.Hour < 0 || end.Hour >= 24 {
		panic(fmt.Sprintf("weather: hour must be in [0, 24), got start=%v end=%v", start.Hour, end.Hour))
	}
	return &Period{
		Start: start, End: end, DtSeconds: dtSeconds,
		current:      start,
		wrapsNewYear: end.Less(start),
	}
}

// Contains reports whether date falls within the period, year-agnostic.
func (p *Period) Contains(date Date) bool {
	if !p.wrapsNewYear {
		return date.LessOrEqual(p.End) && p.Start.LessOrEqual(date)
	}
	return date.LessOrEqual(p.End) || p.End.Less(date) && p.Start.LessOrEqual(date)
}

// Next advances the iterator and returns the next Date, or ok=false once
// the period has been exhausted (mirroring the crossed-end/crossed-new-year
// stop condition of the original iterator).
func (p *Period) Next() (Date, bool) {
	if !p.started {
		p.started = true
		return p.current, true
	}
	old := p.current
	next := p.current.AddSeconds(p.DtSeconds)

	vsEndBefore := old.LessOrEqual(p.End)
	vsEndAfter := next.LessOrEqual(p.End)
	crossedEnd := vsEndBefore != vsEndAfter
	crossedNewYear := next.Less(old)

	if (crossedNewYear || crossedEnd) && (!crossedNewYear || !p.wrapsNewYear) {
		return Date{}, false
	}
	p.current = next
	return p.current, true
}

// Reset rewinds the iterator back to Start.
func (p *Period) Reset() {
	p.current = p.Start
	p.started = false
}
