package weather

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	simerrors "github.com/germolinal/simple-sub002/internal/errors"
)

// EPWWeather is a Weather provider backed by an in-memory EnergyPlus
// Weather (EPW) file: 8760 (or 8784 in a leap year file, treated the same
// since the engine is year-agnostic) hourly lines, sorted by Date, with
// linear interpolation for any date falling between two samples.
type EPWWeather struct {
	Location SiteDetails
	lines    []CurrentWeather // sorted by Date
}

// ParseEPW reads a full EPW file from r: an 8-line header (the first line
// carries latitude/longitude/time-zone/elevation) followed by one
// comma-separated data line per hour.
func ParseEPW(r io.Reader) (*EPWWeather, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	if !scanner.Scan() {
		return nil, simerrors.New("weather", simerrors.CodeUserInput, "empty EPW file")
	}
	loc, err := parseEPWLocationLine(scanner.Text())
	if err != nil {
		return nil, err
	}

	// skip the remaining 7 header lines (design conditions, typical/extreme
	// periods, ground temperatures, holidays/daylight-saving, comments x2,
	// data periods).
	for i := 0; i < 7; i++ {
		if !scanner.Scan() {
			return nil, simerrors.New("weather", simerrors.CodeUserInput, "EPW file truncated in header")
		}
	}

	w := &EPWWeather{Location: loc}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cw, err := parseEPWDataLine(line)
		if err != nil {
			return nil, err
		}
		w.lines = append(w.lines, cw)
	}
	if err := scanner.Err(); err != nil {
		return nil, simerrors.Wrap("weather", simerrors.CodeResource, err, "failed reading EPW file")
	}
	if len(w.lines) == 0 {
		return nil, simerrors.New("weather", simerrors.CodeUserInput, "EPW file has no data lines")
	}
	return w, nil
}

func parseEPWLocationLine(line string) (SiteDetails, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 10 || !strings.EqualFold(strings.TrimSpace(fields[0]), "LOCATION") {
		return SiteDetails{}, simerrors.New("weather", simerrors.CodeUserInput, "EPW file missing LOCATION header line")
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(fields[6]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(fields[7]), 64)
	tz, err3 := strconv.ParseFloat(strings.TrimSpace(fields[8]), 64)
	elev, err4 := strconv.ParseFloat(strings.TrimSpace(fields[9]), 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return SiteDetails{}, simerrors.New("weather", simerrors.CodeUserInput, "EPW LOCATION line has malformed numeric fields")
	}
	return SiteDetails{
		Latitude:         lat * math.Pi / 180,
		Longitude:        lon * math.Pi / 180,
		StandardMeridian: tz * 15 * math.Pi / 180,
		Altitude:         elev,
		Terrain:          TerrainCity,
	}, nil
}

// EPW data-line column indices (0-based), per the standard EPW dictionary.
const (
	epwColMonth          = 1
	epwColDay            = 2
	epwColHour           = 3
	epwColDryBulb        = 6
	epwColDewPoint       = 7
	epwColRelHumidity    = 8
	epwColPressure       = 9
	epwColHorizontalIR   = 12
	epwColGlobalHoriz    = 13
	epwColDirectNormal   = 14
	epwColDiffuseHoriz   = 15
	epwColWindDirection  = 20
	epwColWindSpeed      = 21
	epwColOpaqueSkyCover = 23
)

func parseEPWDataLine(line string) (CurrentWeather, error) {
	fields := strings.Split(line, ",")
	need := epwColOpaqueSkyCover + 1
	if len(fields) < need {
		return CurrentWeather{}, simerrors.New("weather", simerrors.CodeUserInput,
			"EPW data line has %d fields, need at least %d", len(fields), need)
	}
	f := func(i int) float64 {
		v, _ := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
		return v
	}
	month := int(f(epwColMonth))
	day := int(f(epwColDay))
	// EPW hours are 1-24 for the hour *ending* at that time; the engine's
	// Date.Hour is in [0, 24), so EPW hour h maps to Hour h-1 on the same
	// day (each line is stamped at the start of the hour it covers).
	epwHour := f(epwColHour)
	hour := epwHour - 1
	if hour < 0 {
		hour = 0
	}

	ghi := f(epwColGlobalHoriz)
	dni := f(epwColDirectNormal)
	dhi := f(epwColDiffuseHoriz)
	horizIR := f(epwColHorizontalIR)

	cw := CurrentWeather{
		Date:                Date{Month: month, Day: day, Hour: hour},
		DryBulbTemperature:  f(epwColDryBulb),
		DewPointTemperature: f(epwColDewPoint),
		WindSpeed:           f(epwColWindSpeed),
		WindDirection:       f(epwColWindDirection) * math.Pi / 180,
		OpaqueSkyCover:      f(epwColOpaqueSkyCover),
		RelativeHumidity:    f(epwColRelHumidity) / 100.0,
		Pressure:            f(epwColPressure),
	}
	if ghi < 9999 {
		cw.GlobalHorizontalIrradiance = &ghi
	}
	if dni < 9999 {
		cw.DirectNormalIrradiance = &dni
	}
	if dhi < 9999 {
		cw.DiffuseHorizontalIrradiance = &dhi
	}
	if horizIR < 9999 {
		cw.HorizontalIR = &horizIR
	}
	return cw, nil
}

// CurrentWeather returns the weather at date, linearly interpolating
// between the two bracketing hourly samples.
func (w *EPWWeather) CurrentWeather(date Date) (CurrentWeather, error) {
	n := len(w.lines)
	idx := 0
	for idx < n && w.lines[idx].Date.Less(date) {
		idx++
	}
	if idx == 0 {
		return w.lines[0], nil
	}
	if idx == n {
		return w.lines[n-1], nil
	}
	prev := w.lines[idx-1]
	next := w.lines[idx]
	span := hoursSinceYearStart(next.Date) - hoursSinceYearStart(prev.Date)
	if span <= 0 {
		return next, nil
	}
	x := (hoursSinceYearStart(date) - hoursSinceYearStart(prev.Date)) / span
	if x < 0 {
		x = 0
	}
	if x > 1 {
		x = 1
	}
	return prev.Interpolate(next, x), nil
}
