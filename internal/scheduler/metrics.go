package scheduler

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/germolinal/simple-sub002/internal/common/logger"
	"github.com/germolinal/simple-sub002/pkg/weather"
)

// timerStart is an opaque handle returned by Metrics.startTimer, passed
// back into ObserveMarchDuration; kept as a named type rather than a bare
// time.Time. A Driver with nil metrics holds the zero value and checks for
// nil metrics before each call.
type timerStart time.Time

// Metrics is the optional prometheus exporter a long-running simulation
// can expose so an operator can watch a year-long run progress without
// parsing its output CSV.
type Metrics struct {
	stepCounter     prometheus.Counter
	simulatedHour   prometheus.Gauge
	marchDuration   *prometheus.HistogramVec
	registry        *prometheus.Registry
}

// NewMetrics builds a fresh registry and the three gauges/histograms the
// scheduler reports against.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		stepCounter: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "simplesim_main_steps_total",
			Help: "Number of main timesteps completed so far in this run.",
		}),
		simulatedHour: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "simplesim_simulated_hour_of_year",
			Help: "Hours elapsed in the abstract annual cycle at the current timestep.",
		}),
		marchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "simplesim_module_march_duration_seconds",
			Help:    "Wall-clock duration of one module's March call.",
			Buckets: prometheus.DefBuckets,
		}, []string{"module"}),
	}
	reg.MustRegister(m.stepCounter, m.simulatedHour, m.marchDuration)
	return m
}

// Serve starts the metrics HTTP exporter at addr in the background,
// logging (not returning) any listener error since a metrics outage should
// never abort the simulation it is merely observing.
func (m *Metrics) Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("scheduler: metrics server on %s stopped: %v", addr, err)
		}
	}()
	logger.Info("scheduler: metrics exporter listening on %s", addr)
}

func (m *Metrics) startTimer() timerStart { return timerStart(time.Now()) }

// ObserveMarchDuration records how long module's March call took, keyed by
// module name.
func (m *Metrics) ObserveMarchDuration(module string, start timerStart) {
	m.marchDuration.WithLabelValues(module).Observe(time.Since(time.Time(start)).Seconds())
}

// ObserveStep records the simulated date and the step counter after a
// completed main-timestep march.
func (m *Metrics) ObserveStep(date weather.Date, step int) {
	m.stepCounter.Inc()
	m.simulatedHour.Set(hoursIntoYear(date))
}

// hoursIntoYear converts a Date into a monotonically increasing hour
// count for the gauge, independent of the metrics package knowing
// anything about month lengths beyond what Date already encodes.
func hoursIntoYear(d weather.Date) float64 {
	days := 0
	months := [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	for i := 0; i < d.Month-1; i++ {
		days += months[i]
	}
	days += d.Day - 1
	return float64(days)*24 + d.Hour
}
