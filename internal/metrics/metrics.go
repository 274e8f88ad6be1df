package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics - счетчики обработки команд.
type Metrics struct {
	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
}

// New регистрирует метрики сервиса.
func New() *Metrics {
	return &Metrics{
		CommandsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "access_commands_total",
			Help: "Total processed commands by action and status",
		}, []string{"action", "status"}),

		CommandDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "access_command_duration_seconds",
			Help:    "Duration of command processing by action",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"action"}),
	}
}

// ObserveCommand записывает результат и длительность обработки команды.
func (m *Metrics) ObserveCommand(action, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.CommandsTotal.WithLabelValues(action, status).Inc()
	m.CommandDuration.WithLabelValues(action).Observe(d.Seconds())
}
