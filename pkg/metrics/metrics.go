package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ReservationOutcomes *prometheus.CounterVec
	AvailabilityQueries *prometheus.CounterVec
	RemindersTotal      *prometheus.CounterVec
	NotificationsFailed *prometheus.CounterVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec
}

// New создает и регистрирует коллекторы в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает коллекторы и регистрирует их в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		ReservationOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_requests_total",
			Help:        "Reservation requests by outcome (accepted or rejection code)",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		AvailabilityQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_queries_total",
			Help:        "Availability queries by source (cache or computed)",
			ConstLabels: constLabels,
		}, []string{"source"}),

		RemindersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_reminders_total",
			Help:        "Reminder notifications by result",
			ConstLabels: constLabels,
		}, []string{"result"}),

		NotificationsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_failed_total",
			Help:        "Notification events that could not be published",
			ConstLabels: constLabels,
		}, []string{"kind"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ReservationOutcomes,
		m.AvailabilityQueries,
		m.RemindersTotal,
		m.NotificationsFailed,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
	)

	return m
}

// ObserveReservation увеличивает счетчик исходов бронирования. Безопасен для nil
func (m *Metrics) ObserveReservation(outcome string) {
	if m == nil {
		return
	}
	m.ReservationOutcomes.WithLabelValues(outcome).Inc()
}

// ObserveAvailability увеличивает счетчик запросов доступности. Безопасен для nil
func (m *Metrics) ObserveAvailability(source string) {
	if m == nil {
		return
	}
	m.AvailabilityQueries.WithLabelValues(source).Inc()
}

// ObserveReminder увеличивает счетчик напоминаний. Безопасен для nil
func (m *Metrics) ObserveReminder(result string) {
	if m == nil {
		return
	}
	m.RemindersTotal.WithLabelValues(result).Inc()
}

// ObserveNotificationFailure увеличивает счетчик неотправленных уведомлений. Безопасен для nil
func (m *Metrics) ObserveNotificationFailure(kind string) {
	if m == nil {
		return
	}
	m.NotificationsFailed.WithLabelValues(kind).Inc()
}
