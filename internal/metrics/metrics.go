package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymflex_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymflex_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymflex_bookings_total",
			Help: "Booking creation attempts by outcome",
		},
		[]string{"outcome"},
	)

	ExtensionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymflex_session_extensions_total",
			Help: "Session extension attempts by outcome",
		},
		[]string{"outcome"},
	)

	CancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymflex_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	WalletTopUpsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymflex_wallet_topups_total",
			Help: "Total number of wallet top-ups",
		},
	)

	InsufficientFundsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymflex_insufficient_funds_total",
			Help: "Charges rejected for insufficient balance",
		},
	)

	QRValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymflex_qr_validations_total",
			Help: "QR payload validations by result",
		},
		[]string{"result"},
	)

	IntegrityFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymflex_ledger_integrity_failures_total",
			Help: "Ledger integrity check failures",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(outcome string) {
	BookingsTotal.WithLabelValues(outcome).Inc()
}

func RecordExtension(outcome string) {
	ExtensionsTotal.WithLabelValues(outcome).Inc()
}

func RecordCancellation() {
	CancellationsTotal.Inc()
}

func RecordWalletTopUp() {
	WalletTopUpsTotal.Inc()
}

func RecordInsufficientFunds() {
	InsufficientFundsTotal.Inc()
}

func RecordQRValidation(result string) {
	QRValidationsTotal.WithLabelValues(result).Inc()
}

func RecordIntegrityFailure() {
	IntegrityFailuresTotal.Inc()
}
