// Package metrics defines the Prometheus instruments for the bank core and
// its HTTP surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Account metrics
	AccountsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "securebank_accounts_created_total",
		Help: "Total number of accounts created",
	})

	// Transfer metrics
	TransfersCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "securebank_transfers_completed_total",
		Help: "Total number of completed transfers",
	})
	TransferErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "securebank_transfer_errors_total",
			Help: "Total number of rejected transfers by reason",
		},
		[]string{"reason"},
	)

	// Authentication metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "securebank_auth_attempts_total",
			Help: "Total authentication attempts by outcome",
		},
		[]string{"status"},
	)

	// OTP metrics
	OTPIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "securebank_otp_issued_total",
		Help: "Total number of OTP challenges issued",
	})
	OTPVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "securebank_otp_verifications_total",
			Help: "Total OTP verification attempts by outcome",
		},
		[]string{"status"},
	)
)
