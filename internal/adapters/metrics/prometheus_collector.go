package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "spacetraders"
	// Subsystem for daemon metrics
	subsystem = "daemon"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalShipCollector is the singleton ship machine metrics collector,
	// set by SetGlobalShipCollector() when metrics are enabled.
	globalShipCollector ShipMetricsRecorder

	// globalFinancialCollector is the singleton financial metrics collector,
	// set by SetGlobalFinancialCollector() when metrics are enabled.
	globalFinancialCollector FinancialMetricsRecorder

	// globalAPICollector is the singleton API transport metrics collector,
	// set by SetGlobalAPICollector() when metrics are enabled.
	globalAPICollector APIMetricsRecorder
)

// APIMetricsRecorder defines the interface for recording Gateway transport
// events: request outcomes, retries, and rate-limiter wait time.
type APIMetricsRecorder interface {
	RecordAPIRequest(method, endpoint string, statusCode int, duration float64)
	RecordAPIRetry(method, endpoint, reason string)
	RecordRateLimitWait(method, endpoint string, duration float64)
}

// ShipMetricsRecorder defines the interface for recording ShipMachine step
// events. Used by the supervisor, which owns every ship's tick loop.
type ShipMetricsRecorder interface {
	RecordStep(shipID, variant string, duration float64, success bool)
	RecordMorph(shipID, fromVariant, toVariant string)
	RecordReset(shipID, variant string)
}

// FinancialMetricsRecorder defines the interface for recording financial
// metrics: ledger transactions and completed trades.
type FinancialMetricsRecorder interface {
	RecordTransaction(userID int, transactionType string, category string, amount int, creditsBalance int)
	RecordTrade(userID int, goodSymbol string, buyPrice int, sellPrice int, quantity int)
}

// InitRegistry initializes the Prometheus registry. Called once at startup
// if metrics are enabled.
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry, nil if uninitialized.
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled.
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalShipCollector sets the global ship machine metrics collector.
func SetGlobalShipCollector(collector ShipMetricsRecorder) {
	globalShipCollector = collector
}

// RecordStep records a ShipMachine.Step() completion globally.
func RecordStep(shipID, variant string, duration float64, success bool) {
	if globalShipCollector != nil {
		globalShipCollector.RecordStep(shipID, variant, duration, success)
	}
}

// RecordMorph records a ShipMachine variant transition globally.
func RecordMorph(shipID, fromVariant, toVariant string) {
	if globalShipCollector != nil {
		globalShipCollector.RecordMorph(shipID, fromVariant, toVariant)
	}
}

// RecordReset records a ShipMachine.Reset() call globally.
func RecordReset(shipID, variant string) {
	if globalShipCollector != nil {
		globalShipCollector.RecordReset(shipID, variant)
	}
}

// SetGlobalFinancialCollector sets the global financial metrics collector.
func SetGlobalFinancialCollector(collector FinancialMetricsRecorder) {
	globalFinancialCollector = collector
}

// RecordTransaction records a transaction event globally.
func RecordTransaction(userID int, transactionType string, category string, amount int, creditsBalance int) {
	if globalFinancialCollector != nil {
		globalFinancialCollector.RecordTransaction(userID, transactionType, category, amount, creditsBalance)
	}
}

// RecordTrade records trade profitability metrics globally.
func RecordTrade(userID int, goodSymbol string, buyPrice int, sellPrice int, quantity int) {
	if globalFinancialCollector != nil {
		globalFinancialCollector.RecordTrade(userID, goodSymbol, buyPrice, sellPrice, quantity)
	}
}

// SetGlobalAPICollector sets the global API transport metrics collector.
func SetGlobalAPICollector(collector APIMetricsRecorder) {
	globalAPICollector = collector
}

// RecordAPIRequest records a Gateway request completion globally.
func RecordAPIRequest(method, endpoint string, statusCode int, duration float64) {
	if globalAPICollector != nil {
		globalAPICollector.RecordAPIRequest(method, endpoint, statusCode, duration)
	}
}

// RecordAPIRetry records a Gateway retry attempt globally.
func RecordAPIRetry(method, endpoint, reason string) {
	if globalAPICollector != nil {
		globalAPICollector.RecordAPIRetry(method, endpoint, reason)
	}
}

// RecordRateLimitWait records Gateway rate-limiter wait time globally.
func RecordRateLimitWait(method, endpoint string, duration float64) {
	if globalAPICollector != nil {
		globalAPICollector.RecordRateLimitWait(method, endpoint, duration)
	}
}
