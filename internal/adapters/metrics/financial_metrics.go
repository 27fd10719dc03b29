package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// FinancialMetricsCollector handles credits, transaction, and trade
// profitability metrics, grounded on the teacher's FinancialMetricsCollector
// shape. Unlike the teacher's version, there is no periodic P&L poll here —
// UserAgent already holds the authoritative in-memory ledger and pushes
// RecordTransaction/RecordTrade directly after every credits-changing
// operation, so there is nothing to poll through a query bus.
type FinancialMetricsCollector struct {
	creditsBalance *prometheus.GaugeVec

	transactionsTotal *prometheus.CounterVec
	transactionAmount *prometheus.HistogramVec

	tradeProfitPerUnit *prometheus.HistogramVec
	tradeMarginPercent *prometheus.HistogramVec
}

// NewFinancialMetricsCollector creates a new financial metrics collector.
func NewFinancialMetricsCollector() *FinancialMetricsCollector {
	return &FinancialMetricsCollector{
		creditsBalance: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "user_credits_balance",
				Help:      "Current credits balance for each user",
			},
			[]string{"user_id"},
		),
		transactionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transactions_total",
				Help:      "Total number of transactions by type and category",
			},
			[]string{"user_id", "type", "category"},
		),
		transactionAmount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transaction_amount",
				Help:      "Transaction amount distribution",
				Buckets:   []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000},
			},
			[]string{"user_id", "type", "category"},
		),
		tradeProfitPerUnit: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "trade_profit_per_unit",
				Help:      "Profit per unit from trades",
				Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000},
			},
			[]string{"user_id", "good_symbol"},
		),
		tradeMarginPercent: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "trade_margin_percent",
				Help:      "Trade margin percentage ((sell-buy)/buy * 100)",
				Buckets:   []float64{5, 10, 25, 50, 75, 100, 150, 200},
			},
			[]string{"user_id", "good_symbol"},
		),
	}
}

// Register registers all financial metrics with the Prometheus registry.
func (c *FinancialMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}
	metrics := []prometheus.Collector{
		c.creditsBalance,
		c.transactionsTotal,
		c.transactionAmount,
		c.tradeProfitPerUnit,
		c.tradeMarginPercent,
	}
	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// RecordTransaction records a transaction event and the balance it resulted in.
func (c *FinancialMetricsCollector) RecordTransaction(userID int, transactionType string, category string, amount int, creditsBalance int) {
	userIDStr := strconv.Itoa(userID)
	c.creditsBalance.WithLabelValues(userIDStr).Set(float64(creditsBalance))
	c.transactionsTotal.WithLabelValues(userIDStr, transactionType, category).Inc()

	absAmount := amount
	if absAmount < 0 {
		absAmount = -absAmount
	}
	c.transactionAmount.WithLabelValues(userIDStr, transactionType, category).Observe(float64(absAmount))
}

// RecordTrade records trade profitability metrics for one completed sale.
func (c *FinancialMetricsCollector) RecordTrade(userID int, goodSymbol string, buyPrice int, sellPrice int, quantity int) {
	if buyPrice <= 0 || sellPrice <= 0 || quantity <= 0 {
		return
	}
	userIDStr := strconv.Itoa(userID)
	profitPerUnit := sellPrice - buyPrice
	c.tradeProfitPerUnit.WithLabelValues(userIDStr, goodSymbol).Observe(float64(profitPerUnit))

	marginPercent := float64(profitPerUnit) / float64(buyPrice) * 100
	c.tradeMarginPercent.WithLabelValues(userIDStr, goodSymbol).Observe(marginPercent)
}
