package telemetry

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// BusinessMetrics records domain-level counters for goods receiving.
type BusinessMetrics struct {
	receptionsTotal     *Counter
	receivedAmountTotal *FloatCounter
	lotsCreatedTotal    *Counter

	logger  *zap.Logger
	enabled bool
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Enabled bool
	Meter   *MeterProvider
	Logger  *zap.Logger
}

// NewBusinessMetrics creates business metrics instruments. When disabled,
// the returned instance silently drops all recordings.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	bm := &BusinessMetrics{
		logger:  cfg.Logger,
		enabled: cfg.Enabled && cfg.Meter != nil && cfg.Meter.IsEnabled(),
	}

	if !bm.enabled {
		cfg.Logger.Info("Business metrics disabled")
		return bm, nil
	}

	meter := cfg.Meter.Meter("goodsflow.business")

	var err error
	bm.receptionsTotal, err = NewCounter(meter,
		"goodsflow_receptions_total",
		"Total number of goods reception events recorded",
		"{reception}",
	)
	if err != nil {
		return nil, err
	}

	bm.receivedAmountTotal, err = NewFloatCounter(meter,
		"goodsflow_received_amount_total",
		"Monetary value of goods received",
		"{currency_unit}",
	)
	if err != nil {
		return nil, err
	}

	bm.lotsCreatedTotal, err = NewCounter(meter,
		"goodsflow_lots_created_total",
		"Total number of inventory lots created by receptions",
		"{lot}",
	)
	if err != nil {
		return nil, err
	}

	cfg.Logger.Info("Business metrics initialized")
	return bm, nil
}

// RecordReception records a completed reception event for a branch.
func (bm *BusinessMetrics) RecordReception(ctx context.Context, branchID string, mode string, amount decimal.Decimal, lotCount int) {
	if !bm.enabled {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("branch_id", branchID),
		attribute.String("mode", mode),
	}

	bm.receptionsTotal.Inc(ctx, attrs...)
	bm.receivedAmountTotal.Add(ctx, amount.InexactFloat64(), attrs...)
	bm.lotsCreatedTotal.Add(ctx, int64(lotCount), attrs...)
}
