package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled           bool
	CollectorEndpoint string
	ExportInterval    time.Duration
	ServiceName       string
	Insecure          bool
}

// MeterProvider wraps the OpenTelemetry MeterProvider with lifecycle management.
type MeterProvider struct {
	provider *sdkmetric.MeterProvider
	logger   *zap.Logger
}

// NewMeterProvider creates a periodic OTLP meter provider.
// If metrics are disabled, Meter falls back to the global no-op provider.
func NewMeterProvider(ctx context.Context, cfg MetricsConfig, logger *zap.Logger) (*MeterProvider, error) {
	mp := &MeterProvider{logger: logger}
	if !cfg.Enabled {
		logger.Info("Metrics disabled, using no-op meter provider")
		return mp, nil
	}

	interval := cfg.ExportInterval
	if interval == 0 {
		interval = 60 * time.Second
	}

	exporterOpts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint),
	}
	if cfg.Insecure {
		exporterOpts = append(exporterOpts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}

	res, err := serviceResource(cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	mp.provider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
	)
	otel.SetMeterProvider(mp.provider)

	logger.Info("OpenTelemetry MeterProvider initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.Duration("export_interval", interval),
	)
	return mp, nil
}

// Meter returns a named meter from the provider.
func (mp *MeterProvider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if mp.provider == nil {
		return otel.GetMeterProvider().Meter(name, opts...)
	}
	return mp.provider.Meter(name, opts...)
}

// Shutdown flushes pending metrics and stops the provider
func (mp *MeterProvider) Shutdown(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := mp.provider.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}
	return nil
}

// LedgerMetrics counts vouchers and money flowing through the ledgers
type LedgerMetrics struct {
	vouchers    metric.Int64Counter
	operations  metric.Int64Counter
	amount      metric.Float64Counter
	unallocated metric.Float64Counter
}

// NewLedgerMetrics registers the ledger instruments on meter
func NewLedgerMetrics(meter metric.Meter) (*LedgerMetrics, error) {
	vouchers, err := meter.Int64Counter("ledger.vouchers.issued",
		metric.WithDescription("Vouchers issued by the sequencer"),
		metric.WithUnit("{voucher}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create vouchers counter: %w", err)
	}
	operations, err := meter.Int64Counter("ledger.operations",
		metric.WithDescription("Committed ledger operations by kind"),
		metric.WithUnit("{operation}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create operations counter: %w", err)
	}
	amount, err := meter.Float64Counter("ledger.amount",
		metric.WithDescription("Money moved by committed ledger operations"))
	if err != nil {
		return nil, fmt.Errorf("failed to create amount counter: %w", err)
	}
	unallocated, err := meter.Float64Counter("ledger.supplier.unallocated",
		metric.WithDescription("Supplier payment amounts left without an open invoice"))
	if err != nil {
		return nil, fmt.Errorf("failed to create unallocated counter: %w", err)
	}
	return &LedgerMetrics{
		vouchers:    vouchers,
		operations:  operations,
		amount:      amount,
		unallocated: unallocated,
	}, nil
}

// NewNoopLedgerMetrics returns metrics bound to the global provider, a no-op until one is installed
func NewNoopLedgerMetrics() *LedgerMetrics {
	m, err := NewLedgerMetrics(otel.GetMeterProvider().Meter(TracerName))
	if err != nil {
		// the global no-op meter never fails to create instruments
		panic(err)
	}
	return m
}

// VoucherIssued counts a committed voucher
func (m *LedgerMetrics) VoucherIssued(ctx context.Context) {
	if m == nil {
		return
	}
	m.vouchers.Add(ctx, 1)
}

// RecordOperation counts a committed operation of kind with its amount.
// category further splits payments, and may be empty.
func (m *LedgerMetrics) RecordOperation(ctx context.Context, kind, category string, amount decimal.Decimal) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("category", category),
	)
	m.operations.Add(ctx, 1, attrs)
	m.amount.Add(ctx, amount.InexactFloat64(), attrs)
}

// RecordUnallocated adds a supplier overpayment
func (m *LedgerMetrics) RecordUnallocated(ctx context.Context, amount decimal.Decimal) {
	if m == nil || !amount.IsPositive() {
		return
	}
	m.unallocated.Add(ctx, amount.InexactFloat64())
}
