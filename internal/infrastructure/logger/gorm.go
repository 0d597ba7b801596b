package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowQuery is the slow statement threshold when none is configured
const DefaultSlowQuery = 200 * time.Millisecond

// GormConfig controls what the GORM adapter reports
type GormConfig struct {
	Level         string // silent, error, warn, info
	SlowThreshold time.Duration
	// Expected errors are routine ledger outcomes, such as a duplicate cash
	// entry for a branch and date. They are logged at debug, not error.
	// Record-not-found is always expected.
	Expected []error
}

// GormLogger routes GORM statements through zap with the request and trace
// ids of the calling operation
type GormLogger struct {
	logger        *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
	expected      []error
}

// NewGormLogger creates a GORM logger backed by zap
func NewGormLogger(zapLogger *zap.Logger, cfg GormConfig) *GormLogger {
	if cfg.SlowThreshold <= 0 {
		cfg.SlowThreshold = DefaultSlowQuery
	}
	return &GormLogger{
		logger:        zapLogger.Named("gorm"),
		level:         MapGormLogLevel(cfg.Level),
		slowThreshold: cfg.SlowThreshold,
		expected:      append([]error{gormlogger.ErrRecordNotFound}, cfg.Expected...),
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		WithTraceContext(ctx, l.logger).Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		WithTraceContext(ctx, l.logger).Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		WithTraceContext(ctx, l.logger).Sugar().Errorf(msg, data...)
	}
}

// Trace reports one executed statement. Failures are errors unless expected,
// cancellations are warnings, statements over the slow threshold are warnings
// and everything else is debug output at the info level.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.String("op", statementOp(sql)),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}
	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	log := WithTraceContext(ctx, l.logger)

	switch {
	case err != nil && l.isExpected(err):
		if l.level >= gormlogger.Info {
			log.Debug("SQL expected error", append(fields, zap.Error(err))...)
		}
	case err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)):
		if l.level >= gormlogger.Warn {
			log.Warn("SQL cancelled", append(fields, zap.Error(err))...)
		}
	case err != nil:
		if l.level >= gormlogger.Error {
			log.Error("SQL Error", append(fields, zap.Error(err))...)
		}
	case elapsed >= l.slowThreshold:
		if l.level >= gormlogger.Warn {
			log.Warn("Slow SQL", append(fields, zap.Duration("threshold", l.slowThreshold))...)
		}
	case l.level >= gormlogger.Info:
		log.Debug("SQL Query", fields...)
	}
}

func (l *GormLogger) isExpected(err error) bool {
	for _, target := range l.expected {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// statementOp returns the leading keyword of a statement, e.g. SELECT
func statementOp(sql string) string {
	op, _, _ := strings.Cut(strings.TrimSpace(sql), " ")
	return strings.ToUpper(op)
}

// MapGormLogLevel maps the database.log_level setting to a GORM log level
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "warn":
		return gormlogger.Warn
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
