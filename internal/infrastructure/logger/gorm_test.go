package logger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

var errDuplicateEntry = errors.New("duplicated key not allowed")

func newObservedGorm(cfg GormConfig) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), cfg), recorded
}

func TestNewGormLogger_Defaults(t *testing.T) {
	gl, _ := newObservedGorm(GormConfig{})
	assert.Equal(t, gormlogger.Warn, gl.level)
	assert.Equal(t, DefaultSlowQuery, gl.slowThreshold)
}

func TestGormLogger_LogMode(t *testing.T) {
	gl, _ := newObservedGorm(GormConfig{Level: "info"})
	changed, ok := gl.LogMode(gormlogger.Warn).(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Info, gl.level)
	assert.Equal(t, gormlogger.Warn, changed.level)
}

func TestGormLogger_Trace(t *testing.T) {
	query := func() (string, int64) { return "select value from counters", 1 }

	tests := []struct {
		name      string
		cfg       GormConfig
		begin     time.Time
		err       error
		wantMsg   string
		wantLevel zapcore.Level
	}{
		{
			name:      "unexpected error",
			cfg:       GormConfig{Level: "warn"},
			err:       errors.New("disk full"),
			wantMsg:   "SQL Error",
			wantLevel: zapcore.ErrorLevel,
		},
		{
			name: "record not found is quiet at warn",
			cfg:  GormConfig{Level: "warn"},
			err:  gormlogger.ErrRecordNotFound,
		},
		{
			name:      "record not found is debug at info",
			cfg:       GormConfig{Level: "info"},
			err:       gormlogger.ErrRecordNotFound,
			wantMsg:   "SQL expected error",
			wantLevel: zapcore.DebugLevel,
		},
		{
			name: "configured expected error is not an error",
			cfg:  GormConfig{Level: "warn", Expected: []error{errDuplicateEntry}},
			err:  fmt.Errorf("create cash entry: %w", errDuplicateEntry),
		},
		{
			name:      "cancelled statement warns",
			cfg:       GormConfig{Level: "warn"},
			err:       context.Canceled,
			wantMsg:   "SQL cancelled",
			wantLevel: zapcore.WarnLevel,
		},
		{
			name:      "slow statement warns",
			cfg:       GormConfig{Level: "warn", SlowThreshold: time.Millisecond},
			begin:     time.Now().Add(-time.Second),
			wantMsg:   "Slow SQL",
			wantLevel: zapcore.WarnLevel,
		},
		{
			name: "fast statement is quiet at warn",
			cfg:  GormConfig{Level: "warn"},
		},
		{
			name: "silent logs nothing",
			cfg:  GormConfig{Level: "silent"},
			err:  errors.New("disk full"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gl, recorded := newObservedGorm(tt.cfg)
			begin := tt.begin
			if begin.IsZero() {
				begin = time.Now()
			}
			gl.Trace(context.Background(), begin, query, tt.err)

			logs := recorded.All()
			if tt.wantMsg == "" {
				assert.Empty(t, logs)
				return
			}
			require.Len(t, logs, 1)
			assert.Equal(t, tt.wantMsg, logs[0].Message)
			assert.Equal(t, tt.wantLevel, logs[0].Level)
			assert.Equal(t, "SELECT", logs[0].ContextMap()["op"])
		})
	}
}

func TestGormLogger_TraceCarriesRequestID(t *testing.T) {
	gl, recorded := newObservedGorm(GormConfig{Level: "warn"})
	ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-9")
	gl.Trace(ctx, time.Now(), func() (string, int64) { return "UPDATE banks SET balance = 1", 0 }, errors.New("disk full"))

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "req-9", logs[0].ContextMap()["request_id"])
	assert.Equal(t, "UPDATE", logs[0].ContextMap()["op"])
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("ERROR"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel(""))
}
