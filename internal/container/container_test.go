package container

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finopsmind/costmeter/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		CostService: config.CostServiceConfig{URL: "http://localhost:8000/forecast", Timeout: time.Second},
		Session:     config.SessionConfig{IdleTimeout: time.Minute, SweepSchedule: "0 */5 * * * *"},
		Logging:     config.LoggingConfig{Format: "json"},
	}
}

func TestNew(t *testing.T) {
	ctr, err := New(testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	assert.NotNil(t, ctr.CostClient())
	assert.NotNil(t, ctr.Sessions())
	assert.NotNil(t, ctr.Logger())
	assert.Equal(t, "http://localhost:8000/forecast", ctr.Config().CostService.URL)

	ctr.Sessions().Create()
	require.NoError(t, ctr.Scheduler().RunNow(SweepJobName))
	assert.Equal(t, 1, ctr.Sessions().Len(), "fresh session survives the sweep")

	require.NoError(t, ctr.Start(context.Background()))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, ctr.Stop(ctx))
}

func TestNewRejectsBadSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.Session.SweepSchedule = "whenever"

	_, err := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
