package database

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	coremocks "github.com/amirhossein-jamali/wallet-ledger/mocks/port/core"
)

type fixedStats sql.DBStats

func (s fixedStats) Stats() sql.DBStats { return sql.DBStats(s) }

func TestConnectionPoolMonitorCollectMetrics(t *testing.T) {
	t.Run("Healthy pool is recorded quietly", func(t *testing.T) {
		log := coremocks.NewMockLogger(t)
		monitor := NewConnectionPoolMonitor(fixedStats{MaxOpenConnections: 10, InUse: 2, Idle: 3, OpenConnections: 5}, log)

		monitor.collectMetrics()

		metrics := monitor.GetMetrics()
		assert.Equal(t, 2, metrics.InUse)
		assert.Equal(t, 3, metrics.IdleConnections)
		assert.Equal(t, 5, metrics.OpenConnections)
	})

	t.Run("Saturated pool warns", func(t *testing.T) {
		log := coremocks.NewMockLogger(t)
		log.EXPECT().Warn("Database connection pool nearly exhausted", mock.Anything).Once()
		monitor := NewConnectionPoolMonitor(fixedStats{MaxOpenConnections: 10, InUse: 9}, log)

		monitor.collectMetrics()

		assert.Equal(t, 9, monitor.GetMetrics().InUse)
	})

	t.Run("Empty before first sample and stop is idempotent", func(t *testing.T) {
		monitor := NewConnectionPoolMonitor(fixedStats{}, coremocks.NewMockLogger(t))
		assert.Equal(t, ConnectionPoolMetrics{}, monitor.GetMetrics())

		monitor.Stop()
		monitor.Stop()
	})
}
