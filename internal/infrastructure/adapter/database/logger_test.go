package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/logger"
	timeprovider "github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/time"
)

func TestExtractQueryType(t *testing.T) {
	assert.Equal(t, "SELECT", extractQueryType(`SELECT * FROM "wallets" WHERE id = $1 FOR UPDATE`))
	assert.Equal(t, "INSERT", extractQueryType(` insert into wallets (id) values ($1)`))
	assert.Equal(t, "UPDATE", extractQueryType(`UPDATE "wallets" SET "balance"=$1`))
	assert.Equal(t, "SET", extractQueryType(`SET LOCAL lock_timeout = '2000ms'`))
	assert.Equal(t, "", extractQueryType(`BEGIN`))
}

func TestExtractTableName(t *testing.T) {
	assert.Equal(t, "wallets", extractTableName(`SELECT * FROM "wallets" WHERE id = $1`))
	assert.Equal(t, "wallets", extractTableName(`INSERT INTO "wallets" ("id","balance") VALUES ($1,$2)`))
	assert.Equal(t, "wallets", extractTableName(`UPDATE "wallets" SET "balance"=$1`))
	assert.Equal(t, "", extractTableName(`COMMIT`))
}

func TestDatabaseLoggerTrace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	coreLogger := logger.NewZapLoggerFromCore(core, coreport.LogLevelDebug)
	clock := timeprovider.NewManualTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	dbLogger := NewDatabaseLogger(coreLogger, clock, "info")
	query := func() (string, int64) { return `SELECT * FROM "wallets"`, 1 }

	t.Run("Regular query logs at debug", func(t *testing.T) {
		begin := clock.Now()
		clock.Advance(time.Millisecond)
		dbLogger.Trace(context.Background(), begin, query, nil)

		entries := logs.TakeAll()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, "SQL Query", entries[0].Message)
			assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
		}
	})

	t.Run("Slow query warns", func(t *testing.T) {
		begin := clock.Now()
		clock.Advance(time.Second)
		dbLogger.Trace(context.Background(), begin, query, nil)

		entries := logs.TakeAll()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, "Slow SQL Query", entries[0].Message)
		}
	})

	t.Run("Failed query logs error", func(t *testing.T) {
		dbLogger.Trace(context.Background(), clock.Now(), query, errors.New("boom"))

		entries := logs.TakeAll()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, "SQL Error", entries[0].Message)
		}
	})

	t.Run("Record not found is not an error", func(t *testing.T) {
		dbLogger.Trace(context.Background(), clock.Now(), query, gorm.ErrRecordNotFound)

		entries := logs.TakeAll()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, "SQL Query", entries[0].Message)
		}
	})

	t.Run("Silent mode logs nothing", func(t *testing.T) {
		dbLogger.LogMode(gormlogger.Silent).Trace(context.Background(), clock.Now(), query, errors.New("boom"))
		assert.Empty(t, logs.TakeAll())
	})
}
