package repository

import (
	"gorm.io/gorm/logger"
)

// StoreOption applies a configuration option to the ResultStore.
type StoreOption func(*storeOptions)

type storeOptions struct {
	batchSize int
	logLevel  logger.LogLevel
}

// WithBatchSize sets how many rows are inserted per statement.
func WithBatchSize(n int) StoreOption {
	return func(o *storeOptions) {
		if n > 0 {
			o.batchSize = n
		}
	}
}

// WithSQLLogging turns on gorm's statement logger at the given level.
func WithSQLLogging(level logger.LogLevel) StoreOption {
	return func(o *storeOptions) {
		o.logLevel = level
	}
}
