package kvstore

import (
	"context"
	"fmt"
	"time"

	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/persistence"
	badgerstore "github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/kvstore/badger"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/kvstore/memory"
	redisstore "github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/kvstore/redis"
)

// Supported store drivers
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverBadger = "badger"
)

// Config selects and configures a store driver
type Config struct {
	Driver        string
	SlowThreshold time.Duration
	Redis         redisstore.Config
	Badger        badgerstore.Config
}

// New opens the configured store and wraps it with instrumentation
func New(
	ctx context.Context,
	cfg Config,
	logger coreport.Logger,
	timeProvider coreport.TimeProvider,
) (persistence.KVStore, error) {
	var (
		store persistence.KVStore
		err   error
	)

	switch cfg.Driver {
	case DriverMemory, "":
		logger.Warn("Using in-memory store, data will not survive a restart", nil)
		store = memory.NewStore(timeProvider)
	case DriverRedis:
		store, err = redisstore.NewStore(ctx, cfg.Redis, logger)
	case DriverBadger:
		store, err = badgerstore.NewStore(cfg.Badger, logger)
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	return NewInstrumentedStore(store, logger, timeProvider, cfg.SlowThreshold), nil
}
