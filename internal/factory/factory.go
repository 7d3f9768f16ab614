package factory

import (
	"fmt"

	"github.com/dicelobby/accounts/internal/dependencies/clock"
	"github.com/dicelobby/accounts/internal/dependencies/random"
	"github.com/dicelobby/accounts/internal/services/account"
	"github.com/dicelobby/accounts/internal/services/registry"
	"github.com/dicelobby/accounts/internal/services/session"
	"github.com/dicelobby/accounts/internal/storage"
	"github.com/dicelobby/accounts/internal/storage/memory"
	redisstorage "github.com/dicelobby/accounts/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AccountService  *account.Service
	SessionService  *session.Service
	RegistryService *registry.Service
}

// Config holds configuration for the application factory
type Config struct {
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, fmt.Errorf("redis storage requires RedisConfig")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("creating redis storage: %w", err)
		}
		store = redisStore
	default:
		return nil, fmt.Errorf("unknown storage type %q", storageType)
	}

	return newWithDependencies(store, clock.New(), random.New()), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random) *App {
	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		AccountService:  account.New(store, clk, rnd),
		SessionService:  session.New(store, clk, rnd),
		RegistryService: registry.New(store, rnd),
	}
}
