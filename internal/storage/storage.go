// Package storage owns the shared database handle. Production runs against
// Postgres (schema managed by goose migrations); tests run against a shared
// in-memory SQLite database auto-migrated from the registered models.
package storage

import (
	"os"
	"sync"

	"etude-backend/internal/config"
	"etude-backend/internal/util/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var log = logger.GetLogger()

var (
	db   *gorm.DB
	once sync.Once

	modelsMu sync.Mutex
	models   []any
)

// RegisterModel records a model for test-database auto-migration. Feature
// packages register their models at init time; registration must happen
// before the first GetDb call.
func RegisterModel(model any) {
	modelsMu.Lock()
	models = append(models, model)
	modelsMu.Unlock()
}

func GetDb() *gorm.DB {
	once.Do(connect)
	return db
}

func connect() {
	env := config.GetEnv()

	var dialector gorm.Dialector
	if env.IsTesting {
		dialector = sqlite.Open("file::memory:?cache=shared")
	} else {
		dialector = postgres.Open(env.DatabaseDsn)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
	})
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		log.Error("Failed to get underlying SQL DB", "error", err)
		os.Exit(1)
	}

	if env.IsTesting {
		// a single connection keeps the shared in-memory database alive
		// and avoids table locks between parallel queries
		sqlDB.SetMaxOpenConns(1)

		modelsMu.Lock()
		registered := make([]any, len(models))
		copy(registered, models)
		modelsMu.Unlock()

		if err := conn.AutoMigrate(registered...); err != nil {
			log.Error("Failed to migrate test database", "error", err)
			os.Exit(1)
		}
	} else {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(10)
	}

	db = conn
}
