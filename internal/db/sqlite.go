package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/federaltalks/iq-backend/internal/config"
	"github.com/federaltalks/iq-backend/internal/pkg/logger"
)

// NewSqliteService opens an on-disk sqlite database for local development.
// Unlike Postgres there is no uuid-ossp; models fall back to application-side
// uuid defaults only where gorm fills them, so seed scripts should supply IDs.
func NewSqliteService(log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "SqliteService")

	path := config.GetEnv("SQLITE_PATH", "federaltalks.db", log)

	serviceLog.Info("Opening sqlite database...", "path", path)
	gormDB, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to open sqlite database", "error", err)
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return &Service{db: gormDB, log: serviceLog}, nil
}
