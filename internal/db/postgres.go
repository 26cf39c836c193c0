package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/federaltalks/iq-backend/internal/config"
	"github.com/federaltalks/iq-backend/internal/pkg/logger"
	"github.com/federaltalks/iq-backend/internal/types"
)

// Service wraps an opened gorm connection; the Postgres constructor is the
// production path, sqlite exists for local development.
type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := config.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := config.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := config.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := config.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := config.GetEnv("POSTGRES_NAME", "federaltalks", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := gormDB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &Service{db: gormDB, log: serviceLog}, nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.Contract{},
		&types.Contact{},
		&types.UploadLog{},
		&types.Pipeline{},
		&types.PipelineStage{},
		&types.PipelineContract{},
		&types.UserFavorite{},
		&types.DemoRequest{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	return nil
}

func (s *Service) DB() *gorm.DB {
	return s.db
}
