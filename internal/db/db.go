package db

import (
  "fmt"

  "gorm.io/driver/postgres"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"

  "github.com/skillpath/backend/internal/logger"
  "github.com/skillpath/backend/internal/types"
  "github.com/skillpath/backend/internal/utils"
)

type Service struct {
  db  *gorm.DB
  log *logger.Logger
}

// NewService opens the configured database. Postgres is the deployment
// target; DB_DRIVER=sqlite gives a single-file database for local runs.
func NewService(log *logger.Logger) (*Service, error) {
  serviceLog := log.With("service", "DBService")

  driver := utils.GetEnv("DB_DRIVER", "postgres", log)

  var dialector gorm.Dialector
  switch driver {
  case "postgres":
    postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
    postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
    postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
    postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
    postgresName := utils.GetEnv("POSTGRES_NAME", "skillpath", log)
    dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)
    dialector = postgres.Open(dsn)
  case "sqlite":
    dbPath := utils.GetEnv("DB_PATH", "skillpath.db", log)
    dialector = sqlite.Open(dbPath)
  default:
    return nil, fmt.Errorf("Unsupported DB_DRIVER: %s", driver)
  }

  log.Info("Connecting to database...", "driver", driver)
  gormDB, err := gorm.Open(dialector, &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    log.Error("Failed to connect to database", "driver", driver, "error", err)
    return nil, fmt.Errorf("Failed to connect to database: %w", err)
  }

  return &Service{db: gormDB, log: serviceLog}, nil
}

func (s *Service) AutoMigrateAll() error {
  s.log.Info("Auto migrating tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.UserToken{},
    &types.SkillPath{},
    &types.PathStep{},
    &types.Resource{},
    &types.StepResource{},
    &types.Progress{},
    &types.Feedback{},
  )
  if err != nil {
    s.log.Error("Auto migration failed", "error", err)
    return err
  }
  return nil
}

func (s *Service) DB() *gorm.DB {
  return s.db
}
