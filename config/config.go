package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect loads .env, opens the database and runs migrations. DB_DSN with
// a postgres prefix selects Postgres; anything else (including unset)
// falls back to a local sqlite file, matching the demo deployment.
func Connect(logger *zap.Logger) error {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using system environment variables")
	}

	dsn := os.Getenv("DB_DSN")
	var (
		db  *gorm.DB
		err error
	)
	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"), strings.Contains(dsn, "host="):
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	case dsn != "":
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
	default:
		db, err = gorm.Open(sqlite.Open("wellatlas.db"), cfg)
	}
	if err != nil {
		return err
	}
	DB = db

	if err := Migrations(DB); err != nil {
		return err
	}
	logger.Info("database connected and migrated")
	return nil
}
