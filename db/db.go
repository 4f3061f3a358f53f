package db

import (
	"fmt"

	"github.com/DefiantLabs/lunie-core/db/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresDbConnect connects to the database according to the passed in parameters
func PostgresDbConnect(host string, port string, database string, user string, password string, level string) (*gorm.DB, error) {
	dsn := PostgresDSN(host, port, database, user, password)
	gormLogLevel := logger.Silent

	if level == "info" {
		gormLogLevel = logger.Info
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(gormLogLevel)})
}

// PostgresDSN is the libpq style connection string of the parameters, usable by pgx as well.
func PostgresDSN(host string, port string, database string, user string, password string) string {
	return fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=disable", host, port, database, user, password)
}

// MigrateModels runs the gorm automigrations with all the db models. This will migrate as needed and do nothing if nothing has changed.
func MigrateModels(db *gorm.DB) error {
	if err := migrateNetworkModels(db); err != nil {
		return err
	}

	return migrateValidatorModels(db)
}

func migrateNetworkModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Network{},
	)
}

func migrateValidatorModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.PremiumValidator{},
		&models.PremiumValidatorAddress{},
	)
}
