// Package db contains everything related to database access
package db

import (
	"errors"
	"fmt"

	"hirehub/job-portal-api/internal/model"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New opens the database configured under db.type and db.dsn and
// migrates the user table. SQLite is the default so local setups
// work without a running database server.
func New() (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch viper.GetString("db.type") {
	case "postgres":
		dialector = postgres.Open(viper.GetString("db.dsn"))
	case "sqlite":
		dialector = sqlite.Open(viper.GetString("db.dsn"))
	default:
		return nil, errors.New("invalid database type provided")
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	err = db.AutoMigrate(model.User{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
