package postgres

import (
	"fmt"

	"runplanner/internal/adapters/out/postgres/assignmentrepo"
	"runplanner/internal/adapters/out/postgres/fleetrepo"
	"runplanner/internal/adapters/out/postgres/orderrepo"
	"runplanner/internal/adapters/out/postgres/runrepo"

	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds a libpq key/value connection string. The same string is accepted
// by the LISTEN/NOTIFY listener.
func DSN(host, port, user, password, dbName, sslMode string) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbName, sslMode,
	)
}

// Open connects to Postgres with error translation on, so unique violations
// surface as gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table of the planner.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&fleetrepo.VehicleDTO{},
		&fleetrepo.TrailerDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.CargoLineDTO{},
		&runrepo.RunDTO{},
		&assignmentrepo.AssignmentDTO{},
	)
}
