package database

import (
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"portfolioCMS/internal/config"
)

type MethodsDB interface {
	CloseDB() error
	RunMigrations(migrationFilePath string) error
	HealthCheck() error
}

type DB struct {
	*sqlx.DB
	log *logrus.Logger
}

func DSN(cfg config.DB) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DbHOST,
		cfg.DbPORT,
		cfg.DbUSER,
		cfg.DbPASSWORD,
		cfg.DbNAME,
		cfg.DbSSLMODE,
	)
}

func ConnectDB(cfg *config.Config, log *logrus.Logger) (*DB, error) {
	log.WithFields(logrus.Fields{"host": cfg.DB.DbHOST, "dbname": cfg.DB.DbNAME}).Info("connecting to postgres")

	db, err := sqlx.Connect("postgres", DSN(cfg.DB))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	dbStruct := &DB{DB: db, log: log}

	if err := dbStruct.RunMigrations(cfg.MigrationsPath); err != nil {
		log.WithError(err).Warn("migrations were not applied")
	}

	if err := dbStruct.HealthCheck(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	log.Info("connected to postgres")
	return dbStruct, nil
}

// Wrap adapts an existing connection, used by tests with sqlmock.
func Wrap(db *sqlx.DB, log *logrus.Logger) *DB {
	return &DB{DB: db, log: log}
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

func (db *DB) RunMigrations(migrationFilePath string) error {
	if _, err := os.Stat(migrationFilePath); os.IsNotExist(err) {
		return fmt.Errorf("migration file not found: %s", migrationFilePath)
	}

	migrationSQL, err := os.ReadFile(migrationFilePath)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	db.log.WithField("file", migrationFilePath).Info("applying migrations")

	if _, err = db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	db.log.Info("migrations applied")
	return nil
}

func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	return db.Ping()
}
