package persistence

import (
	"database/sql"
	"fmt"
	"time"

	"social-manager/infrastructure/configuration"

	_ "github.com/lib/pq"
)

// NewPostgreSQLDb creates a sql.DB for PostgreSQL using native database/sql.
func NewPostgreSQLDb(cfg configuration.Db) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
	)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(time.Minute)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
