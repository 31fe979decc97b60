package mariadb

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	"github.com/bitecare/clinic-backend/config"
	_ "github.com/go-sql-driver/mysql"
)

var (
	db   *sql.DB
	once sync.Once
)

// Connect opens the MariaDB connection. Credentials come from .env via config.
func Connect() *sql.DB {
	once.Do(func() {
		cfg := config.LoadConfig()
		// DSN format: username:password@tcp(host:port)/dbname?parseTime=true&loc=Asia%2FManila
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=Asia%%2FManila",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

		var err error
		db, err = sql.Open("mysql", dsn)
		if err != nil {
			log.Fatalf("Failed to open database connection: %v", err)
		}

		if err = db.Ping(); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}

		log.Println("Connected to MariaDB.")
	})

	return db
}

// GetDB returns the established database handle.
func GetDB() *sql.DB {
	return db
}
