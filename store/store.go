// Package store keeps the catalog of scales owned by each user
package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type SQLiteConfig struct {
	Path string
}

type PostgresConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
}

type Config struct {
	Driver   string
	SQLite   SQLiteConfig
	Postgres PostgresConfig
}

var DefaultConfig = Config{
	Driver: "sqlite",
	SQLite: SQLiteConfig{Path: "scales.db"},
	Postgres: PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		Database: "scales",
		User:     "scales",
		SSLMode:  "disable",
	},
}

const schema = `
CREATE TABLE IF NOT EXISTS scales (
	user_id   TEXT NOT NULL,
	device_id TEXT NOT NULL,
	name      TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (user_id, device_id)
)`

type DB struct {
	*sql.DB
	driver string
}

func Open(conf Config) (*DB, error) {
	var (
		sqlDB *sql.DB
		err   error
	)
	switch conf.Driver {
	case "sqlite":
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", conf.SQLite.Path)
		sqlDB, err = sql.Open("sqlite", dsn)
		if err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	case "postgres":
		p := conf.Postgres
		dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
			p.Host, p.Port, p.Database, p.User, p.Password, p.SSLMode)
		sqlDB, err = sql.Open("pgx", dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", conf.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", conf.Driver, err)
	}

	db := &DB{DB: sqlDB, driver: conf.Driver}
	if _, err := db.Exec(schema); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate %s: %w", conf.Driver, err)
	}
	return db, nil
}

func (db *DB) Driver() string { return db.driver }

// q rewrites ? placeholders to $1, $2, ... for postgres
func (db *DB) q(query string) string {
	if db.driver != "postgres" {
		return query
	}
	n := 0
	var b strings.Builder
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
		} else {
			b.WriteByte(query[i])
		}
	}
	return b.String()
}
