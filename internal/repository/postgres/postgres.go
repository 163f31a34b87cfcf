package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gfdmit/web-forum/post-api/config"
	"github.com/gfdmit/web-forum/post-api/internal/logger"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// New connects to PostgreSQL, applies pending migrations when enabled and
// returns a GORM handle sharing the same connection pool. Callers close the
// pool through the returned *sql.DB.
func New(ctx context.Context, conf config.Database, l *log.Logger) (*gorm.DB, *sql.DB, error) {
	db, err := sql.Open("postgres", conf.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("sql.Open: %w", err)
	}
	db.SetMaxOpenConns(conf.MaxOpenConns)
	db.SetMaxIdleConns(conf.MaxIdleConns)
	db.SetConnMaxLifetime(conf.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, conf.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db.Ping: %w", err)
	}

	if conf.Migrate {
		if err := migrateUp(db, conf.Migrations, l); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
	}

	gdb, err := gorm.Open(gormpg.New(gormpg.Config{Conn: db}), &gorm.Config{
		Logger: logger.Gorm(l),
	})
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("gorm.Open: %w", err)
	}

	return gdb, db, nil
}

func migrateUp(db *sql.DB, dir string, l *log.Logger) error {
	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("postgres.WithInstance: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%v", dir), "postgres", driver)
	if err != nil {
		return fmt.Errorf("migrate.NewWithDatabaseInstance: %w", err)
	}

	l.Info("applying migrations", "source", dir)
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			l.Info("nothing to migrate")
			return nil
		}
		return fmt.Errorf("migrate.Up: %w", err)
	}
	l.Info("migrated successfully")
	return nil
}
