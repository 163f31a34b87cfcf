package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/gfdmit/web-forum/post-api/config"
	v1 "github.com/gfdmit/web-forum/post-api/internal/handlers/http/v1"
	"github.com/gfdmit/web-forum/post-api/internal/httpserver"
	"github.com/gfdmit/web-forum/post-api/internal/repository/orm"
	"github.com/gfdmit/web-forum/post-api/internal/repository/postgres"
	"github.com/gfdmit/web-forum/post-api/internal/service"
)

func Run(ctx context.Context, conf config.Config, l *log.Logger) error {
	db, sqlDB, err := postgres.New(ctx, conf.Database, l)
	if err != nil {
		return fmt.Errorf("error when setting up repository: %w", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			l.Warn("closing database", "err", err)
		}
	}()

	svc := service.New(orm.New(db))

	handler, err := v1.New(svc, conf.HTTPServer, l)
	if err != nil {
		return fmt.Errorf("error when setting up handler: %w", err)
	}

	srv := httpserver.New(conf.HTTPServer, handler, l)

	return srv.Run(ctx)
}
