package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/gfdmit/web-forum/post-api/config"
	"github.com/gfdmit/web-forum/post-api/internal/app"
	"github.com/gfdmit/web-forum/post-api/internal/logger"
)

func main() {
	conf, err := config.New(".env")
	if err != nil {
		log.Fatal("error when reading config", "err", err)
	}

	l, err := logger.New(conf.Log)
	if err != nil {
		log.Fatal("error when setting up logger", "err", err)
	}

	if l.GetLevel() > log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(context.Background(), *conf, l); err != nil {
		l.Error("application error", "err", err)
		os.Exit(1)
	}

	l.Info("service shut down gracefully")
}
