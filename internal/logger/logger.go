package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gfdmit/web-forum/post-api/config"
)

const timeFormat = time.RFC3339

// New builds the process logger. It is created once in main and handed to
// every component that logs.
func New(conf config.Log) (*log.Logger, error) {
	return NewWithWriter(os.Stdout, conf)
}

func NewWithWriter(w io.Writer, conf config.Log) (*log.Logger, error) {
	level, err := log.ParseLevel(conf.Level)
	if err != nil {
		return nil, fmt.Errorf("log.ParseLevel: %w", err)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    conf.Caller,
		TimeFormat:      timeFormat,
		Level:           level,
	})
	if conf.JSON {
		logger.SetFormatter(log.JSONFormatter)
	} else {
		logger.SetFormatter(log.TextFormatter)
	}
	return logger, nil
}

// Gorm adapts logger for GORM. At debug level every statement is logged at
// debug; otherwise only slow statements and errors are kept, at warn.
func Gorm(logger *log.Logger) gormlogger.Interface {
	level, forced := gormlogger.Warn, log.WarnLevel
	if logger.GetLevel() <= log.DebugLevel {
		level, forced = gormlogger.Info, log.DebugLevel
	}

	return gormlogger.New(
		logger.WithPrefix("gorm").StandardLog(log.StandardLogOptions{ForceLevel: forced}),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
