package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"taskmanager/internal/config"
)

// New builds the application logger for the given environment.
func New(env string, w io.Writer) (zerolog.Logger, error) {
	zerolog.TimestampFieldName = "timestamp"

	level := zerolog.InfoLevel
	switch env {
	case config.EnvLocal:
		level = zerolog.DebugLevel
		cw := zerolog.NewConsoleWriter()
		cw.TimeFormat = time.DateTime
		cw.Out = w
		w = cw
	case config.EnvDev:
		level = zerolog.DebugLevel
	case config.EnvProd:
	default:
		return zerolog.Nop(), fmt.Errorf("unknown env: %s", env)
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger(), nil
}

type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warn().Msgf(format, args...)
}

// Gorm routes gorm's slow-query and error output through l.
func Gorm(l zerolog.Logger) gormlogger.Interface {
	return gormlogger.New(gormWriter{log: l.With().Str("component", "gorm").Logger()}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
