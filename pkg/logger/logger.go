package logger

import (
	"go.uber.org/zap"
)

var log *zap.Logger

// Init builds the process-wide structured logger.
func Init() {
	var err error
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.CallerKey = "caller"

	log, err = cfg.Build()
	if err != nil {
		panic(err)
	}
}

// Sugar returns a printf-friendly logger.
func Sugar() *zap.SugaredLogger {
	return log.Sugar()
}

// Logger returns the structured logger.
func Logger() *zap.Logger {
	return log
}
