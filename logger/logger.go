package logger

import (
	"go.uber.org/zap"
)

var Log *zap.SugaredLogger

func Init(debug bool) {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}
	Log = logger.Sugar()
}

// Sync flushes any buffered log entries. Call it on shutdown.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
