package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func init() {
	_, err := NewLogger(ConfigFor(os.Getenv("LOG_ENV")))
	if err != nil {
		panic(err)
	}
}

// ConfigFor returns the zap config for the given environment name.
// Anything other than "production" gets the colored console encoder.
func ConfigFor(env string) zap.Config {
	if env == "production" {
		return zap.NewProductionConfig()
	}
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return config
}

func Info(msg string, values ...any) {
	GetLogger().Info(msg, values...)
}

func Warn(msg string, values ...any) {
	GetLogger().Warn(msg, values...)
}

func Error(msg string, values ...any) {
	GetLogger().Error(msg, values...)
}

func Debug(msg string, values ...any) {
	GetLogger().Debug(msg, values...)
}

func Sync() {
	_ = GetLogger().Sync()
}
