package config

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Prepare returns the configured program logger. Info and below go to
// stdout, errors to stderr.
func (c LoggingConfig) Prepare() (*zap.Logger, error) {
	if c.Level == "none" {
		return zap.NewNop(), nil
	}

	low := zapcore.InfoLevel
	if c.Level == "debug" {
		low = zapcore.DebugLevel
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	enc := zapcore.NewConsoleEncoder(ec)

	outCore := zapcore.NewCore(enc, zapcore.Lock(os.Stdout),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return low <= lvl && lvl < zapcore.ErrorLevel
		}))
	errCore := zapcore.NewCore(enc, zapcore.Lock(os.Stderr),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.ErrorLevel
		}))

	return zap.New(zapcore.NewTee(outCore, errCore)), nil
}
