// Package logger builds the zap logger used for --verbose diagnostics.
//
// Loggers are passed explicitly to the packages that log; there is no
// package-level instance.
package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard field names for structured log entries.
const (
	FieldComponent = "component"
	FieldTemplate  = "template"
	FieldFile      = "file"
	FieldPath      = "path"
	FieldCount     = "count"
	FieldError     = "error"
	FieldOp        = "op"
)

// New returns a console logger writing to w. When verbose is false the
// logger discards everything.
func New(w io.Writer, verbose bool) *zap.SugaredLogger {
	if !verbose {
		return Nop()
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	encoderConfig.CallerKey = ""
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return zap.New(core).Sugar()
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
