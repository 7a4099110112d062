// Package logging builds the zap loggers used by record factories.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field keys shared by every factory log line.
const (
	FieldFactory = "factory"
	FieldSchema  = "schema"
	FieldRecord  = "record"
	FieldKey     = "key"
	FieldKeys    = "keys"
)

// Nop returns a logger that discards everything. It is the factory default.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// Or returns l, or a no-op logger when l is nil.
func Or(l *zap.Logger) *zap.Logger {
	if l == nil {
		return Nop()
	}
	return l
}

// Console returns a development console logger writing to w at level and above.
func Console(w io.Writer, level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core)
}

// ForFactory scopes l to one factory.
func ForFactory(l *zap.Logger, factoryID, schemaName string) *zap.Logger {
	return Or(l).Named("memcord").With(
		zap.String(FieldFactory, factoryID),
		zap.String(FieldSchema, schemaName),
	)
}
