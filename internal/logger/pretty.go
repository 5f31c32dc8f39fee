package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiBlue   = "\033[34m"
	ansiPurple = "\033[35m"
	ansiCyan   = "\033[36m"
)

var levelColors = map[zapcore.Level]string{
	zapcore.DebugLevel: ansiCyan,
	zapcore.InfoLevel:  ansiGreen,
	zapcore.WarnLevel:  ansiYellow,
	zapcore.ErrorLevel: ansiRed,
	zapcore.FatalLevel: ansiRed + ansiBold,
}

func paint(color, text string) string {
	return color + text + ansiReset
}

// PrettyEncoder is a console encoder printing "15:04:05 [LEVEL] message".
func PrettyEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		TimeKey:        "time",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    encodeLevel,
		EncodeTime:     zapcore.TimeEncoderOfLayout("15:04:05"),
		EncodeDuration: zapcore.StringDurationEncoder,
	})
}

func encodeLevel(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	tag := "[" + level.CapitalString() + "]"
	if color, ok := levelColors[level]; ok {
		tag = paint(color, tag)
	}
	enc.AppendString(tag)
}

// CreatePrettyLogger creates a logger with user-friendly output.
// A nil sink writes to stdout. Debug loggers keep structured fields,
// otherwise known messages are rewritten by FormatMessage and fields dropped.
func CreatePrettyLogger(debug bool, sink zapcore.WriteSyncer) (*zap.Logger, error) {
	if sink == nil {
		sink = zapcore.Lock(os.Stdout)
	}

	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	core := zapcore.NewCore(PrettyEncoder(), sink, level)
	if debug {
		return zap.New(core), nil
	}
	return zap.New(&FieldFilterCore{core: core}), nil
}

// FormatMessage turns the form's log events into one-line summaries.
// Unknown messages pass through unchanged.
func FormatMessage(msg string, fields ...zap.Field) string {
	field := func(key string) string { return extractField(fields, key) }

	switch {
	case strings.Contains(msg, "Chain selected"):
		return paint(ansiBlue, "🔗 Source chain: "+field("chain"))

	case strings.Contains(msg, "Token selected"):
		if field("address") == "" {
			return paint(ansiYellow, "○ Source token cleared")
		}
		return paint(ansiCyan, "🪙 Source token: "+shortenAddress(field("address")))

	case strings.Contains(msg, "Deposit clamped"):
		return paint(ansiPurple, "✂ Deposit lowered to balance: "+field("amount"))

	case strings.Contains(msg, "Balances loaded"):
		return paint(ansiGreen, fmt.Sprintf("💰 Loaded %s balances on %s chains", field("entries"), field("chains")))

	case strings.Contains(msg, "Balance load failed"):
		return paint(ansiYellow, "⟳ Balance snapshot unavailable, retrying")

	case strings.Contains(msg, "Intent exported"):
		return paint(ansiGreen+ansiBold, "📤 Stake intent saved: "+field("path"))

	default:
		return msg
	}
}

func extractField(fields []zap.Field, key string) string {
	for _, field := range fields {
		if field.Key != key {
			continue
		}
		switch field.Type {
		case zapcore.StringType:
			return field.String
		case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type,
			zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
			return fmt.Sprintf("%d", field.Integer)
		default:
			return fmt.Sprintf("%v", field.Interface)
		}
	}
	return ""
}

func shortenAddress(addr string) string {
	if len(addr) > 12 {
		return addr[:6] + "..." + addr[len(addr)-4:]
	}
	return addr
}

// FieldFilterCore wraps a zapcore.Core to rewrite messages and drop fields
type FieldFilterCore struct {
	core   zapcore.Core
	fields []zapcore.Field
}

func (c *FieldFilterCore) Enabled(level zapcore.Level) bool {
	return c.core.Enabled(level)
}

func (c *FieldFilterCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &FieldFilterCore{core: c.core, fields: merged}
}

func (c *FieldFilterCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *FieldFilterCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	all := append(append([]zapcore.Field{}, c.fields...), fields...)

	cleanEntry := entry
	cleanEntry.Message = FormatMessage(entry.Message, all...)

	return c.core.Write(cleanEntry, nil)
}

func (c *FieldFilterCore) Sync() error {
	return c.core.Sync()
}
