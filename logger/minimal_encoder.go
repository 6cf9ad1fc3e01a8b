package logger

import (
	"fmt"
	"sort"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

var bufferPool = buffer.NewPool()

// minimalEncoder implements a compact console encoder.
// Format: "WARN  docs  unhandled type in argout  function=rhp_foo argument=vi"
//
// Context fields added with With() are printed sorted by key, entry fields
// in the order they were passed.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return &minimalEncoder{MapObjectEncoder: clone}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := bufferPool.Get()

	// Level: only shown when it is not plain info
	if ent.Level != zapcore.InfoLevel {
		final.AppendString(ent.Level.CapitalString())
		final.AppendString("  ")
	}

	if ent.LoggerName != "" {
		final.AppendString(ent.LoggerName)
		final.AppendString("  ")
	}

	final.AppendString(ent.Message)

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		appendField(final, k, enc.Fields[k])
	}

	for _, f := range fields {
		m := zapcore.NewMapObjectEncoder()
		f.AddTo(m)
		appendField(final, f.Key, m.Fields[f.Key])
	}

	final.AppendString("\n")
	return final, nil
}

func appendField(buf *buffer.Buffer, key string, value interface{}) {
	if len(buf.Bytes()) > 0 {
		buf.AppendString("  ")
	}
	buf.AppendString(key)
	buf.AppendString("=")
	buf.AppendString(fmt.Sprint(value))
}
