package core

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// 编译时接口检查
var _ zapcore.Core = (*sinkCore)(nil)

// sinkCore 实现 zapcore.Core
// 把 zap 的日志条目编码成单行文本，再走 Sink 的 Emit 路径输出，
// 让已经用 zap 的宿主可以直接挂到本日志系统上，不需要第二条管道
type sinkCore struct {
	enc    zapcore.Encoder
	sink   Sink
	fields []zapcore.Field
}

// NewZapCore 构造挂接在 sink 上的 zapcore.Core
// 编码固定为 console 单行格式；级别门槛仍由 sink 自己判定
func NewZapCore(sink Sink) zapcore.Core {
	return &sinkCore{
		enc:  zapcore.NewConsoleEncoder(consoleEncoderConfig()),
		sink: sink,
	}
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		TimeKey:        "time",
		NameKey:        "logger",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func (c *sinkCore) Enabled(level zapcore.Level) bool {
	return FromZapLevel(level) >= c.sink.Level()
}

func (c *sinkCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &sinkCore{
		enc:    c.enc.Clone(),
		sink:   c.sink,
		fields: append(append([]zapcore.Field(nil), c.fields...), fields...),
	}
	return clone
}

func (c *sinkCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *sinkCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	// 克隆 encoder 避免并发问题
	enc := c.enc.Clone()
	combined := append(append([]zapcore.Field(nil), c.fields...), fields...)

	buf, err := enc.EncodeEntry(ent, combined)
	if err != nil {
		return fmt.Errorf("encode entry failed: %w", err)
	}
	line := buf.String()
	buf.Free()

	// Emit 返回 false 不算错误：日志系统的失败不扩散给业务调用链
	c.sink.Emit(line, FromZapLevel(ent.Level))
	return nil
}

func (c *sinkCore) Sync() error {
	// 刷新由 sink 的 flush 策略和 Close 负责
	return nil
}
