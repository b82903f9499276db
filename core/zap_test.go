package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iuboy/alhena/config"
)

// captureSink 记录 Emit 调用，供桥接测试断言
type captureSink struct {
	level  Level
	msgs   []string
	levels []Level
}

func (c *captureSink) Configure(view *config.View) {}
func (c *captureSink) Open() error                 { return nil }
func (c *captureSink) Close() error                { return nil }

func (c *captureSink) Emit(msg string, level Level) bool {
	if level < c.level {
		return false
	}
	c.msgs = append(c.msgs, msg)
	c.levels = append(c.levels, level)
	return true
}

func (c *captureSink) SetLevel(level Level) { c.level = level }
func (c *captureSink) Level() Level         { return c.level }

func TestZapCoreWrite(t *testing.T) {
	cs := &captureSink{level: DebugLevel}
	logger := zap.New(NewZapCore(cs))

	logger.Info("service started", zap.String("addr", ":8080"))
	require.Len(t, cs.msgs, 1)

	line := cs.msgs[0]
	assert.Contains(t, line, "INFO")
	assert.Contains(t, line, "service started")
	assert.Contains(t, line, ":8080")
	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.Equal(t, InfoLevel, cs.levels[0])
}

func TestZapCoreLevelGate(t *testing.T) {
	cs := &captureSink{level: WarningLevel}
	logger := zap.New(NewZapCore(cs))

	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")
	logger.Error("kept as well")

	require.Len(t, cs.msgs, 2)
	assert.Equal(t, WarningLevel, cs.levels[0])
	assert.Equal(t, ErrorLevel, cs.levels[1])
}

func TestZapCoreWithFields(t *testing.T) {
	cs := &captureSink{level: DebugLevel}
	logger := zap.New(NewZapCore(cs)).With(zap.String("module", "billing"))

	logger.Info("charged")
	require.Len(t, cs.msgs, 1)
	assert.Contains(t, cs.msgs[0], "billing")
	assert.Contains(t, cs.msgs[0], "charged")
}
