// Package sink 实现各种日志输出端
// 级别门槛和 flush 批次计数是所有输出端共享的行为，放在 base 里
package sink

import (
	"fmt"
	"sync/atomic"

	"github.com/iuboy/alhena/config"
	"github.com/iuboy/alhena/core"
)

// New 根据输出类型创建对应的 Sink
func New(kind core.SinkKind) (core.Sink, error) {
	switch kind {
	case core.ToStderr:
		return NewStderr(), nil
	case core.ToFile:
		return NewFile(), nil
	case core.ToRollingFile:
		return NewRolling(), nil
	case core.ToDatabase:
		return NewDatabase(), nil
	default:
		return nil, fmt.Errorf("unsupported log destination: %d", kind)
	}
}

// base 各输出端共享的级别门槛与 flush 策略状态
// level 用 atomic 读写，SetLevel 可能和 Emit 并发；
// pending 只在各输出端自己的锁内访问，任意一次 Emit 返回后 pending < maxFlush
type base struct {
	level    uint32 // core.Level，atomic 访问
	maxFlush uint64
	pending  uint64
}

func newBase() base {
	return base{
		level:    uint32(core.InfoLevel),
		maxFlush: config.DefaultFlushNum,
	}
}

// configure 读取公共配置项：log_level 与 num_logs_to_flush
// 越界的级别值直接忽略，0 的 flush 批次按 1 处理
func (b *base) configure(view *config.View) {
	var num uint64
	if view.GetUnsigned(config.KeyLevel, &num) && num < uint64(core.LevelMax) {
		atomic.StoreUint32(&b.level, uint32(num))
	}
	core.Diagf("Log level: %s", b.Level())

	if view.GetUnsigned(config.KeyFlushNum, &num) {
		if num == 0 {
			num = 1
		}
		b.maxFlush = num
	}
}

func (b *base) Level() core.Level {
	return core.Level(atomic.LoadUint32(&b.level))
}

func (b *base) SetLevel(level core.Level) {
	if !level.Valid() {
		core.Diagf("Invalid log level!")
		return
	}
	if b.Level() != level {
		atomic.StoreUint32(&b.level, uint32(level))
		core.Diagf("Log level has been reset to: %s", level)
	}
}

// countWrite 写成功后推进 flush 计数，到达批次上限时执行 flush 并清零
// 必须在持有输出端自身锁的情况下调用
func (b *base) countWrite(flush func() error) error {
	b.pending++
	if b.pending >= b.maxFlush {
		if err := flush(); err != nil {
			return err
		}
		b.pending = 0
	}
	return nil
}
