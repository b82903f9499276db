// Package alhena 是进程级的日志设施
// 按配置选择一个输出端（stderr / 固定文件 / 按天滚动文件 / 数据库），
// 对外只暴露一个全局入口，调用方不关心格式化、缓冲、加锁和文件名的细节。
//
// 示例：
//
//	if err := alhena.Init("/etc/myapp/log.yaml"); err != nil {
//	    os.Exit(1)
//	}
//	defer alhena.Close()
//	alhena.Log("service started\n", alhena.InfoLevel)
package alhena

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/iuboy/alhena/config"
	"github.com/iuboy/alhena/core"
	"github.com/iuboy/alhena/internal/sink"
)

// === 级别与输出类型在根包再导出一份，调用方不必 import core ===

type Level = core.Level
type SinkKind = core.SinkKind

const (
	DebugLevel   = core.DebugLevel
	InfoLevel    = core.InfoLevel
	WarningLevel = core.WarningLevel
	ErrorLevel   = core.ErrorLevel
	LevelMax     = core.LevelMax

	ToStderr      = core.ToStderr
	ToFile        = core.ToFile
	ToRollingFile = core.ToRollingFile
	ToDatabase    = core.ToDatabase
)

// LogSys 进程内唯一的日志入口，持有一个激活的 sink
type LogSys struct {
	view *config.View
	sink core.Sink
}

var (
	// 全局单例：Init 先行发生于一切 Log 调用，读路径无锁
	global atomic.Value // *LogSys
	initMu sync.Mutex
)

// Init 初始化日志系统
// 已初始化时直接返回成功，不会重读配置、不会更换 sink；
// 失败时不安装任何半成品单例，只通过返回值和诊断通道报告
func Init(configFile string) error {
	initMu.Lock()
	defer initMu.Unlock()

	if Instance() != nil {
		return nil
	}

	sys, err := newLogSys(configFile)
	if err != nil {
		core.Diagf("Failed to initialize the log system: %v", err)
		return err
	}

	global.Store(sys)
	core.Diagf("Log system initialized OK!")
	return nil
}

func newLogSys(configFile string) (*LogSys, error) {
	var view *config.View
	if configFile == "" {
		core.Diagf("No log config file specified, log to stderr!")
		view = config.Empty()
	} else {
		core.Diagf("Opening file <%s> to get log config...", configFile)
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		view = loaded
	}

	dest := uint64(core.ToStderr)
	view.GetUnsigned(config.KeyDest, &dest)

	s, err := sink.New(core.SinkKind(dest))
	if err != nil {
		return nil, err
	}

	s.Configure(view)
	if err := s.Open(); err != nil {
		return nil, fmt.Errorf("failed to open log destination: %w", err)
	}

	return &LogSys{view: view, sink: s}, nil
}

// Instance 返回已安装的单例，未初始化时为 nil
func Instance() *LogSys {
	if v := global.Load(); v != nil {
		if sys, ok := v.(*LogSys); ok && sys != nil {
			return sys
		}
	}
	return nil
}

// Log 输出一条日志；未初始化时静默丢弃
func Log(msg string, level Level) {
	if sys := Instance(); sys != nil {
		sys.Log(msg, level)
	}
}

// SetLevel 调整当前 sink 的级别门槛，非法级别忽略并记诊断
func SetLevel(level Level) {
	if sys := Instance(); sys != nil {
		sys.SetLevel(level)
	}
}

// Close 进程退出前调用：刷出缓冲、关闭 sink 并卸下单例
// 之后允许重新 Init（测试和受控重启场景）
func Close() error {
	initMu.Lock()
	defer initMu.Unlock()

	sys := Instance()
	if sys == nil {
		return nil
	}
	global.Store((*LogSys)(nil))
	return sys.sink.Close()
}

// ------------------------------------------------------------------
// 按级别的便捷入口
// ------------------------------------------------------------------

func Debug(msg string)   { Log(msg, DebugLevel) }
func Info(msg string)    { Log(msg, InfoLevel) }
func Warning(msg string) { Log(msg, WarningLevel) }
func Error(msg string)   { Log(msg, ErrorLevel) }

func (s *LogSys) Log(msg string, level Level) {
	s.sink.Emit(msg, level)
}

func (s *LogSys) SetLevel(level Level) {
	s.sink.SetLevel(level)
}

// Level 返回当前 sink 的级别门槛
func (s *LogSys) Level() Level {
	return s.sink.Level()
}
