package core

import "github.com/iuboy/alhena/config"

// Sink 是日志输出端的统一接口
// 三种内置实现：stderr、固定文件、按天滚动文件，另有数据库输出
// 新增输出类型时在 internal/sink 的工厂处接入即可
type Sink interface {
	// Configure 从配置视图读取本输出端关心的键，未知键保持默认值，不会失败
	Configure(view *config.View)

	// Open 准备底层输出；close 之后允许再次 open
	Open() error

	// Close 刷出缓冲并释放底层句柄，重复调用是安全的
	Close() error

	// Emit 输出一条日志
	// level 低于门槛时直接返回 false，不产生任何副作用
	Emit(msg string, level Level) bool

	SetLevel(level Level)
	Level() Level
}
