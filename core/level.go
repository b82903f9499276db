package core

import "go.uber.org/zap/zapcore"

// Level 日志级别，数值越大越严重
// 合法区间为 [DebugLevel, LevelMax)
type Level uint32

const (
	DebugLevel Level = iota
	InfoLevel
	WarningLevel
	ErrorLevel
	LevelMax // DEBUG <= level < MAX
)

var levelNames = [LevelMax]string{
	"DEBUG",
	"INFO",
	"WARNING",
	"ERROR",
}

// Valid 检查级别是否在合法区间内
func (l Level) Valid() bool {
	return l < LevelMax
}

func (l Level) String() string {
	if l.Valid() {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// ZapLevel 映射到 zap 的级别（供 zap 桥接使用）
func (l Level) ZapLevel() zapcore.Level {
	switch l {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarningLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// FromZapLevel 反向映射：zap 级别归并到本库的四级
// Error 以上（DPanic/Panic/Fatal）一律按 ERROR 处理
func FromZapLevel(l zapcore.Level) Level {
	switch {
	case l <= zapcore.DebugLevel:
		return DebugLevel
	case l == zapcore.InfoLevel:
		return InfoLevel
	case l == zapcore.WarnLevel:
		return WarningLevel
	default:
		return ErrorLevel
	}
}
