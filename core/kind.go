package core

// SinkKind 日志输出目标类型，取值来自配置项 log_dest
type SinkKind uint32

const (
	ToStderr SinkKind = iota
	ToFile
	ToRollingFile
	ToDatabase
	sinkKindMax
)

func (k SinkKind) Valid() bool {
	return k < sinkKindMax
}

func (k SinkKind) String() string {
	switch k {
	case ToStderr:
		return "stderr"
	case ToFile:
		return "file"
	case ToRollingFile:
		return "rolling"
	case ToDatabase:
		return "database"
	default:
		return "unknown"
	}
}
