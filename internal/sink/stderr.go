package sink

import (
	"os"

	"github.com/iuboy/alhena/config"
	"github.com/iuboy/alhena/core"
)

// 编译时接口检查
var _ core.Sink = (*Stderr)(nil)

// Stderr 把日志原样写到进程的标准错误
// stderr 本身不带缓冲，flush 策略在这里没有实际动作
type Stderr struct {
	base
}

func NewStderr() *Stderr {
	return &Stderr{base: newBase()}
}

func (s *Stderr) Configure(view *config.View) {
	s.base.configure(view)
}

func (s *Stderr) Open() error { return nil }

func (s *Stderr) Close() error { return nil }

func (s *Stderr) Emit(msg string, level core.Level) bool {
	if level < s.Level() {
		return false
	}
	if _, err := os.Stderr.WriteString(msg); err != nil {
		writeErrorsTotal.WithLabelValues("stderr").Inc()
		return false
	}
	emittedTotal.WithLabelValues("stderr", level.String()).Inc()
	return true
}
