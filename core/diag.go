package core

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"
)

// 内部诊断通道：日志系统自身的状态与错误直接写 stderr，
// 不经过 sink 管道，保证 sink 坏掉时仍然可见
// 行格式固定为 [<ctime>] [LOG SYS] <msg>

// atomic.Value 要求每次 Store 的具体类型一致，统一包一层
type diagWriter struct{ w io.Writer }

var diagOut atomic.Value // diagWriter

func init() {
	diagOut.Store(diagWriter{os.Stderr})
}

// Diagf 输出一条诊断信息
func Diagf(format string, args ...any) {
	w := diagOut.Load().(diagWriter).w
	fmt.Fprintf(w, "[%s] [LOG SYS] %s\n", time.Now().Format(time.ANSIC), fmt.Sprintf(format, args...))
}

// SetDiagOutput 重定向诊断输出，传 nil 恢复 stderr（测试用）
func SetDiagOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	diagOut.Store(diagWriter{w})
}
