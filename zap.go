package alhena

import (
	"go.uber.org/zap"

	"github.com/iuboy/alhena/core"
)

// Zap 返回挂接在当前 sink 上的 *zap.Logger
// 日志条目按 console 单行编码后走 sink 的 Emit 路径，
// 已经用 zap 的宿主可以直接换底，不需要维护第二条输出管道。
// 未初始化时返回 Nop logger，调用侧不用判空
func Zap(opts ...zap.Option) *zap.Logger {
	sys := Instance()
	if sys == nil {
		return zap.NewNop()
	}
	return zap.New(core.NewZapCore(sys.sink), opts...)
}
