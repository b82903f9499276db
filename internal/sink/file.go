package sink

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/iuboy/alhena/config"
	"github.com/iuboy/alhena/core"
)

// 编译时接口检查
var _ core.Sink = (*File)(nil)

// File 追加写入单个固定文件的输出端
// threadSafe 为 true 时 Emit 自己加锁；被 Rolling 内嵌时置为 false，
// 串行化由外层的锁负责
type File struct {
	base

	dir      string
	baseName string
	suffix   string

	threadSafe bool
	mu         sync.Mutex

	f *os.File
	w *bufio.Writer

	metricLabel string
}

func NewFile() *File {
	return &File{
		base:        newBase(),
		dir:         config.DefaultFilePath,
		baseName:    config.DefaultFileBaseName,
		suffix:      config.DefaultFileSuffix,
		threadSafe:  true,
		metricLabel: "file",
	}
}

// newFileWith 供 Rolling 构造内部文件输出端使用
func newFileWith(dir, baseName, suffix string, level core.Level, maxFlush uint64, threadSafe bool) *File {
	f := &File{
		dir:         dir,
		baseName:    baseName,
		suffix:      suffix,
		threadSafe:  threadSafe,
		metricLabel: "rolling",
	}
	f.base = base{level: uint32(level), maxFlush: maxFlush}
	return f
}

func (f *File) Configure(view *config.View) {
	f.base.configure(view)
	view.GetString(config.KeyFilePath, &f.dir)
	view.GetString(config.KeyFileBaseName, &f.baseName)
	view.GetString(config.KeyFileSuffix, &f.suffix)
}

// fullName 拼出完整文件路径
// 目录为空时不加任何前缀，文件落在进程工作目录；
// 后缀自带前导点时直接拼接，否则补一个点
func (f *File) fullName() string {
	var sb strings.Builder
	if f.dir != "" {
		sb.WriteString(f.dir)
		if !strings.HasSuffix(f.dir, "/") {
			sb.WriteByte('/')
		}
	}
	sb.WriteString(f.baseName)
	if f.suffix != "" {
		if f.suffix[0] != '.' {
			sb.WriteByte('.')
		}
		sb.WriteString(f.suffix)
	}
	return sb.String()
}

func (f *File) Open() error {
	if f.threadSafe {
		f.mu.Lock()
		defer f.mu.Unlock()
	}
	return f.openLocked()
}

func (f *File) openLocked() error {
	if f.dir != "" {
		if _, err := os.Stat(f.dir); os.IsNotExist(err) {
			if err := os.MkdirAll(f.dir, 0o755); err != nil {
				core.Diagf("Failed to create log directory <%s>: %v", f.dir, err)
				return fmt.Errorf("failed to create log directory: %w", err)
			}
			core.Diagf("Created log directory <%s>", f.dir)
		}
	}

	_ = f.closeLocked()

	name := f.fullName()
	file, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		core.Diagf("Failed to open log file <%s>: %v", name, err)
		return fmt.Errorf("failed to open log file: %w", err)
	}
	f.f = file
	f.w = bufio.NewWriter(file)
	core.Diagf("Opened log file <%s>", name)
	return nil
}

func (f *File) Close() error {
	if f.threadSafe {
		f.mu.Lock()
		defer f.mu.Unlock()
	}
	return f.closeLocked()
}

func (f *File) closeLocked() error {
	if f.f == nil {
		return nil
	}
	var first error
	if err := f.w.Flush(); err != nil {
		first = err
	}
	if err := f.f.Close(); err != nil && first == nil {
		first = err
	}
	f.f = nil
	f.w = nil
	f.pending = 0
	return first
}

func (f *File) Emit(msg string, level core.Level) bool {
	if level < f.Level() {
		return false
	}
	if f.threadSafe {
		f.mu.Lock()
		defer f.mu.Unlock()
	}
	if !f.writeLocked(msg) {
		return false
	}
	emittedTotal.WithLabelValues(f.metricLabel, level.String()).Inc()
	return true
}

// writeLocked 执行实际写入并推进 flush 计数
// 没有打开的句柄或 I/O 失败时返回 false，错误只进诊断通道，不向上抛
func (f *File) writeLocked(msg string) bool {
	if f.w == nil {
		return false
	}
	if _, err := f.w.WriteString(msg); err != nil {
		core.Diagf("Failed to write log file <%s>: %v", f.fullName(), err)
		writeErrorsTotal.WithLabelValues(f.metricLabel).Inc()
		return false
	}
	if err := f.countWrite(f.flushNow); err != nil {
		core.Diagf("Failed to flush log file <%s>: %v", f.fullName(), err)
		writeErrorsTotal.WithLabelValues(f.metricLabel).Inc()
		return false
	}
	return true
}

func (f *File) flushNow() error {
	if err := f.w.Flush(); err != nil {
		return err
	}
	flushesTotal.WithLabelValues(f.metricLabel).Inc()
	return nil
}
