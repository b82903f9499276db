package sink

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/iuboy/alhena/config"
	"github.com/iuboy/alhena/core"
)

// 编译时接口检查
var _ core.Sink = (*Rolling)(nil)

const (
	flockTimeout    = 3 * time.Second
	flockRetryDelay = 100 * time.Millisecond
)

// nowFunc 取当前本地时间，滚动边界按操作者视角的日历天算（测试可替换）
var nowFunc = time.Now

// Rolling 按天滚动的文件输出端
// 内部组合一个 File（threadSafe=false），每次 Emit 在自己的锁内
// 检查日历天是否变化，变了先 rotate 再写，保证并发下滚动是原子的
type Rolling struct {
	base

	dir      string
	baseName string
	suffix   string

	mu    sync.Mutex
	inner *File

	// 最近一次 open 时的本地日期
	lastYear  int
	lastMonth time.Month
	lastDay   int

	// 跨进程文件锁，只在切换文件时持有
	// 对应原系统用进程间互斥量的场景：多个进程滚动同一个目标时
	// 不会在建目录和开文件上打架
	flk *flock.Flock
}

func NewRolling() *Rolling {
	return &Rolling{
		base:     newBase(),
		dir:      config.DefaultFilePath,
		baseName: config.DefaultFileBaseName,
		suffix:   config.DefaultFileSuffix,
	}
}

func (r *Rolling) Configure(view *config.View) {
	r.base.configure(view)
	view.GetString(config.KeyFilePath, &r.dir)
	view.GetString(config.KeyFileBaseName, &r.baseName)
	view.GetString(config.KeyFileSuffix, &r.suffix)
}

func (r *Rolling) Open() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.openLocked()
}

// openLocked 记录当天日期，按日期拼出文件名并重建内部 File
// 先记日期再开文件：open 失败时当天不再反复重试，下个跨天的
// Emit 会再触发一次 rotate
func (r *Rolling) openLocked() error {
	now := nowFunc()
	r.lastYear, r.lastMonth, r.lastDay = now.Date()

	name := fileNameByDate(r.baseName, now)
	r.inner = newFileWith(r.dir, name, r.suffix, r.Level(), r.maxFlush, false)

	unlock := r.lockAcrossProcesses()
	defer unlock()
	return r.inner.openLocked()
}

func (r *Rolling) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inner == nil {
		return nil
	}
	return r.inner.closeLocked()
}

func (r *Rolling) Emit(msg string, level core.Level) bool {
	if level < r.Level() {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// 跨天先切文件，日期检查和写入在同一个临界区里，
	// 任何一条日志都不会跨在滚动的两边
	y, m, d := nowFunc().Date()
	if y != r.lastYear || m != r.lastMonth || d != r.lastDay {
		if err := r.rotateLocked(); err != nil {
			core.Diagf("Failed to rotate log file: %v", err)
		}
	}

	if r.inner == nil || !r.inner.writeLocked(msg) {
		return false
	}
	emittedTotal.WithLabelValues("rolling", level.String()).Inc()
	return true
}

// rotateLocked 关旧开新；旧句柄在 close 时已经刷出，
// 内部 File 重建后 flush 计数随之清零，每天的文件各自攒批
func (r *Rolling) rotateLocked() error {
	if r.inner != nil {
		if err := r.inner.closeLocked(); err != nil {
			core.Diagf("Failed to close log file while rotating: %v", err)
		}
	}
	if err := r.openLocked(); err != nil {
		return err
	}
	rotationsTotal.Inc()
	return nil
}

// lockAcrossProcesses 拿跨进程文件锁，返回解锁函数
// 拿不到锁只记诊断并继续，日志系统不为锁阻塞业务
func (r *Rolling) lockAcrossProcesses() func() {
	if r.flk == nil {
		key := r.dir + "/" + r.baseName
		r.flk = flock.New(filepath.Join(os.TempDir(), fmt.Sprintf("%x.lock", sha256.Sum256([]byte(key)))))
	}

	ctx, cancel := context.WithTimeout(context.Background(), flockTimeout)
	defer cancel()
	locked, err := r.flk.TryLockContext(ctx, flockRetryDelay)
	if err != nil {
		core.Diagf("Could not acquire rotation file lock: %v", err)
		return func() {}
	}
	if !locked {
		core.Diagf("Timed out waiting for rotation file lock")
		return func() {}
	}
	return func() { _ = r.flk.Unlock() }
}

// fileNameByDate 拼出按天滚动的文件基础名：<base>-YYYY-MM-DD
func fileNameByDate(baseName string, t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%s-%04d-%02d-%02d", baseName, y, int(m), d)
}
