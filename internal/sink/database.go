package sink

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/iuboy/alhena/config"
	"github.com/iuboy/alhena/core"
)

// 编译时接口检查
var _ core.Sink = (*Database)(nil)

const insertTimeout = 10 * time.Second

// Entry 一条日志对应的数据库行，消息原文入库，不拆结构化字段
type Entry struct {
	Time    time.Time `gorm:"column:time"`
	Level   string    `gorm:"column:level"`
	Message string    `gorm:"column:msg"`
}

// LogStore 存储后端接口
type LogStore interface {
	InsertBatch(ctx context.Context, entries []Entry) error
	Close() error
}

// Database 写数据库的输出端
// flush 策略直接映射成批量插入：攒 maxFlush 条提交一次
type Database struct {
	base

	driver string
	dsn    string
	table  string

	mu    sync.Mutex
	store LogStore
	batch []Entry
}

func NewDatabase() *Database {
	return &Database{
		base:   newBase(),
		driver: config.DefaultDBDriver,
		table:  config.DefaultDBTable,
	}
}

func (d *Database) Configure(view *config.View) {
	d.base.configure(view)
	view.GetString(config.KeyDBDriver, &d.driver)
	view.GetString(config.KeyDBDSN, &d.dsn)
	view.GetString(config.KeyDBTable, &d.table)
}

func (d *Database) Open() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.dsn == "" {
		return errors.New("database destination requires db_dsn")
	}

	var dialector gorm.Dialector
	switch d.driver {
	case "mysql":
		dialector = mysql.Open(d.dsn)
	case "postgres":
		dialector = postgres.Open(d.dsn)
	default:
		return fmt.Errorf("unsupported database driver: %s", d.driver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		core.Diagf("Failed to open log database: %v", err)
		return fmt.Errorf("failed to connect to log database: %w", err)
	}

	d.store = &sqlStore{db: gdb, table: d.table}
	core.Diagf("Opened log database <%s> table <%s>", d.driver, d.table)
	return nil
}

func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.store == nil {
		return nil
	}
	if err := d.flushLocked(); err != nil {
		core.Diagf("Failed to flush log batch on close: %v", err)
	}
	err := d.store.Close()
	d.store = nil
	d.batch = nil
	d.pending = 0
	return err
}

func (d *Database) Emit(msg string, level core.Level) bool {
	if level < d.Level() {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.store == nil {
		return false
	}

	d.batch = append(d.batch, Entry{
		Time:    time.Now(),
		Level:   level.String(),
		Message: msg,
	})
	if err := d.countWrite(d.flushLocked); err != nil {
		// 插入失败丢掉这一批：保应用活性，不保日志完整
		core.Diagf("Failed to insert log batch: %v", err)
		writeErrorsTotal.WithLabelValues("database").Inc()
		d.batch = d.batch[:0]
		d.pending = 0
		return false
	}
	emittedTotal.WithLabelValues("database", level.String()).Inc()
	return true
}

func (d *Database) flushLocked() error {
	if len(d.batch) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
	defer cancel()
	if err := d.store.InsertBatch(ctx, d.batch); err != nil {
		return err
	}
	d.batch = d.batch[:0]
	flushesTotal.WithLabelValues("database").Inc()
	return nil
}

type sqlStore struct {
	db    *gorm.DB
	table string
}

func (s *sqlStore) InsertBatch(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Table(s.table).CreateInBatches(entries, len(entries)).Error
}

func (s *sqlStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
