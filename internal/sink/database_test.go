package sink

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iuboy/alhena/core"
)

// memStore 内存实现的存储后端，记录每一批插入
type memStore struct {
	batches   [][]Entry
	insertErr error
	closed    bool
}

func (m *memStore) InsertBatch(ctx context.Context, entries []Entry) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	m.batches = append(m.batches, cp)
	return nil
}

func (m *memStore) Close() error {
	m.closed = true
	return nil
}

func newTestDatabase(store LogStore, level core.Level, maxFlush uint64) *Database {
	d := NewDatabase()
	d.base = base{level: uint32(level), maxFlush: maxFlush}
	d.store = store
	return d
}

func TestDatabaseBatchInsert(t *testing.T) {
	ms := &memStore{}
	d := newTestDatabase(ms, core.DebugLevel, 3)

	assert.True(t, d.Emit("a\n", core.InfoLevel))
	assert.True(t, d.Emit("b\n", core.WarningLevel))
	assert.Empty(t, ms.batches)

	// 第三条到达批次上限，一次性入库
	assert.True(t, d.Emit("c\n", core.ErrorLevel))
	require.Len(t, ms.batches, 1)
	batch := ms.batches[0]
	require.Len(t, batch, 3)
	assert.Equal(t, "a\n", batch[0].Message)
	assert.Equal(t, "INFO", batch[0].Level)
	assert.Equal(t, "b\n", batch[1].Message)
	assert.Equal(t, "WARNING", batch[1].Level)
	assert.Equal(t, "c\n", batch[2].Message)
	assert.Equal(t, "ERROR", batch[2].Level)

	// 计数清零后重新攒批
	assert.True(t, d.Emit("d\n", core.InfoLevel))
	assert.Len(t, ms.batches, 1)
}

func TestDatabaseCloseFlushesRemainder(t *testing.T) {
	ms := &memStore{}
	d := newTestDatabase(ms, core.DebugLevel, 10)

	assert.True(t, d.Emit("a\n", core.InfoLevel))
	assert.True(t, d.Emit("b\n", core.InfoLevel))
	require.NoError(t, d.Close())

	require.Len(t, ms.batches, 1)
	assert.Len(t, ms.batches[0], 2)
	assert.True(t, ms.closed)

	// 关闭之后拒绝写入
	assert.False(t, d.Emit("late\n", core.InfoLevel))
}

func TestDatabaseInsertFailureDropsBatch(t *testing.T) {
	ms := &memStore{insertErr: errors.New("connection lost")}
	d := newTestDatabase(ms, core.DebugLevel, 1)

	assert.False(t, d.Emit("lost\n", core.InfoLevel))

	// 恢复后新日志正常入库，丢掉的那批不会重放
	ms.insertErr = nil
	assert.True(t, d.Emit("next\n", core.InfoLevel))
	require.Len(t, ms.batches, 1)
	require.Len(t, ms.batches[0], 1)
	assert.Equal(t, "next\n", ms.batches[0][0].Message)
}

func TestDatabaseLevelGate(t *testing.T) {
	ms := &memStore{}
	d := newTestDatabase(ms, core.WarningLevel, 1)

	assert.False(t, d.Emit("dbg\n", core.DebugLevel))
	assert.False(t, d.Emit("info\n", core.InfoLevel))
	assert.Empty(t, ms.batches)
}

func TestDatabaseEmitBeforeOpen(t *testing.T) {
	d := NewDatabase()
	assert.False(t, d.Emit("dropped\n", core.InfoLevel))
}

func TestDatabaseOpenValidation(t *testing.T) {
	d := NewDatabase()
	// 缺 DSN
	assert.ErrorContains(t, d.Open(), "db_dsn")

	d = NewDatabase()
	d.Configure(loadView(t, "db_driver: oracle\ndb_dsn: whatever\n"))
	assert.ErrorContains(t, d.Open(), "unsupported database driver")
}

func TestDatabaseConfigure(t *testing.T) {
	d := NewDatabase()
	d.Configure(loadView(t, `
db_driver: postgres
db_dsn: host=localhost user=log dbname=logs
db_table: app_logs
num_logs_to_flush: 50
`))
	assert.Equal(t, "postgres", d.driver)
	assert.Equal(t, "host=localhost user=log dbname=logs", d.dsn)
	assert.Equal(t, "app_logs", d.table)
	assert.Equal(t, uint64(50), d.maxFlush)
}
