package snapshot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// 两种实现共用一套行为测试
func runStoreTests(t *testing.T, s Store) {
	t.Helper()

	// 不存在的键：返回 nil 和 nil，不视为错误
	value, err := s.Read("missing")
	require.NoError(t, err)
	require.Nil(t, value)

	require.NoError(t, s.Write("k1", []byte("v1")))
	value, err = s.Read("k1")
	require.NoError(t, err)
	require.Equal(t, []byte("v1"), value)

	// 覆盖写
	require.NoError(t, s.Write("k1", []byte("v2")))
	value, err = s.Read("k1")
	require.NoError(t, err)
	require.Equal(t, []byte("v2"), value)

	// 删除后读取等同于缺失；重复删除不报错
	require.NoError(t, s.Delete("k1"))
	value, err = s.Read("k1")
	require.NoError(t, err)
	require.Nil(t, value)
	require.NoError(t, s.Delete("k1"))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	runStoreTests(t, s)
}

func TestPebbleStore(t *testing.T) {
	s, err := OpenPebble(t.TempDir())
	require.NoError(t, err)
	defer s.Close()
	runStoreTests(t, s)
}

func TestPebbleStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenPebble(dir)
	require.NoError(t, err)
	require.NoError(t, s.Write("token", []byte("abc")))
	require.NoError(t, s.Close())

	// 重新打开后数据仍在——快照就是为了跨进程重启
	s, err = OpenPebble(dir)
	require.NoError(t, err)
	defer s.Close()
	value, err := s.Read("token")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), value)
}

func TestSubmitTaskWithoutWorkers(t *testing.T) {
	// Worker 未初始化时退化为同步执行
	done := false
	SubmitTask(func() { done = true })
	require.True(t, done)
}
