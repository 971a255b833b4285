package snapshot

import (
	"errors"

	"github.com/cockroachdb/pebble"
	"go.uber.org/zap"

	"kama_chat_client/pkg/errorx"
)

// PebbleStore 基于 Pebble 的快照库实现
// Pebble 是嵌入式 KV 存储，数据落在本地目录，天然满足跨进程重启的持久化需求
type PebbleStore struct {
	db *pebble.DB
}

// 编译期接口断言
var _ Store = (*PebbleStore)(nil)

// OpenPebble 打开（或创建）指定目录下的 Pebble 快照库
func OpenPebble(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, errorx.Wrapf(err, errorx.CodeBadSnapshot, "打开快照库 %s 失败", path)
	}
	zap.L().Info("快照库已打开", zap.String("path", path))
	return &PebbleStore{db: db}, nil
}

// Read 读取键对应的值
// 键不存在返回 nil 和 nil，交由恢复逻辑按"条目缺失"跳过
func (s *PebbleStore) Read(key string) ([]byte, error) {
	value, closer, err := s.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, nil // 条目不存在，返回空但不报错
		}
		return nil, errorx.Wrapf(err, errorx.CodeBadSnapshot, "读取快照条目 %s 失败", key)
	}
	// Get 返回的切片在 closer.Close 后失效，必须先拷贝
	out := make([]byte, len(value))
	copy(out, value)
	if err := closer.Close(); err != nil {
		return nil, errorx.Wrapf(err, errorx.CodeBadSnapshot, "读取快照条目 %s 失败", key)
	}
	return out, nil
}

// Write 写入键值对
// 使用 pebble.Sync 保证落盘后才返回，快照本来就是为崩溃恢复准备的
func (s *PebbleStore) Write(key string, value []byte) error {
	if err := s.db.Set([]byte(key), value, pebble.Sync); err != nil {
		return errorx.Wrapf(err, errorx.CodeBadSnapshot, "写入快照条目 %s 失败", key)
	}
	return nil
}

// Delete 删除键（键不存在不报错）
func (s *PebbleStore) Delete(key string) error {
	if err := s.db.Delete([]byte(key), pebble.Sync); err != nil {
		return errorx.Wrapf(err, errorx.CodeBadSnapshot, "删除快照条目 %s 失败", key)
	}
	return nil
}

// Close 关闭底层 Pebble 实例
func (s *PebbleStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
