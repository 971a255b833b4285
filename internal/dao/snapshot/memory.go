package snapshot

import "sync"

// MemoryStore 进程内快照库实现
// 不具备持久化能力，只用于测试和临时环境
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore 创建空的内存快照库
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

// Read 读取键对应的值（键不存在返回 nil 和 nil）
func (s *MemoryStore) Read(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	// 返回拷贝，防止调用方篡改内部状态
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Write 写入键值对
func (s *MemoryStore) Write(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	s.entries[key] = stored
	return nil
}

// Delete 删除键
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Close 无资源可释放
func (s *MemoryStore) Close() error {
	return nil
}
