// Package snapshot 定义本地快照库接口
// 遵循依赖倒置原则，Service 层依赖此接口而非具体存储实现
// 快照库只用于进程重启后的恢复，内存副本存活期间它永远不是事实来源
package snapshot

// Store 快照库接口
// 六个条目互相独立、各自序列化，某个条目缺失或损坏不影响其余条目的恢复
type Store interface {
	// Read 读取键对应的值（键不存在返回 nil 和 nil，不视为错误）
	Read(key string) ([]byte, error)
	// Write 写入键值对
	Write(key string, value []byte) error
	// Delete 删除键（键不存在不报错）
	Delete(key string) error
	// Close 关闭底层存储
	Close() error
}
