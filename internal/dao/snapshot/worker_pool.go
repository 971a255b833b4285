package snapshot

import (
	"go.uber.org/zap"
)

// snapshotTask 定义快照写任务（纯闭包模式）
type snapshotTask struct {
	Action func() // 要执行的操作
}

// snapshotTaskChan 缓冲通道，用于接收快照写任务
var snapshotTaskChan chan *snapshotTask

// SubmitTask 提交异步快照写任务（通用入口）
// 内存副本先行更新并保持权威，快照写入相对于触发它的变更是 fire-and-forget；
// 写失败只记日志，不回滚内存副本
// 使用示例:
//
//	snapshot.SubmitTask(func() {
//	    if err := store.Write(snapshot.KeyChannels, data); err != nil {
//	        zap.L().Warn("持久化频道列表失败", zap.Error(err))
//	    }
//	})
func SubmitTask(action func()) {
	if snapshotTaskChan == nil {
		// Worker 未初始化（多见于测试），退化为同步执行
		action()
		return
	}
	select {
	case snapshotTaskChan <- &snapshotTask{Action: action}:
		// 成功放入
	default:
		// 降级：同步执行
		zap.L().Warn("snapshot task channel full, executing synchronously")
		action()
	}
}

// startWorker 启动单个 Worker 消费循环
func startWorker() {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("snapshot worker panic", zap.Any("recover", r))
			go startWorker() // 重启
		}
	}()

	for task := range snapshotTaskChan {
		if task.Action != nil {
			task.Action()
		}
	}
}

// InitWriter 初始化快照写 Worker Pool
// workerNum: 后台协程数量
// bufferSize: 通道缓冲区大小
func InitWriter(workerNum int, bufferSize int) {
	snapshotTaskChan = make(chan *snapshotTask, bufferSize)

	for i := 0; i < workerNum; i++ {
		go startWorker()
	}
	zap.L().Info("snapshot writers started", zap.Int("workers", workerNum), zap.Int("buffer", bufferSize))
}
