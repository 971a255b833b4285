package constants

const (
	EVENT_CHANNEL_SIZE   = 100  // 推送事件队列大小
	SNAPSHOT_WORKER_NUM  = 4    // 快照异步写 Worker 数量
	SNAPSHOT_BUFFER_SIZE = 1024 // 快照任务通道缓冲区大小
)
