package snapshot

// 快照条目键名
// 与早期版本的本地存储键保持一致，保证升级后旧快照仍可恢复
const (
	KeyUser      = "user"      // 当前用户（JSON）
	KeyToken     = "token"     // 凭证（原文字符串）
	KeyWorkspace = "workspace" // 工作区（JSON）
	KeyChannels  = "channels"  // 频道列表（JSON）
	KeyMessages  = "messages"  // 频道消息映射（JSON）
	KeyUsers     = "users"     // 工作区用户名录（JSON）
)
