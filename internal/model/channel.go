package model

// 频道类型
const (
	ChannelTypeDirect = "direct" // 单聊频道
	ChannelTypeGroup  = "group"  // 群聊频道
)

// Channel 聊天频道
// 由登录时的全量拉取或显式创建动作产生，本核心不删除频道
type Channel struct {
	ID      string   `json:"id"`      // 频道 ID，在频道列表内唯一
	Name    string   `json:"name"`    // 频道名称，单聊频道可为空
	Type    string   `json:"type"`    // 频道类型：direct 或 group
	Members []string `json:"members"` // 成员用户 ID，保持服务端给出的顺序
}

// IsDirect 判断是否为单聊频道
func (c *Channel) IsDirect() bool {
	return c.Type == ChannelTypeDirect
}
