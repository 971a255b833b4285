package model

// Workspace 当前会话所属的工作区
// 每个会话只有一个工作区，登录时由凭证声明导出，登出时清除
type Workspace struct {
	ID   string `json:"id"`   // 工作区 ID
	Name string `json:"name"` // 工作区名称
}
