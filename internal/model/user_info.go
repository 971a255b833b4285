// Package model 定义客户端本地副本中的实体模型
// 所有实体由服务端拥有，客户端只保存一份内存副本
package model

// User 工作区内的用户
// 来源有两处：登录时凭证声明解出的当前用户，以及 GET /users 返回的用户名录
type User struct {
	ID       string `json:"id"`       // 用户 ID，服务端分配
	Fullname string `json:"fullname"` // 用户昵称
	Email    string `json:"email"`    // 邮箱
}
