// Package config 提供应用程序的配置加载和管理功能
// 使用 TOML 格式的配置文件，支持多路径查找
// 找不到配置文件时回退到内置默认值，保证客户端离线也能带着默认配置启动
package config

import (
	"fmt"

	"github.com/BurntSushi/toml" // TOML 配置文件解析库
)

// 内置默认值
// 配置文件缺失或字段留空时使用，集中定义避免散落在各调用点
const (
	DefaultApiBase      = "http://localhost:6688/api"  // REST 接口默认地址
	DefaultEventsBase   = "ws://localhost:6687/events" // 推送事件流默认地址
	DefaultSnapshotPath = "data/snapshot"              // 快照库默认路径
)

// MainConfig 主配置，包含应用基本信息
type MainConfig struct {
	AppName string `toml:"appName"` // 应用名称，用于日志标识等
	Mode    string `toml:"mode"`    // 运行模式：dev 或 release
}

// ApiConfig 服务端接口配置
type ApiConfig struct {
	BaseURL   string `toml:"baseURL"`   // REST 接口基础地址
	EventsURL string `toml:"eventsURL"` // 推送事件流基础地址
}

// SnapshotConfig 本地快照库配置
type SnapshotConfig struct {
	Path string `toml:"path"` // 快照库存储目录
}

// LogConfig 日志配置，使用 lumberjack 进行日志轮转
type LogConfig struct {
	LogPath    string `toml:"logPath"`    // 日志文件存储目录
	FileName   string `toml:"fileName"`   // 日志文件名
	MaxSize    int    `toml:"maxSize"`    // 单个日志文件最大大小（MB）
	MaxBackups int    `toml:"maxBackups"` // 保留旧日志文件的最大个数
	MaxAge     int    `toml:"maxAge"`     // 保留旧日志文件的最大天数
	Level      string `toml:"level"`      // 日志级别：debug, info, warn, error
}

// Config 应用程序总配置，聚合所有子配置
type Config struct {
	MainConfig     `toml:"mainConfig"`     // 主配置
	ApiConfig      `toml:"apiConfig"`      // 服务端接口配置
	SnapshotConfig `toml:"snapshotConfig"` // 快照库配置
	LogConfig      `toml:"logConfig"`      // 日志配置
}

// config 全局配置单例，延迟加载
var config *Config

// LoadConfig 从多个候选路径加载配置文件
// 按顺序尝试加载，找到第一个可用的配置文件即停止
// 全部失败也不报错，由 applyDefaults 填充默认值
func LoadConfig() error {
	if config == nil {
		config = new(Config)
	}
	// 候选配置文件路径（优先加载本地配置）
	paths := []string{
		"configs/config_local.toml",       // 本地开发配置（优先）
		"configs/config.toml",             // 默认配置
		"../../configs/config_local.toml", // 从子目录运行时的路径
		"../../configs/config.toml",       // 从子目录运行时的路径
	}

	// 依次尝试加载配置文件
	for _, path := range paths {
		if _, err := toml.DecodeFile(path, config); err == nil {
			return nil // 加载成功
		}
	}

	return fmt.Errorf("could not find configuration file in any of the search paths")
}

// GetConfig 获取全局配置实例（单例模式）
// 首次调用时会自动加载配置文件并填充默认值
func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig() // 忽略加载错误，使用默认值
		config.applyDefaults()
	}
	return config
}

// applyDefaults 为缺省字段填充内置默认值
func (c *Config) applyDefaults() {
	if c.AppName == "" {
		c.AppName = "kama_chat_client"
	}
	if c.Mode == "" {
		c.Mode = "dev"
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultApiBase
	}
	if c.EventsURL == "" {
		c.EventsURL = DefaultEventsBase
	}
	if c.SnapshotConfig.Path == "" {
		c.SnapshotConfig.Path = DefaultSnapshotPath
	}
}
