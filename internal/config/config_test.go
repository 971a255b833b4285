package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyDefaultsFillsEmptyConfig(t *testing.T) {
	c := new(Config)
	c.applyDefaults()

	// 配置文件完全缺失时，固定的内置默认值兜底
	require.Equal(t, DefaultApiBase, c.BaseURL)
	require.Equal(t, DefaultEventsBase, c.EventsURL)
	require.Equal(t, DefaultSnapshotPath, c.SnapshotConfig.Path)
	require.Equal(t, "dev", c.Mode)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	c := new(Config)
	c.BaseURL = "https://chat.example.com/api"
	c.applyDefaults()

	require.Equal(t, "https://chat.example.com/api", c.BaseURL)
	require.Equal(t, DefaultEventsBase, c.EventsURL)
}

func TestGetConfigNeverNil(t *testing.T) {
	conf := GetConfig()
	require.NotNil(t, conf)
	require.NotEmpty(t, conf.BaseURL)
	require.NotEmpty(t, conf.EventsURL)
}
