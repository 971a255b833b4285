package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"kama_chat_client/internal/config"
	"kama_chat_client/internal/dao/snapshot"
	"kama_chat_client/internal/dto/request"
	"kama_chat_client/internal/gateway/api"
	"kama_chat_client/internal/gateway/push"
	"kama_chat_client/internal/infrastructure/logger"
	"kama_chat_client/internal/infrastructure/validate"
	"kama_chat_client/internal/service/auth"
	"kama_chat_client/internal/service/chat"
	"kama_chat_client/internal/store"
	"kama_chat_client/pkg/constants"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置（找不到配置文件时使用内置默认值）
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, conf.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化校验器
	if err := validate.Init("zh"); err != nil {
		zap.L().Fatal("校验器初始化失败", zap.Error(err))
	}
	zap.L().Info("校验器初始化成功")

	// 4. 打开快照库并启动异步写 Worker
	snap, err := snapshot.OpenPebble(conf.SnapshotConfig.Path)
	if err != nil {
		zap.L().Fatal("快照库初始化失败", zap.Error(err))
	}
	snapshot.InitWriter(constants.SNAPSHOT_WORKER_NUM, constants.SNAPSHOT_BUFFER_SIZE)
	zap.L().Info("快照库初始化成功")

	// 5. 创建副本并用快照预热
	// 为什么：网络请求完成之前 UI 就要有数据可读，部分恢复也比空白强
	replica := store.NewReplica()
	replica.RestoreFromSnapshot(snap)
	zap.L().Info("副本预热完成", zap.Bool("authenticated", replica.IsAuthenticated()))

	// 6. 初始化 Service 层 (依赖注入)
	apiClient := api.NewClient(conf.ApiConfig.BaseURL)
	authService := auth.NewAuthService(apiClient, replica, snap)
	chatService := chat.NewChatService(apiClient, replica, snap)
	zap.L().Info("Service 层初始化成功")

	// 7. 无快照会话时，支持用环境变量凭据登录（headless 同步模式）
	if !replica.IsAuthenticated() {
		email := os.Getenv("KAMA_CHAT_EMAIL")
		password := os.Getenv("KAMA_CHAT_PASSWORD")
		if email != "" && password != "" {
			user, err := authService.Signin(context.Background(), request.SigninRequest{
				Email:    email,
				Password: password,
			})
			if err != nil {
				zap.L().Fatal("登录失败", zap.Error(err))
			}
			zap.L().Info("登录成功", zap.String("userId", user.ID))
		}
	}

	// 预热所有已知频道的历史，推送到来之前先有存量消息可读
	for _, ch := range replica.Channels() {
		if err := chatService.EnsureChannelHistory(context.Background(), ch.ID); err != nil {
			zap.L().Warn("频道历史预热失败", zap.String("channelId", ch.ID), zap.Error(err))
		}
	}

	// 8. 启动实时更新监听
	// 快照里有有效凭证时直接用它订阅；否则等 UI 发起登录后再订阅
	listener := push.NewListener(replica)
	listener.Start()
	if token := replica.Token(); token != "" {
		src, err := push.DialWebsocket(conf.ApiConfig.EventsURL, token)
		if err != nil {
			// 订阅失败不阻塞启动，拉取路径仍然可用
			zap.L().Warn("推送订阅建立失败", zap.Error(err))
		} else {
			defer src.Close()
			go listener.Run(src)
			zap.L().Info("推送订阅已建立")
		}
	}

	// 设置信号监听
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 等待信号
	<-quit

	listener.Close()
	if err := snap.Close(); err != nil {
		zap.L().Error("关闭快照库失败", zap.Error(err))
	}

	zap.L().Info("客户端已退出")
}
