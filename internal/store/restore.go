// restore.go
// 进程启动时用本地快照预热副本，让 UI 在网络请求完成前就有数据可读
package store

import (
	"encoding/json"

	"go.uber.org/zap"

	"kama_chat_client/internal/dao/snapshot"
	"kama_chat_client/internal/model"
)

// RestoreFromSnapshot 从快照库恢复副本
// 六个条目各自独立读取和反序列化：缺失或损坏的条目记日志后跳过，
// 部分恢复是合法结果，恢复永远不会让进程启动失败
func (r *Replica) RestoreFromSnapshot(store snapshot.Store) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if raw := readEntry(store, snapshot.KeyUser); raw != nil {
		user := new(model.User)
		if err := json.Unmarshal(raw, user); err != nil {
			zap.L().Warn("快照条目损坏，已跳过", zap.String("key", snapshot.KeyUser), zap.Error(err))
		} else {
			r.user = user
		}
	}

	// 凭证按原文存储，无需反序列化
	if raw := readEntry(store, snapshot.KeyToken); raw != nil {
		r.token = string(raw)
	}

	if raw := readEntry(store, snapshot.KeyWorkspace); raw != nil {
		ws := new(model.Workspace)
		if err := json.Unmarshal(raw, ws); err != nil {
			zap.L().Warn("快照条目损坏，已跳过", zap.String("key", snapshot.KeyWorkspace), zap.Error(err))
		} else {
			r.workspace = ws
		}
	}

	if raw := readEntry(store, snapshot.KeyChannels); raw != nil {
		var channels []*model.Channel
		if err := json.Unmarshal(raw, &channels); err != nil {
			zap.L().Warn("快照条目损坏，已跳过", zap.String("key", snapshot.KeyChannels), zap.Error(err))
		} else {
			r.channels = channels
		}
	}

	if raw := readEntry(store, snapshot.KeyMessages); raw != nil {
		var messages map[string][]*model.Message
		if err := json.Unmarshal(raw, &messages); err != nil {
			zap.L().Warn("快照条目损坏，已跳过", zap.String("key", snapshot.KeyMessages), zap.Error(err))
		} else if messages != nil {
			r.messages = messages
		}
	}

	if raw := readEntry(store, snapshot.KeyUsers); raw != nil {
		var users map[string]*model.User
		if err := json.Unmarshal(raw, &users); err != nil {
			zap.L().Warn("快照条目损坏，已跳过", zap.String("key", snapshot.KeyUsers), zap.Error(err))
		} else if users != nil {
			r.users = users
		}
	}

	// 已知频道必须有历史条目，快照可能是旧版本写的，这里补齐
	for _, ch := range r.channels {
		if _, ok := r.messages[ch.ID]; !ok {
			r.messages[ch.ID] = []*model.Message{}
		}
	}
}

// readEntry 读取单个快照条目，读失败等同于条目缺失
func readEntry(store snapshot.Store, key string) []byte {
	raw, err := store.Read(key)
	if err != nil {
		zap.L().Warn("读取快照条目失败，已跳过", zap.String("key", key), zap.Error(err))
		return nil
	}
	return raw
}
