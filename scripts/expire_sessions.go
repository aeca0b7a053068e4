// 手动触发闲置会话巡检脚本
//
// 主应用内置了同样的后台巡检（按 sweep_interval_seconds 周期执行）。
// 此脚本用于手动补跑，例如服务停机一段时间后批量清理积压的闲置会话。
//
// 用法: go run scripts/expire_sessions.go

package main

import (
	"context"
	"log"
	"time"

	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/repository"
	"mock_interview_backend/pkg/database"
	"mock_interview_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Redis连接失败: %v", err)
	}

	store := repository.NewSessionRepository(db)
	cache := repository.NewSessionCache(rdb, cfg.Interview)

	ctx := context.Background()
	ids, err := cache.ActiveSessionIDs(ctx)
	if err != nil {
		log.Fatalf("扫描会话快照失败: %v", err)
	}

	expired := 0
	for _, id := range ids {
		// 与主应用的巡检一样在会话锁内操作，避免和在途请求打架
		token, err := cache.Acquire(ctx, id)
		if err != nil {
			continue
		}

		snap, err := cache.GetSnapshot(ctx, id)
		if err != nil || snap == nil || snap.Session.Status.Terminal() ||
			time.Since(snap.Session.LastActivityAt) < cfg.Interview.SessionTTL {
			cache.Release(ctx, id, token)
			continue
		}

		snap.Session.Status = model.SessionAborted
		snap.Session.FailureCause = "expired"
		snap.Session.LastActivityAt = time.Now()
		if err := store.SaveSession(ctx, &snap.Session); err != nil {
			log.Printf("会话 %s 落库失败: %v", id, err)
			cache.Release(ctx, id, token)
			continue
		}
		cache.SetSnapshot(ctx, snap)
		cache.Release(ctx, id, token)
		expired++
	}

	log.Printf("巡检完成：检查 %d 个会话，过期 %d 个", len(ids), expired)
}
