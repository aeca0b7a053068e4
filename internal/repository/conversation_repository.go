package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const chatHistoryPrefix = "chat:history:"

// redis 中的轻量消息结构，避免整行 gorm 模型进缓存
type cachedMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationRepository 会话归档走 MySQL，近期上下文走 Redis 列表
type ConversationRepository struct {
	DB         *gorm.DB
	Redis      *redis.Client
	historyCap int
	historyTTL time.Duration
}

func NewConversationRepository(db *gorm.DB, rdb *redis.Client, historyCap int, historyTTL time.Duration) *ConversationRepository {
	return &ConversationRepository{DB: db, Redis: rdb, historyCap: historyCap, historyTTL: historyTTL}
}

func (r *ConversationRepository) Create(ctx context.Context, conv *model.Conversation) error {
	return r.DB.WithContext(ctx).Create(conv).Error
}

func (r *ConversationRepository) GetByID(ctx context.Context, id string) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.DB.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&conv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *ConversationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Conversation, int64, error) {
	var convs []model.Conversation
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.Conversation{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&convs).Error
	return convs, total, err
}

// AppendMessage 归档消息入库，并把轻量版推入 Redis 上下文列表
func (r *ConversationRepository) AppendMessage(ctx context.Context, msg *model.ConversationMessage) error {
	if err := r.DB.WithContext(ctx).Create(msg).Error; err != nil {
		return err
	}
	if err := r.DB.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", msg.ConversationID).
		Update("updated_at", time.Now()).Error; err != nil {
		return err
	}

	data, err := json.Marshal(cachedMessage{Role: msg.Role, Content: msg.Content})
	if err != nil {
		return err
	}
	key := chatHistoryPrefix + msg.ConversationID
	pipe := r.Redis.Pipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, int64(-r.historyCap), -1)
	pipe.Expire(ctx, key, r.historyTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// RecentMessages 取最近 n 条上下文；缓存为空时回源数据库
func (r *ConversationRepository) RecentMessages(ctx context.Context, conversationID string, n int) ([]model.ConversationMessage, error) {
	key := chatHistoryPrefix + conversationID
	raw, err := r.Redis.LRange(ctx, key, int64(-n), -1).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	if len(raw) > 0 {
		msgs := make([]model.ConversationMessage, 0, len(raw))
		for _, item := range raw {
			var cm cachedMessage
			if err := json.Unmarshal([]byte(item), &cm); err != nil {
				continue
			}
			msgs = append(msgs, model.ConversationMessage{
				ConversationID: conversationID,
				Role:           cm.Role,
				Content:        cm.Content,
			})
		}
		return msgs, nil
	}

	var msgs []model.ConversationMessage
	err = r.DB.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").Limit(n).Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	// 数据库按时间倒序取出，翻转为对话顺序
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

func (r *ConversationRepository) Delete(ctx context.Context, id string) error {
	if err := r.DB.WithContext(ctx).Where("conversation_id = ?", id).Delete(&model.ConversationMessage{}).Error; err != nil {
		return err
	}
	if err := r.DB.WithContext(ctx).Delete(&model.Conversation{}, "id = ?", id).Error; err != nil {
		return err
	}
	return r.Redis.Del(ctx, chatHistoryPrefix+id).Err()
}
