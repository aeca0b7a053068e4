package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	AI        AIConfig
	Interview InterviewConfig `mapstructure:"interview"`
	Chat      ChatConfig      `mapstructure:"chat"`
	Storage   StorageConfig
	Notify    NotifyConfig    `mapstructure:"notify"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool `mapstructure:"-"` // 强制执行数据库迁移
	MigrateOnly  bool `mapstructure:"-"` // 仅迁移模式（迁移后退出）
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type AIConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	APIKey         string        `mapstructure:"api_key"`
	Model          string        `mapstructure:"model"`
	Temperature    float64       `mapstructure:"temperature"`
	MaxTokens      int           `mapstructure:"max_tokens"`
	TopP           float64       `mapstructure:"top_p"`
	RequestTimeout time.Duration `mapstructure:"request_timeout_seconds"`
	MaxAttempts    int           `mapstructure:"max_attempts"`
	BackoffInitial time.Duration `mapstructure:"backoff_initial_ms"`
	BackoffMax     time.Duration `mapstructure:"backoff_max_ms"`
}

// InterviewConfig 面试编排引擎的全部可调参数。
// 难度自适应阈值与类别权重按配置管理，不写死在代码里。
type InterviewConfig struct {
	MinQuestions          int     `mapstructure:"min_questions"`
	MaxQuestions          int     `mapstructure:"max_questions"`
	DefaultQuestionTarget int     `mapstructure:"default_question_target"`
	MaxSkills             int     `mapstructure:"max_skills"`
	MaxCustomQuestions    int     `mapstructure:"max_custom_questions"`
	MinDurationMinutes    int     `mapstructure:"min_duration_minutes"`
	MaxDurationMinutes    int     `mapstructure:"max_duration_minutes"`
	DefaultDurationMins   int     `mapstructure:"default_duration_minutes"`
	ScoreFloor            float64 `mapstructure:"score_floor"`
	ScoreMax              float64 `mapstructure:"score_max"`

	// 记忆窗口
	HotWindowSize   int `mapstructure:"hot_window_size"`   // 逐字保留的最近轮数 K
	HardWindowMax   int `mapstructure:"hard_window_max"`   // 摘要失败时热窗口的硬上限
	ContextCeiling  int `mapstructure:"context_ceiling"`   // 传给模型的上下文 token 上限
	SummaryMaxChars int `mapstructure:"summary_max_chars"` // 降级摘要的截断长度

	// 问题生成
	RegenAttempts  int     `mapstructure:"regen_attempts"`  // 近似重复时的重新生成次数
	AdaptWindow    int     `mapstructure:"adapt_window"`    // 难度自适应参考的最近轮数 N
	RaiseThreshold float64 `mapstructure:"raise_threshold"` // 均分高于该值则提升一档难度
	LowerThreshold float64 `mapstructure:"lower_threshold"` // 均分低于该值则降低一档难度

	// 报告聚合：为空时总分取简单平均
	CategoryWeights map[string]float64 `mapstructure:"category_weights"`

	SessionTTL    time.Duration `mapstructure:"session_ttl_seconds"`    // 会话闲置超时
	SweepInterval time.Duration `mapstructure:"sweep_interval_seconds"` // 过期会话巡检周期
	LockTTL       time.Duration `mapstructure:"lock_ttl_seconds"`       // 会话分布式锁的超时
}

type ChatConfig struct {
	ContextWindow int           `mapstructure:"context_window"` // 注入模型的历史条数
	HistoryCap    int           `mapstructure:"history_cap"`    // 缓存保留的历史条数
	HistoryTTL    time.Duration `mapstructure:"history_ttl_seconds"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioUseSSL   bool   `mapstructure:"minio_use_ssl"`
	OSSEndpoint   string `mapstructure:"oss_endpoint"`
	OSSAccessKey  string `mapstructure:"oss_access_key"`
	OSSSecretKey  string `mapstructure:"oss_secret_key"`
	OSSBucket     string `mapstructure:"oss_bucket"`

	MaxRecordingMB int64 `mapstructure:"max_recording_mb"` // 单个回答录音/录像的大小上限
}

type NotifyConfig struct {
	NATSURL string `mapstructure:"nats_url"` // 为空时通知只写日志
	Subject string `mapstructure:"subject"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests int `mapstructure:"max_requests"`  // 全局每分钟限制
	AIPerMinute int `mapstructure:"ai_per_minute"` // AI 路由每分钟限制
	UserPerHour int `mapstructure:"user_per_hour"` // 单用户每小时限制
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("MOCK_INTERVIEW")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// AI
	viper.BindEnv("ai.base_url", "AI_BASE_URL")
	viper.BindEnv("ai.api_key", "AI_API_KEY")
	viper.BindEnv("ai.model", "AI_MODEL")

	// Storage
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")
	viper.BindEnv("storage.oss_endpoint", "OSS_ENDPOINT")
	viper.BindEnv("storage.oss_access_key", "OSS_ACCESS_KEY")
	viper.BindEnv("storage.oss_secret_key", "OSS_SECRET_KEY")
	viper.BindEnv("storage.oss_bucket", "OSS_BUCKET")

	// Notify
	viper.BindEnv("notify.nats_url", "NATS_URL")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	// 时长类字段在配置文件里以秒/毫秒为单位
	cfg.AI.RequestTimeout = cfg.AI.RequestTimeout * time.Second
	cfg.AI.BackoffInitial = cfg.AI.BackoffInitial * time.Millisecond
	cfg.AI.BackoffMax = cfg.AI.BackoffMax * time.Millisecond
	cfg.Interview.SessionTTL = cfg.Interview.SessionTTL * time.Second
	cfg.Interview.SweepInterval = cfg.Interview.SweepInterval * time.Second
	cfg.Interview.LockTTL = cfg.Interview.LockTTL * time.Second
	cfg.Chat.HistoryTTL = cfg.Chat.HistoryTTL * time.Second

	if cfg.Server.Mode == "release" && cfg.AI.APIKey == "" {
		return nil, fmt.Errorf("ai.api_key must be set in release mode")
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}

// applyDefaults 补齐缺省值，保证引擎参数永远有可用的边界
func applyDefaults(cfg *Config) {
	iv := &cfg.Interview
	if iv.MinQuestions <= 0 {
		iv.MinQuestions = 1
	}
	if iv.MaxQuestions <= 0 {
		iv.MaxQuestions = 20
	}
	if iv.DefaultQuestionTarget <= 0 {
		iv.DefaultQuestionTarget = 5
	}
	if iv.MaxSkills <= 0 {
		iv.MaxSkills = 10
	}
	if iv.MaxCustomQuestions <= 0 {
		iv.MaxCustomQuestions = 5
	}
	if iv.MinDurationMinutes <= 0 {
		iv.MinDurationMinutes = 15
	}
	if iv.MaxDurationMinutes <= 0 {
		iv.MaxDurationMinutes = 180
	}
	if iv.DefaultDurationMins <= 0 {
		iv.DefaultDurationMins = 45
	}
	if iv.ScoreMax <= 0 {
		iv.ScoreMax = 10.0
	}
	if iv.HotWindowSize <= 0 {
		iv.HotWindowSize = 6
	}
	if iv.HardWindowMax <= iv.HotWindowSize {
		iv.HardWindowMax = iv.HotWindowSize + 4
	}
	if iv.ContextCeiling <= 0 {
		iv.ContextCeiling = 2800
	}
	if iv.SummaryMaxChars <= 0 {
		iv.SummaryMaxChars = 2000
	}
	if iv.RegenAttempts < 0 {
		iv.RegenAttempts = 2
	}
	if iv.AdaptWindow <= 0 {
		iv.AdaptWindow = 3
	}
	if iv.RaiseThreshold <= 0 {
		iv.RaiseThreshold = 8.0
	}
	if iv.LowerThreshold <= 0 {
		iv.LowerThreshold = 4.0
	}
	if iv.SessionTTL <= 0 {
		iv.SessionTTL = 3600
	}
	if iv.SweepInterval <= 0 {
		iv.SweepInterval = 600
	}
	if iv.LockTTL <= 0 {
		iv.LockTTL = 30
	}

	ai := &cfg.AI
	if ai.Temperature <= 0 {
		ai.Temperature = 0.7
	}
	if ai.MaxTokens <= 0 {
		ai.MaxTokens = 4096
	}
	if ai.TopP <= 0 {
		ai.TopP = 0.9
	}
	if ai.RequestTimeout <= 0 {
		ai.RequestTimeout = 30
	}
	if ai.MaxAttempts <= 0 {
		ai.MaxAttempts = 3
	}
	if ai.BackoffInitial <= 0 {
		ai.BackoffInitial = 500
	}
	if ai.BackoffMax <= 0 {
		ai.BackoffMax = 8000
	}

	if cfg.Storage.MaxRecordingMB <= 0 {
		cfg.Storage.MaxRecordingMB = 200
	}

	if cfg.Chat.ContextWindow <= 0 {
		cfg.Chat.ContextWindow = 10
	}
	if cfg.Chat.HistoryCap <= 0 {
		cfg.Chat.HistoryCap = 20
	}
	if cfg.Chat.HistoryTTL <= 0 {
		cfg.Chat.HistoryTTL = 3600
	}

	if cfg.RateLimit.MaxRequests <= 0 {
		cfg.RateLimit.MaxRequests = 100000
	}
	if cfg.RateLimit.AIPerMinute <= 0 {
		cfg.RateLimit.AIPerMinute = 60
	}
	if cfg.RateLimit.UserPerHour <= 0 {
		cfg.RateLimit.UserPerHour = 1000
	}

	if cfg.Notify.Subject == "" {
		cfg.Notify.Subject = "interview.report.ready"
	}

	if cfg.Log.Filename == "" {
		cfg.Log.Filename = "logs/app.log"
	}
	if cfg.Log.MaxSizeMB <= 0 {
		cfg.Log.MaxSizeMB = 100
	}
	if cfg.Log.MaxBackups <= 0 {
		cfg.Log.MaxBackups = 5
	}
	if cfg.Log.MaxAgeDays <= 0 {
		cfg.Log.MaxAgeDays = 30
	}
}
