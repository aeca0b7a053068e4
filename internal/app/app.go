package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/controller"
	"mock_interview_backend/internal/repository"
	"mock_interview_backend/internal/service"
	"mock_interview_backend/internal/util"
	"mock_interview_backend/pkg/database"
	"mock_interview_backend/pkg/logger"
	"mock_interview_backend/pkg/monitoring"
	"mock_interview_backend/pkg/security"
	"mock_interview_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services

	sweepStop chan struct{}
}

type repositories struct {
	session      *repository.SessionRepository
	sessionCache *repository.SessionCache
	conversation *repository.ConversationRepository
	feedback     *repository.FeedbackRepository
	analysis     *repository.AnalysisRepository
	recording    *repository.RecordingRepository
}

type services struct {
	llm       *service.LLMClient
	memory    *service.MemoryManager
	questions *service.QuestionGenerator
	evaluator *service.ResponseEvaluator
	reports   *service.ReportAggregator
	notifier  *service.NotificationService
	interview *service.InterviewService
	storage   *service.StorageService
	recording *service.RecordingService
	chat      *service.ChatService
	analysis  *service.AnalysisService
	feedback  *service.FeedbackService
}

type controllers struct {
	interview *controller.InterviewController
	chat      *controller.ChatController
	analysis  *controller.AnalysisController
	feedback  *controller.FeedbackController
	recording *controller.RecordingController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	return &repositories{
		session:      repository.NewSessionRepository(db),
		sessionCache: repository.NewSessionCache(rdb, cfg.Interview),
		conversation: repository.NewConversationRepository(db, rdb, cfg.Chat.HistoryCap, cfg.Chat.HistoryTTL),
		feedback:     repository.NewFeedbackRepository(db),
		analysis:     repository.NewAnalysisRepository(db),
		recording:    repository.NewRecordingRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) (*services, error) {
	s := &services{}

	llm, err := service.NewLLMClient(cfg.AI)
	if err != nil {
		return nil, err
	}
	s.llm = llm

	notifier, err := service.NewNotificationService(cfg.Notify)
	if err != nil {
		return nil, err
	}
	s.notifier = notifier

	s.memory = service.NewMemoryManager(cfg.Interview, llm)
	s.questions = service.NewQuestionGenerator(cfg.Interview, llm)
	s.evaluator = service.NewResponseEvaluator(cfg.Interview, llm)
	s.reports = service.NewReportAggregator(cfg.Interview, llm)

	s.interview = service.NewInterviewService(
		cfg.Interview,
		repos.session,
		repos.sessionCache,
		notifier,
		s.memory,
		s.questions,
		s.evaluator,
		s.reports,
	)

	s.storage = service.NewStorageService(cfg)
	s.recording = service.NewRecordingService(cfg.Storage, repos.recording, repos.session, s.storage)
	s.chat = service.NewChatService(cfg.Chat, repos.conversation, repos.session, llm)
	s.analysis = service.NewAnalysisService(repos.analysis, repos.session, llm)
	s.feedback = service.NewFeedbackService(repos.feedback, repos.session)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		interview: controller.NewInterviewController(s.interview),
		chat:      controller.NewChatController(s.chat),
		analysis:  controller.NewAnalysisController(s.analysis),
		feedback:  controller.NewFeedbackController(s.feedback),
		recording: controller.NewRecordingController(s.recording),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Minute, nil))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 周期巡检闲置会话，把超时的补记为终态
func (a *App) startBackgroundTasks(s *services) {
	a.sweepStop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(a.Config.Interview.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.interview.SweepIdleSessions(context.Background())
			case <-a.sweepStop:
				return
			}
		}
	}()
}

// ApplyConfig 应用可以安全热更的配置项，其余字段需要重启生效
func (a *App) ApplyConfig(cfg *config.Config) {
	logger.SetLevel(cfg.Log.Level)
	logger.Log.Info("hot-reloadable config applied", zap.String("log_level", cfg.Log.Level))
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.ForceMigrate || cfg.Server.Mode != "release")
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db, rdb, cfg)
	services, err := app.initServices(repos, cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
		log.Fatalf("Failed to initialize services: %v", err)
	}
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("mock-interview-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/media", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.sweepStop != nil {
		close(a.sweepStop)
	}
	if a.services != nil && a.services.notifier != nil {
		a.services.notifier.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
