package main

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dbadapter "taskflow/internal/adapter/db"
	"taskflow/internal/adapter/gemini"
	httpadapter "taskflow/internal/adapter/http"
	"taskflow/internal/adapter/http/handlers"
	httpmiddleware "taskflow/internal/adapter/http/middleware"
	mongoadapter "taskflow/internal/adapter/mongo"
	"taskflow/internal/adapter/token"
	"taskflow/internal/app/service"
	"taskflow/internal/config"
	"taskflow/internal/core/ports"
	"taskflow/pkg/translator"
)

// storage groups the repositories of the selected driver.
type storage struct {
	tasks     ports.TaskRepository
	summaries ports.SummaryRepository
	users     ports.UserRepository
	pinger    ports.Pinger
	closer    io.Closer
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	cfg := config.LoadConfig()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	store, err := openStorage(context.Background(), cfg)
	if err != nil {
		logger.Fatal("failed to connect to store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer func() {
		if err := store.closer.Close(); err != nil {
			logger.Warn("failed to close store connection", zap.Error(err))
		}
	}()

	var provider ports.TextGenerator
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Fatal("failed to create summary provider", zap.Error(err))
		}
		provider = client
	} else {
		logger.Warn("GEMINI_API_KEY is not set, summary generation is disabled")
	}

	tokens := token.NewJWTManager(cfg.JWTSecret, token.DefaultTTL)
	taskService := service.NewTaskService(store.tasks)
	summaryService := service.NewSummaryService(store.summaries, taskService, service.NewSummaryGenerator(provider))
	authService := service.NewAuthService(store.users, token.NewBcryptHasher(0), tokens)

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Error(err))
	}

	httpadapter.RegisterRoutes(r, httpadapter.Handlers{
		Health:    handlers.NewHealthHandler(store.pinger, cfg.StoreDriver, provider != nil),
		Auth:      handlers.NewAuthHandler(authService),
		Tasks:     handlers.NewTaskHandler(taskService),
		Summaries: handlers.NewSummaryHandler(summaryService),
	}, tokens)

	addr := ":" + cfg.AppPort
	logger.Info("starting server", zap.String("addr", addr), zap.String("store", cfg.StoreDriver))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.StoreDriver {
	case config.StoreMySQL:
		db, err := dbadapter.ConnectDB(cfg)
		if err != nil {
			return nil, err
		}
		return &storage{
			tasks:     dbadapter.NewTaskRepository(db),
			summaries: dbadapter.NewSummaryRepository(db),
			users:     dbadapter.NewUserRepository(db),
			pinger:    dbadapter.NewPinger(db),
			closer:    db,
		}, nil
	default:
		client, db, err := mongoadapter.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := mongoadapter.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &storage{
			tasks:     mongoadapter.NewTaskRepository(db),
			summaries: mongoadapter.NewSummaryRepository(db),
			users:     mongoadapter.NewUserRepository(db),
			pinger:    mongoadapter.NewPinger(client),
			closer:    closerFunc(func() error { return client.Disconnect(context.Background()) }),
		}, nil
	}
}
