package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-pos-dashboard/internal/ai"
	"go-pos-dashboard/internal/apiclient"
	"go-pos-dashboard/internal/auth"
	"go-pos-dashboard/internal/catalog"
	"go-pos-dashboard/internal/config"
	"go-pos-dashboard/internal/dashboard"
	"go-pos-dashboard/internal/database"
	"go-pos-dashboard/internal/handlers"
	"go-pos-dashboard/internal/logger"
	"go-pos-dashboard/internal/middleware"
	"go-pos-dashboard/internal/sales"
	"go-pos-dashboard/internal/session"
	"go-pos-dashboard/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		log.Fatalf("Refusing to start: %v", err)
	}

	zl, err := logger.Setup(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	db, err := database.Connect(cfg.DBDriver, cfg.DBDSN, zl)
	if err != nil {
		zl.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Shop API gateway and the services built on it
	client := apiclient.New(apiclient.Config{
		Origin:        cfg.APIBaseURL,
		SessionCookie: cfg.APISessionCookie,
		Timeout:       cfg.APITimeout,
	}, logger.WithComponent("apiclient"))
	loc := cfg.Location()
	board := dashboard.NewBoard(
		catalog.NewLoader(client, cfg.LowStockWarning, logger.WithComponent("catalog")),
		dashboard.NewPresenter(client, loc, logger.WithComponent("dashboard")),
	)
	workflow := sales.NewWorkflow(client, board, logger.WithComponent("sales"))

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authService := auth.NewService(database.NewUsers(db), tokens)
	agent := ai.NewAgent(cfg.GeminiAPIKey, cfg.GeminiModel,
		ai.NewToolbox(client, cfg.ShopName, loc), logger.WithComponent("ai"))
	if !agent.Configured() {
		zl.Warn("GEMINI_API_KEY is empty, /api/ask will answer 503")
	}

	h := handlers.New(handlers.Deps{
		Config:  cfg,
		Client:  client,
		Board:   board,
		Sales:   workflow,
		Banners: session.NewGormBannerStore(db),
		Auth:    authService,
		Agent:   agent,
		Logger:  zl,
	})

	tmpl, err := web.Templates(handlers.TemplateFuncs())
	if err != nil {
		zl.Fatal("Failed to parse templates", zap.Error(err))
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(zl))
	router.SetHTMLTemplate(tmpl)
	h.Register(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		zl.Info("🚀 Dashboard starting",
			zap.String("port", cfg.Port),
			zap.String("shop_api", client.Origin()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zl.Fatal("Server forced to shutdown", zap.Error(err))
	}
	zl.Info("Server exited")
}
