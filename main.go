package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"questionbank/config"
	"questionbank/handlers"
	"questionbank/middleware"
	"questionbank/models"
	"questionbank/routes"
	"questionbank/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}
	if err := config.SetupLogging(cfg); err != nil {
		logrus.Fatal("Failed to set up logging: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		logrus.Fatal("Failed to connect to database: ", err)
	}
	logrus.WithFields(logrus.Fields{"host": cfg.DBHost, "db": cfg.DBName}).Info("connected to database")

	logrus.Info("running migrations if any are needed")
	if err := models.Migrate(db); err != nil {
		logrus.Fatal(err)
	}

	// Initialize the live feed
	hub := services.NewHub()
	go hub.Run(ctx)

	var events services.Publisher = hub
	if redisClient := config.InitRedis(cfg); redisClient != nil {
		defer redisClient.Close()
		bus := services.NewRedisEventBus(redisClient)
		events = bus
		go func() {
			if err := bus.Listen(ctx, hub); err != nil {
				logrus.WithError(err).Error("redis event listener stopped")
			}
		}()
	}

	// Initialize services
	bank := services.NewQuestionBank(db, events)

	// Initialize handlers
	questionHandler := handlers.NewQuestionHandler(bank.Questions)
	answerHandler := handlers.NewAnswerHandler(bank.Answers)
	webHandler := handlers.NewWebHandler(bank.Questions)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger(), middleware.CORS())

	routes.SetupRoutes(router, questionHandler, answerHandler, webHandler, hub, cfg.JWTSecret)
	if cfg.JWTSecret == "" {
		logrus.Warn("JWT_SECRET is not set, write routes are open")
	}

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("server shutdown failed")
		}
	}()

	// Start server
	logrus.Infof("Server starting on %s", cfg.Addr())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.Fatal("Failed to start server: ", err)
	}
}
