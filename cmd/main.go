package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/kangmariz/barangay-complaint-corner/internal/api/handler"
	"github.com/kangmariz/barangay-complaint-corner/internal/auth"
	"github.com/kangmariz/barangay-complaint-corner/internal/complaint"
	"github.com/kangmariz/barangay-complaint-corner/internal/config"
	"github.com/kangmariz/barangay-complaint-corner/internal/models"
	"github.com/kangmariz/barangay-complaint-corner/internal/notify"
	"github.com/kangmariz/barangay-complaint-corner/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg config.Config) (storage.Storage, *storage.Service) {
	if cfg.DBHost == "" {
		log.Println("Warning: DB_HOST not set, using the in-memory store (development only)")
		return storage.NewMemory(), nil
	}

	// 1. PostgreSQL
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Migrations
	err = db.AutoMigrate(
		&models.User{},
		&models.Complaint{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	svc := storage.NewStorageService(db, rdb)
	return svc, svc
}

func main() {
	log.Println("Starting Barangay Complaint Corner backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	// 1. Storage (durable collections + sessions/events)
	store, redisStore := setupDependencies(cfg)

	// 2. Services
	tokenMaker := auth.NewTokenMaker(cfg.JWTSecret, config.SessionTTL)
	authSvc := auth.NewService(store, tokenMaker)
	complaintSvc := complaint.NewService(store)

	// 3. Status event sinks
	hub := notify.NewHub(redisStore)
	complaintSvc.Subscribe(hub.HandleStatusEvent)

	if cfg.TelegramBotToken != "" && cfg.TelegramAdminChatID != 0 {
		notifier, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramAdminChatID)
		if err != nil {
			log.Fatalf("Failed to start the Telegram notifier: %v", err)
		}
		complaintSvc.Subscribe(notifier.HandleStatusEvent)
	}

	go hub.Run()

	// 4. Gin routing
	r := gin.Default()
	h := handler.NewHandler(authSvc, complaintSvc, hub)

	r.POST("/api/signup", h.Signup)
	r.POST("/api/login", h.Login)
	r.POST("/api/logout", h.Logout)
	r.GET("/ws", h.ServeWebSocket)

	authed := r.Group("/api", h.AuthRequired())
	{
		authed.GET("/me", h.Me)
		authed.PUT("/profile", h.UpdateProfile)
		authed.PUT("/password", h.ChangePassword)

		authed.GET("/complaints", h.ListComplaints)
		authed.POST("/complaints", h.CreateComplaint)
		authed.DELETE("/complaints/resolved", h.DeleteResolved)
		authed.GET("/complaints/:id", h.GetComplaint)
		authed.PUT("/complaints/:id", h.UpdateComplaint)
		authed.DELETE("/complaints/:id", h.DeleteComplaint)
		authed.PUT("/complaints/:id/status", h.UpdateStatus)
		authed.POST("/complaints/:id/comments", h.AddComment)
	}

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
