package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/campus-events/bulletin/internal/config"
	"github.com/campus-events/bulletin/internal/database"
	"github.com/campus-events/bulletin/internal/handler"
	"github.com/campus-events/bulletin/internal/middleware"
	"github.com/campus-events/bulletin/internal/queue"
	"github.com/campus-events/bulletin/internal/repository"
	"github.com/campus-events/bulletin/internal/router"
	"github.com/campus-events/bulletin/internal/session"
	"github.com/campus-events/bulletin/internal/upload"
	"github.com/campus-events/bulletin/internal/view"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("apply schema: %v", err)
	}

	users := repository.NewUserRepo(db)
	events := repository.NewEventRepo(db)
	types := repository.NewEventTypeRepo(db)
	subs := repository.NewSubmissionRepo(db)

	if err := users.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost); err != nil {
		cancel()
		log.Fatalf("seed admin account: %v", err)
	}
	cancel()

	// Sessions live in Redis when it is reachable; otherwise fall back to
	// the in-process store (and rate limiting disables itself).
	rdb := config.NewRedisClient()
	var store session.Store
	if rdb != nil {
		store = session.NewRedisStore(rdb)
	} else {
		log.Println("redis unavailable, using in-memory session store")
		store = session.NewMemoryStore()
	}
	sessions := session.NewManager(store, cfg.SessionSecret, time.Duration(cfg.SessionTTLH)*time.Hour)

	uploads := upload.NewSaver(cfg.UploadDir, "/uploads/events")
	if err := uploads.EnsureDir(); err != nil {
		log.Fatalf("create upload directory: %v", err)
	}

	renderer, err := view.New("web/templates")
	if err != nil {
		log.Fatalf("load templates: %v", err)
	}

	e := echo.New()
	e.Renderer = renderer
	e.Use(middleware.LoadIdentity(sessions))

	router.RegisterPublic(e,
		handler.NewEventsHandler(events, types),
		handler.NewAuthHandler(cfg, users, sessions),
		config.LoadRateLimitConfig(), rdb)
	router.RegisterSubmitter(e, handler.NewSubmitHandler(types, subs, uploads))
	router.RegisterAdmin(e,
		handler.NewAdminEventsHandler(events, types, subs, uploads),
		handler.NewModerationHandler(subs))

	// Moderation audit consumer; runs its own reconnect loop forever.
	go func() {
		if err := queue.StartModerationConsumer(); err != nil {
			log.Printf("moderation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
