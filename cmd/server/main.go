package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"chatlink/internal/chat"
	"chatlink/internal/config"
	"chatlink/internal/contact"
	"chatlink/internal/db"
	"chatlink/internal/group"
	mw "chatlink/internal/middleware"
	"chatlink/internal/presence"
	"chatlink/internal/relay"
	"chatlink/internal/user"
	"chatlink/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logger.Development, cfg.Logger.Level)
	slog.SetDefault(log)

	database, err := db.NewDatabase(cfg.Postgres.DSN)
	if err != nil {
		log.Error("connect to postgres", "err", err)
		os.Exit(1)
	}
	if err := database.AutoMigrate(); err != nil {
		log.Error("migrate schema", "err", err)
		os.Exit(1)
	}
	log.Info("connected to postgres")

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		log.Error("connect to redis", "err", err)
		os.Exit(1)
	}
	log.Info("connected to redis")

	userRepo := user.NewRepository(database.Conn)
	userService := user.NewService(userRepo, cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	userHandler := user.NewHandler(userService, cfg.JWT.ExpiresIn)

	contactRepo := contact.NewRepository(database.Conn)
	contactService := contact.NewService(contactRepo)
	contactHandler := contact.NewHandler(contactService)

	chatRepo := chat.NewRepository(database.Conn)
	chatService := chat.NewService(chatRepo)
	chatHandler := chat.NewHandler(chatService)

	groupRepo := group.NewRepository(database.Conn)
	groupService := group.NewService(groupRepo)
	groupHandler := group.NewHandler(groupService)

	presenceStore := presence.NewStore(redisClient)
	presenceHandler := presence.NewHandler(presenceStore)

	hub := relay.NewHub(presenceStore)
	go hub.Run()
	relayHandler := relay.NewHandler(hub)

	authMiddleware := mw.NewAuthMiddleware(userService)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Public routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Post("/api/user/logout", userHandler.Logout)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Handle)

		r.Get("/api/user/me", userHandler.Me)
		r.Get("/api/user/search", userHandler.SearchUsers)
		r.Post("/api/user/message-request", contactHandler.SendRequest)
		r.Post("/api/user/accept-message-request", contactHandler.AcceptRequest)
		r.Get("/api/user/notifications/{handle}", contactHandler.Notifications)
		r.Get("/api/user/connected/{handle}", contactHandler.ConnectedUsers)
		r.Post("/api/user/send-message", chatHandler.SendMessage)
		r.Get("/api/user/messages/{a}/{b}", chatHandler.PreviousMessages)
		r.Get("/api/user/presence/{handle}", presenceHandler.Get)

		r.Post("/api/group/create", groupHandler.Create)
		r.Get("/api/group/list/{handle}", groupHandler.List)
		r.Put("/api/group/update/{name}", groupHandler.Update)
		r.Delete("/api/group/delete/{name}", groupHandler.Delete)
		r.Get("/api/group/search", groupHandler.Search)
		r.Post("/api/group/join", groupHandler.Join)
		r.Post("/api/group/leave", groupHandler.Leave)
		r.Post("/api/group/send-message", groupHandler.SendMessage)
		r.Get("/api/group/messages/{name}", groupHandler.Messages)

		// WebSocket relay
		r.Get("/ws", relayHandler.ServeWs)
	})

	log.Info("server starting", "addr", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, r); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
