package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/fathima-sithara/social-api/internal/auth"
	"github.com/fathima-sithara/social-api/internal/config"
)

// New wires middlewares and routes into a Fiber app.
func New(cfg *config.Config, logger *zap.Logger, chat *ChatHandler, notif *NotificationHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
	})

	app.Use(cors.New())
	app.Use(ZapLogger(logger))
	app.Use(NewIPRateLimiter(cfg.App.RateLimitPerMin, logger).Handler())

	jv := auth.NewJWTValidator(cfg.App.JWTSecret)
	api := app.Group("/api/v1", JWTAuth(jv))

	ch := api.Group("/chat")
	ch.Post("/start", chat.Start)
	ch.Post("/send", chat.Send)
	ch.Get("/chats", chat.ListChats)
	ch.Get("/users", chat.ListPartners)
	ch.Get("/messages/:partnerId", chat.History)
	ch.Post("/accept", chat.Accept)

	nt := api.Group("/notification")
	nt.Get("/", notif.List)
	nt.Get("/unread-count", notif.UnreadCount)
	nt.Put("/read-all", notif.MarkAllRead)
	nt.Put("/:id/read", notif.MarkRead)
	nt.Post("/", notif.Create)

	return app
}
