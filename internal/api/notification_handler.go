package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fathima-sithara/social-api/internal/models"
	"github.com/fathima-sithara/social-api/internal/service"
)

type NotificationHandler struct {
	svc *service.NotificationService
}

func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	limit := int64(c.QueryInt("limit", service.DefaultNotificationLimit))
	items, err := h.svc.List(c.Context(), userID(c), limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "notifications": items})
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	n, err := h.svc.UnreadCount(c.Context(), userID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "unreadCount": n})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.svc.MarkAllRead(c.Context(), userID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "All marked as read"})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "missing id"})
	}
	if err := h.svc.MarkRead(c.Context(), userID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

type createNotificationReq struct {
	Recipient string `json:"recipient"`
	Type      string `json:"type"`
	Text      string `json:"text"`
	PostID    string `json:"post_id"`
	ChatID    string `json:"chat_id"`
}

// Create is the internal emitter endpoint: same-process collaborators (the
// post/comment/follow handlers) call it after their own mutation commits.
// The acting user from the token is always the sender.
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var req createNotificationReq
	if err := c.BodyParser(&req); err != nil || req.Recipient == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "recipient required"})
	}
	err := h.svc.Create(c.Context(), service.CreateNotification{
		Recipient: req.Recipient,
		Sender:    userID(c),
		Type:      models.NotificationType(req.Type),
		Text:      req.Text,
		PostID:    req.PostID,
		ChatID:    req.ChatID,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
