package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fathima-sithara/social-api/internal/service"
)

type ChatHandler struct {
	svc *service.ConversationService
}

func NewChatHandler(svc *service.ConversationService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type startChatReq struct {
	TargetUserID string `json:"target_user_id"`
}

func (h *ChatHandler) Start(c *fiber.Ctx) error {
	var req startChatReq
	if err := c.BodyParser(&req); err != nil || req.TargetUserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "target_user_id required"})
	}
	conv, err := h.svc.Start(c.Context(), userID(c), req.TargetUserID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "chat": conv})
}

type sendMessageReq struct {
	ReceiverID string `json:"receiver_id"`
	Text       string `json:"text"`
	Image      string `json:"image"`
}

func (h *ChatHandler) Send(c *fiber.Ctx) error {
	var req sendMessageReq
	if err := c.BodyParser(&req); err != nil || req.ReceiverID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "receiver_id required"})
	}
	msg, err := h.svc.SendMessage(c.Context(), userID(c), req.ReceiverID, req.Text, req.Image)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": msg})
}

func (h *ChatHandler) ListChats(c *fiber.Ctx) error {
	chats, err := h.svc.ListConversations(c.Context(), userID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "chats": chats})
}

func (h *ChatHandler) ListPartners(c *fiber.Ctx) error {
	users, err := h.svc.ListChatPartners(c.Context(), userID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "users": users})
}

func (h *ChatHandler) History(c *fiber.Ctx) error {
	partnerID := c.Params("partnerId")
	if partnerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "missing partner id"})
	}
	msgs, err := h.svc.GetHistory(c.Context(), userID(c), partnerID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "messages": msgs})
}

type acceptReq struct {
	ChatID string `json:"chat_id"`
}

func (h *ChatHandler) Accept(c *fiber.Ctx) error {
	var req acceptReq
	if err := c.BodyParser(&req); err != nil || req.ChatID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "chat_id required"})
	}
	conv, err := h.svc.AcceptRequest(c.Context(), userID(c), req.ChatID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Request accepted", "chat": conv})
}
