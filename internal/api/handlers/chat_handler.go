package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/bot"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/metrics"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/storage/models"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/storage/sqlite"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/pkg/logger"
)

// Responder is the dialogue engine surface the transport needs.
type Responder interface {
	Respond(ctx context.Context, sessionID, message string) bot.Reply
}

type ChatHandler struct {
	engine  Responder
	history *sqlite.Client
}

func NewChatHandler(engine Responder, history *sqlite.Client) *ChatHandler {
	return &ChatHandler{
		engine:  engine,
		history: history,
	}
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No message provided",
		})
	}

	start := time.Now()
	reply := h.engine.Respond(c.Context(), req.SessionID, req.Message)
	latency := time.Since(start)

	metrics.ChatRequests.WithLabelValues(string(reply.Intent), "ok").Inc()
	metrics.ChatDuration.Observe(latency.Seconds())

	h.record(req, reply, latency)

	return c.JSON(fiber.Map{
		"response": reply.Text,
	})
}

func (h *ChatHandler) GetHistory(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "session_id is required",
		})
	}

	records, err := h.history.RecentChatRecords(sessionID, c.QueryInt("limit", 20))
	if err != nil {
		logger.Error("Failed to read chat history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read chat history",
		})
	}

	items := make([]fiber.Map, 0, len(records))
	for _, record := range records {
		items = append(items, fiber.Map{
			"id":         record.ID,
			"message":    record.Message,
			"response":   record.Response,
			"intent":     record.Intent,
			"latency_ms": record.LatencyMS,
			"created_at": record.CreatedAt.Unix(),
		})
	}

	return c.JSON(fiber.Map{
		"session_id": sessionID,
		"history":    items,
	})
}

// record stores the exchange best effort; transcript failures never reach
// the user.
func (h *ChatHandler) record(req chatRequest, reply bot.Reply, latency time.Duration) {
	if h.history == nil {
		return
	}

	err := h.history.InsertChatRecord(&models.ChatRecord{
		ID:        uuid.New().String(),
		SessionID: req.SessionID,
		Message:   req.Message,
		Response:  reply.Text,
		Intent:    string(reply.Intent),
		LatencyMS: int(latency.Milliseconds()),
		CreatedAt: time.Now(),
	})
	if err != nil {
		logger.Warn("Failed to store chat record", zap.Error(err))
	}
}
