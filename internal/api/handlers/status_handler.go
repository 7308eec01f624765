package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// GraphProbe checks knowledge store connectivity.
type GraphProbe interface {
	CountNodes(ctx context.Context) (int64, error)
}

// NLUProbe reports whether the extractor's NER model loaded.
type NLUProbe interface {
	Ready() bool
}

type StatusHandler struct {
	graph GraphProbe
	nlu   NLUProbe
}

func NewStatusHandler(graph GraphProbe, nlu NLUProbe) *StatusHandler {
	return &StatusHandler{graph: graph, nlu: nlu}
}

// HandleStatus is a liveness probe with no side effects.
func (h *StatusHandler) HandleStatus(c *fiber.Ctx) error {
	kgStatus := "Connected"
	if _, err := h.graph.CountNodes(c.Context()); err != nil {
		kgStatus = "Disconnected/Error"
	}

	nluStatus := "Ready"
	if !h.nlu.Ready() {
		nluStatus = "Not Loaded"
	}

	return c.JSON(fiber.Map{
		"status":                 "Backend is running!",
		"knowledge_graph_status": kgStatus,
		"nlu_processor_status":   nluStatus,
	})
}
