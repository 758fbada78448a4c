package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/lastactive/internal/interface/screen"
)

// ScreenHost is the questions list screen as seen by the transport.
type ScreenHost interface {
	Start(ctx context.Context) (screen.Snapshot, error)
	Stop(ctx context.Context) (screen.Snapshot, error)
	Snapshot(ctx context.Context) (screen.Snapshot, error)
	Click(ctx context.Context, id string) (screen.Snapshot, error)
}

// ScreenHandler wires HTTP requests to the screen host.
type ScreenHandler struct {
	host   ScreenHost
	logger *slog.Logger
}

// NewScreenHandler constructs the handler.
func NewScreenHandler(host ScreenHost, logger *slog.Logger) *ScreenHandler {
	return &ScreenHandler{
		host:   host,
		logger: logger.With("component", "http.screen_handler"),
	}
}

// Start activates the screen.
func (h *ScreenHandler) Start(c *gin.Context) {
	snap, err := h.host.Start(c.Request.Context())
	if err != nil {
		abortWithError(c, screenError(err))
		return
	}
	c.JSON(http.StatusAccepted, snap)
}

// Stop deactivates the screen.
func (h *ScreenHandler) Stop(c *gin.Context) {
	snap, err := h.host.Stop(c.Request.Context())
	if err != nil {
		abortWithError(c, screenError(err))
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Show returns what the screen currently renders.
func (h *ScreenHandler) Show(c *gin.Context) {
	snap, err := h.host.Snapshot(c.Request.Context())
	if err != nil {
		abortWithError(c, screenError(err))
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Click selects a question row.
func (h *ScreenHandler) Click(c *gin.Context) {
	id := c.Param("id")
	snap, err := h.host.Click(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, screenError(err))
		return
	}
	h.logger.Debug("question clicked", "id", id)
	c.JSON(http.StatusOK, snap)
}

// Health reports liveness.
func (h *ScreenHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
