package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/commands"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/handlers/peaks"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/services/sessions"
)

// PeakHandler exposes the vendor peak-day range mutations.
type PeakHandler struct {
	Commands commands.Bus
	Logger   *slog.Logger
}

func (h PeakHandler) Mark(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	cmd := peaks.MarkPeakRangeCommand{
		CommandID:       uuid.NewString(),
		SessionID:       c.Param("id"),
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[peaks.MarkPeakRangeCommand, *peaks.PeakRangeResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h PeakHandler) Unmark(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	cmd := peaks.UnmarkPeakRangeCommand{
		CommandID:       uuid.NewString(),
		SessionID:       c.Param("id"),
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[peaks.UnmarkPeakRangeCommand, *peaks.PeakRangeResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h PeakHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sessions.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, sessions.ErrSelectionIncomplete):
		c.JSON(http.StatusConflict, gin.H{"error": "selection is not complete"})
	default:
		if h.Logger != nil {
			h.Logger.Error("peak command failed", "error", err)
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

var _ PeakHTTP = PeakHandler{}
