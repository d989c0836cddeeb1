package ginserver

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/services/sessions"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/window"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/calendar"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/infra/obs"
)

// SessionHandler exposes selection sessions to the calendar surfaces.
type SessionHandler struct {
	Sessions *sessions.Service
	Logger   *slog.Logger
}

type openSessionRequest struct {
	RoomID string `json:"room_id"`
	Months int    `json:"months"`
}

type dayRequest struct {
	Date string `json:"date" binding:"required"`
}

type switchRoomRequest struct {
	RoomID string `json:"room_id" binding:"required"`
}

func (h SessionHandler) Open(c *gin.Context) {
	houseID := c.Param("id")
	var req openSessionRequest
	// The body is optional; an empty one (whatever the transfer encoding
	// reports as its length) opens with the defaults.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := h.Sessions.Open(c.Request.Context(), houseID, req.RoomID, req.Months)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h SessionHandler) Get(c *gin.Context) {
	view, err := h.Sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h SessionHandler) Select(c *gin.Context) {
	date, ok := h.bindDate(c)
	if !ok {
		return
	}
	result, err := h.Sessions.Select(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h SessionHandler) Hover(c *gin.Context) {
	date, ok := h.bindDate(c)
	if !ok {
		return
	}
	sel, err := h.Sessions.Hover(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sel)
}

func (h SessionHandler) ClearHover(c *gin.Context) {
	sel, err := h.Sessions.ClearHover(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sel)
}

func (h SessionHandler) Clear(c *gin.Context) {
	sel, err := h.Sessions.Clear(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sel)
}

func (h SessionHandler) SwitchRoom(c *gin.Context) {
	var req switchRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := h.Sessions.SwitchRoom(c.Request.Context(), c.Param("id"), req.RoomID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h SessionHandler) Retry(c *gin.Context) {
	view, err := h.Sessions.Retry(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h SessionHandler) Close(c *gin.Context) {
	if err := h.Sessions.Close(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h SessionHandler) bindDate(c *gin.Context) (calendar.PlainDate, bool) {
	var req dayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return calendar.PlainDate{}, false
	}
	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return calendar.PlainDate{}, false
	}
	return date, true
}

func (h SessionHandler) fail(c *gin.Context, err error) {
	var fetchErr *window.FetchError
	switch {
	case errors.Is(err, sessions.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, sessions.ErrUnknownRoom):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &fetchErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "retryable": true})
	default:
		if h.Logger != nil {
			h.Logger.Error("session request failed", "error", err, "request_id", obs.RequestIDFrom(c))
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var _ SessionHTTP = SessionHandler{}
