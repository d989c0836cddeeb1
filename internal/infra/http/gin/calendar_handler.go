package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/dto"
	calendarwin "github.com/mo13ammad/ja-ta-jar-sub000/internal/app/handlers/calendarwin"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/queries"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/window"
)

// CalendarHandler serves raw month windows without a selection session.
type CalendarHandler struct {
	Queries queries.Bus
	Logger  *slog.Logger
}

func (h CalendarHandler) Window(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	months := 0
	if raw := c.Query("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "months must be a positive integer"})
			return
		}
		months = n
	}
	query := calendarwin.GetWindowQuery{
		HouseID: c.Param("id"),
		RoomID:  c.Query("room_id"),
		Months:  months,
	}
	result, err := queries.Ask[calendarwin.GetWindowQuery, dto.CalendarWindow](c.Request.Context(), h.Queries, query)
	if err != nil {
		var fetchErr *window.FetchError
		if errors.As(err, &fetchErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "retryable": true})
			return
		}
		if h.Logger != nil {
			h.Logger.Error("window query failed", "error", err, "house_id", query.HouseID)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ CalendarHTTP = CalendarHandler{}
