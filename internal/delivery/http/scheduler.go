package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"task-assistant/internal/dto"
)

func (h *HttpAPIHandler) SetupScheduler(base *echo.Group) {
	v1 := base.Group("/v1")
	{
		v1.POST("/scheduler/run", h.RunTick)
		v1.GET("/scheduler/status", h.SchedulerStatus)
		v1.POST("/users/:id/daily-summary", h.SendDailySummary)
	}
}

// RunTick executes one duty cycle on demand, outside the 60s cadence.
func (h *HttpAPIHandler) RunTick(c echo.Context) error {
	h.service.SchedulerService.RunTick(c.Request().Context())
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Tick executed", nil))
}

func (h *HttpAPIHandler) SchedulerStatus(c echo.Context) error {
	status := h.service.SchedulerService.Status()
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Scheduler status", status))
}

func (h *HttpAPIHandler) SendDailySummary(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid user id"))
	}

	if err := h.service.SchedulerService.SendDailySummary(c.Request().Context(), uint(userID)); err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewInternalErrorResponse(err.Error()))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Daily summary sent", nil))
}
