package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agenda/internal/errors"
	"agenda/internal/service"
)

// FeedHandler handles iCalendar feed endpoints.
type FeedHandler struct {
	feedService service.FeedService
}

// NewFeedHandler creates a new feed handler.
func NewFeedHandler(feedService service.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// ImportRequest represents an ICS import request.
type ImportRequest struct {
	ICSURL string `json:"ics_url" validate:"required,url"`
}

// ImportResponse represents an ICS import result.
type ImportResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// ExportFeed godoc
// @Summary Export a user's calendar as an iCalendar feed
// @Tags feed
// @Produce plain
// @Param email query string true "Owner email"
// @Success 200 {string} string "text/calendar document"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/events/feed.ics [get]
func (h *FeedHandler) ExportFeed(c echo.Context) error {
	email, err := requireEmail(c)
	if err != nil {
		return err
	}

	feed, err := h.feedService.ExportICS(c.Request().Context(), email)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="calendar.ics"`)
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

// ImportFeed godoc
// @Summary Import events for a user from a remote iCalendar feed
// @Tags feed
// @Accept json
// @Produce json
// @Param email query string true "Owner email"
// @Param request body ImportRequest true "Feed location"
// @Success 200 {object} ImportResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/import [post]
func (h *FeedHandler) ImportFeed(c echo.Context) error {
	email, err := requireEmail(c)
	if err != nil {
		return err
	}

	var req ImportRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}

	count, err := h.feedService.ImportICS(c.Request().Context(), email, req.ICSURL)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, ImportResponse{
		Message: "Events imported successfully",
		Count:   count,
	})
}
