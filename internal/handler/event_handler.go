package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"agenda/internal/errors"
	"agenda/internal/model"
	"agenda/internal/service"
)

// timestampLayouts accepted on input. The UI submits naive local timestamps
// (datetime-local inputs), which are taken as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// EventHandler handles event endpoints.
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new event handler.
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// EventRequest represents an event create/update payload.
type EventRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	Type        string `json:"type"`
	Color       string `json:"color"`
	Recurrence  string `json:"recurrence"`
}

// CreateEvent godoc
// @Summary Create an event for a user
// @Tags events
// @Accept json
// @Produce json
// @Param email query string true "Owner email"
// @Param request body EventRequest true "Event data"
// @Success 201 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events [post]
func (h *EventHandler) CreateEvent(c echo.Context) error {
	email, err := requireEmail(c)
	if err != nil {
		return err
	}

	in, err := h.bindEventInput(c)
	if err != nil {
		return err
	}

	event, err := h.eventService.Create(c.Request().Context(), email, *in)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, event)
}

// ListEvents godoc
// @Summary List a user's expanded occurrences whose source events start in a date range
// @Tags events
// @Produce json
// @Param email query string true "Owner email"
// @Param start_date query string true "Range start (inclusive)"
// @Param end_date query string true "Range end (exclusive)"
// @Success 200 {array} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events [get]
func (h *EventHandler) ListEvents(c echo.Context) error {
	email, err := requireEmail(c)
	if err != nil {
		return err
	}

	from, err := parseTimestamp(c.QueryParam("start_date"))
	if err != nil {
		return badRequest("invalid start_date", "INVALID_TIMESTAMP")
	}
	to, err := parseTimestamp(c.QueryParam("end_date"))
	if err != nil {
		return badRequest("invalid end_date", "INVALID_TIMESTAMP")
	}

	occurrences, err := h.eventService.ListInRange(c.Request().Context(), email, from, to)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, occurrences)
}

// ListUserEvents godoc
// @Summary List all of a user's events, expanded into occurrences
// @Tags events
// @Produce json
// @Param email query string true "Owner email"
// @Success 200 {array} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/events [get]
func (h *EventHandler) ListUserEvents(c echo.Context) error {
	email, err := requireEmail(c)
	if err != nil {
		return err
	}

	occurrences, err := h.eventService.ListAll(c.Request().Context(), email)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, occurrences)
}

// UpdateEvent godoc
// @Summary Replace an event owned by a user
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param email query string true "Owner email"
// @Param request body EventRequest true "Event data"
// @Success 200 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/{id} [put]
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	email, err := requireEmail(c)
	if err != nil {
		return err
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid event id", "INVALID_EVENT_ID")
	}

	in, err := h.bindEventInput(c)
	if err != nil {
		return err
	}

	event, err := h.eventService.Update(c.Request().Context(), eventID, email, *in)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event owned by a user
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Param email query string true "Owner email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	email, err := requireEmail(c)
	if err != nil {
		return err
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid event id", "INVALID_EVENT_ID")
	}

	if err := h.eventService.Delete(c.Request().Context(), eventID, email); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Event deleted successfully"})
}

func (h *EventHandler) bindEventInput(c echo.Context) (*service.EventInput, error) {
	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return nil, badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return nil, badRequest(err.Error(), "VALIDATION_ERROR")
	}

	start, err := parseTimestamp(req.StartTime)
	if err != nil {
		return nil, badRequest("invalid start_time", "INVALID_TIMESTAMP")
	}
	end, err := parseTimestamp(req.EndTime)
	if err != nil {
		return nil, badRequest("invalid end_time", "INVALID_TIMESTAMP")
	}

	return &service.EventInput{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   start,
		EndTime:     end,
		Type:        req.Type,
		Color:       req.Color,
		Recurrence:  model.Recurrence(req.Recurrence),
	}, nil
}

func requireEmail(c echo.Context) (string, error) {
	email := c.QueryParam("email")
	if email == "" {
		return "", badRequest("email query parameter is required", "VALIDATION_ERROR")
	}
	return email, nil
}

func parseTimestamp(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func badRequest(message, code string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
