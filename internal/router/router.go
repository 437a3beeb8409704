package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"agenda/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	eventHandler *handler.EventHandler,
	feedHandler *handler.FeedHandler,
) {
	// The original web client requests paths with trailing slashes.
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	// Calendar UI runs on its own origin.
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Event routes
	e.POST("/events", eventHandler.CreateEvent)
	e.GET("/events", eventHandler.ListEvents)
	e.PUT("/events/:id", eventHandler.UpdateEvent)
	e.DELETE("/events/:id", eventHandler.DeleteEvent)
	e.GET("/user/events", eventHandler.ListUserEvents)

	// Feed routes
	e.GET("/user/events/feed.ics", feedHandler.ExportFeed)
	e.POST("/events/import", feedHandler.ImportFeed)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
