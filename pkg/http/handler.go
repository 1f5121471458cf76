package http

import "github.com/labstack/echo/v4"

// Handler registers its routes on the server's Echo instance. The
// dashboard API and the WebSocket feed both attach through this.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}
