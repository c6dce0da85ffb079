package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skch/foodcourt/internal/handlers"
)

type Deps struct {
	MenuHandler     *handlers.MenuHandler
	CustomerHandler *handlers.CustomerHandler
	OrderHandler    *handlers.OrderHandler
	WebhookHandler  *handlers.WebhookHandler
	SearchHandler   *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.GET("/menu", d.MenuHandler.GetMenu)
	e.POST("/menu", d.MenuHandler.CreateMenuItem)
	if d.SearchHandler != nil {
		e.GET("/menu/search", d.SearchHandler.Search)
	}

	e.POST("/customers", d.CustomerHandler.CreateCustomer)
	e.GET("/customers", d.CustomerHandler.GetCustomers)

	e.POST("/orders", d.OrderHandler.CreateOrder)
	e.GET("/orders/:id", d.OrderHandler.GetOrder)
	e.PATCH("/orders/:id", d.OrderHandler.PatchOrder)

	e.POST("/webhook", d.WebhookHandler.Webhook)
}
