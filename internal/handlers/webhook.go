package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skch/foodcourt/internal/service/intent"
)

type WebhookHandler struct {
	Router *intent.Router
}

// Webhook always answers 200 with a fulfillment text; conversational callers
// get sentences, not status codes.
func (h *WebhookHandler) Webhook(c echo.Context) error {
	var req intent.Request
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	resp := h.Router.Dispatch(c.Request().Context(), &req)
	return c.JSON(http.StatusOK, resp)
}
