package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skch/foodcourt/internal/logging"
	"github.com/skch/foodcourt/internal/mykafka"
	"github.com/skch/foodcourt/internal/service/catalog"
	"github.com/skch/foodcourt/internal/service/ordering"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func errorResponse(c echo.Context, code int, err error) error {
	return c.JSON(code, Response{
		Status:  "error",
		Message: err.Error(),
	})
}

// serviceError maps the service sentinels onto HTTP statuses.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ordering.ErrConflict), errors.Is(err, catalog.ErrConflict):
		return errorResponse(c, http.StatusConflict, err)
	case errors.Is(err, ordering.ErrNotFound):
		return errorResponse(c, http.StatusNotFound, err)
	case errors.Is(err, ordering.ErrValidation), errors.Is(err, ordering.ErrUnavailable):
		return errorResponse(c, http.StatusBadRequest, err)
	default:
		return errorResponse(c, http.StatusInternalServerError, err)
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// publish is fire and forget: a dead broker never fails a request.
func publish(c echo.Context, p *mykafka.Producer, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "topic", topic, "error", err)
	}
}
