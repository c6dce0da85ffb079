package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/skch/foodcourt/internal/models"
	"github.com/skch/foodcourt/internal/mykafka"
	"github.com/skch/foodcourt/internal/service/catalog"
	"github.com/skch/foodcourt/internal/util"
)

type MenuHandler struct {
	Catalog  *catalog.Service
	Producer *mykafka.Producer
}

func (h *MenuHandler) GetMenu(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Catalog.ListAvailable(c.Request().Context(), offset, limit)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *MenuHandler) CreateMenuItem(c echo.Context) error {
	var req struct {
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Price       decimal.Decimal `json:"price"`
		Available   *bool           `json:"available"`
		Category    string          `json:"category"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if req.Name == "" {
		return errorResponse(c, http.StatusBadRequest, fmt.Errorf("name required"))
	}

	item := models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Available:   true,
		Category:    req.Category,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := h.Catalog.Create(c.Request().Context(), &item); err != nil {
		return serviceError(c, err)
	}

	publish(c, h.Producer, "menu_events", fmt.Sprint(item.ID), map[string]any{
		"type":    "menu_item_created",
		"item_id": item.ID,
		"name":    item.Name,
	})

	return c.JSON(http.StatusCreated, item)
}
