package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skch/foodcourt/internal/models"
	"github.com/skch/foodcourt/internal/mykafka"
	"github.com/skch/foodcourt/internal/service/ordering"
	"github.com/skch/foodcourt/internal/util"
)

type CustomerHandler struct {
	Orders   *ordering.Service
	Producer *mykafka.Producer
}

func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	var req struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Email   string `json:"email"`
		Address string `json:"address"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	customer := models.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}
	if err := h.Orders.CreateCustomer(c.Request().Context(), &customer); err != nil {
		return serviceError(c, err)
	}

	publish(c, h.Producer, "customer_events", customer.Phone, map[string]any{
		"type":        "customer_created",
		"customer_id": customer.ID,
	})

	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) GetCustomers(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, customers, err := h.Orders.ListCustomers(c.Request().Context(), offset, limit)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": customers,
		"meta": map[string]any{
			"page":  page,
			"size":  limit,
			"total": total,
		},
	})
}
