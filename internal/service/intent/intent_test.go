package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/skch/foodcourt/internal/models"
	"github.com/skch/foodcourt/internal/service/catalog"
	"github.com/skch/foodcourt/internal/service/ordering"
)

func newTestRouter(t *testing.T) (*Router, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.MenuItem{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return &Router{
		Orders:  &ordering.Service{DB: db},
		Catalog: &catalog.Service{DB: db},
	}, db
}

func TestWelcomeIntent(t *testing.T) {
	rt, _ := newTestRouter(t)
	resp := rt.Dispatch(context.Background(), &Request{Intent: "Welcome"})
	require.Equal(t, WelcomeText, resp.FulfillmentText)
}

func TestFallbackIntent(t *testing.T) {
	rt, _ := newTestRouter(t)
	resp := rt.Dispatch(context.Background(), &Request{Intent: "OrderPizzaFromMars"})
	require.Equal(t, FallbackText, resp.FulfillmentText)
}

func TestPlaceOrderIntent(t *testing.T) {
	rt, db := newTestRouter(t)
	require.NoError(t, db.Create(&models.MenuItem{
		Name:      "Margherita Pizza",
		Price:     decimal.RequireFromString("299.00"),
		Available: true,
	}).Error)

	resp := rt.Dispatch(context.Background(), &Request{
		Intent: "PlaceOrder",
		Parameters: map[string]any{
			"phone": "9999999999",
			"items": []any{
				map[string]any{"food": "margherita", "number": float64(2)},
			},
		},
	})

	var order models.Order
	require.NoError(t, db.Preload("Items").First(&order).Error)
	require.Equal(t, "598.00", order.TotalAmount.StringFixed(2))
	require.Len(t, order.Items, 1)

	require.Contains(t, resp.FulfillmentText, fmt.Sprintf("#%d", order.ID))
	require.Contains(t, resp.FulfillmentText, "598.00")
}

func TestPlaceOrderIntentUnresolvedItem(t *testing.T) {
	rt, db := newTestRouter(t)

	resp := rt.Dispatch(context.Background(), &Request{
		Intent: "PlaceOrder",
		Parameters: map[string]any{
			"phone": "9999999999",
			"items": []any{map[string]any{"food": "unicorn steak", "number": float64(1)}},
		},
	})
	require.Contains(t, resp.FulfillmentText, "unicorn steak")

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.EqualValues(t, 0, orders)
}

func TestPlaceOrderIntentAliases(t *testing.T) {
	rt, db := newTestRouter(t)
	require.NoError(t, db.Create(&models.MenuItem{
		Name:      "Cola",
		Price:     decimal.RequireFromString("49.50"),
		Available: true,
	}).Error)

	resp := rt.Dispatch(context.Background(), &Request{
		Intent: "PlaceOrder",
		Parameters: map[string]any{
			"phone_number":     "1234567890",
			"delivery_address": "12 Main St",
			"order_items": []any{
				map[string]any{"item": "cola", "quantity": "4"},
			},
		},
	})
	require.Contains(t, resp.FulfillmentText, "198.00")

	var customer models.Customer
	require.NoError(t, db.First(&customer).Error)
	require.Equal(t, "1234567890", customer.Phone)
	require.Equal(t, "12 Main St", customer.Address)
}

func TestPlaceOrderIntentMissingPhone(t *testing.T) {
	rt, _ := newTestRouter(t)
	resp := rt.Dispatch(context.Background(), &Request{
		Intent:     "PlaceOrder",
		Parameters: map[string]any{"items": []any{map[string]any{"food": "pizza"}}},
	})
	require.Equal(t, AskPhoneText, resp.FulfillmentText)
}

func TestPlaceOrderIntentBadQuantity(t *testing.T) {
	rt, _ := newTestRouter(t)
	resp := rt.Dispatch(context.Background(), &Request{
		Intent: "PlaceOrder",
		Parameters: map[string]any{
			"phone": "9999999999",
			"items": []any{map[string]any{"food": "pizza", "number": float64(-1)}},
		},
	})
	require.Contains(t, resp.FulfillmentText, "at least 1")
}

func TestTrackOrderIntentNotFound(t *testing.T) {
	rt, db := newTestRouter(t)

	resp := rt.Dispatch(context.Background(), &Request{
		Intent:     "TrackOrder",
		Parameters: map[string]any{"order_id": float64(101)},
	})
	require.Equal(t, OrderNotFoundText(101), resp.FulfillmentText)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.EqualValues(t, 0, orders)
}

func TestTrackOrderIntentNoID(t *testing.T) {
	rt, _ := newTestRouter(t)
	resp := rt.Dispatch(context.Background(), &Request{Intent: "TrackOrder"})
	require.Equal(t, AskOrderIDText, resp.FulfillmentText)
}

func TestTrackOrderIntentReportsStatus(t *testing.T) {
	rt, db := newTestRouter(t)
	require.NoError(t, db.Create(&models.MenuItem{
		Name:      "Cola",
		Price:     decimal.RequireFromString("49.50"),
		Available: true,
	}).Error)

	order, err := rt.Orders.PlaceOrder(context.Background(), ordering.PlaceOrderRequest{
		Phone: "9999999999",
		Lines: []ordering.OrderLine{{MenuItemID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = rt.Orders.UpdateStatus(context.Background(), order.ID, models.StatusOutForDelivery)
	require.NoError(t, err)

	resp := rt.Dispatch(context.Background(), &Request{
		Intent:     "TrackOrder",
		Parameters: map[string]any{"order_id": float64(order.ID)},
	})
	require.Contains(t, resp.FulfillmentText, "out for delivery")
}

func TestQueryResultEnvelope(t *testing.T) {
	rt, _ := newTestRouter(t)

	payload := []byte(`{
		"queryResult": {
			"intent": {"displayName": "TrackOrder"},
			"parameters": {"order_id": 101}
		}
	}`)
	var req Request
	require.NoError(t, json.Unmarshal(payload, &req))

	resp := rt.Dispatch(context.Background(), &req)
	require.Equal(t, OrderNotFoundText(101), resp.FulfillmentText)
}
