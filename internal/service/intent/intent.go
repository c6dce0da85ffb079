package intent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/skch/foodcourt/internal/logging"
	"github.com/skch/foodcourt/internal/service/catalog"
	"github.com/skch/foodcourt/internal/service/ordering"
)

const (
	WelcomeText     = "Hello! Welcome to FoodCourt. What would you like to order today?"
	FallbackText    = "Sorry, I didn't get that. You can place an order or ask me to track an existing one."
	AskPhoneText    = "I need your phone number to place the order."
	AskItemsText    = "What would you like to order?"
	AskOrderIDText  = "Please tell me your order id so I can track it."
	OrderFailedText = "Sorry, we couldn't place your order right now. Please try again."
)

func OrderNotFoundText(id int) string {
	return fmt.Sprintf("Sorry, I couldn't find order #%d.", id)
}

type Request struct {
	Intent      string         `json:"intent"`
	Parameters  map[string]any `json:"parameters"`
	QueryResult *struct {
		Intent struct {
			DisplayName string `json:"displayName"`
		} `json:"intent"`
		Parameters map[string]any `json:"parameters"`
	} `json:"queryResult,omitempty"`
}

// name prefers the top-level intent field over the platform's nested envelope.
func (r *Request) name() string {
	if r.Intent != "" {
		return r.Intent
	}
	if r.QueryResult != nil {
		return r.QueryResult.Intent.DisplayName
	}
	return ""
}

func (r *Request) params() map[string]any {
	if r.Parameters != nil {
		return r.Parameters
	}
	if r.QueryResult != nil {
		return r.QueryResult.Parameters
	}
	return map[string]any{}
}

// Response is the fulfillment envelope: one user-facing sentence for every
// branch.
type Response struct {
	FulfillmentText string `json:"fulfillmentText"`
}

type Router struct {
	Orders  *ordering.Service
	Catalog *catalog.Service
}

func (rt *Router) Dispatch(ctx context.Context, req *Request) Response {
	name := req.name()
	params := req.params()

	switch name {
	case "Welcome", "Default Welcome Intent":
		return Response{FulfillmentText: WelcomeText}
	case "PlaceOrder", "place.order":
		return rt.placeOrder(ctx, params)
	case "TrackOrder", "track.order":
		return rt.trackOrder(ctx, params)
	default:
		return Response{FulfillmentText: FallbackText}
	}
}

func (rt *Router) placeOrder(ctx context.Context, params map[string]any) Response {
	phone := stringParam(params, "phone", "phone_number", "phone-number", "mobile")
	if phone == "" {
		return Response{FulfillmentText: AskPhoneText}
	}
	address := stringParam(params, "address", "delivery_address", "delivery-address", "location")
	name := stringParam(params, "name", "customer_name", "person")

	rawItems := listParam(params, "items", "order_items", "food_items")
	if len(rawItems) == 0 {
		return Response{FulfillmentText: AskItemsText}
	}

	var lines []ordering.OrderLine
	for _, raw := range rawItems {
		token := stringParam(raw, "food", "item", "food_item", "name", "dish")
		qty := intParam(raw, 1, "number", "quantity", "qty", "count")
		if qty <= 0 {
			return Response{FulfillmentText: fmt.Sprintf("The quantity for %q must be at least 1.", token)}
		}

		item, err := rt.Catalog.ResolveByName(ctx, token)
		if err != nil {
			if errors.Is(err, catalog.ErrUnresolved) {
				return Response{FulfillmentText: fmt.Sprintf("Sorry, %q is not on our menu.", token)}
			}
			logging.FromContext(ctx).Error("menu resolution failed", "item", token, "error", err)
			return Response{FulfillmentText: OrderFailedText}
		}
		lines = append(lines, ordering.OrderLine{MenuItemID: item.ID, Quantity: qty})
	}

	order, err := rt.Orders.PlaceOrder(ctx, ordering.PlaceOrderRequest{
		Name:    name,
		Phone:   phone,
		Address: address,
		Lines:   lines,
	})
	if err != nil {
		// availability can change between resolution and assembly
		logging.FromContext(ctx).Error("order placement failed", "phone", phone, "error", err)
		return Response{FulfillmentText: OrderFailedText}
	}

	return Response{FulfillmentText: fmt.Sprintf(
		"Your order #%d has been placed! Total: %s. We'll keep you posted.",
		order.ID, order.TotalAmount.StringFixed(2),
	)}
}

func (rt *Router) trackOrder(ctx context.Context, params map[string]any) Response {
	id := intParam(params, 0, "order_id", "order-id", "id", "number")
	if id <= 0 {
		return Response{FulfillmentText: AskOrderIDText}
	}

	order, err := rt.Orders.GetOrder(ctx, uint(id))
	if err != nil {
		if errors.Is(err, ordering.ErrNotFound) {
			return Response{FulfillmentText: OrderNotFoundText(id)}
		}
		logging.FromContext(ctx).Error("order lookup failed", "order_id", id, "error", err)
		return Response{FulfillmentText: OrderNotFoundText(id)}
	}

	status := strings.ReplaceAll(strings.ToLower(order.Status), "_", " ")
	return Response{FulfillmentText: fmt.Sprintf("Order #%d is currently %s.", order.ID, status)}
}
