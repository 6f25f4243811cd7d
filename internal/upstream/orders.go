package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"orderdesk/internal/domain"
)

// GetAllOrders fetches one page of paid orders with optional search and
// order-type filters. Status counts ride along in the page payload.
func (c *Client) GetAllOrders(ctx context.Context, page, limit int, filter domain.OrderFilter) (*domain.OrderPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	// The console only ever lists paid orders; the storefront owns the rest.
	query.Set("isPaid", "true")
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.OrderType != "" {
		query.Set("orderType", string(filter.OrderType))
	}

	var result domain.OrderPage
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/order/getAllOrders",
		query:    query,
		fallback: "An error occurred while fetching orders",
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// orderLookup covers both shapes the API has been observed to return for a
// single order: the order object itself, or a one-element paginated page.
type orderLookup struct {
	ID   string         `json:"_id"`
	Page *int           `json:"page"`
	Data []domain.Order `json:"data"`
}

// GetOrderByID fetches one order, resolving the dual result shape here so
// callers never see it. Empty in both shapes yields ErrNotFound.
func (c *Client) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	var raw json.RawMessage
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/order/getOrderById/" + url.PathEscape(id),
		fallback: "An error occurred while fetching order details",
	}, &raw)
	if err != nil {
		return nil, err
	}
	// Some builds answer a miss with success:true and no result at all.
	if len(raw) == 0 {
		return nil, &APIError{StatusCode: http.StatusNotFound, Message: "Order not found"}
	}

	var probe orderLookup
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, &APIError{StatusCode: http.StatusBadGateway, Message: "An error occurred while fetching order details"}
	}

	if len(probe.Data) > 0 {
		return &probe.Data[0], nil
	}
	// A bare order object has an _id and no page marker.
	if probe.ID != "" && probe.Page == nil {
		var order domain.Order
		if err := json.Unmarshal(raw, &order); err != nil {
			return nil, &APIError{StatusCode: http.StatusBadGateway, Message: "An error occurred while fetching order details"}
		}
		return &order, nil
	}
	return nil, &APIError{StatusCode: http.StatusNotFound, Message: "Order not found"}
}

// UpdateOrder patches status, table/address, and courier assignment.
func (c *Client) UpdateOrder(ctx context.Context, id string, patch domain.OrderPatch) error {
	return c.do(ctx, call{
		method:   http.MethodPut,
		path:     "/order/orderUpdated/" + url.PathEscape(id),
		body:     patch,
		fallback: "An error occurred while updating order",
	}, nil)
}

func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	return c.do(ctx, call{
		method:   http.MethodDelete,
		path:     "/order/deleteOrder/" + url.PathEscape(id),
		fallback: "An error occurred while deleting order",
	}, nil)
}

type deliverySetting struct {
	DeliveryEnabled bool `json:"isDeliveryEnabled"`
}

// DeliveryEnabled reads the storefront delivery feature flag.
func (c *Client) DeliveryEnabled(ctx context.Context) (bool, error) {
	var result deliverySetting
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/order/settings/delivery",
		fallback: "Failed to load delivery settings",
	}, &result)
	if err != nil {
		return false, err
	}
	return result.DeliveryEnabled, nil
}

// SetDeliveryEnabled toggles whether the storefront accepts delivery orders.
func (c *Client) SetDeliveryEnabled(ctx context.Context, enabled bool) error {
	return c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/order/settings/delivery",
		body:     deliverySetting{DeliveryEnabled: enabled},
		fallback: "Failed to update delivery settings",
	}, nil)
}
