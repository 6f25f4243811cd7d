package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"orderdesk/internal/domain"
)

func (c *Client) GetAllDeliveryBoys(ctx context.Context, page, limit int, status domain.CourierStatus) (*domain.DeliveryBoyPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if status != "" {
		query.Set("status", string(status))
	}

	var result domain.DeliveryBoyPage
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/deliverBoy/getAll",
		query:    query,
		fallback: "Failed to fetch delivery boys",
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ActiveDeliveryBoys lists couriers eligible for assignment.
func (c *Client) ActiveDeliveryBoys(ctx context.Context) ([]domain.DeliveryBoy, error) {
	page, err := c.GetAllDeliveryBoys(ctx, 1, 100, domain.CourierActive)
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

func (c *Client) CreateDeliveryBoy(ctx context.Context, input domain.DeliveryBoyInput) (*domain.DeliveryBoy, error) {
	var boy domain.DeliveryBoy
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/deliverBoy/add",
		body:     input,
		fallback: "Failed to create delivery boy",
	}, &boy)
	if err != nil {
		return nil, err
	}
	return &boy, nil
}

func (c *Client) UpdateDeliveryBoy(ctx context.Context, id string, input domain.DeliveryBoyInput) (*domain.DeliveryBoy, error) {
	var boy domain.DeliveryBoy
	err := c.do(ctx, call{
		method:   http.MethodPut,
		path:     "/deliverBoy/update/" + url.PathEscape(id),
		body:     input,
		fallback: "Failed to update delivery boy",
	}, &boy)
	if err != nil {
		return nil, err
	}
	return &boy, nil
}

func (c *Client) DeleteDeliveryBoy(ctx context.Context, id string) error {
	return c.do(ctx, call{
		method:   http.MethodDelete,
		path:     "/deliverBoy/delete/" + url.PathEscape(id),
		fallback: "Failed to delete delivery boy",
	}, nil)
}
