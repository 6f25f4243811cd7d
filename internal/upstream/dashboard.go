package upstream

import (
	"context"
	"net/http"
	"net/url"

	"orderdesk/internal/domain"
)

func (c *Client) GetRevenueDashboard(ctx context.Context, rng domain.Range) (*domain.RevenueDashboard, error) {
	query := url.Values{}
	query.Set("range", string(rng))

	var result domain.RevenueDashboard
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/dashboard/getRevenueDashboard",
		query:    query,
		fallback: "An error occurred while fetching revenue dashboard data",
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetOrderDashboard backs the reports page. Note the upstream route's odd
// capitalization is part of its contract.
func (c *Client) GetOrderDashboard(ctx context.Context, rng domain.Range) (*domain.OrderDashboard, error) {
	query := url.Values{}
	query.Set("range", string(rng))

	var result domain.OrderDashboard
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/dashboard/getOrderDashBoard",
		query:    query,
		fallback: "An error occurred while fetching dashboard report",
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
