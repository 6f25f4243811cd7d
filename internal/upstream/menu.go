package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"orderdesk/internal/domain"
)

// MenuItemInput is the writable menu item shape. ImagePath, when set, is
// uploaded as a multipart file alongside the fields.
type MenuItemInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	IsVeg       bool
	IsAvailable bool
	ImagePath   string
}

func (in MenuItemInput) fields() map[string]string {
	return map[string]string{
		"name":        in.Name,
		"description": in.Description,
		"price":       strconv.FormatFloat(in.Price, 'f', -1, 64),
		"category":    in.Category,
		"isVeg":       strconv.FormatBool(in.IsVeg),
		"isAvailable": strconv.FormatBool(in.IsAvailable),
	}
}

// FetchMenuItems lists menu items with pagination and optional filters.
func (c *Client) FetchMenuItems(ctx context.Context, page, limit int, filter domain.MenuFilter) (*domain.MenuPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.IsAvailable != nil {
		query.Set("isAvailable", strconv.FormatBool(*filter.IsAvailable))
	}
	if filter.IsVeg != nil {
		query.Set("isVeg", strconv.FormatBool(*filter.IsVeg))
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}

	var result domain.MenuPage
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/menu/fetchAllMenuItems",
		query:    query,
		fallback: "An error occurred while fetching menu items",
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetMenuItemByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/menu/getMenuById/" + url.PathEscape(id),
		fallback: "An error occurred while fetching menu item by ID",
	}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) AddMenuItem(ctx context.Context, input MenuItemInput) error {
	return c.doMultipart(ctx, call{
		method:   http.MethodPost,
		path:     "/menu/addMenu",
		fallback: "An error occurred while adding menu item",
	}, input.fields(), "image", input.ImagePath, nil)
}

func (c *Client) UpdateMenuItem(ctx context.Context, id string, input MenuItemInput) error {
	return c.doMultipart(ctx, call{
		method:   http.MethodPut,
		path:     "/menu/updateMenuItem/" + url.PathEscape(id),
		fallback: "An error occurred while updating menu item",
	}, input.fields(), "image", input.ImagePath, nil)
}

// ToggleMenuItemAvailability flips the availability flag server-side. The
// operation is self-inverse: toggling twice restores the original value.
func (c *Client) ToggleMenuItemAvailability(ctx context.Context, id string) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := c.do(ctx, call{
		method:   http.MethodPatch,
		path:     "/menu/toggleAvailabilityMenu/" + url.PathEscape(id),
		fallback: "An error occurred while toggling menu item availability",
	}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteMenuItem(ctx context.Context, id string) error {
	return c.do(ctx, call{
		method:   http.MethodDelete,
		path:     "/menu/deleteMenuItem/" + url.PathEscape(id),
		fallback: "An error occurred while deleting menu item",
	}, nil)
}
