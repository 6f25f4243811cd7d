package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"orderdesk/internal/domain"
)

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	var category domain.Category
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/category/createCategory",
		body:     input,
		fallback: "Failed to create category",
	}, &category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) GetAllCategories(ctx context.Context, page, limit int) (*domain.CategoryPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var result domain.CategoryPage
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/category/getAllCategory",
		query:    query,
		fallback: "Failed to fetch categories",
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetCategoryByID(ctx context.Context, id string) (*domain.Category, error) {
	var category domain.Category
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/category/getCategoryById/" + url.PathEscape(id),
		fallback: "Failed to fetch category",
	}, &category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, input CategoryInput) (*domain.Category, error) {
	var category domain.Category
	err := c.do(ctx, call{
		method:   http.MethodPut,
		path:     "/category/updateCategory/" + url.PathEscape(id),
		body:     input,
		fallback: "Failed to update category",
	}, &category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, call{
		method:   http.MethodDelete,
		path:     "/category/deleteCategory/" + url.PathEscape(id),
		fallback: "Failed to delete category",
	}, nil)
}
