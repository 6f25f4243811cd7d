package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"orderdesk/internal/domain"
)

// GetAllBanners lists offer banners. The endpoint is public on the storefront
// side, so no token is attached.
func (c *Client) GetAllBanners(ctx context.Context, active *bool) ([]domain.OfferBanner, error) {
	query := url.Values{}
	if active != nil {
		query.Set("active", strconv.FormatBool(*active))
	}

	var banners []domain.OfferBanner
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/offerBanner/getAll",
		query:    query,
		public:   true,
		fallback: "Failed to fetch banners",
	}, &banners)
	if err != nil {
		return nil, err
	}
	return banners, nil
}

// CreateBanner uploads a banner image.
func (c *Client) CreateBanner(ctx context.Context, imagePath string) (*domain.OfferBanner, error) {
	var banner domain.OfferBanner
	err := c.doMultipart(ctx, call{
		method:   http.MethodPost,
		path:     "/offerBanner/add",
		fallback: "Failed to create banner",
	}, nil, "banner", imagePath, &banner)
	if err != nil {
		return nil, err
	}
	return &banner, nil
}

func (c *Client) DeleteBanner(ctx context.Context, id string) error {
	return c.do(ctx, call{
		method:   http.MethodDelete,
		path:     "/offerBanner/delete/" + url.PathEscape(id),
		fallback: "Failed to delete banner",
	}, nil)
}
