package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/motorsmith/work-order-system/order-service/domain"
	"github.com/motorsmith/work-order-system/shared/faults"
	"github.com/motorsmith/work-order-system/shared/models"
)

const catalogClientTimeout = 10 * time.Second

// CatalogHTTPClient implements CatalogClient against the parts catalog's
// REST API.
type CatalogHTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewCatalogHTTPClient creates a new CatalogHTTPClient
func NewCatalogHTTPClient(baseURL string) *CatalogHTTPClient {
	return &CatalogHTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: catalogClientTimeout},
	}
}

type catalogPartResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Currency  string `json:"currency"`
	Stock     int    `json:"stock"`
}

// GetPart looks up a part and its available stock. A 404 surfaces as
// NotFoundError.
func (c *CatalogHTTPClient) GetPart(ctx context.Context, id int64) (*domain.Part, error) {
	url := fmt.Sprintf("%s/api/parts/%d", c.baseURL, id)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build catalog request")
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, faults.External("catalog-service", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, faults.NotFoundf("part %d not found", id)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, faults.External("catalog-service",
			errors.Errorf("get part returned status %d", res.StatusCode))
	}

	var payload catalogPartResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, faults.External("catalog-service",
			errors.Wrap(err, "failed to decode catalog response"))
	}

	currency := payload.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	return &domain.Part{
		ID:        payload.ID,
		Name:      payload.Name,
		UnitPrice: models.NewMoney(payload.UnitPrice, currency),
		Stock:     payload.Stock,
	}, nil
}
