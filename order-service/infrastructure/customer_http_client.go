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
)

const customerClientTimeout = 10 * time.Second

// CustomerHTTPClient implements CustomerClient against the customer service's
// REST API.
type CustomerHTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewCustomerHTTPClient creates a new CustomerHTTPClient
func NewCustomerHTTPClient(baseURL string) *CustomerHTTPClient {
	return &CustomerHTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: customerClientTimeout},
	}
}

// GetCustomer looks up a customer account. A 404 surfaces as NotFoundError.
func (c *CustomerHTTPClient) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	url := fmt.Sprintf("%s/api/customers/%d", c.baseURL, id)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build customer request")
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, faults.External("customer-service", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, faults.NotFoundf("customer %d not found", id)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, faults.External("customer-service",
			errors.Errorf("get customer returned status %d", res.StatusCode))
	}

	var customer domain.Customer
	if err := json.NewDecoder(res.Body).Decode(&customer); err != nil {
		return nil, faults.External("customer-service",
			errors.Wrap(err, "failed to decode customer response"))
	}

	return &customer, nil
}
