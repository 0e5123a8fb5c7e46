package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/motorsmith/work-order-system/order-service/domain"
	"github.com/motorsmith/work-order-system/shared/faults"
)

const paymentClientTimeout = 15 * time.Second

// PaymentHTTPClient implements PaymentClient against the payment service's
// REST API.
type PaymentHTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewPaymentHTTPClient creates a new PaymentHTTPClient
func NewPaymentHTTPClient(baseURL string) *PaymentHTTPClient {
	return &PaymentHTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: paymentClientTimeout},
	}
}

type createPaymentRequest struct {
	WorkOrderID int64  `json:"workOrderId"`
	Title       string `json:"title"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	CurrencyID  string `json:"currencyId"`
	PayerEmail  string `json:"payerEmail,omitempty"`
}

type createPaymentResponse struct {
	PreferenceID string `json:"preferenceId"`
	InitPoint    string `json:"init_point"`
}

// CreatePaymentLink asks the payment service for a checkout preference.
func (c *PaymentHTTPClient) CreatePaymentLink(ctx context.Context, req domain.PaymentLinkRequest) (*domain.PaymentLink, error) {
	body, err := json.Marshal(createPaymentRequest{
		WorkOrderID: req.WorkOrderID,
		Title:       req.Title,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice.Amount,
		CurrencyID:  req.UnitPrice.Currency,
		PayerEmail:  req.PayerEmail,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal payment request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/payments", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build payment request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, faults.External("payment-service", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, faults.External("payment-service",
			errors.Errorf("create payment returned status %d", res.StatusCode))
	}

	var payload createPaymentResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, faults.External("payment-service",
			errors.Wrap(err, "failed to decode payment response"))
	}

	if payload.InitPoint == "" {
		return nil, faults.External("payment-service",
			errors.New("payment response missing init_point"))
	}

	return &domain.PaymentLink{
		PreferenceID: payload.PreferenceID,
		InitPoint:    payload.InitPoint,
	}, nil
}
