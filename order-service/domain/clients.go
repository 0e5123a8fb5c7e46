package domain

import (
	"context"

	"github.com/motorsmith/work-order-system/shared/models"
	"github.com/motorsmith/work-order-system/shared/saga"
)

// Customer is the customer-service view of an account.
type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Part is the catalog-service view of a stock item.
type Part struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	UnitPrice models.Money `json:"unit_price"`
	Stock     int          `json:"stock"`
}

// PaymentLink is the checkout link returned by the payment provider.
type PaymentLink struct {
	PreferenceID string `json:"preference_id"`
	InitPoint    string `json:"init_point"`
}

// PaymentLinkRequest asks the payment provider for a checkout preference.
type PaymentLinkRequest struct {
	WorkOrderID int64        `json:"work_order_id"`
	Title       string       `json:"title"`
	Quantity    int          `json:"quantity"`
	UnitPrice   models.Money `json:"unit_price"`
	PayerEmail  string       `json:"payer_email"`
}

// CustomerClient looks up customer accounts. Missing customers surface as
// faults.NotFoundError.
type CustomerClient interface {
	GetCustomer(ctx context.Context, id int64) (*Customer, error)
}

// CatalogClient looks up parts and available stock.
type CatalogClient interface {
	GetPart(ctx context.Context, id int64) (*Part, error)
}

// PaymentClient creates checkout preferences with the payment provider.
type PaymentClient interface {
	CreatePaymentLink(ctx context.Context, req PaymentLinkRequest) (*PaymentLink, error)
}

// PaymentRequester publishes charge requests to the payment exchange.
type PaymentRequester interface {
	RequestPayment(ctx context.Context, payload saga.PaymentRequestPayload) error
}

// EmailQueue enqueues notification emails for the mailer service.
type EmailQueue interface {
	Enqueue(ctx context.Context, payload saga.EmailPayload) error
}
