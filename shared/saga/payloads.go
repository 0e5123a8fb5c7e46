package saga

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/motorsmith/work-order-system/shared/events"
	"github.com/motorsmith/work-order-system/shared/faults"
)

// FlexInt64 accepts JSON numbers or numeric strings. Peer services are not
// consistent about quoting ids, so every inbound id field uses this type.
type FlexInt64 int64

func (n *FlexInt64) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(b), `"`))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Some producers serialize amounts as floats.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return err
		}
		v = int64(f)
	}
	*n = FlexInt64(v)
	return nil
}

func (n FlexInt64) Int64() int64 {
	return int64(n)
}

// Context carries the fields shared by every saga message.
type Context struct {
	SagaID      string    `json:"sagaId"`
	WorkOrderID FlexInt64 `json:"workOrderId"`
	Step        Step      `json:"step"`
	Timestamp   time.Time `json:"timestamp"`
}

// WorkOrderCreatedPayload is consumed by the Created step handler.
type WorkOrderCreatedPayload struct {
	Context
	CustomerID  FlexInt64 `json:"customerId"`
	VehicleID   FlexInt64 `json:"vehicleId"`
	Protocol    string    `json:"protocol"`
	TotalAmount FlexInt64 `json:"totalAmount"`
}

func (p *WorkOrderCreatedPayload) Validate() error {
	return wrapValidation(validation.ValidateStruct(p,
		validation.Field(&p.SagaID, validation.Required.Error("sagaId is required")),
		validation.Field(&p.WorkOrderID,
			validation.Required.Error("workOrderId is required"),
			validation.Min(FlexInt64(1)).Error("workOrderId out of range"),
		),
	))
}

// BudgetGeneratedPayload is consumed by the BudgetGenerated step handler.
type BudgetGeneratedPayload struct {
	Context
	TotalAmount FlexInt64 `json:"totalAmount"`
}

func (p *BudgetGeneratedPayload) Validate() error {
	return wrapValidation(validation.ValidateStruct(p,
		validation.Field(&p.SagaID, validation.Required.Error("sagaId is required")),
		validation.Field(&p.WorkOrderID,
			validation.Required.Error("workOrderId is required"),
			validation.Min(FlexInt64(1)).Error("workOrderId out of range"),
		),
	))
}

// AwaitingApprovalPayload is the notification emitted once a budget awaits
// customer approval.
type AwaitingApprovalPayload struct {
	Context
}

// CompensatePayload asks the order service to roll a work order back to the
// state preceding the failed step.
type CompensatePayload struct {
	Context
	Reason     string `json:"reason,omitempty"`
	FailedStep Step   `json:"failedStep,omitempty"`
}

func (p *CompensatePayload) Validate() error {
	return wrapValidation(validation.ValidateStruct(p,
		validation.Field(&p.WorkOrderID,
			validation.Required.Error("workOrderId is required"),
			validation.Min(FlexInt64(1)).Error("workOrderId out of range"),
		),
		validation.Field(&p.Step, validation.Required.Error("step is required")),
	))
}

// SendToProductionPayload notifies the production service of an approved
// work order.
type SendToProductionPayload struct {
	WorkOrderID int64  `json:"workOrderId"`
	CustomerID  int64  `json:"customerId"`
	VehicleID   int64  `json:"vehicleId"`
	Protocol    string `json:"protocol"`
	TotalAmount int64  `json:"totalAmount"`
}

// ProductionStatusUpdatePayload is the production service's authoritative
// status report for a work order.
type ProductionStatusUpdatePayload struct {
	WorkOrderID FlexInt64  `json:"workOrderId"`
	Status      string     `json:"status"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	FinishedAt  *time.Time `json:"finishedAt,omitempty"`
}

func (p *ProductionStatusUpdatePayload) Validate() error {
	return wrapValidation(validation.ValidateStruct(p,
		validation.Field(&p.WorkOrderID,
			validation.Required.Error("workOrderId is required"),
			validation.Min(FlexInt64(1)).Error("workOrderId must be a positive integer"),
		),
		validation.Field(&p.Status, validation.Required.Error("status is required")),
	))
}

// PaymentApprovedPayload is the payment service's approval callback.
type PaymentApprovedPayload struct {
	WorkOrderID FlexInt64 `json:"workOrderId"`
	PaymentID   string    `json:"paymentId,omitempty"`
	Status      string    `json:"status,omitempty"`
}

func (p *PaymentApprovedPayload) Validate() error {
	return wrapValidation(validation.ValidateStruct(p,
		validation.Field(&p.WorkOrderID,
			validation.Required.Error("workOrderId is required"),
			validation.Min(FlexInt64(1)).Error("workOrderId out of range"),
		),
	))
}

// PaymentProcessedPayload is the payment provider's processing callback,
// carrying the checkout link when preference creation succeeded.
type PaymentProcessedPayload struct {
	WorkOrderID FlexInt64 `json:"workOrderId"`
	PaymentID   string    `json:"paymentId"`
	Status      string    `json:"status"`
	InitPoint   string    `json:"init_point,omitempty"`
	PayerEmail  string    `json:"payerEmail,omitempty"`
	Error       string    `json:"error,omitempty"`
}

func (p *PaymentProcessedPayload) Validate() error {
	return wrapValidation(validation.ValidateStruct(p,
		validation.Field(&p.WorkOrderID,
			validation.Required.Error("workOrderId is required"),
			validation.Min(FlexInt64(1)).Error("workOrderId out of range"),
		),
	))
}

// PaymentRequestPayload asks the payment service to create a charge for a
// work order.
type PaymentRequestPayload struct {
	WorkOrderID int64  `json:"workOrderId"`
	Title       string `json:"title"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	CurrencyID  string `json:"currencyId,omitempty"`
	PayerEmail  string `json:"payerEmail,omitempty"`
}

// EmailPayload is enqueued for the mailer service.
type EmailPayload struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body,omitempty"`
	Name      string `json:"name,omitempty"`
	Type      string `json:"type,omitempty"`
}

// ParseWorkOrderCreated normalizes and validates a Created step message.
func ParseWorkOrderCreated(event *events.Event) (*WorkOrderCreatedPayload, error) {
	var p WorkOrderCreatedPayload
	if err := decodePayload(event, &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParseBudgetGenerated normalizes and validates a BudgetGenerated step message.
func ParseBudgetGenerated(event *events.Event) (*BudgetGeneratedPayload, error) {
	var p BudgetGeneratedPayload
	if err := decodePayload(event, &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParseCompensate normalizes and validates a compensation request message.
func ParseCompensate(event *events.Event) (*CompensatePayload, error) {
	var p CompensatePayload
	if err := decodePayload(event, &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParseProductionStatusUpdate normalizes and validates a production status
// report.
func ParseProductionStatusUpdate(event *events.Event) (*ProductionStatusUpdatePayload, error) {
	var p ProductionStatusUpdatePayload
	if err := decodePayload(event, &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParsePaymentApproved normalizes and validates a payment approval callback.
func ParsePaymentApproved(event *events.Event) (*PaymentApprovedPayload, error) {
	var p PaymentApprovedPayload
	if err := decodePayload(event, &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParsePaymentProcessed normalizes and validates a payment processing callback.
func ParsePaymentProcessed(event *events.Event) (*PaymentProcessedPayload, error) {
	var p PaymentProcessedPayload
	if err := decodePayload(event, &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// decodePayload extracts the raw JSON body of an event, normalizes it and
// unmarshals it into v. Any decoding failure is a ValidationError: the
// message itself is unusable and must be dead-lettered, not compensated.
func decodePayload(event *events.Event, v interface{}) error {
	raw, err := event.MarshalPayload()
	if err != nil {
		return faults.Validationf("payload invalid: %v", err)
	}

	raw, err = NormalizeRaw(raw)
	if err != nil {
		return faults.Validationf("payload invalid: %v", err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return faults.Validationf("payload invalid: %v", err)
	}

	return nil
}

// NormalizeRaw unwraps the loose encodings seen on the wire: a JSON document
// serialized as a string, and a single-level {"data": {...}} envelope.
func NormalizeRaw(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, faults.Validationf("payload invalid: empty body")
	}

	// String-encoded JSON document.
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, err
		}
		trimmed = bytes.TrimSpace([]byte(s))
		if len(trimmed) == 0 {
			return nil, faults.Validationf("payload invalid: empty body")
		}
	}

	if trimmed[0] != '{' {
		return nil, faults.Validationf("payload invalid: expected a JSON object")
	}

	// Single-level envelope: {"data": {...}}.
	var outer map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &outer); err != nil {
		return nil, err
	}
	if inner, ok := outer["data"]; ok {
		innerTrimmed := bytes.TrimSpace(inner)
		if len(innerTrimmed) > 0 && innerTrimmed[0] == '{' {
			return innerTrimmed, nil
		}
	}

	return trimmed, nil
}

func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	return faults.Validationf("payload invalid: %v", err)
}
