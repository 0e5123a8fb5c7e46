package application

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/motorsmith/work-order-system/order-service/domain"
	"github.com/motorsmith/work-order-system/shared/events"
	"github.com/motorsmith/work-order-system/shared/faults"
	"github.com/motorsmith/work-order-system/shared/models"
	"github.com/motorsmith/work-order-system/shared/saga"
)

// ProcessBudgetGeneratedCommand represents the budget step of the saga
type ProcessBudgetGeneratedCommand struct {
	SagaID      string `json:"sagaId"`
	WorkOrderID int64  `json:"workOrderId"`
	TotalAmount int64  `json:"totalAmount"`
}

// ProcessBudgetGenerated moves a diagnosed work order into the approval
// stage and kicks off the payment side channel.
type ProcessBudgetGenerated struct {
	workOrderRepository domain.WorkOrderRepository
	sagaEventLog        domain.SagaEventLog
	customerClient      domain.CustomerClient
	paymentClient       domain.PaymentClient
	paymentRequester    domain.PaymentRequester
	emailQueue          domain.EmailQueue
	eventPublisher      events.Publisher
	publishTimeout      time.Duration
	logger              *slog.Logger
}

// NewProcessBudgetGenerated creates a new ProcessBudgetGenerated use case
func NewProcessBudgetGenerated(
	workOrderRepository domain.WorkOrderRepository,
	sagaEventLog domain.SagaEventLog,
	customerClient domain.CustomerClient,
	paymentClient domain.PaymentClient,
	paymentRequester domain.PaymentRequester,
	emailQueue domain.EmailQueue,
	eventPublisher events.Publisher,
	publishTimeout time.Duration,
	logger *slog.Logger,
) *ProcessBudgetGenerated {
	return &ProcessBudgetGenerated{
		workOrderRepository: workOrderRepository,
		sagaEventLog:        sagaEventLog,
		customerClient:      customerClient,
		paymentClient:       paymentClient,
		paymentRequester:    paymentRequester,
		emailQueue:          emailQueue,
		eventPublisher:      eventPublisher,
		publishTimeout:      publishTimeout,
		logger:              logger,
	}
}

// Execute applies the budget step
func (uc *ProcessBudgetGenerated) Execute(ctx context.Context, cmd *ProcessBudgetGeneratedCommand) (err error) {
	if cmd.SagaID == "" {
		return faults.Validationf("sagaId is required")
	}
	if cmd.WorkOrderID <= 0 {
		return faults.Validationf("workOrderId must be positive")
	}

	applied, err := uc.sagaEventLog.MarkProcessed(ctx, cmd.SagaID, saga.StepBudgetGenerated)
	if err != nil {
		return errors.Wrap(err, "failed to check saga log")
	}
	if !applied {
		uc.logger.InfoContext(ctx, "duplicate budget step dropped",
			slog.String("saga_id", cmd.SagaID),
			slog.Int64("work_order_id", cmd.WorkOrderID),
		)
		return nil
	}

	// The marker only survives a step whose effects landed; a failed step
	// releases it so the broker's redelivery can retry.
	defer func() {
		if err != nil {
			releaseStep(ctx, uc.sagaEventLog, uc.logger, cmd.SagaID, saga.StepBudgetGenerated)
		}
	}()

	wo, err := uc.workOrderRepository.FindByID(ctx, cmd.WorkOrderID)
	if err != nil {
		return NewStepError(cmd.SagaID, cmd.WorkOrderID, saga.StepBudgetGenerated,
			errors.Wrap(err, "failed to find work order"))
	}
	if wo == nil {
		return faults.NotFoundf("work order %d not found", cmd.WorkOrderID)
	}

	from, to, _ := domain.NextStatus(saga.StepBudgetGenerated)
	if err := uc.workOrderRepository.UpdateStatusFrom(ctx, wo.ID, from, to); err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return err
		}
		return NewStepError(cmd.SagaID, cmd.WorkOrderID, saga.StepBudgetGenerated, err)
	}

	log := domain.NewStatusLog(wo.ID, from, to, saga.StepBudgetGenerated, "", false)
	if err := uc.workOrderRepository.AppendStatusLog(ctx, log); err != nil {
		return NewStepError(cmd.SagaID, cmd.WorkOrderID, saga.StepBudgetGenerated,
			errors.Wrap(err, "failed to record status change"))
	}

	if err := uc.publishAwaitingApproval(ctx, cmd); err != nil {
		return NewStepError(cmd.SagaID, cmd.WorkOrderID, saga.StepBudgetGenerated, err)
	}

	uc.runPaymentSideChannel(ctx, wo, cmd.TotalAmount)

	return nil
}

// publishAwaitingApproval hands the saga off, bounded by the publish timeout.
func (uc *ProcessBudgetGenerated) publishAwaitingApproval(ctx context.Context, cmd *ProcessBudgetGeneratedCommand) error {
	payload := saga.AwaitingApprovalPayload{
		Context: saga.Context{
			SagaID:      cmd.SagaID,
			WorkOrderID: saga.FlexInt64(cmd.WorkOrderID),
			Step:        saga.StepAwaitingApproval,
			Timestamp:   time.Now(),
		},
	}

	event := events.NewEvent(
		models.ID(strconv.FormatInt(cmd.WorkOrderID, 10)),
		events.WorkOrderAwaitingApprovalTopic,
		payload,
	).WithCorrelationID(models.ID(cmd.SagaID))

	publishCtx, cancel := context.WithTimeout(ctx, uc.publishTimeout)
	defer cancel()

	if err := uc.eventPublisher.Publish(publishCtx, event); err != nil {
		return faults.Transport("publish awaiting approval", err)
	}

	return nil
}

// runPaymentSideChannel creates the checkout link and notifies the customer.
// Every failure here is logged and swallowed: the approval stage was already
// reached, and payment can be retried out of band.
func (uc *ProcessBudgetGenerated) runPaymentSideChannel(ctx context.Context, wo *domain.WorkOrder, totalAmount int64) {
	amount := wo.TotalAmount
	if totalAmount > 0 {
		amount = models.NewMoney(totalAmount, wo.TotalAmount.Currency)
	}

	customer, err := uc.customerClient.GetCustomer(ctx, wo.CustomerID)
	if err != nil {
		uc.sideChannelFailed(ctx, wo.ID, "customer lookup", err)
		return
	}

	link, err := uc.paymentClient.CreatePaymentLink(ctx, domain.PaymentLinkRequest{
		WorkOrderID: wo.ID,
		Title:       fmt.Sprintf("Work order %s", wo.Protocol),
		Quantity:    1,
		UnitPrice:   amount,
		PayerEmail:  customer.Email,
	})
	if err != nil {
		uc.sideChannelFailed(ctx, wo.ID, "payment link", err)
		return
	}

	if err := uc.workOrderRepository.SetPaymentLink(ctx, wo.ID, link.InitPoint, link.PreferenceID); err != nil {
		uc.sideChannelFailed(ctx, wo.ID, "store payment link", err)
		return
	}

	err = uc.paymentRequester.RequestPayment(ctx, saga.PaymentRequestPayload{
		WorkOrderID: wo.ID,
		Title:       fmt.Sprintf("Work order %s", wo.Protocol),
		Quantity:    1,
		UnitPrice:   amount.Amount,
		CurrencyID:  amount.Currency,
		PayerEmail:  customer.Email,
	})
	if err != nil {
		uc.sideChannelFailed(ctx, wo.ID, "payment request", err)
		return
	}

	err = uc.emailQueue.Enqueue(ctx, saga.EmailPayload{
		Recipient: customer.Email,
		Name:      customer.Name,
		Subject:   fmt.Sprintf("Budget ready for work order %s", wo.Protocol),
		Body:      link.InitPoint,
		Type:      "budget_generated",
	})
	if err != nil {
		uc.sideChannelFailed(ctx, wo.ID, "budget notification", err)
	}
}

func (uc *ProcessBudgetGenerated) sideChannelFailed(ctx context.Context, workOrderID int64, stage string, err error) {
	uc.logger.WarnContext(ctx, "payment side channel interrupted",
		slog.Int64("work_order_id", workOrderID),
		slog.String("stage", stage),
		slog.String("error", err.Error()),
	)
}
