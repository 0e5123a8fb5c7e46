package config

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/motorsmith/work-order-system/migrations"
	"github.com/motorsmith/work-order-system/order-service/application"
	"github.com/motorsmith/work-order-system/order-service/handlers"
	"github.com/motorsmith/work-order-system/order-service/infrastructure"
	"github.com/motorsmith/work-order-system/shared/events"
	sharedinfra "github.com/motorsmith/work-order-system/shared/infrastructure"
	"github.com/motorsmith/work-order-system/shared/telemetry"
)

// Consumer pairs one consumed queue with the handler its binding names.
type Consumer struct {
	Queue      string
	Subscriber *sharedinfra.SQSSubscriberAdapter
	Handler    events.EventHandler
}

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	WorkOrderRepository *infrastructure.PostgresWorkOrderRepository
	SagaEventLog        *infrastructure.PostgresSagaEventLog

	// Use Cases
	CreateWorkOrder         *application.CreateWorkOrder
	GetWorkOrder            *application.GetWorkOrder
	GetWorkOrderHistory     *application.GetWorkOrderHistory
	UpdateWorkOrderStatus   *application.UpdateWorkOrderStatus
	ProcessWorkOrderCreated *application.ProcessWorkOrderCreated
	ProcessBudgetGenerated  *application.ProcessBudgetGenerated
	ProcessPaymentApproved  *application.ProcessPaymentApproved
	ProcessPaymentProcessed *application.ProcessPaymentProcessed
	ProcessProductionStatus *application.ProcessProductionStatus
	CompensateWorkOrder     *application.CompensateWorkOrder
	Compensator             *application.Compensator

	// HTTP Handlers
	WorkOrderHandlers *handlers.WorkOrderHandlers

	// Event Handlers
	SagaEventHandlers *handlers.SagaEventHandlers

	// Infrastructure
	SagaPublisher       *sharedinfra.SNSPublisherAdapter
	ProductionPublisher *sharedinfra.SNSPublisherAdapter
	PaymentPublisher    *sharedinfra.SNSPublisherAdapter
	EmailPublisher      *sharedinfra.SNSPublisherAdapter
	Consumers           []Consumer

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()

	Logger *slog.Logger
}

func BuildDependencies(ctx context.Context, config *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Logger = slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("service", config.ServiceName),
		slog.String("env", config.Env),
	)

	// Initialize telemetry first
	if config.Telemetry.Enabled {
		telConfig := telemetry.OrderServiceConfig.WithOTLPEndpoint(config.Telemetry.OTLPEndpoint)
		tel, telemetryShutdown, err := telemetry.InitTelemetry(ctx, telConfig)
		if err != nil {
			log.Printf("Failed to initialize telemetry: %v", err)
			// Continue without telemetry rather than failing
		} else {
			deps.Telemetry = tel
			deps.TelemetryShutdown = telemetryShutdown
		}
	}

	// Initialize database
	db, err := sqlx.Connect("postgres", config.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	deps.DB = db

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// One publisher per exchange of the topology
	deps.SagaPublisher, err = sharedinfra.NewSNSPublisherAdapter(
		ctx, config.AWS.SagaTopicArn, config.AWS.Region, config.AWS.EndpointSNS)
	if err != nil {
		return nil, fmt.Errorf("failed to create saga publisher: %w", err)
	}
	deps.ProductionPublisher, err = sharedinfra.NewSNSPublisherAdapter(
		ctx, config.AWS.ProductionTopicArn, config.AWS.Region, config.AWS.EndpointSNS)
	if err != nil {
		return nil, fmt.Errorf("failed to create production publisher: %w", err)
	}
	deps.PaymentPublisher, err = sharedinfra.NewSNSPublisherAdapter(
		ctx, config.AWS.PaymentTopicArn, config.AWS.Region, config.AWS.EndpointSNS)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment publisher: %w", err)
	}
	deps.EmailPublisher, err = sharedinfra.NewSNSPublisherAdapter(
		ctx, config.AWS.EmailTopicArn, config.AWS.Region, config.AWS.EndpointSNS)
	if err != nil {
		return nil, fmt.Errorf("failed to create email publisher: %w", err)
	}

	// Initialize repositories
	deps.WorkOrderRepository = infrastructure.NewPostgresWorkOrderRepository(db)
	deps.SagaEventLog = infrastructure.NewPostgresSagaEventLog(db)

	// Collaborator clients
	publishTimeout := config.PublishTimeout()
	customerClient := infrastructure.NewCustomerHTTPClient(config.Services.CustomerServiceURL)
	catalogClient := infrastructure.NewCatalogHTTPClient(config.Services.CatalogServiceURL)
	paymentClient := infrastructure.NewPaymentHTTPClient(config.Services.PaymentServiceURL)
	paymentRequester := infrastructure.NewPaymentRequestPublisher(deps.PaymentPublisher, publishTimeout)
	emailQueue := infrastructure.NewEmailQueuePublisher(deps.EmailPublisher, publishTimeout)

	// Initialize use cases
	deps.CreateWorkOrder = application.NewCreateWorkOrder(
		deps.WorkOrderRepository, customerClient, catalogClient,
		deps.SagaPublisher, publishTimeout, deps.Logger)
	deps.GetWorkOrder = application.NewGetWorkOrder(deps.WorkOrderRepository)
	deps.GetWorkOrderHistory = application.NewGetWorkOrderHistory(deps.WorkOrderRepository)
	deps.UpdateWorkOrderStatus = application.NewUpdateWorkOrderStatus(
		deps.WorkOrderRepository, deps.ProductionPublisher, publishTimeout, deps.Logger)
	deps.ProcessWorkOrderCreated = application.NewProcessWorkOrderCreated(
		deps.WorkOrderRepository, deps.SagaEventLog, customerClient, emailQueue,
		deps.SagaPublisher, publishTimeout, deps.Logger)
	deps.ProcessBudgetGenerated = application.NewProcessBudgetGenerated(
		deps.WorkOrderRepository, deps.SagaEventLog, customerClient, paymentClient,
		paymentRequester, emailQueue, deps.SagaPublisher, publishTimeout, deps.Logger)
	deps.ProcessPaymentApproved = application.NewProcessPaymentApproved(
		deps.WorkOrderRepository, deps.SagaEventLog, deps.ProductionPublisher, publishTimeout, deps.Logger)
	deps.ProcessPaymentProcessed = application.NewProcessPaymentProcessed(
		deps.WorkOrderRepository, emailQueue, deps.Logger)
	deps.ProcessProductionStatus = application.NewProcessProductionStatus(
		deps.WorkOrderRepository, customerClient, emailQueue, deps.Logger)
	deps.Compensator = application.NewCompensator(deps.WorkOrderRepository, deps.Logger)
	deps.CompensateWorkOrder = application.NewCompensateWorkOrder(deps.Compensator, deps.SagaEventLog, deps.Logger)

	// Initialize handlers
	deps.WorkOrderHandlers = handlers.NewWorkOrderHandlers(
		deps.CreateWorkOrder, deps.GetWorkOrder, deps.GetWorkOrderHistory, deps.UpdateWorkOrderStatus)
	deps.SagaEventHandlers = handlers.NewSagaEventHandlers(
		deps.ProcessWorkOrderCreated,
		deps.ProcessBudgetGenerated,
		deps.ProcessPaymentApproved,
		deps.ProcessPaymentProcessed,
		deps.ProcessProductionStatus,
		deps.CompensateWorkOrder,
		deps.Compensator,
		deps.Logger,
	)

	// One subscriber per consumed queue; an unknown handler key in a binding
	// fails wiring instead of silently dropping messages at runtime.
	for _, binding := range config.Bindings {
		handler, err := deps.SagaEventHandlers.HandlerFor(binding.Handler)
		if err != nil {
			return nil, fmt.Errorf("binding for queue %q: %w", binding.Queue, err)
		}

		subscriber, err := sharedinfra.NewSQSSubscriberAdapter(
			binding.Queue, binding.URL, config.AWS.Region, config.AWS.EndpointSQS)
		if err != nil {
			return nil, fmt.Errorf("failed to create subscriber for queue %q: %w", binding.Queue, err)
		}

		deps.Consumers = append(deps.Consumers, Consumer{
			Queue:      binding.Queue,
			Subscriber: subscriber,
			Handler:    handler,
		})
	}

	return deps, nil
}

func runMigrations(db *sqlx.DB) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return err
	}

	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	for _, publisher := range []*sharedinfra.SNSPublisherAdapter{
		d.SagaPublisher, d.ProductionPublisher, d.PaymentPublisher, d.EmailPublisher,
	} {
		if publisher == nil {
			continue
		}
		if err := publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close publisher: %w", err))
		}
	}

	for _, consumer := range d.Consumers {
		if err := consumer.Subscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close subscriber for %s: %w", consumer.Queue, err))
		}
	}

	if d.TelemetryShutdown != nil {
		d.TelemetryShutdown()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
