package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServiceName string `mapstructure:"service_name"`
	Env         string `mapstructure:"env"`
	Port        string `mapstructure:"port"`

	Database  Database  `mapstructure:"database"`
	AWS       AWS       `mapstructure:"aws"`
	Services  Services  `mapstructure:"services"`
	Telemetry Telemetry `mapstructure:"telemetry"`

	// PublishTimeoutSeconds bounds every saga publish.
	PublishTimeoutSeconds int `mapstructure:"publish_timeout_seconds"`

	// Bindings lists the queues this service consumes and the handler key
	// each one dispatches to.
	Bindings []QueueBinding `mapstructure:"bindings"`
}

type Database struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

type AWS struct {
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Region          string `mapstructure:"region"`
	EndpointSNS     string `mapstructure:"endpoint_sns"`
	EndpointSQS     string `mapstructure:"endpoint_sqs"`

	// One SNS topic per exchange of the original topology.
	SagaTopicArn       string `mapstructure:"saga_topic_arn"`
	ProductionTopicArn string `mapstructure:"production_topic_arn"`
	PaymentTopicArn    string `mapstructure:"payment_topic_arn"`
	EmailTopicArn      string `mapstructure:"email_topic_arn"`
}

type Services struct {
	PaymentServiceURL  string `mapstructure:"payment_service_url"`
	CustomerServiceURL string `mapstructure:"customer_service_url"`
	CatalogServiceURL  string `mapstructure:"catalog_service_url"`
}

type Telemetry struct {
	Enabled      bool   `mapstructure:"enabled"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

// QueueBinding ties a consumed queue to the routing key it is subscribed to
// and the handler key the dispatcher routes it through.
type QueueBinding struct {
	Queue      string `mapstructure:"queue"`
	URL        string `mapstructure:"url"`
	Exchange   string `mapstructure:"exchange"`
	RoutingKey string `mapstructure:"routing_key"`
	Handler    string `mapstructure:"handler"`
}

func ReadConfig() (*Config, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("unable to get current file")
	}

	configDir := filepath.Join(filepath.Dir(filename))
	viper.SetConfigName(getConfigName())
	viper.SetConfigType("json")
	viper.AddConfigPath(configDir)

	// Allow environment variables to override config
	viper.AutomaticEnv()
	viper.SetEnvPrefix("ORDER")

	setDefaultsFromEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	err = viper.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func getConfigName() string {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		return "local"
	}
	return env
}

func setDefaultsFromEnv() {
	// Service defaults
	viper.SetDefault("service_name", "order-service")
	viper.SetDefault("env", getEnv("ENV", "local"))
	viper.SetDefault("port", getEnv("PORT", "8080"))
	viper.SetDefault("publish_timeout_seconds", 8)

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "work_order_system")
	viper.SetDefault("database.ssl_mode", "disable")

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		viper.Set("database.url", dbURL)
	}

	// AWS defaults
	viper.SetDefault("aws.access_key_id", getEnv("AWS_ACCESS_KEY_ID", "test"))
	viper.SetDefault("aws.secret_access_key", getEnv("AWS_SECRET_ACCESS_KEY", "test"))
	viper.SetDefault("aws.region", getEnv("AWS_DEFAULT_REGION", "us-east-1"))
	viper.SetDefault("aws.endpoint_sns", getEnv("AWS_ENDPOINT_URL_SNS", "http://localhost:4566"))
	viper.SetDefault("aws.endpoint_sqs", getEnv("AWS_ENDPOINT_URL_SQS", "http://localhost:4566"))
	viper.SetDefault("aws.saga_topic_arn", getEnv("SAGA_TOPIC_ARN", "arn:aws:sns:us-east-1:000000000000:saga-v1"))
	viper.SetDefault("aws.production_topic_arn", getEnv("PRODUCTION_TOPIC_ARN", "arn:aws:sns:us-east-1:000000000000:production-v1"))
	viper.SetDefault("aws.payment_topic_arn", getEnv("PAYMENT_TOPIC_ARN", "arn:aws:sns:us-east-1:000000000000:payment-v1"))
	viper.SetDefault("aws.email_topic_arn", getEnv("EMAIL_TOPIC_ARN", "arn:aws:sns:us-east-1:000000000000:email-v1"))

	// Collaborator service defaults
	viper.SetDefault("services.payment_service_url", getEnv("PAYMENT_SERVICE_URL", "http://localhost:8081"))
	viper.SetDefault("services.customer_service_url", getEnv("CUSTOMER_SERVICE_URL", "http://localhost:8082"))
	viper.SetDefault("services.catalog_service_url", getEnv("CATALOG_SERVICE_URL", "http://localhost:8083"))

	// Telemetry defaults
	viper.SetDefault("telemetry.enabled", false)
	viper.SetDefault("telemetry.otlp_endpoint", getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"))

	// Consumed queue bindings, mirroring the original exchange topology.
	// Publish-only routing keys (work_order.awaiting_approval,
	// send-to-production, payment.v1.requested, email send) carry no binding.
	viper.SetDefault("bindings", defaultBindings())
}

func defaultBindings() []map[string]interface{} {
	queueURL := func(queue string) string {
		base := getEnv("AWS_ENDPOINT_URL_SQS", "http://localhost:4566")
		return fmt.Sprintf("%s/000000000000/%s", base, queue)
	}

	return []map[string]interface{}{
		{
			"queue":       "work-order-created",
			"url":         queueURL("work-order-created"),
			"exchange":    "saga.v1",
			"routing_key": "work_order.created",
			"handler":     "work_order_created",
		},
		{
			"queue":       "work-order-budget-generated",
			"url":         queueURL("work-order-budget-generated"),
			"exchange":    "saga.v1",
			"routing_key": "work_order.budget_generated",
			"handler":     "budget_generated",
		},
		{
			"queue":       "work-order-compensate",
			"url":         queueURL("work-order-compensate"),
			"exchange":    "saga.v1",
			"routing_key": "compensate",
			"handler":     "compensate",
		},
		{
			"queue":       "production-status-update",
			"url":         queueURL("production-status-update"),
			"exchange":    "production.v1",
			"routing_key": "status-update",
			"handler":     "production_status",
		},
		{
			"queue":       "payment-approved",
			"url":         queueURL("payment-approved"),
			"exchange":    "payment.v1",
			"routing_key": "payment.approved",
			"handler":     "payment_approved",
		},
		{
			"queue":       "payment-processed",
			"url":         queueURL("payment-processed"),
			"exchange":    "payment.v1",
			"routing_key": "payment.processed",
			"handler":     "payment_processed",
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetDatabaseURL constructs database URL from config
func (c *Config) GetDatabaseURL() string {
	if url := viper.GetString("database.url"); url != "" {
		return url
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// PublishTimeout returns the bound applied to saga publishes.
func (c *Config) PublishTimeout() time.Duration {
	if c.PublishTimeoutSeconds <= 0 {
		return 8 * time.Second
	}
	return time.Duration(c.PublishTimeoutSeconds) * time.Second
}
