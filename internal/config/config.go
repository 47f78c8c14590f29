package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	PushTransportFCM   = "fcm"
	PushTransportKafka = "kafka"
)

type Config struct {
	DBConfig struct {
		Host     string `env:"NOTIFICATIONS_DB_HOST"`
		Port     int    `env:"NOTIFICATIONS_DB_PORT"`
		User     string `env:"NOTIFICATIONS_DB_USER"`
		Password string `env:"NOTIFICATIONS_DB_PASSWORD"`
		Name     string `env:"NOTIFICATIONS_DB_NAME"`
		SSLMode  string `env:"NOTIFICATIONS_DB_SSLMODE"`
	}
	MigrationsPath string `env:"MIGRATIONS_PATH"`

	HTTPPort int    `env:"HTTP_PORT"`
	LogLevel string `env:"LOG_LEVEL"`

	KafkaBrokerURL        string `env:"KAFKA_BROKER_URL"`
	KafkaOrderEventsTopic string `env:"KAFKA_ORDER_EVENTS_TOPIC"`
	KafkaConsumerGroup    string `env:"KAFKA_CONSUMER_GROUP"`
	KafkaPushTopic        string `env:"KAFKA_PUSH_TOPIC"`

	PushTransport           string `env:"PUSH_TRANSPORT"`
	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsFile string `env:"FIREBASE_CREDENTIALS_FILE"`
}

// LoadConfig reads the configuration from the environment. Values from a .env file
// in the working directory are used for keys the environment does not set.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{}

	cfg.DBConfig.Host = getEnvOrDefault("NOTIFICATIONS_DB_HOST", "localhost")
	cfg.DBConfig.User = getEnvOrDefault("NOTIFICATIONS_DB_USER", "user")
	cfg.DBConfig.Password = getEnvOrDefault("NOTIFICATIONS_DB_PASSWORD", "password")
	cfg.DBConfig.Name = getEnvOrDefault("NOTIFICATIONS_DB_NAME", "notifications_db")
	cfg.DBConfig.SSLMode = getEnvOrDefault("NOTIFICATIONS_DB_SSLMODE", "disable")
	cfg.MigrationsPath = getEnvOrDefault("MIGRATIONS_PATH", "file:///app/migrations")

	dbPort, err := getEnvAsPort("NOTIFICATIONS_DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	cfg.DBConfig.Port = dbPort

	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")

	httpPort, err := getEnvAsPort("HTTP_PORT", 8083)
	if err != nil {
		return nil, err
	}
	cfg.HTTPPort = httpPort

	cfg.KafkaBrokerURL = getEnvOrDefault("KAFKA_BROKER_URL", "localhost:9092")
	cfg.KafkaOrderEventsTopic = getEnvOrDefault("KAFKA_ORDER_EVENTS_TOPIC", "order_changes")
	cfg.KafkaConsumerGroup = getEnvOrDefault("KAFKA_CONSUMER_GROUP", "notifications-service-group")
	cfg.KafkaPushTopic = getEnvOrDefault("KAFKA_PUSH_TOPIC", "push_notifications")

	cfg.PushTransport = strings.ToLower(getEnvOrDefault("PUSH_TRANSPORT", PushTransportFCM))
	switch cfg.PushTransport {
	case PushTransportFCM, PushTransportKafka:
	default:
		return nil, fmt.Errorf("invalid PUSH_TRANSPORT %q: must be %q or %q", cfg.PushTransport, PushTransportFCM, PushTransportKafka)
	}
	cfg.FirebaseProjectID = getEnvOrDefault("FIREBASE_PROJECT_ID", "")
	cfg.FirebaseCredentialsFile = getEnvOrDefault("FIREBASE_CREDENTIALS_FILE", "")

	return cfg, nil
}

func (c *Config) GetDBMigrationConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBConfig.User, c.DBConfig.Password, c.DBConfig.Host, c.DBConfig.Port, c.DBConfig.Name, c.DBConfig.SSLMode)
}

func (c *Config) GetKafkaBrokers() []string {
	return strings.Split(c.KafkaBrokerURL, ",")
}

// KafkaTopics lists the topics this service reads or writes.
func (c *Config) KafkaTopics() []string {
	topics := []string{c.KafkaOrderEventsTopic}
	if c.PushTransport == PushTransportKafka {
		topics = append(topics, c.KafkaPushTopic)
	}
	return topics
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsPort(key string, defaultValue int) (int, error) {
	valueStr := getEnvOrDefault(key, strconv.Itoa(defaultValue))
	port, err := strconv.Atoi(valueStr)
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("invalid %s: %q", key, valueStr)
	}
	return port, nil
}
