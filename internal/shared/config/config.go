package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv   string
	HTTP     HTTPConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	SMTP     SMTPConfig
	Storage  StorageConfig
	JWT      JWTConfig
	Outbox   OutboxConfig
}

type HTTPConfig struct {
	Port          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
	MaxUploadSize int64
}

type DatabaseConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	MaxRetries int
}

// DSN is the key=value connection string understood by both gorm's postgres
// driver and pgx stdlib.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

type RedisConfig struct {
	Addr       string
	MaxRetries int
}

type KafkaConfig struct {
	Brokers         []string
	DisbursementGID string
	MaxRetries      int
}

type SMTPConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
	UseTLS   bool
}

type StorageConfig struct {
	Enabled  bool
	BasePath string
	BaseURL  string
}

type JWTConfig struct {
	Secret string
}

type OutboxConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")

	v.SetDefault("PORT", "3000")
	v.SetDefault("HTTP_READ_TIMEOUT", "15s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "60s")
	v.SetDefault("HTTP_IDLE_TIMEOUT", "60s")
	v.SetDefault("HTTP_MAX_UPLOAD_BYTES", 20<<20)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_RETRIES", 5)

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_MAX_RETRIES", 5)

	v.SetDefault("KAFKA_BROKER", "")
	v.SetDefault("KAFKA_DISBURSEMENT_GROUP_ID", "salary-portal-disbursement")
	v.SetDefault("KAFKA_MAX_RETRIES", 5)

	v.SetDefault("SMTP_ENABLED", false)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_FROM", "hr@example.com")
	v.SetDefault("SMTP_USE_TLS", true)

	v.SetDefault("STORAGE_ENABLED", false)
	v.SetDefault("STORAGE_BASE_PATH", "./storage")
	v.SetDefault("STORAGE_BASE_URL", "/files")

	v.SetDefault("OUTBOX_POLL_INTERVAL", "3s")
	v.SetDefault("OUTBOX_BATCH_SIZE", 50)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		AppEnv: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Port:          v.GetString("PORT"),
			ReadTimeout:   v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout:  v.GetDuration("HTTP_WRITE_TIMEOUT"),
			IdleTimeout:   v.GetDuration("HTTP_IDLE_TIMEOUT"),
			MaxUploadSize: v.GetInt64("HTTP_MAX_UPLOAD_BYTES"),
		},
		Database: DatabaseConfig{
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			Name:       v.GetString("DB_NAME"),
			SSLMode:    v.GetString("DB_SSLMODE"),
			MaxRetries: v.GetInt("DB_MAX_RETRIES"),
		},
		Redis: RedisConfig{
			Addr:       v.GetString("REDIS_ADDR"),
			MaxRetries: v.GetInt("REDIS_MAX_RETRIES"),
		},
		Kafka: KafkaConfig{
			Brokers:         splitList(v.GetString("KAFKA_BROKER")),
			DisbursementGID: v.GetString("KAFKA_DISBURSEMENT_GROUP_ID"),
			MaxRetries:      v.GetInt("KAFKA_MAX_RETRIES"),
		},
		SMTP: SMTPConfig{
			Enabled:  v.GetBool("SMTP_ENABLED"),
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("SMTP_FROM"),
			UseTLS:   v.GetBool("SMTP_USE_TLS"),
		},
		Storage: StorageConfig{
			Enabled:  v.GetBool("STORAGE_ENABLED"),
			BasePath: v.GetString("STORAGE_BASE_PATH"),
			BaseURL:  v.GetString("STORAGE_BASE_URL"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
		},
		Outbox: OutboxConfig{
			PollInterval: v.GetDuration("OUTBOX_POLL_INTERVAL"),
			BatchSize:    v.GetInt("OUTBOX_BATCH_SIZE"),
		},
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateDatabase is required by every binary.
func (c *Config) ValidateDatabase() error {
	var missing []string
	if c.Database.User == "" {
		missing = append(missing, "DB_USER")
	}
	if c.Database.Name == "" {
		missing = append(missing, "DB_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (c *Config) ValidateAPI() error {
	if err := c.ValidateDatabase(); err != nil {
		return err
	}
	if c.JWT.Secret == "" {
		return errors.New("missing required config: JWT_SECRET")
	}
	return nil
}

func (c *Config) ValidateKafka() error {
	if err := c.ValidateDatabase(); err != nil {
		return err
	}
	if len(c.Kafka.Brokers) == 0 {
		return errors.New("KAFKA_BROKER is required")
	}
	return nil
}

// ValidateConsumer also requires a mail transport, since slips are only marked
// sent after a successful delivery.
func (c *Config) ValidateConsumer() error {
	if err := c.ValidateKafka(); err != nil {
		return err
	}
	if !c.SMTP.Enabled || c.SMTP.Host == "" {
		return errors.New("SMTP_ENABLED and SMTP_HOST are required")
	}
	return nil
}
