package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_USER", "payroll")
	t.Setenv("DB_NAME", "salary_portal")
	t.Setenv("KAFKA_BROKER", "kafka-1:9092, kafka-2:9092")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "3000", cfg.HTTP.Port)
	assert.Equal(t, 60*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "hr@example.com", cfg.SMTP.From)
	assert.Equal(t, 3*time.Second, cfg.Outbox.PollInterval)
	assert.NoError(t, cfg.ValidateKafka())
}

func TestValidate(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg := fromViper(v)

	assert.EqualError(t, cfg.ValidateDatabase(), "missing required config: DB_USER, DB_NAME")

	cfg.Database.User = "u"
	cfg.Database.Name = "n"
	assert.EqualError(t, cfg.ValidateAPI(), "missing required config: JWT_SECRET")
	assert.EqualError(t, cfg.ValidateKafka(), "KAFKA_BROKER is required")

	cfg.JWT.Secret = "secret"
	assert.NoError(t, cfg.ValidateAPI())

	cfg.Kafka.Brokers = []string{"kafka:9092"}
	assert.NoError(t, cfg.ValidateKafka())
	assert.EqualError(t, cfg.ValidateConsumer(), "SMTP_ENABLED and SMTP_HOST are required")

	cfg.SMTP.Enabled = true
	assert.EqualError(t, cfg.ValidateConsumer(), "SMTP_ENABLED and SMTP_HOST are required")

	cfg.SMTP.Host = "smtp.example.com"
	assert.NoError(t, cfg.ValidateConsumer())
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable", d.DSN())
}
