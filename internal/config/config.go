package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type OrderConfig struct {
	Env string `yaml:"env"`
	HTTPServer    `yaml:"http_server"`
	OrderDB       `yaml:"order_db"`
	RedisService  `yaml:"redis-service"`
	KafkaService  `yaml:"kafka-service"`
	KhaltiGateway `yaml:"khalti-gateway"`
	Webhook       `yaml:"webhook"`
	LogConfig     `yaml:"log_config"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type OrderDB struct {
	Dsn           string `yaml:"dsn"`
	MigrationPath string `yaml:"migration_path"`
}

type RedisService struct {
	URL     string `yaml:"url"`
	Channel string `yaml:"channel" env-default:"order-events"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"order-events"`
}

type KhaltiGateway struct {
	BaseURL   string        `yaml:"base_url"`
	SecretKey string        `yaml:"secret_key" env:"KHALTI_SECRET_KEY"`
	ReturnURL string        `yaml:"return_url"`
	Timeout   time.Duration `yaml:"timeout" env-default:"5s"`
}

type Webhook struct {
	// Empty secret disables signature verification.
	Secret string `yaml:"secret" env:"WEBHOOK_SECRET"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

func MustLoad() *OrderConfig {

	// Processing env config variable and file
	configPath := os.Getenv("ORDER_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("ORDER_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg OrderConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
