// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// ServiceConfig is a structure containing all loaded variables from environment
type ServiceConfig struct {
	Env  string // deployment environment: local, dev or prod
	Host string // server host
	Port string // server port

	Redis RedisConfig // Redis storage configs

	MQ RabbitConfig // Message broker configs, optional
}

// RedisConfig is a structure containing environment variables for Redis setup
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// RabbitConfig is a structure containing environment variables for RabbitMQ setup
type RabbitConfig struct {
	User     string
	Password string
	Host     string
	Port     string
}

// Configured reports whether a broker was configured at all. The service
// runs fine without one; lifecycle events are then dropped.
func (c RabbitConfig) Configured() bool {
	return c.Host != ""
}

func (c RabbitConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.User, c.Password, c.Host, c.Port)
}

// config stores once parsed env variables
var config *ServiceConfig

// LoadConfig is a singleton function, that returns parsed config.
// If the function have not been called, then it parses data from environment and stores in `config` variable.
// Otherwise, just returns already parsed config
func LoadConfig() *ServiceConfig {
	if config != nil {
		return config
	}

	redisDB := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			redisDB = n
		}
	}

	port := os.Getenv("QUIZ_SERVICE_PORT")
	if port == "" {
		port = "8080"
	}

	cfg := &ServiceConfig{
		Env:  os.Getenv("ENV"),
		Host: os.Getenv("QUIZ_SERVICE_HOST"),
		Port: port,
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     os.Getenv("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		MQ: RabbitConfig{
			User:     os.Getenv("RABBITMQ_USER"),
			Password: os.Getenv("RABBITMQ_PASSWORD"),
			Host:     os.Getenv("RABBITMQ_HOST"),
			Port:     os.Getenv("RABBITMQ_PORT"),
		},
	}

	config = cfg

	return cfg
}
