package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DB     DBConfig
	Mongo  MongoConfig
	Server ServerConfig
	Client ClientConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	Port       int
}

type ServerConfig struct {
	Port        int
	RedisAddr   string
	KafkaBroker string
	KafkaTopic  string
	LokiURL     string
}

type ClientConfig struct {
	BaseURL         string
	RefreshInterval time.Duration
}

// Load reads an optional .env file and resolves every setting from the
// environment with local-development defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	pgPort, _ := strconv.Atoi(getEnv("PG_PORT", "5432"))
	serverPort, _ := strconv.Atoi(getEnv("PORT", "5001"))
	mongoPort, _ := strconv.Atoi(getEnv("MONGO_PORT", "5002"))
	refreshSec, _ := strconv.Atoi(getEnv("REFRESH_INTERVAL_SECONDS", "5"))

	return &Config{
		DB: DBConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     pgPort,
			User:     getEnv("PG_USER", "postgres"),
			Password: getEnv("PG_PASSWORD", ""),
			Database: getEnv("PG_DATABASE", "coffee_shop"),
		},
		Mongo: MongoConfig{
			URI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:   getEnv("MONGO_DATABASE", "bookingDB"),
			Collection: getEnv("MONGO_COLLECTION", "bookings"),
			Port:       mongoPort,
		},
		Server: ServerConfig{
			Port:        serverPort,
			RedisAddr:   os.Getenv("REDIS_ADDR"),
			KafkaBroker: os.Getenv("KAFKA_BROKER"),
			KafkaTopic:  getEnv("KAFKA_TOPIC", "bookings.created"),
			LokiURL:     os.Getenv("LOKI_URL"),
		},
		Client: ClientConfig{
			BaseURL:         getEnv("API_BASE_URL", "http://localhost:5001/api"),
			RefreshInterval: time.Duration(refreshSec) * time.Second,
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
