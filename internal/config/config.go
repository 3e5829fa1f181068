package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string
	AppPort       string
	AppEnv        string
	RedisURL      string
	MailAPIKey    string
	MailAPIURL    string
	MailFrom      string
	OperatorEmail string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:        os.Getenv("DB_HOST"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        os.Getenv("DB_PORT"),
		AppPort:       os.Getenv("APP_PORT"),
		AppEnv:        os.Getenv("APP_ENV"),
		RedisURL:      os.Getenv("REDIS_URL"),
		MailAPIKey:    os.Getenv("MAIL_APIKEY"),
		MailAPIURL:    os.Getenv("MAIL_API_URL"),
		MailFrom:      os.Getenv("MAIL_FROM"),
		OperatorEmail: os.Getenv("OPERATOR_EMAIL"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}
