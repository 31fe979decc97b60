package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv           string
	Port             string
	BaseURL          string
	DBUser           string
	DBPassword       string
	DBHost           string
	DBPort           string
	DBName           string
	JWTSecret        string
	LinkSecret       string
	SentryDSN        string
	MailAPIURL       string
	MailAPIKey       string
	MailFrom         string
	CaptchaVerifyURL string
	CaptchaSecret    string
	BlobDir          string
}

var (
	cfg  *Config
	once sync.Once
)

func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: .env file not found. Relying on environment variables.")
		}
		cfg = &Config{
			AppEnv:           os.Getenv("APP_ENV"),
			Port:             os.Getenv("PORT"),
			BaseURL:          os.Getenv("BASE_URL"),
			DBUser:           os.Getenv("DB_USER"),
			DBPassword:       os.Getenv("DB_PASSWORD"),
			DBHost:           os.Getenv("DB_HOST"),
			DBPort:           os.Getenv("DB_PORT"),
			DBName:           os.Getenv("DB_NAME"),
			JWTSecret:        os.Getenv("JWT_SECRET_KEY"),
			LinkSecret:       os.Getenv("LINK_SECRET_KEY"),
			SentryDSN:        os.Getenv("SENTRY_DSN"),
			MailAPIURL:       os.Getenv("MAIL_API_URL"),
			MailAPIKey:       os.Getenv("MAIL_API_KEY"),
			MailFrom:         os.Getenv("MAIL_FROM"),
			CaptchaVerifyURL: os.Getenv("CAPTCHA_VERIFY_URL"),
			CaptchaSecret:    os.Getenv("CAPTCHA_SECRET"),
			BlobDir:          os.Getenv("BLOB_DIR"),
		}
	})
	return cfg
}
