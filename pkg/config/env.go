// Env loader
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv            string
	Port              string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSchema          string
	EsvApiKey         string
	UnsplashAccessKey string
	MaxDailyApiCalls  int
	RemoteTimeout     time.Duration
	AllowedOrigins    []string
}

// LoadConfig loads environment variables from the .env file
func LoadConfig() *Config {

	appEnv := os.Getenv("APP_ENV")

	switch appEnv {
	case "production":
		if err := godotenv.Load(".env.production"); err == nil {
			fmt.Println("Loaded .env.production")
		}
	default:
		if err := godotenv.Load(".env.development"); err == nil {
			fmt.Println("Loaded .env.development")
		}
	}

	maxCalls, err := strconv.Atoi(getEnv("MAX_DAILY_API_CALLS", "5"))
	if err != nil || maxCalls < 1 {
		maxCalls = 5
	}

	timeoutSecs, err := strconv.Atoi(getEnv("REMOTE_TIMEOUT_SECONDS", "10"))
	if err != nil || timeoutSecs < 1 {
		timeoutSecs = 10
	}

	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		DBHost:            getEnv("BLUEPRINT_DB_HOST", "localhost"),
		DBPort:            getEnv("BLUEPRINT_DB_PORT", "5432"),
		DBName:            getEnv("BLUEPRINT_DB_DATABASE", "verse_tab"),
		DBUser:            getEnv("BLUEPRINT_DB_USERNAME", "postgres"),
		DBPassword:        getEnv("BLUEPRINT_DB_PASSWORD", ""),
		DBSchema:          getEnv("BLUEPRINT_DB_SCHEMA", "public"),
		EsvApiKey:         getEnv("ESV_API_KEY", ""),
		UnsplashAccessKey: getEnv("UNSPLASH_ACCESS_KEY", ""),
		MaxDailyApiCalls:  maxCalls,
		RemoteTimeout:     time.Duration(timeoutSecs) * time.Second,
		AllowedOrigins:    []string{"https://*", "http://*", "chrome-extension://*"},
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetAppEnv() string {
	if value, exists := os.LookupEnv("APP_ENV"); exists {
		return value
	}
	return "development"
}
