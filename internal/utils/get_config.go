package utils

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// PatternFootprint mirrors layout.Footprint so the config package stays free of domain imports.
type PatternFootprint struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	JWTSecret string `yaml:"JWT_SECRET"`

	// Server
	Port     string `yaml:"PORT"`
	LogLevel string `yaml:"LOG_LEVEL"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Gemini API configuration
	GeminiAPIKey string `yaml:"GEMINI_API_KEY"`
	GeminiModel  string `yaml:"GEMINI_MODEL"`

	// Redis
	RedisAddr     string `yaml:"REDIS_ADDR"`
	RedisPassword string `yaml:"REDIS_PASSWORD"`

	// Inventory features
	LayoutColumns       string `yaml:"LAYOUT_COLUMNS"`
	DigestIntervalHours string `yaml:"DIGEST_INTERVAL_HOURS"`

	LayoutPatterns map[string]map[string]PatternFootprint `yaml:"LAYOUT_PATTERNS"`
}

var config Config

var envKeys = []string{
	"DB_USER", "DB_NAME", "DB_PASSWORD", "DB_PORT", "DB_HOST",
	"JWT_SECRET", "PORT", "LOG_LEVEL",
	"APP_URL", "SMTP_HOST", "SMTP_PORT", "SMTP_SENDER_NAME", "SMTP_AUTH_EMAIL", "SMTP_AUTH_PASSWORD",
	"AWS_S3_BUCKET", "AWS_S3_REGION", "AWS_ACCESS_KEY", "AWS_SECRET_KEY",
	"GEMINI_API_KEY", "GEMINI_MODEL",
	"REDIS_ADDR", "REDIS_PASSWORD",
	"LAYOUT_COLUMNS", "DIGEST_INTERVAL_HOURS",
}

// LoadConfig reads config.yaml, then lets the environment (and .env) override single keys.
func LoadConfig() {
	LoadConfigFrom("config.yaml")
}

func LoadConfigFrom(path string) {
	_ = godotenv.Load()

	config = Config{}
	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	for _, key := range envKeys {
		if v := os.Getenv(key); v != "" {
			if p := field(&config, key); p != nil {
				*p = v
			}
		}
	}
}

func field(c *Config, key string) *string {
	switch key {
	case "DB_USER":
		return &c.DBUser
	case "DB_NAME":
		return &c.DBName
	case "DB_PASSWORD":
		return &c.DBPassword
	case "DB_PORT":
		return &c.DBPort
	case "DB_HOST":
		return &c.DBHost
	case "JWT_SECRET":
		return &c.JWTSecret
	case "PORT":
		return &c.Port
	case "LOG_LEVEL":
		return &c.LogLevel
	case "APP_URL":
		return &c.AppURL
	case "SMTP_HOST":
		return &c.SMTPHost
	case "SMTP_PORT":
		return &c.SMTPPort
	case "SMTP_SENDER_NAME":
		return &c.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return &c.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return &c.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return &c.AWSS3Bucket
	case "AWS_S3_REGION":
		return &c.AWSS3Region
	case "AWS_ACCESS_KEY":
		return &c.AWSAccessKey
	case "AWS_SECRET_KEY":
		return &c.AWSSecretKey
	case "GEMINI_API_KEY":
		return &c.GeminiAPIKey
	case "GEMINI_MODEL":
		return &c.GeminiModel
	case "REDIS_ADDR":
		return &c.RedisAddr
	case "REDIS_PASSWORD":
		return &c.RedisPassword
	case "LAYOUT_COLUMNS":
		return &c.LayoutColumns
	case "DIGEST_INTERVAL_HOURS":
		return &c.DigestIntervalHours
	default:
		return nil
	}
}

func GetConfig(key string) string {
	if p := field(&config, key); p != nil {
		return *p
	}
	return ""
}

// GetConfigInt returns the numeric value of key, or def when it is unset or not a number.
func GetConfigInt(key string, def int) int {
	n, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		return def
	}
	return n
}

func GetLayoutPatterns() map[string]map[string]PatternFootprint {
	return config.LayoutPatterns
}
