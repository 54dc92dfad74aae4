package utils

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	AppPort string `yaml:"APP_PORT"`
	AppURL  string `yaml:"APP_URL"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret        string `yaml:"JWT_SECRET"`
	JWTExpireMinutes string `yaml:"JWT_EXPIRE_MINUTES"`

	// Mailing configuration
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

	// Food lifecycle job
	LifecycleCron          string `yaml:"LIFECYCLE_CRON"`
	LifecycleRetentionDays string `yaml:"LIFECYCLE_RETENTION_DAYS"`
}

var config Config

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}

	// Set environment variables for keys that should be accessible via os.Getenv
	for key, value := range map[string]string{
		"JWT_SECRET":     config.JWTSecret,
		"AWS_S3_BUCKET":  config.AWSS3Bucket,
		"AWS_S3_REGION":  config.AWSS3Region,
		"AWS_ACCESS_KEY": config.AWSAccessKey,
		"AWS_SECRET_KEY": config.AWSSecretKey,
	} {
		if value != "" {
			os.Setenv(key, value)
		}
	}
}

// GetConfig returns the value from config.yaml, falling back to the
// environment when the file does not set it.
func GetConfig(key string) string {
	if value := fromFile(key); value != "" {
		return value
	}
	return os.Getenv(key)
}

// GetConfigInt is GetConfig parsed as an int, returning def when unset or malformed.
func GetConfigInt(key string, def int) int {
	value, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		return def
	}
	return value
}

func fromFile(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_URL":
		return config.AppURL
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "JWT_EXPIRE_MINUTES":
		return config.JWTExpireMinutes
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "LIFECYCLE_CRON":
		return config.LifecycleCron
	case "LIFECYCLE_RETENTION_DAYS":
		return config.LifecycleRetentionDays
	default:
		return ""
	}
}
