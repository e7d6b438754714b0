package conf

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr    string
	CORSOrigins []string

	AWSRegion string
	DdbTable  string

	UploadsRoot    string
	RecipientsPath string

	// stuck-detection window for background submission processing
	StuckAfter time.Duration
	Workers    int
	QueueSize  int

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string
}

// FromEnv reads the configuration from environment variables. Values with a
// sensible default are optional; SMTP and DynamoDB settings are required.
func FromEnv() (*Config, error) {
	cfg := &Config{
		HTTPAddr:       getenv("HTTP_ADDRESS", ":8080"),
		CORSOrigins:    splitCSV(getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		AWSRegion:      os.Getenv("AWS_REGION"),
		DdbTable:       os.Getenv("DDB_SUBM_TABLE_NAME"),
		UploadsRoot:    getenv("UPLOADS_DIR", "uploads"),
		RecipientsPath: getenv("RECIPIENTS_CONFIG_PATH", "config/recipients.toml"),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		SMTPFrom:       os.Getenv("SMTP_FROM"),
	}

	if cfg.AWSRegion == "" {
		return nil, fmt.Errorf("AWS_REGION is not set")
	}
	if cfg.DdbTable == "" {
		return nil, fmt.Errorf("DDB_SUBM_TABLE_NAME is not set")
	}
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP_HOST is not set")
	}
	if cfg.SMTPFrom == "" {
		return nil, fmt.Errorf("SMTP_FROM is not set")
	}

	port, err := strconv.Atoi(getenv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	cfg.SMTPPort = port

	stuckAfter, err := time.ParseDuration(getenv("PROCESSING_STUCK_AFTER", "120s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROCESSING_STUCK_AFTER: %w", err)
	}
	cfg.StuckAfter = stuckAfter

	workers, err := strconv.Atoi(getenv("PROCESSING_WORKERS", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROCESSING_WORKERS: %w", err)
	}
	cfg.Workers = workers

	queueSize, err := strconv.Atoi(getenv("PROCESSING_QUEUE_SIZE", "64"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROCESSING_QUEUE_SIZE: %w", err)
	}
	cfg.QueueSize = queueSize

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
