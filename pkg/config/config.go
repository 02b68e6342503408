package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port string
}

// InventoryAPIConfig describes the external inventory backend.
type InventoryAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type ReportConfig struct {
	PollInterval     time.Duration
	PollMaxBackoff   time.Duration
	AutoCloseDelay   time.Duration
	PrimaryMarker    string
	FallbackMarker   string
	ExportSheetTitle string
}

// DetailConfig holds the placeholders used by the laboratory detail forms.
type DetailConfig struct {
	AddDefaultAcquisitionDate    string
	UpdateDefaultAcquisitionDate string
	UpdateDefaultArea            string
	HistoryDatePlaceholder       string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type SessionConfig struct {
	Store      string
	TTL        time.Duration
	CookieName string
}

type LogConfig struct {
	Level string
	File  string
}

type Config struct {
	Server    ServerConfig
	Inventory InventoryAPIConfig
	Report    ReportConfig
	Detail    DetailConfig
	Redis     RedisConfig
	Session   SessionConfig
	Log       LogConfig
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment only.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Inventory: InventoryAPIConfig{
			BaseURL: getEnv("INVENTORY_API_URL", "http://localhost:8000"),
			Timeout: getDuration("INVENTORY_API_TIMEOUT", 10*time.Second),
		},
		Report: ReportConfig{
			PollInterval:     getDuration("REPORT_POLL_INTERVAL", 5*time.Second),
			PollMaxBackoff:   getDuration("REPORT_POLL_MAX_BACKOFF", time.Minute),
			AutoCloseDelay:   getDuration("REPORT_AUTOCLOSE_DELAY", 2*time.Second),
			PrimaryMarker:    getEnv("PRIMARY_SOURCE_MARKER", "MySQL"),
			FallbackMarker:   getEnv("FALLBACK_SOURCE_MARKER", "REDIS"),
			ExportSheetTitle: getEnv("REPORT_EXPORT_SHEET", "Inventario Global"),
		},
		Detail: DetailConfig{
			AddDefaultAcquisitionDate:    getEnv("ADD_DEFAULT_ACQUISITION_DATE", "2026-01-01"),
			UpdateDefaultAcquisitionDate: getEnv("UPDATE_DEFAULT_ACQUISITION_DATE", "2024-01-01"),
			UpdateDefaultArea:            getEnv("UPDATE_DEFAULT_AREA", "General"),
			HistoryDatePlaceholder:       getEnv("HISTORY_DATE_PLACEHOLDER", "2026-02-15"),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			Store:      getEnv("SESSION_STORE", "memory"),
			TTL:        getDuration("SESSION_TTL", 24*time.Hour),
			CookieName: getEnv("SESSION_COOKIE", "lab_session"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "debug"),
			File:  getEnv("LOG_FILE", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid duration %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid integer %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}
