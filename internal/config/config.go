package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Адреса сервисов по умолчанию (локальный запуск всего набора)
const (
	defaultAuthURL         = "http://localhost:8089"
	defaultAppointmentURL  = "http://localhost:8083"
	defaultPatientURL      = "http://localhost:8085"
	defaultBillingURL      = "http://localhost:8083"
	defaultConsultationURL = "http://localhost:8084"
	defaultPrescriptionURL = "http://localhost:8084"
	defaultUserURL         = "http://localhost:8081"
	defaultCabinetURL      = "http://localhost:8081"
)

type Config struct {
	TelegramToken  string
	DBDSN          string
	Environment    string
	MigrationsPath string

	RedisAddr     string
	RedisPassword string
	MetricsAddr   string

	AuthAPIURL         string
	AppointmentAPIURL  string
	PatientAPIURL      string
	BillingAPIURL      string
	ConsultationAPIURL string
	PrescriptionAPIURL string
	UserAPIURL         string
	CabinetAPIURL      string

	AgendaStartHour   int
	AgendaEndHour     int
	AgendaSlotMinutes int
	AgendaCacheTTL    time.Duration

	StoreTimeout    time.Duration
	StoreRatePerSec float64
	JWTSecret       string

	SessionPurgeInterval time.Duration
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:          os.Getenv("DB_DSN"),
		Environment:    getString("ENV", "development"),
		MigrationsPath: getString("MIGRATIONS_PATH", "migrations"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		MetricsAddr:   getString("METRICS_ADDR", ":9090"),

		AuthAPIURL:         getString("AUTH_API_URL", defaultAuthURL),
		AppointmentAPIURL:  getString("APPOINTMENT_API_URL", defaultAppointmentURL),
		PatientAPIURL:      getString("PATIENT_API_URL", defaultPatientURL),
		BillingAPIURL:      getString("BILLING_API_URL", defaultBillingURL),
		ConsultationAPIURL: getString("CONSULTATION_API_URL", defaultConsultationURL),
		PrescriptionAPIURL: getString("PRESCRIPTION_API_URL", defaultPrescriptionURL),
		UserAPIURL:         getString("USER_API_URL", defaultUserURL),
		CabinetAPIURL:      getString("CABINET_API_URL", defaultCabinetURL),

		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	var err error
	if cfg.AgendaStartHour, err = getInt("AGENDA_START_HOUR", 9); err != nil {
		return nil, err
	}
	if cfg.AgendaEndHour, err = getInt("AGENDA_END_HOUR", 17); err != nil {
		return nil, err
	}
	if cfg.AgendaSlotMinutes, err = getInt("AGENDA_SLOT_MINUTES", 30); err != nil {
		return nil, err
	}
	if cfg.AgendaCacheTTL, err = getDuration("AGENDA_CACHE_TTL", 2*time.Minute); err != nil {
		return nil, err
	}
	if cfg.StoreTimeout, err = getDuration("STORE_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.StoreRatePerSec, err = getFloat("STORE_RATE_PER_SEC", 10); err != nil {
		return nil, err
	}
	if cfg.SessionPurgeInterval, err = getDuration("SESSION_PURGE_INTERVAL", time.Hour); err != nil {
		return nil, err
	}

	// Проверяем обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return f, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
