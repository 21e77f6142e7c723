package config

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/farellandr/linkpay/internal/models"
	"github.com/farellandr/linkpay/internal/toss"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}, nil
}

type TossConfig struct {
	SecretKey string
	ClientKey string
}

func LoadTossConfig() (*TossConfig, error) {
	cfg := &TossConfig{
		SecretKey: os.Getenv("TOSS_SECRET_KEY"),
		ClientKey: os.Getenv("TOSS_CLIENT_KEY"),
	}
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("TOSS_SECRET_KEY is not configured")
	}
	return cfg, nil
}

func InitTossClient(cfg *TossConfig) (*toss.Client, error) {
	return toss.NewClient(cfg.SecretKey, cfg.ClientKey), nil
}

type AuthConfig struct {
	AdminPassword string
	JWTSecret     string
}

func LoadAuthConfig() (*AuthConfig, error) {
	cfg := &AuthConfig{
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
	}
	if cfg.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD is not configured")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not configured")
	}
	return cfg, nil
}

// PublicBaseURL is the origin the shareable pay links are built against.
func PublicBaseURL() string {
	base := os.Getenv("PUBLIC_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return base
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.Payment{}); err != nil {
		return nil, err
	}

	return db, nil
}
