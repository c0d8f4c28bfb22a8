package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	// Davet e-postalarındaki doğrulama linki bu adresle kurulur
	AppBaseURL string

	// SMTP bilgileri environment'tan gelir, kod içinde tutulmaz
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	LogLevel  string
	LogFormat string
}

func Load() *Config {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("HTTP_PORT", "8080")
	viper.SetDefault("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=portal port=5432 sslmode=disable")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("APP_BASE_URL", "http://localhost:3001")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")

	// Opsiyonel config.yaml (env her zaman önceliklidir)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("[FATAL] Config dosyası okunamadı: %v", err)
		}
	}

	cfg := &Config{
		HTTPPort:     viper.GetString("HTTP_PORT"),
		DatabaseDSN:  viper.GetString("DATABASE_DSN"),
		JWTSecret:    viper.GetString("JWT_SECRET"),
		CORSOrigins:  viper.GetString("CORS_ALLOWED_ORIGINS"),
		AppBaseURL:   viper.GetString("APP_BASE_URL"),
		SMTPHost:     viper.GetString("SMTP_HOST"),
		SMTPPort:     viper.GetInt("SMTP_PORT"),
		SMTPUser:     viper.GetString("SMTP_USER"),
		SMTPPassword: viper.GetString("SMTP_PASSWORD"),
		SMTPFrom:     viper.GetString("SMTP_FROM"),
		LogLevel:     viper.GetString("LOG_LEVEL"),
		LogFormat:    viper.GetString("LOG_FORMAT"),
	}

	// Production güvenlik kontrolleri
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET environment değişkeni tanımlanmamış! Production için zorunludur.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET en az 32 karakter olmalıdır! Güvenlik riski.")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=portal port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN varsayılan değer kullanılıyor, production için mutlaka kendi Postgres bağlantı bilgisini tanımla.")
	}
	if cfg.SMTPHost == "" {
		log.Println("[WARN] SMTP_HOST tanımlanmamış, davet e-postaları gönderilmeyecek (sadece loglanacak).")
	}

	return cfg
}
