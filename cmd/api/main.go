package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apihttp "github.com/dianlent/apotik-online-sub001/internal/http"
	"github.com/dianlent/apotik-online-sub001/internal/mailer"
	"github.com/dianlent/apotik-online-sub001/internal/storage"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		logger.Error("DB_DSN is not set")
		os.Exit(1)
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Error("JWT_SECRET is not set")
		os.Exit(1)
	}

	store, err := storage.FromEnv(context.Background())
	if err != nil {
		logger.Error("storage init failed", "error", err)
		os.Exit(1)
	}
	logger.Info("storage ready", "driver", store.Driver)

	cfg := apihttp.RouterConfig{
		JWTSecret: secret,
		Images:    store.Storage,
		Mailer:    mailerFromEnv(logger),
		MailFrom:  os.Getenv("SMTP_FROM"),
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}

	r := apihttp.NewRouter(logger, db, cfg)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("api listening", "port", port)
	if err := r.Run(":" + port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func mailerFromEnv(logger *slog.Logger) mailer.Service {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		logger.Warn("SMTP_HOST not set, receipt mail disabled")
		return &mailer.Mock{}
	}
	port := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			port = p
		}
	}
	return mailer.NewSMTP(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
}
