package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	DBDSN       string // Пусто — работаем на in-memory хранилище

	// Бизнес-константы demo-режима
	PayoutPerEnrollment int      // Выплата преподавателю за одно зачисление
	SessionsPerCourse   int      // Сколько 1:1 сессий включает одно зачисление
	DefaultInstructorID int      // Автор, чьи курсы выдаются по умолчанию
	FreshUserIDs        []string // Пользователи, которые всегда начинают с нуля

	// Внешний сервис видео-сессий
	VideoAPIURL   string
	VideoAPIToken string
	BBBURL        string
	BBBSecret     string
}

// Load загружает конфигурацию из .env и переменных окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		Environment:         os.Getenv("ENV"),
		DBDSN:               os.Getenv("DB_DSN"),
		PayoutPerEnrollment: envInt("PAYOUT_PER_ENROLLMENT", 315),
		SessionsPerCourse:   envInt("SESSIONS_PER_COURSE", 2),
		DefaultInstructorID: envInt("DEFAULT_INSTRUCTOR_ID", 8),
		FreshUserIDs:        envList("FRESH_USER_IDS", []string{"demo_new", "demo_sarah", "demo_alex"}),
		VideoAPIURL:         os.Getenv("VIDEO_API_URL"),
		VideoAPIToken:       os.Getenv("VIDEO_API_TOKEN"),
		BBBURL:              os.Getenv("BBB_URL"),
		BBBSecret:           os.Getenv("BBB_SECRET"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	return cfg, nil
}

// IsFreshUser проверяет входит ли пользователь в список "чистых": для них
// не выдаются курсы и сессии по умолчанию
func (c *Config) IsFreshUser(userID string) bool {
	for _, id := range c.FreshUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %d\n", name, raw, fallback)
		return fallback
	}
	return value
}

func envList(name string, fallback []string) []string {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
