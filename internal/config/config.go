package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config — все настройки процесса, читаются один раз в main
// и передаются вниз явно (никаких пакетных глобалей).
type Config struct {
	Addr        string // host:port для http.ListenAndServe
	DatabaseURL string // DSN для lib/pq
	SecretKey   string // секрет подписи сессионной куки
	BotToken    string // токен Telegram-бота; пустой = вебхук отвечает ошибкой
	UploadDir   string // корень для uploads/photos и uploads/docs
	HTTPS       bool   // Secure-флаг на куке (за HTTPS-прокси — 1)
}

// Load читает .env (если есть) и окружение.
// Отсутствие TELEGRAM_BOT_TOKEN не фатально: сайт работает без ингеста.
func Load() *Config {
	_ = godotenv.Load()

	host := getenv("HOST", "127.0.0.1")
	port := getenv("PORT", "8080")

	return &Config{
		Addr:        host + ":" + port,
		DatabaseURL: getenv("DATABASE_URL", "host=127.0.0.1 port=5432 user=postgres dbname=mediacenter sslmode=disable"),
		SecretKey:   getenv("SECRET_KEY", "dev-insecure-secret-change-me-now"),
		BotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		UploadDir:   getenv("UPLOAD_DIR", "uploads"),
		HTTPS:       os.Getenv("APP_HTTPS") == "1",
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
