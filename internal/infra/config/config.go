package config

import (
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// defaultAckPhrases озвучиваются при старте сессии, если фразы не настроены.
var defaultAckPhrases = []string{
	"Слушаю и повинуюсь.",
	"Да, слушаю.",
	"Говори.",
	"Я весь во внимании.",
	"Че надо?",
	"Слушаю внимательно.",
}

// AppConfig описывает конфигурацию ассистента.
type AppConfig struct {
	AppEnv   string `envconfig:"APP_ENV" default:"dev"`
	TZ       string `envconfig:"TZ" default:"Europe/Moscow"`
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	Telegram struct {
		Token  string `envconfig:"TG_BOT_TOKEN"`
		ChatID int64  `envconfig:"TG_CHAT_ID"`
	} `envconfig:""`

	Storage struct {
		File      string `envconfig:"REMINDERS_FILE" default:"reminders.json"`
		RedisAddr string `envconfig:"REDIS_ADDR"`
		RedisKey  string `envconfig:"REDIS_KEY" default:"reminders"`
		PGDSN     string `envconfig:"PG_DSN"`
	} `envconfig:""`

	Scheduler struct {
		Interval      time.Duration `envconfig:"SCHEDULER_INTERVAL" default:"30s"`
		CleanupWindow time.Duration `envconfig:"CLEANUP_WINDOW" default:"30s"`
	} `envconfig:""`

	Dialog struct {
		PrealertMinutes int `envconfig:"PREALERT_MINUTES" default:"60"`
	} `envconfig:""`

	AckPhrases []string `envconfig:"ACK_PHRASES"`
}

// Load загружает конфиг из окружения.
func Load() AppConfig {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("не удалось загрузить конфиг: %v", err)
	}
	return cfg
}

// AckList возвращает фразы подтверждения с запасным набором по умолчанию.
func (c AppConfig) AckList() []string {
	if len(c.AckPhrases) > 0 {
		return c.AckPhrases
	}
	return defaultAckPhrases
}
