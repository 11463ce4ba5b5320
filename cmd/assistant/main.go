package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"voice-reminder-bot/internal/adapters/bot"
	"voice-reminder-bot/internal/adapters/console"
	"voice-reminder-bot/internal/adapters/storage"
	"voice-reminder-bot/internal/domain"
	"voice-reminder-bot/internal/infra/config"
	"voice-reminder-bot/internal/infra/db"
	infrahttp "voice-reminder-bot/internal/infra/http"
	"voice-reminder-bot/internal/infra/log"
	"voice-reminder-bot/internal/infra/metrics"
	"voice-reminder-bot/internal/usecase/dialog"
	"voice-reminder-bot/internal/usecase/reminders"
	"voice-reminder-bot/internal/usecase/schedule"
)

func main() {
	cfg := config.Load()
	logger := log.NewLogger(cfg.AppEnv)
	logger.Info().Str("tz", cfg.TZ).Msg("assistant: старт")

	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var persist domain.Persistence
	switch {
	case cfg.Storage.PGDSN != "":
		pool, err := db.Connect(cfg.Storage.PGDSN)
		if err != nil {
			logger.Fatal().Err(err).Msg("нет подключения к БД")
		}
		defer pool.Close()
		pg := storage.NewPostgres(pool, logger)
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("не удалось подготовить схему")
		}
		persist = pg
	case cfg.Storage.RedisAddr != "":
		client := redis.NewClient(&redis.Options{Addr: cfg.Storage.RedisAddr})
		persist = storage.NewRedis(client, cfg.Storage.RedisKey, logger)
	default:
		persist = storage.NewFile(cfg.Storage.File, logger)
	}

	store := reminders.NewStore(persist, logger)
	store.Load(ctx)

	var announcer domain.Announcer
	var botAPI *tgbotapi.BotAPI
	if cfg.Telegram.Token != "" {
		if cfg.Telegram.ChatID == 0 {
			logger.Fatal().Msg("TG_CHAT_ID обязателен при включённом боте")
		}
		api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
		if err != nil {
			logger.Fatal().Err(err).Msg("не удалось создать бота")
		}
		botAPI = api
		announcer = bot.NewAnnouncer(api, cfg.Telegram.ChatID, logger)
	} else {
		announcer = console.NewAnnouncer(os.Stdout)
	}

	controller := dialog.NewController(store, announcer, logger,
		dialog.WithPrealertMinutes(cfg.Dialog.PrealertMinutes))

	scheduler := schedule.NewScheduler(store, announcer, logger,
		cfg.Scheduler.Interval, cfg.Scheduler.CleanupWindow)
	go scheduler.Run(ctx)

	srv := infrahttp.NewServer(logger)
	go func() {
		if err := srv.Start(cfg.HTTPAddr); err != nil {
			logger.Error().Err(err).Msg("HTTP сервер остановлен")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	if botAPI != nil {
		handler := bot.NewHandler(botAPI, logger, controller, cfg.AckList(), cfg.Telegram.ChatID)
		go handler.Run(ctx)
		<-stop
	} else {
		gateway := console.NewGateway(controller, cfg.AckList(), os.Stdin, os.Stdout, logger)
		done := make(chan struct{})
		go func() {
			defer close(done)
			if err := gateway.Run(ctx); err != nil {
				logger.Error().Err(err).Msg("console: шлюз остановлен")
			}
		}()
		select {
		case <-stop:
		case <-done:
		}
	}

	logger.Info().Msg("assistant: остановка")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}

var _ domain.Persistence = (*storage.File)(nil)
var _ domain.Persistence = (*storage.Redis)(nil)
var _ domain.Persistence = (*storage.Postgres)(nil)
var _ domain.Announcer = (*bot.Announcer)(nil)
var _ domain.Announcer = (*console.Announcer)(nil)
