package cmd

import (
	"context"
	"time"

	"divtracker/config"
	"divtracker/pkg/cache"
	"divtracker/pkg/httpclient"
	"divtracker/pkg/logger"
	"divtracker/pkg/notify"
	"divtracker/pkg/sqlite"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gopkg.in/telebot.v3"
)

type AppDependency struct {
	cfg       *config.Config
	log       *logger.Logger
	db        *sqlite.DB
	client    httpclient.HTTPClient
	validator *goValidator.Validate
	echo      *echo.Echo
	cache     cache.Cache
	notifier  notify.Notifier
}

func NewAppDependency(ctx context.Context) (*AppDependency, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, err
	}

	db, err := sqlite.NewDB(cfg.DB, log)
	if err != nil {
		log.Error("Failed to open local store", zap.Error(err))
		return nil, err
	}

	notifier, err := newNotifier(cfg, log)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true

	return &AppDependency{
		cfg:       cfg,
		log:       log,
		db:        db,
		client:    httpclient.New(cfg.API.BaseURL, cfg.API.Timeout, ""),
		validator: goValidator.New(),
		echo:      e,
		cache:     cache.NewCache(cfg.Cache.DefaultExpiration, cfg.Cache.CleanupInterval),
		notifier:  notifier,
	}, nil
}

func newNotifier(cfg *config.Config, log *logger.Logger) (notify.Notifier, error) {
	if !cfg.Telegram.Enabled {
		return notify.NewNop(), nil
	}

	pref := telebot.Settings{
		Token:  cfg.Telegram.BotToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			log.Error("Telegram bot error", zap.Error(err))
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		log.Error("Failed to create telegram bot", zap.Error(err))
		return nil, err
	}

	return notify.NewTelegramNotifier(&cfg.Telegram, log, bot), nil
}

func (d *AppDependency) Close() error {
	d.log.Info("Closing app dependency")
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
