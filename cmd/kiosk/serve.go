package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"hospital_duty_kiosk/internal/app"
	"hospital_duty_kiosk/internal/infra/httpapi"
	"hospital_duty_kiosk/internal/infra/logger"
	"hospital_duty_kiosk/internal/infra/scheduler"
	"hospital_duty_kiosk/internal/infra/telegram"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/telebot.v3"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd(k *kiosk) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the kiosk API, the daily refresh and the admin bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return k.serve(cmd.Context())
		},
	}
}

func (k *kiosk) serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mainLogger := logger.Component("main")
	mainLogger.WithFields(logrus.Fields{
		"environment": k.cfg.Environment,
		"timezone":    k.cfg.Timezone,
		"http_addr":   k.cfg.HTTPAddr,
		"bot_enabled": k.cfg.BotEnabled(),
	}).Info("Hospital duty kiosk starting")

	if err := k.service.RestoreDutySnapshot(); err != nil && !errors.Is(err, app.ErrNoSnapshot) {
		mainLogger.WithError(err).Warn("Could not restore duty snapshot")
	}
	k.loadShifts()

	refreshScheduler := scheduler.NewRefreshScheduler(
		k.service,
		logger.Component("scheduler"),
		k.cfg.Location,
		k.cfg.RefreshCron,
		5*time.Minute,
	)

	var bot *telebot.Bot
	if k.cfg.BotEnabled() {
		var err error
		bot, err = k.newBot(ctx)
		if err != nil {
			return err
		}
		refreshScheduler.SetNotifier(telegram.NewAdminNotifier(
			telegram.NewTelebotAdapter(bot), k.cfg.AdminTelegramID, logger.Component("notifier")))
	}

	if err := refreshScheduler.Start(); err != nil {
		return err
	}

	handler := httpapi.NewHandler(k.service, k.cfg.Location, logger.Component("httpapi"))
	metricsHandler := promhttp.HandlerFor(k.registry, promhttp.HandlerOpts{})
	server := &http.Server{
		Addr:              k.cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(handler, metricsHandler, logger.Component("http")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		mainLogger.WithField("addr", server.Addr).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// First load runs in the background so the kiosk can serve the snapshot meanwhile.
	go func() {
		report := k.service.Refresh(ctx, nowIn(k.cfg.Location))
		mainLogger.WithField("origin", report.Origin).Info("Initial refresh finished")
	}()

	if bot != nil {
		go bot.Start()
	}

	var runErr error
	select {
	case <-ctx.Done():
		mainLogger.Info("Shutting down application")
	case runErr = <-serverErr:
		mainLogger.WithError(runErr).Error("HTTP server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		mainLogger.WithError(err).Warn("HTTP server shutdown incomplete")
	}
	refreshScheduler.Stop()
	if bot != nil {
		bot.Stop()
	}
	mainLogger.Info("Application shut down gracefully")
	return runErr
}

func (k *kiosk) newBot(ctx context.Context) (*telebot.Bot, error) {
	botLogger := logger.Component("telegram")
	pref := telebot.Settings{
		Token:  k.cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			entry := botLogger.WithError(err)
			if c != nil && c.Sender() != nil && c.Chat() != nil {
				entry = entry.WithFields(logrus.Fields{
					"sender_id": c.Sender().ID,
					"chat_id":   c.Chat().ID,
					"text":      c.Text(),
				})
			}
			entry.Error("Telegram handler error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		return nil, err
	}

	commands := telegram.NewCommands(k.service, k.cfg.Location)
	telegram.RegisterBotCommands(bot, k.cfg.AdminTelegramID, botLogger)
	telegram.RegisterAdminHandlers(ctx, bot, commands, k.cfg.AdminTelegramID, botLogger)
	botLogger.Info("Telegram handlers registered")
	return bot, nil
}
