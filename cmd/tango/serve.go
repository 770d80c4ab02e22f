package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tango/internal/handler"
	"tango/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	if err := a.cfg.ValidateBot(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("Starting tanGo bot")

	svc, closeStore, err := a.openServices(ctx)
	if err != nil {
		a.logger.Error("Failed to open store", zap.Error(err))
		return err
	}
	defer closeStore()

	a.logger.Info("Store ready", zap.String("driver", a.cfg.Store.Driver))

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  a.cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			a.logger.Error("Update handler failed", zap.Error(err))
		},
	})
	if err != nil {
		a.logger.Error("Failed to create bot", zap.Error(err))
		return err
	}

	a.logger.Info("Telegram bot initialized")

	h := handler.NewHandler(
		bot,
		service.NewAuthService(svc.users, a.cfg.BotPassword),
		svc.importer,
		svc.study,
		svc.stats,
		a.logger,
	)
	h.RegisterHandlers()

	a.logger.Info("Handlers registered")

	// Start bot in background
	go func() {
		a.logger.Info("Bot started successfully")
		bot.Start()
	}()

	<-ctx.Done()

	a.logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()

	a.logger.Info("Bot stopped gracefully")
	return nil
}
