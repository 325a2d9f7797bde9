package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/infsectest/ist-detector/config"
	"github.com/infsectest/ist-detector/internal/bot"
	"github.com/infsectest/ist-detector/internal/flow"
	"github.com/infsectest/ist-detector/internal/notify"
	"github.com/infsectest/ist-detector/internal/payment"
	"github.com/infsectest/ist-detector/internal/server"
	"github.com/infsectest/ist-detector/internal/session"
	"github.com/infsectest/ist-detector/pkg/logger"
)

func main() {
	l := logger.New()
	l.Info("Starting IST-detector bot...")

	cfg, err := config.Load()
	if err != nil {
		l.Fatal("Failed to load config: ", err)
	}
	if err := cfg.Validate(); err != nil {
		l.Fatal("Invalid configuration: ", err)
	}

	robokassa := &payment.Robokassa{
		MerchantLogin:       cfg.Robokassa.MerchantLogin,
		Password1:           cfg.Robokassa.Password1,
		BaseURL:             cfg.Robokassa.BaseURL,
		DescriptionTemplate: cfg.Robokassa.DescriptionTemplate,
	}

	mailer := notify.NewSMTPMailer(cfg.Email.Host, cfg.Email.Port, cfg.Email.From, cfg.Email.Password)
	dispatcher := notify.NewDispatcher(mailer, cfg.Recipients(), l)
	notifier := notify.NewService(cfg.Email.From, dispatcher)

	engine := flow.NewEngine(session.NewStore(), robokassa, notifier, cfg.Telegram.GreetingImage, l)

	telegramBot, err := bot.New(cfg.Telegram.Token, engine, l)
	if err != nil {
		l.Fatal("Failed to create Telegram bot: ", err)
	}

	if err := telegramBot.Start(context.Background()); err != nil {
		l.Fatal("Failed to start Telegram bot: ", err)
	}
	l.Info("Telegram bot started successfully")

	httpServer := server.New(cfg.Server.Port, l)
	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("Failed to start HTTP server: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("Shutting down bot...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Stop(ctx); err != nil {
		l.Error("Error during HTTP server shutdown: ", err)
	}
	if err := telegramBot.Stop(ctx); err != nil {
		l.Error("Error during bot shutdown: ", err)
	}
	dispatcher.Close()

	l.Info("Bot stopped successfully")
}
