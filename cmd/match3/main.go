package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/match3-server/internal/app"
	"github.com/vancomm/match3-server/internal/config"
	"github.com/vancomm/match3-server/internal/match3"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	log, err := config.NewLogger()
	if err != nil {
		logrus.Fatal("unable to set up logging: ", err)
	}
	match3.Log = log

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal("unable to load config: ", err)
	}

	log.WithFields(logrus.Fields{
		"addr":        cfg.Addr,
		"base":        cfg.BasePath,
		"development": config.Development(),
		"width":       cfg.Defaults.Width,
		"height":      cfg.Defaults.Height,
		"gems":        cfg.Defaults.GemTypes,
	}).Info("starting up")

	if err := app.New(log, cfg).Start(ctx); err != nil {
		log.Printf("exit reason: %s\n", err)
	}
}
