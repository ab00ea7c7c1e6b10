package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-price-dashboard/credentials"
	"github.com/jrsteele09/go-price-dashboard/dashboard"
	"github.com/jrsteele09/go-price-dashboard/internal/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("dashboard exited")
		os.Exit(1)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	configPath := flag.String("config", "", "path to an optional config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return errors.Wrap(err, "config.Load")
	}
	setupLogging(cfg.LogLevel)
	displayAppname(cfg.AppName)

	store, err := credentials.NewFileStore(cfg.TokenPath)
	if err != nil {
		return errors.Wrap(err, "credentials.NewFileStore")
	}

	app, err := dashboard.New(cfg, store)
	if err != nil {
		return errors.Wrap(err, "dashboard.New")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go waitForStopSignal(cancel)

	return app.Run(ctx)
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

func waitForStopSignal(cancel context.CancelFunc) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	cancel()
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
