package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/healthsurv/internal/buildinfo"
	"github.com/dmitrijs2005/healthsurv/internal/client/cli"
	"github.com/dmitrijs2005/healthsurv/internal/client/config"
	"github.com/dmitrijs2005/healthsurv/internal/client/session"
	"github.com/dmitrijs2005/healthsurv/internal/client/tokenstore"
	"github.com/dmitrijs2005/healthsurv/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel)

	store, err := tokenstore.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer store.Close()

	client, err := session.New(ctx, session.Options{
		BaseURL: cfg.BaseURL,
		HTTP:    &http.Client{Timeout: cfg.HTTPTimeout},
		Store:   store,
		Logger:  logger.With("component", "session"),
	})
	if err != nil {
		log.Printf("%v", err)
		return
	}

	logger.Debug(ctx, "configuration loaded", "base_url", cfg.BaseURL, "store", cfg.StoreBackend)

	app := cli.NewApp(client, logger)
	app.Run(ctx)

}
