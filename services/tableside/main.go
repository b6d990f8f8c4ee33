package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/middleware"

	"github.com/tablesideclub/tableside/services/tableside/internal/catalog"
	"github.com/tablesideclub/tableside/services/tableside/internal/ordering"
	"github.com/tablesideclub/tableside/services/tableside/internal/orderstore"
)

const (
	appNamespace = "TABLESIDE"
	appName      = "tableside"
	appVersion   = "0.1.0"
)

func main() {
	config, err := apt.LoadConfig(appNamespace, os.Args[1:])
	if err != nil {
		log.Fatalf("%s(%s) cannot setup: %v", appName, appVersion, err)
	}

	logLevel, _ := config.GetString("log.level")
	logger := apt.NewLogger(logLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	catalogURL, _ := config.GetString("services.catalog.url")
	catalogClient := catalog.NewHTTPClient(catalogURL)

	ordersURL, _ := config.GetString("services.orders.url")
	submitter := orderstore.NewHTTPClient(ordersURL)

	sessions := ordering.NewSessionStore(ordering.DefaultSessionTTL)

	hd := ordering.HandlerDeps{
		Sessions:      sessions,
		CatalogClient: catalogClient,
		Submitter:     submitter,
	}

	handler := ordering.NewHandler(hd, config, logger)

	// Diner-facing service: CORS stays on so the web client can reach it.
	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger: logger,
	})

	options := []apt.Option{
		apt.WithConfig(config),
		apt.WithLogger(logger),
		apt.WithHTTPMiddleware(stack...),
		apt.WithHTTPServerModules("web.port", handler),
		apt.WithHealthChecks(appName),
	}

	ms := apt.NewMicro(options...)
	logger.Infof("Starting %s(%s)", appName, appVersion)

	err = ms.Run(ctx)
	if err != nil {
		log.Fatalf("%s(%s) stopped: %v", appName, appVersion, err)
	}

	logger.Infof("%s(%s) stopped", appName, appVersion)
}
