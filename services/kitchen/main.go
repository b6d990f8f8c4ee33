package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/middleware"

	"github.com/tablesideclub/tableside/pkg"
	kitchenevents "github.com/tablesideclub/tableside/services/kitchen/internal/events"
	"github.com/tablesideclub/tableside/services/kitchen/internal/kitchen"
	"github.com/tablesideclub/tableside/services/kitchen/internal/orderstore"
)

const (
	appNamespace = "KITCHEN"
	appName      = "kitchen"
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
	catalogClient := apt.NewServiceClient(catalogURL)
	names := kitchen.NewMenuNameCache(catalogClient, logger)

	ordersURL, _ := config.GetString("services.orders.url")
	store := orderstore.NewHTTPClient(ordersURL)

	board := kitchen.NewBoard(store, names, logger)

	natsURL := config.GetStringOrDef("nats.url", "nats://localhost:4222")
	sub, err := pkg.NewNATSSubscriber(natsURL)
	if err != nil {
		log.Fatalf("%s(%s) cannot connect to NATS subscriber: %v", appName, appVersion, err)
	}

	lifecycleSub := kitchenevents.NewOrderLifecycleSubscriber(sub, board, logger)

	subLifecycle := apt.LifecycleHooks{
		OnStop: func(context.Context) error {
			return sub.Close()
		},
	}

	handler := kitchen.NewHandler(board, config, logger)

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger:      logger,
		DisableCORS: true, // Staff-facing service behind the restaurant network
	})
	stack = append(stack, middleware.InternalOnly())

	options := []apt.Option{
		apt.WithConfig(config),
		apt.WithLogger(logger),
		apt.WithHTTPMiddleware(stack...),
		apt.WithHTTPServerModules("web.port", handler),
		apt.WithLifecycle(
			board,
			lifecycleSub,
			subLifecycle,
		),
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
