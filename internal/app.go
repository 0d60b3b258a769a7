package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/PandeyAnukrati/payment-app/internal/controllers"
	"github.com/PandeyAnukrati/payment-app/internal/providers"
	"github.com/PandeyAnukrati/payment-app/internal/realtime"
	"github.com/PandeyAnukrati/payment-app/internal/services"
	"github.com/PandeyAnukrati/payment-app/internal/structures"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
)

const seedTimeout = 30 * time.Second

type App struct {
	WebServer *http.Server
}

func NewApp(
	router providers.RouterProviderInterface,
	healthController *controllers.HealthController,
	wsController *controllers.WsController,
	seeder *services.Seeder,
	refresher services.RefresherInterface,
	hub *realtime.Hub,
	publisher realtime.NatsPublisherInterface,
	client *mongo.Client,
	conf *structures.Config,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) (*App, error) {
	// Inner mux: API routes
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}

	// API routes get metrics instrumentation and gzip compression
	instrumentedAPI := gzhttp.GzipHandler(providers.MetricsMiddleware(metrics, apiMux))

	// Outer mux: infrastructure + websocket + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	mux.HandleFunc("/ws", wsController.Serve)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)

	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), seedTimeout)
	seeder.Run(seedCtx)
	cancelSeed()

	app := &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	refresher.Init()

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", conf.WebServer.Host, conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		return nil, fmt.Errorf("server error: %w", err)
	}

	refresher.Stop()
	hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.WebServer.Shutdown(ctx); err != nil {
		return nil, err
	}

	publisher.Close()
	if err := client.Disconnect(ctx); err != nil {
		logger.Errorf(providers.TypeApp, "Disconnecting store failed: %s", err)
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return app, nil
}
