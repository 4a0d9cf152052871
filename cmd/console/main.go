package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"runtime/debug"

	"github.com/iota-uz/people-console/modules"
	"github.com/iota-uz/people-console/pkg/application"
	"github.com/iota-uz/people-console/pkg/configuration"
	"github.com/iota-uz/people-console/pkg/eventbus"
	"github.com/iota-uz/people-console/pkg/httpapi"
	"github.com/iota-uz/people-console/pkg/logging"
	"github.com/iota-uz/people-console/pkg/metrics"
	"github.com/iota-uz/people-console/pkg/middleware"
	"github.com/iota-uz/people-console/pkg/server"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	if conf.OpenTelemetry.Enabled {
		tracingCleanup := logging.SetupTracing(
			context.Background(),
			conf.OpenTelemetry.ServiceName,
			conf.OpenTelemetry.TempoURL,
		)
		defer tracingCleanup()
		logger.Info("OpenTelemetry tracing enabled, exporting to " + conf.OpenTelemetry.TempoURL)
	}

	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}

	app.RegisterNavItems(modules.NavLinks...)
	app.RegisterMiddleware(
		middleware.WithLogger(logger),
		middleware.ProvideSession(middleware.HeaderSessionResolver{}, conf.Prometheus.Path),
	)
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	srv := server.NewHTTPServer(
		app,
		conf.FrontendOrigin,
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "no such route", nil)
		}),
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
		}),
	)
	log.Printf("Listening on: %s\n", conf.Origin)
	if err := srv.Start(conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
