// Package server runs the userfeed HTTP service: it wires the random user
// client, the fetch pipeline and its metrics to the HTTP API and handles
// graceful shutdown on SIGINT, SIGTERM and SIGQUIT.
package server

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrijs2005/userfeed/internal/client/config"
	"github.com/dmitrijs2005/userfeed/internal/logging"
	"github.com/dmitrijs2005/userfeed/internal/metrics"
	"github.com/dmitrijs2005/userfeed/internal/pipeline"
	"github.com/dmitrijs2005/userfeed/internal/randomuser"
	"github.com/dmitrijs2005/userfeed/internal/server/httpapi"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	pipeline *pipeline.Pipeline
	registry *prometheus.Registry
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	client, err := randomuser.NewClient(c.Client(randomuser.StatusHook(logger)), logger)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	p := pipeline.New(client,
		pipeline.WithLogger(logger),
		pipeline.WithRecorder(metrics.NewFetchMetrics(registry)),
	)

	return &App{config: c, logger: logger, pipeline: p, registry: registry}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.ListenAddr, app.logger, app.pipeline, app.registry)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run primes the pipeline with one fetch and serves until ctx is cancelled
// or a termination signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.pipeline.Close()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	app.pipeline.Fetch(ctx)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
	app.logger.Info(ctx, "App stopped")
}
