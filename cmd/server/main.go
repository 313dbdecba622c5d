package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"holdem-server/internal/config"
	"holdem-server/internal/metrics"
	"holdem-server/internal/mux"
	"holdem-server/pkg/handeval"
	"holdem-server/pkg/room"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10
const shutdownTimeout = time.Second * 10

const (
	addrFlag      = "addr"
	noMetricsFlag = "no-metrics"
)

// Version is the server version
var Version = "v0.0.0-dev"

func main() {
	app := cli.NewApp()
	app.Name = "holdem-server"
	app.Usage = "serves Texas Hold'em rooms over websockets"
	app.Version = Version
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: addrFlag, Usage: "the listen address, overrides the configuration"},
		cli.BoolFlag{Name: noMetricsFlag, Usage: "do not expose /metrics"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

func run(c *cli.Context) error {
	cfg := config.Instance()
	setupLogger(cfg)

	addr := cfg.Addr
	if c.IsSet(addrFlag) {
		addr = c.String(addrFlag)
	}

	var observer room.Observer
	var gatherer prometheus.Gatherer
	if !c.Bool(noMetricsFlag) {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		m, err := metrics.New(cfg.Metrics.Namespace, reg)
		if err != nil {
			return err
		}

		observer = m
		gatherer = reg
	}

	pitBoss := room.NewPitBoss(logrus.StandardLogger(), cfg.TableOptions(), handeval.New(), observer)
	defer pitBoss.Close()

	corsHandler := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet},
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      loggingHandler(cfg, corsHandler.Handler(mux.NewMux(Version, pitBoss, gatherer, logrus.StandardLogger()))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errs := make(chan error, 1)
	go func() {
		logrus.WithField("addr", srv.Addr).Info("listening")
		errs <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errs:
		return err
	case sig := <-stop:
		logrus.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(ctx)
}

func loggingHandler(cfg config.Config, next http.Handler) http.Handler {
	if cfg.Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger(cfg config.Config) {
	if lvl := cfg.Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
