// trackgeomd serves the track geometry analysis engine over HTTP.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/analysis"
	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/api"
	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/classify"
	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/config"
)

var (
	listen     = flag.String("listen", "", "Listen address (overrides TRACKGEOM_LISTEN_ADDR)")
	thresholds = flag.String("thresholds", "", "Threshold override JSON file (overrides TRACKGEOM_THRESHOLD_PATH)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *listen != "" {
		cfg.ListenAddr = *listen
	}
	if *thresholds != "" {
		cfg.ThresholdPath = *thresholds
	}

	defaults := analysis.DefaultOptions()
	if cfg.ThresholdPath != "" {
		tc, err := classify.LoadThresholds(cfg.ThresholdPath)
		if err != nil {
			log.Fatalf("thresholds: %v", err)
		}
		defaults.Thresholds = tc
		log.Printf("loaded threshold overrides from %s", cfg.ThresholdPath)
	}

	server := api.NewServer(cfg, defaults)
	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Printf("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
