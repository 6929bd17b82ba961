package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"MarketDigest/internal/collector"
	"MarketDigest/internal/config"
	"MarketDigest/internal/dispatch"
	"MarketDigest/internal/fx"
	"MarketDigest/internal/notifier"
	"MarketDigest/internal/recorder"
	"MarketDigest/internal/report"
	"MarketDigest/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MarketDigest starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init market-data fetcher and collector
	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	col := collector.NewCollector(fetcher, cfg.Report.WeeklyLookback)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init rate source by configured strategy
	var rates fx.RateSource
	switch cfg.FX.Strategy {
	case "series":
		rates = fx.NewSeriesSource(col, cfg.FX.Precision)
	default:
		rates = fx.NewTableSource(cfg.FX.TableURL, cfg.FX.Precision, cfg.Proxy)
	}
	log.Printf("[INFO] fx strategy: %s", rates.Name())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	asm := &report.Assembler{
		Collector:      col,
		Rates:          rates,
		Groups:         cfg.Groups,
		FX:             cfg.FX.FxGroup,
		Title:          cfg.Report.Title,
		MaxConcurrency: cfg.Report.MaxConcurrency,
	}
	d := &dispatch.Dispatcher{
		Assembler: asm,
		Notifier:  notifier.NewSlackNotifier(cfg.Slack.WebhookURL, cfg.Proxy),
		Recorder:  rec,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// One-shot is the default mode: run once and exit.
	if cfg.Schedule.Cron == "" {
		if err := d.RunAndReport(ctx); err != nil {
			log.Fatalf("[FATAL] report run: %v", err)
		}
		return
	}

	// Cron mode: stay up and fire on schedule.
	sched := scheduler.NewScheduler(ctx, d)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing report now")
		go func() {
			if err := d.RunAndReport(ctx); err != nil {
				log.Printf("[ERROR] initial run: %v", err)
			}
		}()
	}

	log.Println("[INFO] MarketDigest is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] MarketDigest stopped")
}
