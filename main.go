package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"sketchgen/internal/config"
	"sketchgen/internal/generation"
	"sketchgen/internal/history"
	"sketchgen/internal/logging"
	"sketchgen/internal/output"
	"sketchgen/internal/trigger"
	"sketchgen/ui/console"
	"sketchgen/ui/tui"
)

func main() {
	once := flag.Bool("once", false, "Activate Generate once, print the report and exit")
	envFile := flag.String("env", "", "Path to an env file (defaults to .env and .env.local)")
	flag.Parse()

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}

	cfg, err := config.Load(files...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Use the interface to allow for different generation backends
	var fetcher generation.Fetcher = generation.NewClient(cfg.EndpointURL(), cfg.RequestTimeout)

	if *once {
		if err := runOnce(cfg, fetcher); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := tui.Start(cfg, fetcher); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// runOnce drives a headless page through one activation. Diagnostics go to
// stderr and the report to stdout.
func runOnce(cfg config.Config, fetcher generation.Fetcher) error {
	page := trigger.NewPage(cfg.PlaceholderImage)
	ids := trigger.IDs{Control: cfg.ControlID, Surface: cfg.SurfaceID, Indicator: cfg.IndicatorID}
	handles, err := trigger.Resolve(page.Elements(trigger.DefaultIDs()), ids)
	if err != nil {
		return err
	}

	hist := history.New(cfg.HistoryCapacity)
	t := trigger.New(handles, fetcher, cfg.PlaceholderImage,
		trigger.WithLogger(logging.New(cfg.Env, os.Stderr)),
		trigger.WithObserver(hist.Record),
	)

	payload := output.RunPipeline(context.Background(), t, hist, cfg.EndpointURL(), 1)
	console.Print(os.Stdout, payload.Report)

	if payload.Outcome.Kind == trigger.KindRequestFailure {
		return fmt.Errorf("generation request failed: %s", payload.Outcome.ErrDetail)
	}
	return nil
}
