// Package main provides the CLI wrapper for the wheel-tracking VMC engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Barinzaya/remote-wheel/internal/config"
	"github.com/Barinzaya/remote-wheel/internal/engine"
)

var version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "Path to TOML configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	inputAddr := flag.String("input", "", "Input UDP bind address (overrides config)")
	outputAddr := flag.String("output", "", "Output UDP address (overrides config)")
	verbose := flag.Bool("verbose", false, "Enable verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "remote-wheel-sender - VMC pose fusion for steering-wheel peripherals\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                          # Run with default settings\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -config config.toml      # Run with a custom config\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -output 127.0.0.1:39540  # Override the output address\n", os.Args[0])
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("remote-wheel-sender version %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *inputAddr != "" {
		cfg.Input.Address = *inputAddr
	}
	if *outputAddr != "" {
		cfg.Output.Address = *outputAddr
	}

	if !cfg.Enabled {
		log.Println("Engine disabled in configuration, exiting.")
		return
	}

	if *verbose {
		log.Printf("Configuration:")
		log.Printf("  Input: %s", cfg.Input.Address)
		log.Printf("  Output: %s", cfg.Output.Address)
		log.Printf("  Report interval: %.1fs", cfg.ReportInterval)
		log.Printf("  Devices: %d configured", len(cfg.Device))
	}

	eng, err := engine.New(cfg)
	if err != nil {
		log.Fatalf("Failed to start engine: %v", err)
	}
	defer eng.Close()

	log.Printf("Listening on %s, sending to %s", cfg.Input.Address, cfg.Output.Address)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	events := make(chan engine.Event)
	if err := eng.Run(ctx, events); err != nil {
		log.Fatalf("Engine stopped with error: %v", err)
	}
}
