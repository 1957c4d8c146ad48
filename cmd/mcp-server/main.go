package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"sketchgen/internal/config"
	"sketchgen/internal/generation"
	"sketchgen/internal/logging"
	"sketchgen/internal/mcpserver"
)

func main() {
	envFile := flag.String("env", "", "Path to an env file (defaults to .env and .env.local)")
	flag.Parse()

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}

	cfg, err := config.Load(files...)
	// stdout carries the MCP protocol; diagnostics go to stderr.
	log := logging.New(cfg.Env, os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	client := generation.NewClient(cfg.EndpointURL(), cfg.RequestTimeout)
	server, err := mcpserver.NewServer(cfg, client, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create MCP server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("MCP server stopped")
	}
	_ = server.Close(context.Background())
}
