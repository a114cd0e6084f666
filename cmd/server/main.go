package main

import (
	"context"
	"fmt"
	"os"

	"taskmanager/internal/config"
	"taskmanager/internal/logger"
	"taskmanager/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	s, err := server.Init(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("server initialization failed")
	}

	if err := s.Run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
