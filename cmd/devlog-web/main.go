package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devlog"
	"devlog/internal/storage"
)

func main() {
	configPath := flag.String("config", "./config/config.yaml", "path to config file")
	dbPath := flag.String("db", "", "path to SQLite database (overrides config)")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := storage.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "devlog-web: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *addr != "" {
		cfg.Web.Addr = *addr
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "devlog-web: %v\n", err)
		os.Exit(1)
	}

	engine, err := devlog.NewEngine(devlog.EngineConfig{
		DBPath:   cfg.Database.Path,
		ReadOnly: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "devlog-web: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	mux := newRouter(engine, cfg)

	srv := &http.Server{
		Addr:         cfg.Web.Addr,
		Handler:      logging(recovery(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("devlog-web: listening on %s", cfg.Web.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("devlog-web: %v", err)
		}
	}()

	<-done
	log.Println("devlog-web: shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("devlog-web: shutdown error: %v", err)
	}
	log.Println("devlog-web: stopped")
}
