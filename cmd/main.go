package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thsteixeira/precatorios/internal/config"
	"github.com/thsteixeira/precatorios/internal/handlers"
	"github.com/thsteixeira/precatorios/internal/server"
)

func main() {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	setupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := config.Init(setupCtx)
	fmt.Println("✅ All connections successfully established!")

	if err := cfg.CheckConnections(setupCtx); err != nil {
		log.Fatalf("❌ Connection check failed: %v", err)
	}
	fmt.Println("🟢 All connections OK")

	if cfg.UseS3 {
		if err := cfg.S3.EnsureBucket(setupCtx); err != nil {
			log.Fatalf("❌ S3 bucket setup failed: %v", err)
		}
	}

	h := handlers.New(cfg)
	srv := server.NewServer(cfg.Port, h)

	log.Printf("[SERVER] listening on :%s environment=%s", cfg.Port, cfg.Environment)
	if err := srv.Run(runCtx); err != nil {
		log.Fatal(err)
	}
}
