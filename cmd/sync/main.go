// Command sync imports the seller's unanswered marketplace questions once
// and prints a summary. It is intended to be invoked by an external cron
// job.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Redbeardred/Oberyn-v0.2/internal/app"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	if err := app.RunSync(ctx, os.Stdout); err != nil {
		log.Printf("sync: %v", err)
		os.Exit(1)
	}
}
