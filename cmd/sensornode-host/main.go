//go:build !(rp2040 || rp2350)

// Command sensornode-host runs the sensor node on a workstation with
// simulated sensors, a file-backed configuration store and a console or
// serial command channel.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	dotenv "github.com/joho/godotenv"
)

var version = "dev"

func main() {
	// A missing .env is fine; flags and the process environment still apply.
	_ = dotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}
