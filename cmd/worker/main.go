// Command worker runs the background side of the reservation engine: it
// wires a MySQL-backed engine, sweeps ended reservations to COMPLETED on a
// ticker, and consumes lifecycle events from RabbitMQ into the audit log.
package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/venuegrid/room-reservation/internal/booking"
	"github.com/venuegrid/room-reservation/internal/config"
	"github.com/venuegrid/room-reservation/internal/database"
	"github.com/venuegrid/room-reservation/internal/queue"
	"github.com/venuegrid/room-reservation/internal/repository"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return err
	}
	defer db.Close()

	catalog := repository.NewMySQLCatalog(db)
	store := repository.NewMySQLReservationStore(db)

	var events booking.EventSink
	if cfg.AMQPURL != "" {
		events = queue.NewPublisher(cfg.AMQPURL)
	}
	manager := booking.NewManager(catalog, store, nil, nil, events)

	log.Printf("worker starting (env=%s, sweep every %ds)", cfg.Env, cfg.SweepIntervalSec)

	// The consumer reconnects on its own; it only returns once ctx ends.
	consumerDone := make(chan error, 1)
	go func() {
		consumerDone <- queue.StartReservationConsumer(ctx, cfg.AMQPURL)
	}()

	ticker := time.NewTicker(time.Duration(cfg.SweepIntervalSec) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			<-consumerDone
			log.Printf("worker stopped gracefully")
			return ctx.Err()
		case <-ticker.C:
			n, err := manager.Sweep(ctx)
			if err != nil {
				log.Printf("sweep failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("sweep completed %d reservation(s)", n)
			}
		}
	}
}
