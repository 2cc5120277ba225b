package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"househunt/auth"
	"househunt/booking"
	"househunt/config"
	"househunt/db"
	"househunt/httpapi"
	"househunt/listing"
	"househunt/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env, cfg.LogLevel)

	ctx := context.Background()
	client, err := db.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		log.Fatal("connect to store", "error", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error("disconnect store", "error", err)
		}
	}()

	colls := db.NewCollections(client, cfg.Mongo.Database)
	if err := db.EnsureIndexes(ctx, colls); err != nil {
		log.Fatal("ensure indexes", "error", err)
	}

	authSvc := auth.NewService(auth.NewRepository(colls.Users), cfg.Token.Secret, cfg.Token.TTL, cfg.BcryptCost)
	listingSvc := listing.NewService(listing.NewRepository(colls.Houses))
	bookingSvc := booking.NewService(booking.NewRepository(colls.Bookings))

	server := httpapi.NewServer(authSvc, listingSvc, bookingSvc, log)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "port", cfg.Port, "env", cfg.Env)
		errCh <- httpServer.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("serve", "error", err)
		}
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", "error", err)
		}
	}
}
