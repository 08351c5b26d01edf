package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/banshee-data/ecg.report/internal/db"
)

func runRecords(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("records", flag.ContinueOnError)
	path := fs.String("db", "ecg_records.db", "SQLite records database")
	limit := fs.Int("limit", 20, "Maximum number of records to print, 0 for all")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := db.OpenDB(*path)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.ListRecords(*limit)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	path := fs.String("db", "ecg_records.db", "SQLite records database")
	listen := fs.String("listen", ":8080", "Listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *listen == "" {
		return fmt.Errorf("listen address is required")
	}

	store, err := db.OpenDB(*path)
	if err != nil {
		return err
	}
	defer store.Close()

	mux := http.NewServeMux()
	store.AttachRecordRoutes(mux)
	if err := store.AttachAdminRoutes(mux); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr: *listen,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Printf("got request %q", r.URL.Path)
			mux.ServeHTTP(w, r)
		}),
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("serving records from %s on %s", *path, *listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		return server.Close()
	}
	return nil
}
