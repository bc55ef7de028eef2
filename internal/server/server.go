// Package server wires the stores, services, and transports together and
// owns their lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"skywatch/internal/alerts"
	"skywatch/internal/config"
	"skywatch/internal/handlers"
	"skywatch/internal/ingest"
	"skywatch/internal/kafka"
	"skywatch/internal/logger"
	"skywatch/internal/query"
	"skywatch/internal/store"
)

// Server is the high-level coordinator for ingestion, querying, and alert
// administration.
type Server struct {
	cfg        *config.Config
	store      store.Store
	ingest     *ingest.Service
	httpServer *http.Server
	consumer   *kafka.Consumer
	wg         sync.WaitGroup
}

// New constructs a Server with the given config.
func New(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// Run connects the store, starts the transports, and blocks until the
// context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	log := logger.WithComponent("server")
	log.Info().Msg("server starting")

	if err := s.initStore(ctx); err != nil {
		log.Error().Err(err).Msg("failed to connect to store")
		return fmt.Errorf("failed to connect to store: %w", err)
	}
	defer s.store.Close()

	s.initServices()
	s.initHTTPServer()

	// Start HTTP server in background
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		log.Info().Str("addr", s.cfg.HTTP.Addr).Msg("starting HTTP server")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server error")
		}
	}()

	// Optional Kafka ingest source
	if s.cfg.Kafka.Enabled() {
		s.consumer = kafka.NewConsumer(s.cfg.Kafka, s.ingest)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := s.consumer.Run(ctx); err != nil {
				log.Error().Err(err).Msg("kafka consumer error")
			}
		}()
	}

	// Stats reporting goroutine
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.reportStats(ctx)
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	return s.shutdown()
}

// initStore opens the MySQL store.
func (s *Server) initStore(ctx context.Context) error {
	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	st, err := store.Open(connectCtx, store.Options{
		Host:     s.cfg.Database.Host,
		Port:     s.cfg.Database.Port,
		User:     s.cfg.Database.User,
		Password: s.cfg.Database.Password,
		Database: s.cfg.Database.Name,
	})
	if err != nil {
		return err
	}
	s.store = st
	return nil
}

// initServices constructs the service graph over the store.
func (s *Server) initServices() {
	engine := alerts.NewEngine(s.store, s.store)
	s.ingest = ingest.New(s.store, engine)
}

// initHTTPServer builds the API router and HTTP server.
func (s *Server) initHTTPServer() {
	api := handlers.NewAPI(
		s.ingest,
		query.New(s.store, s.store),
		alerts.NewAdmin(s.store, s.store),
		s.store.Ping,
	)

	s.httpServer = &http.Server{
		Addr:         s.cfg.HTTP.Addr,
		Handler:      api.Router(),
		ReadTimeout:  s.cfg.HTTP.ReadTimeout,
		WriteTimeout: s.cfg.HTTP.WriteTimeout,
		IdleTimeout:  s.cfg.HTTP.IdleTimeout,
	}
}

// shutdown performs graceful shutdown.
func (s *Server) shutdown() error {
	log := logger.WithComponent("server")
	log.Info().Msg("initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info().Msg("stopping HTTP server")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	if s.consumer != nil {
		log.Info().Msg("closing kafka consumer")
		if err := s.consumer.Close(); err != nil {
			log.Error().Err(err).Msg("kafka consumer close error")
		}
	}

	s.wg.Wait()

	log.Info().Msg("server stopped gracefully")
	return nil
}

// reportStats periodically logs ingestion statistics.
func (s *Server) reportStats(ctx context.Context) {
	log := logger.WithComponent("server")
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := s.ingest.Stats()
			log.Info().
				Uint64("readings_accepted", stats.Accepted).
				Uint64("readings_rejected", stats.Rejected).
				Uint64("alerts_triggered", stats.AlertsTriggered).
				Msg("stats")
		}
	}
}
