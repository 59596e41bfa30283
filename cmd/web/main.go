package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AdamBeresnev/op-brackets/internal/bracket"
	"github.com/AdamBeresnev/op-brackets/internal/config"
	"github.com/AdamBeresnev/op-brackets/internal/db"
	"github.com/AdamBeresnev/op-brackets/internal/service"
	"github.com/AdamBeresnev/op-brackets/internal/store"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	database, err := db.InitDB(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	if err := db.RunMigrations(database.DB, cfg.DBDriver, cfg.MigrationsPath); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(newApplication(database, cfg)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Server starting on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Println("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}

func newApplication(database *sqlx.DB, cfg *config.Config) *application {
	tournamentStore := store.NewTournamentStore(database)
	builder := bracket.NewBuilder(bracket.WithByeAutoAdvance(cfg.ByeAutoAdvance))

	return &application{
		tournaments: service.NewTournamentService(database, tournamentStore),
		brackets:    service.NewBracketService(database, tournamentStore, builder, service.NewStoreEntrantResolver(tournamentStore)),
		matches:     service.NewMatchService(database, tournamentStore),
	}
}
