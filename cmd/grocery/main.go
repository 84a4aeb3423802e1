package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/grocery_store/internal/config"
	"github.com/Skotchmaster/grocery_store/internal/db"
	"github.com/Skotchmaster/grocery_store/internal/events"
	"github.com/Skotchmaster/grocery_store/internal/httpserver"
	"github.com/Skotchmaster/grocery_store/internal/logging"
	"github.com/Skotchmaster/grocery_store/internal/repo"
	"github.com/Skotchmaster/grocery_store/internal/search"
	"github.com/Skotchmaster/grocery_store/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("notice: .env not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err == nil {
		err = db.Migrate(ctx, gdb)
	}
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		producer := events.NewProducer(cfg.KafkaBrokers, cfg.CartTopic, logger)
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Warn("kafka_close_error", "error", err)
			}
		}()
		publisher = producer
	} else {
		logger.Info("KAFKA_BROKERS is empty, cart events are disabled")
	}

	var index service.ProductIndex = search.Nop{}
	if cfg.ESURL != "" {
		client, err := search.NewClient(search.Config{
			URL:      cfg.ESURL,
			Username: cfg.ESUser,
			Password: cfg.ESPassword,
			Index:    cfg.ESIndex,
		})
		if err != nil {
			logger.Warn("elasticsearch_unavailable", "error", err)
		} else {
			index = client
		}
	}

	r := repo.New(gdb)

	e := httpserver.NewEcho(logger, cfg.RateLimit)
	httpserver.Register(e, &httpserver.Deps{
		CartHandler: &httpserver.CartHTTP{
			Svc:      service.NewCartService(r, publisher),
			Currency: cfg.Currency,
		},
		CatalogHandler: &httpserver.CatalogHTTP{
			Svc: &service.CatalogService{Repo: r, Index: index, SearchLimit: cfg.SearchLimit},
		},
		UserHandler: &httpserver.UserHTTP{Svc: &service.UserService{Repo: r}},
		JWTSecret:   cfg.JWTAccessSecret,
		DB:          gdb,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	if err := serve(srv, stop, logger); err != nil {
		logger.Error("listen_error", "error", err)
	}

	if err := db.Close(gdb); err != nil {
		logger.Warn("db_close_error", "error", err)
	}

	logger.Info("stopped")
}
