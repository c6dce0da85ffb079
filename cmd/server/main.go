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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/skch/foodcourt/internal/config"
	"github.com/skch/foodcourt/internal/es"
	"github.com/skch/foodcourt/internal/handlers"
	"github.com/skch/foodcourt/internal/logging"
	loggingmw "github.com/skch/foodcourt/internal/middleware/logging"
	"github.com/skch/foodcourt/internal/mykafka"
	"github.com/skch/foodcourt/internal/service/catalog"
	"github.com/skch/foodcourt/internal/service/intent"
	"github.com/skch/foodcourt/internal/service/ordering"
	httpserver "github.com/skch/foodcourt/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("Ошибка инициализации БД: %v", err)
	}

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod, err = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
		if err != nil {
			log.Fatal(err)
		}
	}

	catalogSvc := &catalog.Service{DB: db, Index: configuration.ES_INDEX}
	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
		catalogSvc.ES = esClient
	}
	orderSvc := &ordering.Service{DB: db}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		MenuHandler:     &handlers.MenuHandler{Catalog: catalogSvc, Producer: prod},
		CustomerHandler: &handlers.CustomerHandler{Orders: orderSvc, Producer: prod},
		OrderHandler:    &handlers.OrderHandler{Orders: orderSvc, Producer: prod},
		WebhookHandler:  &handlers.WebhookHandler{Router: &intent.Router{Orders: orderSvc, Catalog: catalogSvc}},
	}
	if catalogSvc.ES != nil {
		deps.SearchHandler = handlers.NewSearchHandler(catalogSvc.ES, configuration.ES_INDEX)
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.HTTP_PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
