package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/hantagam/qrmenu/internal/auth"
	"github.com/hantagam/qrmenu/internal/config"
	"github.com/hantagam/qrmenu/internal/db"
	"github.com/hantagam/qrmenu/internal/es"
	"github.com/hantagam/qrmenu/internal/httpserver"
	"github.com/hantagam/qrmenu/internal/logging"
	authmw "github.com/hantagam/qrmenu/internal/middleware/auth"
	loggingmw "github.com/hantagam/qrmenu/internal/middleware/logging"
	"github.com/hantagam/qrmenu/internal/mykafka"
	"github.com/hantagam/qrmenu/internal/repo"
	"github.com/hantagam/qrmenu/internal/service"
	"github.com/hantagam/qrmenu/internal/sse"
	"github.com/hantagam/qrmenu/internal/storage"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found, using system environment")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Use(loggingmw.RequestLogger(logger))

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gormDB, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	var producer service.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		p, err := mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka init error: %v", err)
		}
		defer p.Close()
		producer = p
	} else {
		logger.Warn("kafka disabled, no brokers configured")
	}

	var mealSearch *es.MealSearch
	if cfg.ES_URL != "" {
		client, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		mealSearch = es.NewMealSearch(client)
	} else {
		logger.Warn("search disabled, ES_URL not configured")
	}

	tokens := &auth.TokenService{
		Secret: cfg.JWTSecret,
		TTL:    cfg.SessionTTL,
		Secure: cfg.IsProduction(),
	}
	guard := authmw.NewGuard(tokens)
	broker := sse.NewBroker()
	gormRepo := repo.New(gormDB)

	menuSvc := &service.MenuService{Repo: gormRepo, Producer: producer, Indexer: indexerOrNil(mealSearch)}
	orderSvc := &service.OrderService{Repo: gormRepo, Producer: producer}

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Limiter:  auth.NewLoginLimiter(cfg.MaxLoginAttempts, cfg.LoginWindow),
			Verifier: &auth.CredentialVerifier{AdminUsername: cfg.AdminUsername, AdminPasswordHash: cfg.AdminPasswordHash},
			Tokens:   tokens,
		},
		CategoryHandler:   &httpserver.CategoryHTTP{Svc: menuSvc},
		MealHandler:       &httpserver.MealHTTP{Svc: menuSvc},
		OrderHandler:      &httpserver.OrderHTTP{Svc: orderSvc},
		ImageHandler:      &httpserver.ImageHTTP{Store: storage.NewImageStore(cfg.ImageDir), Broker: broker},
		EventsHandler:     &httpserver.EventsHTTP{Broker: broker},
		RestaurantHandler: &httpserver.RestaurantHTTP{Repo: gormRepo},
		DeliveryHandler:   &httpserver.DeliveryHTTP{Fee: cfg.DeliveryFee, Currency: "ТМТ"},
		SearchHandler:     &httpserver.SearchHTTP{Search: mealSearch},
		Guard:             guard,
		ImageRoot:         cfg.ImageDir,
		AdminPagesRoot:    cfg.AdminPagesDir,
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}
}

// indexerOrNil keeps a typed-nil *MealSearch from sneaking into the
// MealIndexer interface.
func indexerOrNil(s *es.MealSearch) service.MealIndexer {
	if s == nil {
		return nil
	}
	return s
}
