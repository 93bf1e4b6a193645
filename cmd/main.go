package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	addTravelerHandler "github.com/m4rkov/CSI-SalesService/internal/api/handlers/add_traveler"
	cancelBookingHandler "github.com/m4rkov/CSI-SalesService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m4rkov/CSI-SalesService/internal/api/handlers/create_booking"
	createFamilyHandler "github.com/m4rkov/CSI-SalesService/internal/api/handlers/create_family"
	deleteBookingHandler "github.com/m4rkov/CSI-SalesService/internal/api/handlers/delete_booking"
	getBookingHandler "github.com/m4rkov/CSI-SalesService/internal/api/handlers/get_booking"
	getFamilyHandler "github.com/m4rkov/CSI-SalesService/internal/api/handlers/get_family"
	getFamilyBookingsHandler "github.com/m4rkov/CSI-SalesService/internal/api/handlers/get_family_bookings"
	getNetPricesHandler "github.com/m4rkov/CSI-SalesService/internal/api/handlers/get_net_prices"
	getPickupHandler "github.com/m4rkov/CSI-SalesService/internal/api/handlers/get_pickup"
	getQuoteHandler "github.com/m4rkov/CSI-SalesService/internal/api/handlers/get_quote"
	listBookingsHandler "github.com/m4rkov/CSI-SalesService/internal/api/handlers/list_bookings"
	listCompaniesHandler "github.com/m4rkov/CSI-SalesService/internal/api/handlers/list_companies"
	listExcursionsHandler "github.com/m4rkov/CSI-SalesService/internal/api/handlers/list_excursions"
	searchHotelsHandler "github.com/m4rkov/CSI-SalesService/internal/api/handlers/search_hotels"
	sendBookingHandler "github.com/m4rkov/CSI-SalesService/internal/api/handlers/send_booking"
	updateBookingHandler "github.com/m4rkov/CSI-SalesService/internal/api/handlers/update_booking"
	updateBookingStatusHandler "github.com/m4rkov/CSI-SalesService/internal/api/handlers/update_booking_status"
	upsertNetPriceHandler "github.com/m4rkov/CSI-SalesService/internal/api/handlers/upsert_net_price"
	"github.com/m4rkov/CSI-SalesService/internal/api/middleware"
	"github.com/m4rkov/CSI-SalesService/internal/config"
	bookingRepo "github.com/m4rkov/CSI-SalesService/internal/infra/storage/booking"
	companyRepo "github.com/m4rkov/CSI-SalesService/internal/infra/storage/company"
	familyRepo "github.com/m4rkov/CSI-SalesService/internal/infra/storage/family"
	netPriceRepo "github.com/m4rkov/CSI-SalesService/internal/infra/storage/netprice"
	travelerRepo "github.com/m4rkov/CSI-SalesService/internal/infra/storage/traveler"
	"github.com/m4rkov/CSI-SalesService/internal/integrations/costasolinfo"
	"github.com/m4rkov/CSI-SalesService/internal/integrations/mailer"
	bookingsService "github.com/m4rkov/CSI-SalesService/internal/service/bookings"
	familiesService "github.com/m4rkov/CSI-SalesService/internal/service/families"
	netPricesService "github.com/m4rkov/CSI-SalesService/internal/service/netprices"
	pricingService "github.com/m4rkov/CSI-SalesService/internal/service/pricing"
	regionsService "github.com/m4rkov/CSI-SalesService/internal/service/regions"
	createBookingUC "github.com/m4rkov/CSI-SalesService/internal/usecase/create_booking"
	getQuoteUC "github.com/m4rkov/CSI-SalesService/internal/usecase/get_quote"
	"github.com/m4rkov/CSI-SalesService/pkg/logger"
	"github.com/m4rkov/CSI-SalesService/pkg/metrics"
	"github.com/m4rkov/CSI-SalesService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting CSI-SalesService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Redis для кэша каталога; без него сервис работает, просто медленнее
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis unavailable, catalog cache disabled: %v", err)
			rdb = nil
		} else {
			log.Info("Connected to Redis at %s", cfg.Redis.Addr)
		}
	}

	// Клиент каталога CostaSolinfo
	catalogCache := costasolinfo.NewCache(rdb,
		time.Duration(cfg.CSI.CacheSeconds)*time.Second,
		time.Duration(cfg.CSI.StaleSeconds)*time.Second,
	)
	catalogClient := costasolinfo.NewClient(
		cfg.CSI.BaseURL,
		cfg.CSI.Token,
		time.Duration(cfg.CSI.Timeout)*time.Second,
		catalogCache,
		metricsCollector,
		log,
	)
	log.Info("Catalog client initialized (base=%s timeout=%ds)", cfg.CSI.BaseURL, cfg.CSI.Timeout)

	// Почтовый клиент для заказов партнерам
	mailClient := mailer.New(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.From,
		log,
	)

	// Репозитории и менеджер транзакций
	bookingRepository := bookingRepo.NewRepository(db)
	companyRepository := companyRepo.NewRepository(db)
	familyRepository := familyRepo.NewRepository(db)
	travelerRepository := travelerRepo.NewRepository(db)
	netPriceRepository := netPriceRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Сервисы
	regionsSvc := regionsService.NewService(
		familyRepository,
		catalogClient,
		cfg.CSI.BaseURL,
		time.Duration(cfg.CSI.Timeout)*time.Second,
		log,
	)
	netPricesSvc := netPricesService.NewService(netPriceRepository, log)
	pricingSvc := pricingService.NewService(catalogClient, log)
	familiesSvc := familiesService.NewService(familyRepository, travelerRepository, log)
	bookingsSvc := bookingsService.NewService(
		bookingRepository,
		companyRepository,
		travelerRepository,
		catalogClient,
		mailClient,
		regionsSvc,
		metricsCollector,
		log,
	)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		companyRepository,
		familyRepository,
		regionsSvc,
		familiesSvc,
		pricingSvc,
		netPricesSvc,
		txMgr,
		log,
	)
	getQuoteUseCase := getQuoteUC.NewUseCase(pricingSvc, log)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingsSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingsSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingsSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingsSvc, log)
	sendBooking := sendBookingHandler.NewHandler(bookingsSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingsSvc, log)
	createFamily := createFamilyHandler.NewHandler(familiesSvc, log)
	getFamily := getFamilyHandler.NewHandler(familiesSvc, log)
	addTraveler := addTravelerHandler.NewHandler(familiesSvc, log)
	getFamilyBookings := getFamilyBookingsHandler.NewHandler(bookingsSvc, log)
	getNetPrices := getNetPricesHandler.NewHandler(netPricesSvc, log)
	upsertNetPrice := upsertNetPriceHandler.NewHandler(netPricesSvc, log)
	searchHotels := searchHotelsHandler.NewHandler(catalogClient, log)
	listExcursions := listExcursionsHandler.NewHandler(catalogClient, log)
	getPickup := getPickupHandler.NewHandler(catalogClient, log)
	getQuote := getQuoteHandler.NewHandler(getQuoteUseCase, log)
	listCompanies := listCompaniesHandler.NewHandler(companyRepository, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID())
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог: отели, экскурсии, точки сбора, котировки
	api.HandleFunc("/hotels", searchHotels.Handle).Methods(http.MethodGet)
	api.HandleFunc("/excursions", listExcursions.Handle).Methods(http.MethodGet)
	api.HandleFunc("/pickups", getPickup.Handle).Methods(http.MethodGet)
	api.HandleFunc("/quote", getQuote.Handle).Methods(http.MethodGet)

	// Активные компании-партнеры
	api.HandleFunc("/companies", listCompanies.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Брони ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{id}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{id}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{id}/send", sendBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{id}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Семьи и туристы ---
	protected.HandleFunc("/families", createFamily.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/families/{id}", getFamily.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/families/{id}/travelers", addTraveler.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/families/{id}/bookings", getFamilyBookings.Handle).Methods(http.MethodGet)

	// --- Нетто-цены ---
	protected.HandleFunc("/net-prices", getNetPrices.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/net-prices", upsertNetPrice.Handle).Methods(http.MethodPost)

	// HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if rdb != nil {
		_ = rdb.Close()
	}

	log.Info("Server stopped gracefully")
}
