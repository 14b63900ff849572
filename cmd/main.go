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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	addOrderItemHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/add_order_item"
	chooseServiceHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/choose_service"
	chooseSubscriptionHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/choose_subscription"
	claimHandoffHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/claim_handoff"
	getBookingStepHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/get_booking_step"
	getDatePageHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/get_date_page"
	getDetailsHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/get_details"
	getDraftHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/get_draft"
	getHandoffHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/get_handoff"
	getServiceHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/get_service"
	getSlotsHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/get_slots"
	getSubscriptionOptionsHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/get_subscription_options"
	getWeekCalendarHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/get_week_calendar"
	listPendingHandoffsHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/list_pending_handoffs"
	listServicesHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/list_services"
	removeOrderItemHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/remove_order_item"
	resetDraftHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/reset_draft"
	selectSlotHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/select_slot"
	submitGuestDetailsHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/submit_guest_details"
	submitPostcodeHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/submit_postcode"
	"github.com/m04kA/SMC-BookingPortal/internal/api/middleware"
	"github.com/m04kA/SMC-BookingPortal/internal/config"
	handoffRepo "github.com/m04kA/SMC-BookingPortal/internal/infra/storage/handoff"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/opsapi"
	draftService "github.com/m04kA/SMC-BookingPortal/internal/service/draft"
	handoffsService "github.com/m04kA/SMC-BookingPortal/internal/service/handoffs"
	"github.com/m04kA/SMC-BookingPortal/internal/session"
	chooseSubscriptionUC "github.com/m04kA/SMC-BookingPortal/internal/usecase/choose_subscription"
	getWeekCalendarUC "github.com/m04kA/SMC-BookingPortal/internal/usecase/get_week_calendar"
	pickSlotUC "github.com/m04kA/SMC-BookingPortal/internal/usecase/pick_slot"
	selectServiceUC "github.com/m04kA/SMC-BookingPortal/internal/usecase/select_service"
	submitGuestDetailsUC "github.com/m04kA/SMC-BookingPortal/internal/usecase/submit_guest_details"
	submitPostcodeUC "github.com/m04kA/SMC-BookingPortal/internal/usecase/submit_postcode"
	"github.com/m04kA/SMC-BookingPortal/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingPortal/pkg/logger"
	"github.com/m04kA/SMC-BookingPortal/pkg/metrics"
	"github.com/m04kA/SMC-BookingPortal/pkg/txmanager"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logger
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-BookingPortal...")

	loc, err := cfg.Calendar.Location()
	if err != nil {
		log.Fatal("Failed to load time zone %s: %v", cfg.Calendar.Timezone, err)
	}

	// Metrics (nil when disabled; every observe method is nil-safe)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Database
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	handoffRepository := handoffRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Remote operations API
	opsClient := opsapi.NewClient(
		cfg.OpsAPI.URL,
		time.Duration(cfg.OpsAPI.Timeout)*time.Second,
		loc,
		log,
		metricsCollector,
	)
	log.Info("Operations API client initialized (url=%s, timeout=%ds)", cfg.OpsAPI.URL, cfg.OpsAPI.Timeout)

	// Draft sessions
	var (
		draftStore  session.DraftStore
		memoryStore *session.MemoryStore
	)
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		redisStore := session.NewRedisStore(redisClient, cfg.Redis.KeyPrefix, cfg.Session.TTL())
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisStore.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		draftStore = redisStore
		log.Info("Draft sessions stored in redis (addr=%s)", cfg.Redis.Addr)
	default:
		memoryStore = session.NewMemoryStore(cfg.Session.TTL())
		draftStore = memoryStore
		log.Info("Draft sessions stored in memory")
	}
	sessionManager := session.NewManager(draftStore, opsClient, cfg.Session.TTL(), log, metricsCollector)

	// Services
	draftSvc := draftService.NewService(opsClient, metricsCollector, log)
	handoffSvc := handoffsService.NewService(handoffRepository, txMgr, log)

	// Use cases
	submitPostcodeUseCase := submitPostcodeUC.NewUseCase(opsClient, metricsCollector, log)
	selectServiceUseCase := selectServiceUC.NewUseCase(opsClient, metricsCollector, log)
	chooseSubscriptionUseCase := chooseSubscriptionUC.NewUseCase(metricsCollector, log)
	pickSlotUseCase := pickSlotUC.NewUseCase(loc, metricsCollector, log)
	submitGuestDetailsUseCase := submitGuestDetailsUC.NewUseCase(handoffRepository, txMgr, metricsCollector, log)
	getWeekCalendarUseCase := getWeekCalendarUC.NewUseCase(opsClient, loc, log)

	// Handlers
	getBookingStep := getBookingStepHandler.NewHandler(draftSvc, log)
	getDraft := getDraftHandler.NewHandler(draftSvc, log)
	resetDraft := resetDraftHandler.NewHandler(draftSvc, log)
	addOrderItem := addOrderItemHandler.NewHandler(draftSvc, log)
	removeOrderItem := removeOrderItemHandler.NewHandler(draftSvc, log)
	submitPostcode := submitPostcodeHandler.NewHandler(submitPostcodeUseCase, log)
	listServices := listServicesHandler.NewHandler(selectServiceUseCase, log)
	getService := getServiceHandler.NewHandler(selectServiceUseCase, log)
	chooseService := chooseServiceHandler.NewHandler(selectServiceUseCase, log)
	getSubscriptionOptions := getSubscriptionOptionsHandler.NewHandler(chooseSubscriptionUseCase, log)
	chooseSubscription := chooseSubscriptionHandler.NewHandler(chooseSubscriptionUseCase, log)
	getDatePage := getDatePageHandler.NewHandler(pickSlotUseCase, log)
	getSlots := getSlotsHandler.NewHandler(pickSlotUseCase, log)
	selectSlot := selectSlotHandler.NewHandler(pickSlotUseCase, log)
	getDetails := getDetailsHandler.NewHandler(submitGuestDetailsUseCase, log)
	submitGuestDetails := submitGuestDetailsHandler.NewHandler(submitGuestDetailsUseCase, log)
	getWeekCalendar := getWeekCalendarHandler.NewHandler(getWeekCalendarUseCase, log)
	getHandoff := getHandoffHandler.NewHandler(handoffSvc, log)
	listPendingHandoffs := listPendingHandoffsHandler.NewHandler(handoffSvc, log)
	claimHandoff := claimHandoffHandler.NewHandler(handoffSvc, log)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst, cfg.Session.TTL())

	// Router
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// GUEST BOOKING FLOW (cookie session)
	// ============================================================

	booking := api.PathPrefix("/booking").Subrouter()
	booking.Use(middleware.Session(sessionManager, middleware.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.CookieSecure,
		MaxAge: cfg.Session.TTL(),
	}, log))

	booking.HandleFunc("/draft", getDraft.Handle).Methods(http.MethodGet)
	booking.HandleFunc("/reset", resetDraft.Handle).Methods(http.MethodPost)
	booking.HandleFunc("/steps/{step}", getBookingStep.Handle).Methods(http.MethodGet)

	// Step 1: postcode (each submission costs a remote lookup)
	booking.Handle("/postcode", limiter.Middleware(log)(http.HandlerFunc(submitPostcode.Handle))).Methods(http.MethodPost)

	// Step 2: services
	booking.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	booking.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)
	booking.HandleFunc("/services/{serviceId}/choose", chooseService.Handle).Methods(http.MethodPost)
	booking.HandleFunc("/order/items", addOrderItem.Handle).Methods(http.MethodPost)
	booking.HandleFunc("/order/items/{serviceId}", removeOrderItem.Handle).Methods(http.MethodDelete)

	// Step 3: subscription
	booking.HandleFunc("/subscription", getSubscriptionOptions.Handle).Methods(http.MethodGet)
	booking.HandleFunc("/subscription", chooseSubscription.Handle).Methods(http.MethodPost)

	// Step 4: date and time
	booking.HandleFunc("/datetime/days", getDatePage.Handle).Methods(http.MethodGet)
	booking.HandleFunc("/datetime/slots", getSlots.Handle).Methods(http.MethodGet)
	booking.HandleFunc("/datetime", selectSlot.Handle).Methods(http.MethodPost)

	// Step 5: guest details
	booking.HandleFunc("/details", getDetails.Handle).Methods(http.MethodGet)
	booking.HandleFunc("/details", submitGuestDetails.Handle).Methods(http.MethodPost)

	// ============================================================
	// CALENDARS AND CHECKOUT HANDOFFS
	// ============================================================

	api.HandleFunc("/calendar/{role}/week", getWeekCalendar.Handle).Methods(http.MethodGet)

	api.HandleFunc("/handoffs/pending", listPendingHandoffs.Handle).Methods(http.MethodGet)
	api.HandleFunc("/handoffs/{reference}", getHandoff.Handle).Methods(http.MethodGet)
	api.HandleFunc("/handoffs/{reference}/claim", claimHandoff.Handle).Methods(http.MethodPost)

	// Idle slot pickers, expired in-memory drafts and limiter entries
	stopSweepCh := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.Session.SweepInterval) * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stopSweepCh:
				return
			case now := <-ticker.C:
				pickers := sessionManager.Sweep(now)
				drafts := 0
				if memoryStore != nil {
					drafts = memoryStore.Sweep()
				}
				clients := limiter.Sweep()
				if pickers+drafts+clients > 0 {
					log.Debug("Sweep: pickers=%d, drafts=%d, limiter_clients=%d", pickers, drafts, clients)
				}
			}
		}
	}()

	// HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	close(stopSweepCh)
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
