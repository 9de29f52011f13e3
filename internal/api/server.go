package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trainmice/internal/cache"
	"trainmice/internal/config"
	"trainmice/internal/external"
	"trainmice/internal/handlers"
	"trainmice/internal/messaging"
	"trainmice/internal/middleware"
	"trainmice/internal/service"
)

// Server представляет HTTP сервер админского шлюза
type Server struct {
	router   *gin.Engine
	config   *config.Config
	nats     *messaging.NATSClient
	valkey   *cache.ValkeyClient
	services *service.Services
}

// NewServer создает новый экземпляр сервера
func NewServer(cfg *config.Config) *Server {
	// Устанавливаем режим Gin
	gin.SetMode(cfg.GinMode)

	// Клиент core API - единственный источник данных шлюза
	coreClient := external.NewCoreClient(cfg.Core)

	// Valkey не обязателен: без него сессии живут в памяти процесса, а
	// календарь собирается на каждый запрос
	var sessions service.SessionStore
	valkeyClient, err := cache.NewValkeyClient(cfg.Valkey)
	if err != nil {
		log.Printf("Valkey unavailable, falling back to in-memory sessions: %v", err)
		valkeyClient = nil
		sessions = service.NewMemorySessionStore(cfg.Valkey.SessionTTL)
	} else {
		sessions = valkeyClient
	}

	// NATS тоже не обязателен: события являются каналом наблюдаемости
	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		log.Printf("NATS unavailable, events will not be published: %v", err)
		natsClient = nil
	}

	// Создаем сервисы
	services := service.NewServices(coreClient, sessions, valkeyClient, natsClient)

	// Создаем роутер
	router := gin.New()

	// Применяем middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	server := &Server{
		router:   router,
		config:   cfg,
		nats:     natsClient,
		valkey:   valkeyClient,
		services: services,
	}

	server.setupRoutes()

	return server
}

// setupRoutes настраивает все API роуты
func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services, s.valkey)

	api := s.router.Group("/api")
	api.Use(middleware.BearerAuth(s.config.AdminTokens))
	{
		// Bookings endpoints
		bookings := api.Group("/bookings")
		{
			bookings.GET("", h.ListBookings)
			bookings.POST("/:id/confirmation", h.StartConfirmation)
			bookings.POST("/:id/notify", h.NotifyConflicts)
			bookings.POST("/:id/override", h.OverrideConflicts)
			bookings.POST("/:id/confirm", h.ConfirmBooking)
			bookings.POST("/:id/cancel", h.CancelBooking)
		}

		// Trainer calendar endpoints
		trainers := api.Group("/trainers")
		{
			trainers.GET("/:id/calendar", h.GetMonthView)
			trainers.POST("/:id/availability", h.CreateAvailability)
		}

		// Events endpoints
		events := api.Group("/events")
		{
			events.GET("", h.ListEvents)
			events.POST("/complete-expired", h.CompleteExpiredEvents)
			events.GET("/:id/registrations", h.ListRegistrations)
		}

		// Registrations endpoints
		registrations := api.Group("/registrations")
		{
			registrations.POST("/:id/approve", h.ApproveRegistration)
			registrations.POST("/:id/cancel", h.CancelRegistration)
		}
	}

	// Health check endpoint
	s.router.GET("/health", s.healthCheck)

	// Prometheus metrics
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// healthCheck обрабатывает health check запросы
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "trainmice-admin-api",
		"version": "1.0.0",
	})
}

// Run запускает HTTP сервер
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter возвращает роутер для тестирования
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup закрывает соединения
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			log.Printf("Error closing NATS connection: %v", err)
		}
	}

	if s.valkey != nil {
		if err := s.valkey.Close(); err != nil {
			log.Printf("Error closing Valkey connection: %v", err)
			return err
		}
	}

	return nil
}
