package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campuseats/gateway/internal/cache"
	"github.com/campuseats/gateway/internal/checkout"
	"github.com/campuseats/gateway/internal/config"
	"github.com/campuseats/gateway/internal/handlers"
	mW "github.com/campuseats/gateway/internal/middleware"
	"github.com/campuseats/gateway/internal/session"
	"github.com/campuseats/gateway/internal/upstream"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	redisClient := cache.InitRedis(cfg.Redis)
	defer redisClient.Close()

	// Upstream store clients
	base := upstream.NewClient(cfg.Upstream)
	accounts := upstream.NewAccountClient(base)
	orders := upstream.NewOrderClient(base)
	menus := upstream.NewMenuClient(base)
	reviews := upstream.NewReviewClient(base)
	authClient := upstream.NewAuthClient(base)
	payments := upstream.NewPaymentClient(cfg.Payment)

	sessions := session.NewStore(redisClient, cfg.Session.TTL)
	mW.InitAuthMiddleware(sessions)

	// Checkout core: sequencer plus the durable compensation outbox
	outbox := checkout.NewOutbox(redisClient, accounts, cfg.Outbox)
	sequencer := checkout.NewSequencer(accounts, orders, outbox)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go outbox.Run(workerCtx)

	authHandler := handlers.NewAuthHandler(authClient, accounts, sessions)
	checkoutHandler := handlers.NewCheckoutHandler(sequencer)
	menuHandler := handlers.NewMenuHandler(menus)
	orderHandler := handlers.NewOrderHandler(orders)
	reviewHandler := handlers.NewReviewHandler(reviews)
	creditsHandler := handlers.NewCreditsHandler(payments, accounts)
	userHandler := handlers.NewUserHandler(accounts)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(mW.Metrics)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints (no auth required)
		r.Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)

		// Protected endpoints (auth required)
		r.Group(func(r chi.Router) {
			r.Use(mW.AuthMiddleware)

			r.Get("/account", creditsHandler.Account)

			r.Post("/checkout", checkoutHandler.PlaceOrder)

			r.Get("/menus", menuHandler.ListByVendor)
			r.Get("/menus/{menuId}", menuHandler.Get)

			r.Get("/orders", orderHandler.ListMine)
			r.Get("/orders/{orderId}", orderHandler.Get)

			r.Post("/reviews", reviewHandler.Create)
			r.Get("/reviews", reviewHandler.ListByVendor)
			r.Put("/reviews/{reviewId}", reviewHandler.Update)
			r.Delete("/reviews/{reviewId}", reviewHandler.Delete)

			r.Post("/credits/session", creditsHandler.CreateTopUpSession)
			r.Post("/credits/confirm", creditsHandler.ConfirmTopUp)

			// Vendor dashboard
			r.Group(func(r chi.Router) {
				r.Use(mW.RequireRole("vendor", "admin"))

				r.Post("/menus", menuHandler.Create)
				r.Put("/menus/{menuId}", menuHandler.Update)
				r.Delete("/menus/{menuId}", menuHandler.Delete)

				r.Get("/orders/vendor", orderHandler.ListForVendor)
				r.Put("/orders/{orderId}", orderHandler.UpdateStatus)
				r.Delete("/orders/{orderId}", orderHandler.Delete)
			})

			// Admin dashboard
			r.Group(func(r chi.Router) {
				r.Use(mW.RequireRole("admin"))

				r.Get("/users", userHandler.List)
				r.Post("/users", userHandler.Create)
				r.Get("/users/{userId}", userHandler.Get)
				r.Put("/users/{userId}", userHandler.Update)
				r.Delete("/users/{userId}", userHandler.Delete)
			})
		})
	})

	// Start server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
