package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/quanlykho/kho_backend/config"
	"github.com/quanlykho/kho_backend/handlers"
	"github.com/quanlykho/kho_backend/middlewares"
	"github.com/quanlykho/kho_backend/models"
)

const defaultPort = "8080"

func customNotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}

// customErrorLogger is a custom Gin middleware that logs only errors
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only log when there are errors
		if len(c.Errors) > 0 {
			logger.Error(c.Errors.String())
		}
	}
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func registerRoutes(r *gin.Engine, h *handlers.Handler) {
	r.POST("/auth/login", h.Login)

	api := r.Group("/api")
	api.Use(middlewares.RequireAuth())

	api.GET("/products", h.GetProducts)
	api.GET("/products/:id", h.GetProduct)
	api.POST("/products", h.CreateProduct)
	api.POST("/products/bulk", h.CreateProductsBulk)
	api.PUT("/products/:id", h.UpdateProduct)
	api.DELETE("/products/:id", h.DeleteProduct)

	api.GET("/categories", h.GetCategories)
	api.POST("/categories", h.CreateCategory)
	api.DELETE("/categories/:id", h.DeleteCategory)

	api.GET("/customers", h.GetCustomers)
	api.POST("/customers", h.CreateCustomer)
	api.PUT("/customers/:id", h.UpdateCustomer)
	api.DELETE("/customers/:id", h.DeleteCustomer)
	api.GET("/customers/:id/orders", h.GetCustomerOrders)

	api.GET("/orders", h.GetOrders)
	api.GET("/orders/:id", h.GetOrder)
	api.POST("/orders", h.CreateOrder)
	api.PUT("/orders/:id/status", h.SetOrderStatus)
	api.PUT("/orders/:id/note", h.SetOrderNote)
	api.DELETE("/orders/:id", h.DeleteOrder)
	api.POST("/orders/:id/payments", h.AddOrderPayment)

	api.GET("/stock/imports", h.GetImports)
	api.GET("/stock/exports", h.GetExports)
	api.GET("/stock/reserved", h.GetReserved)
	api.POST("/stock/imports", h.ImportStock)
	api.POST("/stock/imports/:id/payments", h.AddPayablePayment)

	api.GET("/payments", h.GetPayments)
	api.GET("/debts/receivables", h.GetReceivables)
	api.GET("/debts/payables", h.GetPayables)

	api.GET("/dashboard", h.GetDashboardStats)

	api.GET("/backup", h.ExportBackup)
	api.POST("/backup", h.ImportBackup)
	api.GET("/reports/excel", h.ExportExcel)
}

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	config.ConnectRedis(sigCtx)
	st := config.ConnectStore()
	ledger := models.NewLedger(st, logger)
	h := handlers.New(ledger, logger)

	r := gin.New()
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	corsConfig := cors.DefaultConfig()
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			// Safer default: deny all if not configured in production.
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("token", "Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length")
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	r.Use(middlewares.AuthMiddleware())
	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())

	registerRoutes(r, h)
	r.NoRoute(customNotFoundHandler)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()

	logger.WithFields(logrus.Fields{
		"info": "Connection Established",
	}).Info("listening on http://localhost:", port, "/")
	log.Println("Server started successfully")

	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}
