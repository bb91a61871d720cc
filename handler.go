package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Akachukwu893331/BMI-Calculator/internal/gateway"
)

// Handler holds shared dependencies for all route handlers. db is nil when
// the server runs without persistence; gateway is nil when no AI provider is
// configured.
type Handler struct {
	db      *pgxpool.Pool
	gateway *gateway.Gateway
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Logs query and scan errors for debugging (e.g. struct/column mismatches).
func queryOne[T any](pool *pgxpool.Pool, c *gin.Context, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := pool.Query(c, sql, args)
	if err != nil {
		log.Printf("[queryOne] Query error: %v", err)
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryOne] Scan error: %v", err)
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](pool *pgxpool.Pool, c *gin.Context, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(c, sql, args)
	if err != nil {
		log.Printf("[queryMany] Query error: %v", err)
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryMany] Scan error: %v", err)
	}
	return results, err
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// connectDB creates a connection pool and checks it with a ping.
func connectDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}
	// Use simple query protocol to avoid "cached plan must not change result type"
	// errors from server-side prepared statement caches after schema changes.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return pool, nil
}

// setupRouter builds the engine with the shared middleware stack and all routes.
func setupRouter(h *Handler, origins []string) *gin.Engine {
	router := gin.New()
	router.SetTrustedProxies(nil)

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}

	router.Use(
		gin.Logger(),
		gin.Recovery(),
		requestID(),
		limitBodySize(1<<20), // 1MB max body
		cors.New(corsConfig),
	)

	h.registerRoutes(router)
	return router
}

// registerRoutes registers all API routes on the router. Account and snapshot
// routes need the database and are skipped without it.
func (h *Handler) registerRoutes(router *gin.Engine) {
	router.GET("/healthz", h.healthz)
	router.GET("/readyz", h.readyz)

	// Public routes
	router.POST("/api/bmi/calculate", h.calculate)
	router.GET("/api/bmi/scale", h.scale)
	router.GET("/api/bmi/activity-levels", h.activityLevels)
	router.POST("/api/chat", h.chat)

	if h.db == nil {
		return
	}
	router.POST("/api/login", h.login)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.PUT("/snapshot", h.saveSnapshot)
	api.GET("/snapshot", h.getLatestSnapshot)
	api.GET("/snapshot/history", h.getSnapshotHistory)
	api.DELETE("/snapshot/:id", h.deleteSnapshot)
	api.POST("/me/chat", h.chatWithSnapshot)
}

/* ─── Middleware ──────────────────────────────────────────────────────── */

const requestIDHeader = "X-Request-ID"

// requestID echoes the caller's X-Request-ID or assigns a fresh uuid.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

/* ─── Health checks ───────────────────────────────────────────────────── */

func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) readyz(c *gin.Context) {
	chat := "disabled"
	if h.gateway != nil {
		chat = h.gateway.Provider()
	}
	if h.db == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "disabled", "chat": chat})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"db":     fmt.Sprintf("unhealthy: %v", err),
			"chat":   chat,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "ok", "chat": chat})
}
