// Package server hosts the portfolio page, the contact form and the résumé download.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonathan/portfolio/internal/contact"
	"github.com/jonathan/portfolio/internal/db"
	"github.com/jonathan/portfolio/internal/resume"
	"github.com/jonathan/portfolio/internal/server/ratelimit"
	"github.com/jonathan/portfolio/internal/site"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	engine      *gin.Engine
	state       *site.State
	generator   *resume.Generator
	contact     *contact.Service
	store       db.Store
	rateLimiter *ratelimit.Limiter
}

// Config holds server configuration
type Config struct {
	Port      int
	State     *site.State
	Generator *resume.Generator
	Contact   *contact.Service
	// Store records résumé downloads; nil disables recording
	Store db.Store
	// RateLimit nil means ratelimit.LoadConfig(os.Getenv)
	RateLimit *ratelimit.Config
	// TrustedProxies may set X-Forwarded-For; empty trusts none
	TrustedProxies []string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.State == nil {
		return nil, errors.New("server requires site state")
	}
	if cfg.Generator == nil {
		return nil, errors.New("server requires a resume generator")
	}
	if cfg.Contact == nil {
		return nil, errors.New("server requires a contact service")
	}

	rl := cfg.RateLimit
	if rl == nil {
		rl = ratelimit.LoadConfig(os.Getenv)
	}

	s := &Server{
		state:       cfg.State,
		generator:   cfg.Generator,
		contact:     cfg.Contact,
		store:       cfg.Store,
		rateLimiter: ratelimit.NewLimiter(rl),
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		s.rateLimiter.Stop()
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	engine.Use(gin.Recovery(), s.withRateLimit(), s.withLogging(), s.withCORS())

	engine.GET("/", s.handleIndex)
	engine.GET("/projects", s.handleListProjects)
	engine.GET("/projects/:id", s.handleGetProject)
	engine.GET("/theme", s.handleGetTheme)
	engine.POST("/theme/toggle", s.handleToggleTheme)
	engine.POST("/contact", s.handleContact)
	engine.GET("/resume.pdf", s.handleResume)
	engine.GET("/resume/status", s.handleResumeStatus)
	engine.GET("/health", s.handleHealth)
	engine.NoRoute(func(c *gin.Context) {
		s.errorResponse(c, http.StatusNotFound, "Not found")
	})
	s.engine = engine

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr is the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[SERVER] Listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	}
	log.Println("[SERVER] Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.Close()
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	log.Println("[SERVER] Stopped")
	return nil
}

// Close releases the limiter and the store
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("[SERVER] Failed to close store: %v", err)
		}
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

// withLogging logs each request and its duration
func (s *Server) withLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		log.Printf("[%s] %s %s", c.Request.Method, path, c.ClientIP())
		c.Next()
		log.Printf("[%s] %s %d in %v", c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

// withRateLimit rejects clients that exceed their endpoint budget
func (s *Server) withRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.ClientIP()
		allowed, info := s.rateLimiter.Allow(clientID, c.Request.URL.Path, c.Request.Method)

		for k, v := range info.Headers() {
			c.Header(k, v)
		}
		if !allowed {
			s.rateLimitResponse(c, clientID, info)
			return
		}
		c.Next()
	}
}

// rateLimitResponse writes a 429 with the limit details
func (s *Server) rateLimitResponse(c *gin.Context, clientID string, info ratelimit.Info) {
	body := gin.H{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		body["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		body["retry_after"] = int(info.RetryAfter.Round(time.Second).Seconds())
	}

	log.Printf("[rate-limit] %s exceeded on %s %s", clientID, c.Request.Method, c.Request.URL.Path)
	c.AbortWithStatusJSON(http.StatusTooManyRequests, body)
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
