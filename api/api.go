// Package api exposes the string store over HTTP. The handlers are thin
// plumbing: they validate input at the boundary, call into the core packages
// (analyze, filter, nlquery, storage), and map typed errors to statuses.
package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/strandhq/strand/pkg/storage"
)

// Server is the API server for storing and querying analyzed strings.
type Server struct {
	config Config
	storer storage.Driver
	logger *zap.Logger
	app    *fiber.App
}

// NewServer creates a new API server.
// The storer is injected so ownership stays with the caller; there is no
// package-level store.
func NewServer(config Config, storer storage.Driver, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config: config,
		storer: storer,
		logger: logger,
		app:    app,
	}

	app.Get("/ping", s.handlePing)
	app.Post("/strings", s.handleCreateString)
	app.Get("/strings", s.handleListStrings)
	// Registered before the :value route so the literal path wins.
	app.Get("/strings/filter-by-natural-language", s.handleFilterByNaturalLanguage)
	app.Get("/strings/:value", s.handleGetString)
	app.Delete("/strings/:value", s.handleDeleteString)

	return s
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
