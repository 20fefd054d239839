package rest

import (
	"net/http"

	"github.com/KirkDiggler/dnd-character-sheet/internal/repositories/characters"
	"github.com/KirkDiggler/dnd-character-sheet/internal/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Handler serves the character endpoint
type Handler struct {
	repo          characters.Repository
	log           logrus.FieldLogger
	uuidGenerator uuid.Generator
	maxBodyBytes  int64
}

// HandlerConfig holds configuration for the handler
type HandlerConfig struct {
	Repository    characters.Repository // Required
	Logger        logrus.FieldLogger
	UUIDGenerator uuid.Generator // Optional, used for request ids
	MaxBodyBytes  int64          // Optional, defaults to 8MB
}

const defaultMaxBodyBytes = 8 << 20

// NewHandler creates a new character endpoint handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg == nil {
		panic("handler config is required")
	}
	if cfg.Repository == nil {
		panic("repository is required")
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.NewGoogleUUIDGenerator()
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	return &Handler{
		repo:          cfg.Repository,
		log:           log,
		uuidGenerator: gen,
		maxBodyBytes:  maxBody,
	}
}

// InitializeRoutes registers the character routes on router
func (h *Handler) InitializeRoutes(router *mux.Router) {
	// GET /api/{owner}/character
	router.HandleFunc("/api/{owner}/character", h.listCharacters).
		Methods(http.MethodGet)

	// POST /api/{owner}/character
	router.HandleFunc("/api/{owner}/character", h.replaceCharacters).
		Methods(http.MethodPost)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Response{StatusCode: http.StatusOK, Body: "ok"})
	}).Methods(http.MethodGet)
}

// Router builds a router with the character routes and middleware
func (h *Handler) Router() http.Handler {
	router := mux.NewRouter()
	router.Use(h.requestLogger, h.recoverer)
	router.MethodNotAllowedHandler = h.requestLogger(http.HandlerFunc(methodNotAllowed))
	h.InitializeRoutes(router)
	return router
}
