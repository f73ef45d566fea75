package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type SearchRoutes interface {
	Search(w http.ResponseWriter, r *http.Request)
}

type ReferenceRoutes interface {
	GetPriorities(w http.ResponseWriter, r *http.Request)
	GetTransportModes(w http.ResponseWriter, r *http.Request)
	GetNeighborhoods(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	searchHandler    SearchRoutes
	referenceHandler ReferenceRoutes
	router           *mux.Router
	logger           *zap.Logger
}

// NewRouter creates a router with the app's routes.
func NewRouter(
	searchHandler SearchRoutes,
	referenceHandler ReferenceRoutes,
	router *mux.Router,
	logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		searchHandler:    searchHandler,
		referenceHandler: referenceHandler,
		router:           router,
		logger:           logger.Named("Router"),
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(r.logRequests)

	// expects a JSON SearchCriteria body, optional ?verbose={bool}
	r.router.HandleFunc("/v1/search", r.searchHandler.Search).Methods("POST")

	r.router.HandleFunc("/v1/priorities", r.referenceHandler.GetPriorities).Methods("GET")
	r.router.HandleFunc("/v1/transport-modes", r.referenceHandler.GetTransportModes).Methods("GET")
	r.router.HandleFunc("/v1/neighborhoods", r.referenceHandler.GetNeighborhoods).Methods("GET")

	r.router.HandleFunc("/ping", r.referenceHandler.Ping).Methods("GET")
	r.router.Handle("/metrics", promhttp.Handler()).Methods("GET")
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (r *Router) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)
		r.logger.Debug("request served",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}
