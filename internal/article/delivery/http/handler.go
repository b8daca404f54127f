package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tair/spaceflight-news/internal/article/domain"
	"github.com/tair/spaceflight-news/internal/article/usecase/command"
	"github.com/tair/spaceflight-news/internal/article/usecase/query"
	"github.com/tair/spaceflight-news/pkg/auth"
	"github.com/tair/spaceflight-news/pkg/logger"
)

// ArticleHandler handles HTTP requests for articles, favorites and reports
type ArticleHandler struct {
	// Command handlers
	syncHandler     *command.SyncArticlesHandler
	favoriteHandler *command.FavoriteArticleHandler

	// Query handlers
	reportHandler    *query.MonthlyReportHandler
	favoritesHandler *query.ListFavoritesHandler
	searchHandler    *query.SearchArticlesHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
}

// Response is the JSON envelope returned by admin and error responses
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// NewArticleHandlerWithDI creates a new article handler using dependency injection
func NewArticleHandlerWithDI(
	syncHandler *command.SyncArticlesHandler,
	favoriteHandler *command.FavoriteArticleHandler,
	reportHandler *query.MonthlyReportHandler,
	favoritesHandler *query.ListFavoritesHandler,
	searchHandler *query.SearchArticlesHandler,
	reg prometheus.Registerer,
) *ArticleHandler {
	factory := promauto.With(reg)

	return &ArticleHandler{
		syncHandler:      syncHandler,
		favoriteHandler:  favoriteHandler,
		reportHandler:    reportHandler,
		favoritesHandler: favoritesHandler,
		searchHandler:    searchHandler,
		requestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "news_api_requests_total",
				Help: "Total number of requests to article endpoints",
			},
			[]string{"method", "endpoint", "status"},
		),
		requestLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "news_api_request_duration_seconds",
				Help:    "Duration of article endpoint requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		// Summary metric for percentile calculation (p50, p90, p99)
		requestSummary: factory.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "news_api_request_duration_summary",
				Help: "Summary of request durations with percentiles",
				Objectives: map[float64]float64{
					0.5:  0.05,
					0.9:  0.01,
					0.99: 0.001,
				},
				MaxAge: 10 * time.Minute,
			},
			[]string{"method", "endpoint"},
		),
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *ArticleHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// MonthlyReport handles GET /reports/monthly/ (public)
func (h *ArticleHandler) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reportHandler.Handle(r.Context(), query.MonthlyReportQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to build monthly report")
		respondError(w, http.StatusInternalServerError, "Failed to build monthly report")
		return
	}

	respondJSON(w, http.StatusOK, reports)
}

// FavoriteArticle handles POST /articles/{id}/favorite/ (authenticated user)
func (h *ArticleHandler) FavoriteArticle(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	articleID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusNotFound, domain.ErrArticleNotFound.Error())
		return
	}

	fav, created, err := h.favoriteHandler.Handle(r.Context(), command.FavoriteArticleCommand{
		UserID:    userID,
		ArticleID: uint(articleID),
	})
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		respondError(w, http.StatusUnauthorized, "User no longer exists")
		return
	case errors.Is(err, domain.ErrArticleNotFound):
		respondError(w, http.StatusNotFound, domain.ErrArticleNotFound.Error())
		return
	case err != nil:
		logger.Error(r.Context()).Err(err).Uint64("article_id", articleID).Msg("Failed to favorite article")
		respondError(w, http.StatusInternalServerError, "Failed to favorite article")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, fav)
}

// ListFavorites handles GET /favorites/ (authenticated user)
func (h *ArticleHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	page, err := h.favoritesHandler.Handle(r.Context(), query.ListFavoritesQuery{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Uint("user_id", userID).Msg("Failed to list favorites")
		respondError(w, http.StatusInternalServerError, "Failed to list favorites")
		return
	}

	respondJSON(w, http.StatusOK, page)
}

// SearchArticles handles GET /admin/articles (admin only)
func (h *ArticleHandler) SearchArticles(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	limit, _ := strconv.Atoi(params.Get("limit"))
	offset, _ := strconv.Atoi(params.Get("offset"))

	q := query.SearchArticlesQuery{
		Search:   params.Get("search"),
		NewsSite: params.Get("news_site"),
		Limit:    limit,
		Offset:   offset,
	}
	if raw := params.Get("sentiment"); raw != "" {
		sentiment, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid sentiment")
			return
		}
		q.Sentiment = &sentiment
	}

	list, err := h.searchHandler.Handle(r.Context(), q)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    list,
	})
}

// SyncArticles handles POST /admin/sync (admin only)
func (h *ArticleHandler) SyncArticles(w http.ResponseWriter, r *http.Request) {
	limit := command.DefaultSyncLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	// a disconnecting client must not cut a run short
	stats, err := h.syncHandler.Handle(context.WithoutCancel(r.Context()), command.SyncArticlesCommand{Limit: limit})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrFeedUnavailable) {
			status = http.StatusBadGateway
		}
		respondJSON(w, status, Response{
			Success: false,
			Data:    stats,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Sync completed",
		Data:    stats,
	})
}

// HealthCheck handles GET /health
func (h *ArticleHandler) HealthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

// RegisterRoutes registers all article routes
func (h *ArticleHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	report := h.metricsMiddleware("/reports/monthly/", h.MonthlyReport)
	router.HandleFunc("/reports/monthly/", report).Methods("GET")
	router.HandleFunc("/reports/monthly", report).Methods("GET")

	// Authenticated user routes
	router.HandleFunc("/articles/{id:[0-9]+}/favorite/", h.metricsMiddleware("/articles/{id}/favorite/", auth.AuthMiddleware(h.FavoriteArticle))).Methods("POST")
	router.HandleFunc("/favorites/", h.metricsMiddleware("/favorites/", auth.AuthMiddleware(h.ListFavorites))).Methods("GET")

	// Admin routes
	router.HandleFunc("/admin/articles", h.metricsMiddleware("/admin/articles", auth.AdminMiddleware(h.SearchArticles))).Methods("GET")
	router.HandleFunc("/admin/sync", h.metricsMiddleware("/admin/sync", auth.AdminMiddleware(h.SyncArticles))).Methods("POST")
}

// RegisterHealthCheck registers health check endpoint
func (h *ArticleHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", h.HealthCheck(db)).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{
		Success: false,
		Error:   message,
	})
}
