// Package rest wires the HTTP surface: routing, middleware and the JSON
// handlers over the application services.
package rest

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"outreach-backend/infrastructure/config"
	"outreach-backend/interfaces/http/rest/handlers"
	"outreach-backend/interfaces/http/rest/middleware"
	"outreach-backend/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg       *config.Config
	contacts  *handlers.ContactHandler
	importer  *handlers.ImportHandler
	emails    *handlers.EmailHandler
	calendar  *handlers.CalendarHandler
	queue     *handlers.QueueHandler
	dashboard *handlers.DashboardHandler
	blocklist *handlers.BlocklistHandler
	settings  *handlers.SettingsHandler
	cron      *handlers.CronHandler
	metrics   *observability.Collector
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	contacts *handlers.ContactHandler,
	importer *handlers.ImportHandler,
	emails *handlers.EmailHandler,
	calendar *handlers.CalendarHandler,
	queue *handlers.QueueHandler,
	dashboard *handlers.DashboardHandler,
	blocklist *handlers.BlocklistHandler,
	settings *handlers.SettingsHandler,
	cron *handlers.CronHandler,
	metrics *observability.Collector,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:       cfg,
		contacts:  contacts,
		importer:  importer,
		emails:    emails,
		calendar:  calendar,
		queue:     queue,
		dashboard: dashboard,
		blocklist: blocklist,
		settings:  settings,
		cron:      cron,
		metrics:   metrics,
		logger:    logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.cfg.EnableMetrics {
		router.Use(middleware.Metrics(rt.metrics))
	}

	// CORS configuration
	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   strings.Split(rt.cfg.CORSOrigins, ","),
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	if rt.cfg.EnableMetrics {
		router.Handle("/metrics", promhttp.HandlerFor(rt.metrics.GetRegistry(), promhttp.HandlerOpts{}))
	}

	googleBreaker := middleware.CircuitBreaker(middleware.DefaultCircuitBreakerConfig("google-api"), rt.logger)

	router.Route("/api/v1", func(r chi.Router) {
		// Cron routes authenticate with the cron secret, not a user token.
		r.Route("/cron", func(r chi.Router) {
			r.Use(middleware.CronAuth(rt.cfg.CronSecret))
			r.Post("/sync-sheets", rt.cron.SyncSheets)
			r.Post("/check-followups", rt.cron.CheckFollowups)
			r.Post("/daily-briefing", rt.cron.DailyBriefing)
			r.Post("/scan-emails", rt.cron.ScanEmails)
			r.Post("/sync-calendar", rt.cron.SyncCalendar)
			r.Post("/generate-queue", rt.cron.GenerateQueue)
			r.Get("/logs", rt.cron.Logs)
		})

		// The OAuth callback is hit by Google's redirect, before any user
		// token exists.
		r.With(googleBreaker).Get("/settings/google/callback", rt.settings.GoogleCallback)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(rt.cfg.SupabaseJWTSecret))

			r.Route("/contacts", func(r chi.Router) {
				r.Get("/", rt.contacts.ListContacts)
				r.Post("/", rt.contacts.CreateContact)
				r.Post("/check-duplicates", rt.contacts.CheckDuplicates)
				r.Post("/bulk-status", rt.contacts.BulkUpdateStatus)
				r.Post("/bulk-followers", rt.contacts.BulkUpdateFollowers)
				r.Get("/{contactID}", rt.contacts.GetContact)
				r.Patch("/{contactID}", rt.contacts.UpdateContact)
				r.Delete("/{contactID}", rt.contacts.DeleteContact)
				r.Get("/{contactID}/communications", rt.contacts.ListCommunications)
			})

			r.Route("/import", func(r chi.Router) {
				r.Use(googleBreaker)
				r.Post("/sheets", rt.importer.Sync)
				r.Post("/export", rt.importer.Export)
				r.Post("/resolve", rt.importer.Resolve)
				r.Get("/config", rt.importer.Config)
				r.Get("/sheets/{spreadsheetID}", rt.importer.Metadata)
			})

			r.Route("/emails", func(r chi.Router) {
				r.With(googleBreaker).Post("/scan", rt.emails.Scan)
				r.With(googleBreaker).Post("/watch", rt.emails.Watch)
				r.With(googleBreaker).Delete("/watch", rt.emails.StopWatch)
				r.Get("/", rt.emails.List)
				r.Post("/{emailID}/read", rt.emails.MarkRead)
				r.Delete("/{emailID}", rt.emails.Dismiss)
			})

			r.Route("/calendar", func(r chi.Router) {
				r.With(googleBreaker).Post("/sync", rt.calendar.Sync)
				r.Get("/upcoming", rt.calendar.Upcoming)
			})

			r.Route("/queue", func(r chi.Router) {
				r.Get("/", rt.queue.Day)
				r.Post("/generate", rt.queue.Generate)
				r.Post("/{entryID}/contacted", rt.queue.MarkContacted)
				r.Post("/{entryID}/skip", rt.queue.Skip)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/stats", rt.dashboard.Stats)
				r.Get("/follower-tiers", rt.dashboard.FollowerTiers)
				r.Get("/briefing", rt.dashboard.Briefing)
			})

			r.Route("/blocklist", func(r chi.Router) {
				r.Get("/", rt.blocklist.List)
				r.Post("/", rt.blocklist.Create)
				r.Delete("/{entryID}", rt.blocklist.Delete)
			})

			r.Get("/settings/google/connect", rt.settings.GoogleConnect)
			r.Get("/settings/google/status", rt.settings.GoogleStatus)
			r.Delete("/settings/google", rt.settings.GoogleDisconnect)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
