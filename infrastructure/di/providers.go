// Package di wires the application together with google/wire.
package di

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	supabasego "github.com/supabase-community/supabase-go"

	"outreach-backend/application/ports"
	"outreach-backend/application/services"
	"outreach-backend/infrastructure/config"
	"outreach-backend/infrastructure/google"
	"outreach-backend/infrastructure/persistence/supabase"
	"outreach-backend/interfaces/http/rest"
	"outreach-backend/interfaces/http/rest/handlers"
	"outreach-backend/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if level, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	return zapCfg.Build()
}

// ProvideSupabaseClient creates the PostgREST-backed Supabase client
func ProvideSupabaseClient(cfg *config.Config) (*supabasego.Client, error) {
	return supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey)
}

// ProvideMetrics creates the Prometheus collector
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector("outreach")
}

func ProvideContactRepository(client *supabasego.Client) ports.ContactRepository {
	return supabase.NewContactRepository(client)
}

func ProvideCommunicationRepository(client *supabasego.Client) ports.CommunicationRepository {
	return supabase.NewCommunicationRepository(client)
}

func ProvideFlaggedEmailRepository(client *supabasego.Client) ports.FlaggedEmailRepository {
	return supabase.NewFlaggedEmailRepository(client)
}

func ProvideCalendarEventRepository(client *supabasego.Client) ports.CalendarEventRepository {
	return supabase.NewCalendarEventRepository(client)
}

func ProvideProspectRepository(client *supabasego.Client) ports.ProspectRepository {
	return supabase.NewProspectRepository(client)
}

func ProvideQueueRepository(client *supabasego.Client) ports.QueueRepository {
	return supabase.NewQueueRepository(client)
}

func ProvideBlocklistRepository(client *supabasego.Client) ports.BlocklistRepository {
	return supabase.NewBlocklistRepository(client)
}

func ProvideSettingsRepository(client *supabasego.Client) ports.SettingsRepository {
	return supabase.NewSettingsRepository(client)
}

func ProvideAutomationLogRepository(client *supabasego.Client) ports.AutomationLogRepository {
	return supabase.NewAutomationLogRepository(client)
}

// ProvideGoogleAuth creates the OAuth manager backed by the settings store
func ProvideGoogleAuth(cfg *config.Config, settings ports.SettingsRepository, logger *zap.Logger) *google.Auth {
	return google.NewAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, settings, logger)
}

func ProvideSheetsGateway(auth *google.Auth, metrics *observability.Collector) ports.SheetsGateway {
	return google.NewSheetsAdapter(auth, metrics)
}

func ProvideGmailGateway(auth *google.Auth, metrics *observability.Collector) ports.GmailGateway {
	return google.NewGmailAdapter(auth, metrics)
}

func ProvideCalendarGateway(auth *google.Auth, metrics *observability.Collector) ports.CalendarGateway {
	return google.NewCalendarAdapter(auth, metrics)
}

func ProvideImportService(
	contacts ports.ContactRepository,
	settings ports.SettingsRepository,
	sheets ports.SheetsGateway,
	logger *zap.Logger,
) *services.ImportService {
	return services.NewImportService(contacts, settings, sheets, logger)
}

func ProvideEmailService(
	flagged ports.FlaggedEmailRepository,
	contacts ports.ContactRepository,
	comms ports.CommunicationRepository,
	gmail ports.GmailGateway,
	logger *zap.Logger,
) *services.EmailService {
	return services.NewEmailService(flagged, contacts, comms, gmail, logger)
}

func ProvideCalendarService(
	events ports.CalendarEventRepository,
	contacts ports.ContactRepository,
	comms ports.CommunicationRepository,
	gateway ports.CalendarGateway,
	logger *zap.Logger,
) *services.CalendarService {
	return services.NewCalendarService(events, contacts, comms, gateway, logger)
}

func ProvideQueueService(
	queue ports.QueueRepository,
	prospects ports.ProspectRepository,
	blocklist ports.BlocklistRepository,
	logger *zap.Logger,
) *services.QueueService {
	return services.NewQueueService(queue, prospects, blocklist, logger)
}

func ProvideFollowupService(
	contacts ports.ContactRepository,
	settings ports.SettingsRepository,
	logger *zap.Logger,
) *services.FollowupService {
	return services.NewFollowupService(contacts, settings, logger)
}

func ProvideBriefingService(
	contacts ports.ContactRepository,
	flagged ports.FlaggedEmailRepository,
	events ports.CalendarEventRepository,
	settings ports.SettingsRepository,
	logger *zap.Logger,
) *services.BriefingService {
	return services.NewBriefingService(contacts, flagged, events, settings, logger)
}

func ProvideDashboardService(
	contacts ports.ContactRepository,
	flagged ports.FlaggedEmailRepository,
	events ports.CalendarEventRepository,
	queue ports.QueueRepository,
	logger *zap.Logger,
) *services.DashboardService {
	return services.NewDashboardService(contacts, flagged, events, queue, logger)
}

func ProvideJobRunner(
	logs ports.AutomationLogRepository,
	metrics *observability.Collector,
	logger *zap.Logger,
) *services.JobRunner {
	return services.NewJobRunner(logs, metrics, logger)
}

func ProvideContactHandler(
	contacts ports.ContactRepository,
	comms ports.CommunicationRepository,
	logger *zap.Logger,
) *handlers.ContactHandler {
	return handlers.NewContactHandler(contacts, comms, logger)
}

func ProvideImportHandler(
	importer *services.ImportService,
	sheets ports.SheetsGateway,
	metrics *observability.Collector,
	logger *zap.Logger,
) *handlers.ImportHandler {
	return handlers.NewImportHandler(importer, sheets, metrics, logger)
}

func ProvideEmailHandler(
	emails *services.EmailService,
	gmail ports.GmailGateway,
	metrics *observability.Collector,
	logger *zap.Logger,
) *handlers.EmailHandler {
	return handlers.NewEmailHandler(emails, gmail, metrics, logger)
}

func ProvideCalendarHandler(
	calendar *services.CalendarService,
	metrics *observability.Collector,
	logger *zap.Logger,
) *handlers.CalendarHandler {
	return handlers.NewCalendarHandler(calendar, metrics, logger)
}

func ProvideQueueHandler(
	queue *services.QueueService,
	metrics *observability.Collector,
	logger *zap.Logger,
) *handlers.QueueHandler {
	return handlers.NewQueueHandler(queue, metrics, logger)
}

func ProvideDashboardHandler(
	dashboard *services.DashboardService,
	briefing *services.BriefingService,
	logger *zap.Logger,
) *handlers.DashboardHandler {
	return handlers.NewDashboardHandler(dashboard, briefing, logger)
}

func ProvideBlocklistHandler(
	blocklist ports.BlocklistRepository,
	logger *zap.Logger,
) *handlers.BlocklistHandler {
	return handlers.NewBlocklistHandler(blocklist, logger)
}

func ProvideSettingsHandler(
	auth *google.Auth,
	settings ports.SettingsRepository,
	logger *zap.Logger,
) *handlers.SettingsHandler {
	return handlers.NewSettingsHandler(auth, settings, logger)
}

func ProvideCronHandler(
	cfg *config.Config,
	runner *services.JobRunner,
	importer *services.ImportService,
	followup *services.FollowupService,
	briefing *services.BriefingService,
	emails *services.EmailService,
	calendar *services.CalendarService,
	queue *services.QueueService,
	metrics *observability.Collector,
	logger *zap.Logger,
) *handlers.CronHandler {
	return handlers.NewCronHandler(runner, importer, followup, briefing, emails, calendar, queue, cfg.QueueSize, metrics, logger)
}

func ProvideRouter(
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
) *rest.Router {
	return rest.NewRouter(cfg, contacts, importer, emails, calendar, queue, dashboard, blocklist, settings, cron, metrics, logger)
}
