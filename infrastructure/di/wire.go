//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"outreach-backend/infrastructure/config"
	"outreach-backend/interfaces/http/rest"
	"outreach-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *observability.Collector
	Router  *rest.Router
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideSupabaseClient,
	ProvideMetrics,
	ProvideContactRepository,
	ProvideCommunicationRepository,
	ProvideFlaggedEmailRepository,
	ProvideCalendarEventRepository,
	ProvideProspectRepository,
	ProvideQueueRepository,
	ProvideBlocklistRepository,
	ProvideSettingsRepository,
	ProvideAutomationLogRepository,
	ProvideGoogleAuth,
	ProvideSheetsGateway,
	ProvideGmailGateway,
	ProvideCalendarGateway,
	ProvideImportService,
	ProvideEmailService,
	ProvideCalendarService,
	ProvideQueueService,
	ProvideFollowupService,
	ProvideBriefingService,
	ProvideDashboardService,
	ProvideJobRunner,
	ProvideContactHandler,
	ProvideImportHandler,
	ProvideEmailHandler,
	ProvideCalendarHandler,
	ProvideQueueHandler,
	ProvideDashboardHandler,
	ProvideBlocklistHandler,
	ProvideSettingsHandler,
	ProvideCronHandler,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
