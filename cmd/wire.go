package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bnema/pft-wallet-cli/internal/adapters/abort"
	"github.com/bnema/pft-wallet-cli/internal/adapters/api"
	"github.com/bnema/pft-wallet-cli/internal/adapters/cache"
	"github.com/bnema/pft-wallet-cli/internal/adapters/connection"
	"github.com/bnema/pft-wallet-cli/internal/adapters/prompt/chain"
	tomlrepo "github.com/bnema/pft-wallet-cli/internal/adapters/repo/toml"
	"github.com/bnema/pft-wallet-cli/internal/application"
	"github.com/bnema/pft-wallet-cli/internal/config"
	"github.com/bnema/pft-wallet-cli/internal/ports"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type app struct {
	settings   config.Settings
	profiles   *tomlrepo.ProfileRepository
	monitor    *connection.Monitor
	requests   *cache.RequestCache
	sessions   *application.SessionService
	accounts   *application.AccountService
	actions    *application.TaskActionService
	tasks      *application.TaskRefreshCoordinator
	prompter   ports.SecretPrompter
	httpClient *http.Client
	now        func() time.Time
}

func (a *app) wire(cfg *viper.Viper, interactive ports.SecretPrompter, logOutput io.Writer) error {
	settings, err := config.Load(cfg)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	configureLogging(logOutput, settings.Debug)

	profiles, err := tomlrepo.NewProfileRepository(cfg)
	if err != nil {
		return fmt.Errorf("wire profile repository: %w", err)
	}

	prompter, err := chain.NewDefault(interactive)
	if err != nil {
		return fmt.Errorf("wire secret prompter chain: %w", err)
	}

	httpClient := &http.Client{}
	marker := application.NewAccountMarker()
	requests := cache.New(cache.Config{MaxAge: settings.CacheMaxAge})
	monitor := connection.NewMonitor(connection.Config{
		Prober:   connection.HTTPProber{BaseURL: settings.APIBaseURL, HTTPClient: httpClient},
		Interval: settings.MonitorInterval,
	})

	client, err := api.NewClient(api.Config{
		BaseURL:        settings.APIBaseURL,
		HTTPClient:     httpClient,
		RequestTimeout: settings.APITimeout,
		Gate:           marker,
		Cache:          requests,
		Aborts:         abort.NewRegistry(),
		Connectivity:   monitor,
	})
	if err != nil {
		return fmt.Errorf("wire api client: %w", err)
	}
	wallet := api.NewWalletClient(client)

	credentials, err := application.NewCredentialHolder(prompter, marker)
	if err != nil {
		return fmt.Errorf("wire credential holder: %w", err)
	}

	sessions, err := application.NewSessionService(application.SessionConfig{
		API:         wallet,
		Marker:      marker,
		Credentials: credentials,
		Profiles:    profiles,
		Cache:       client.Cache(),
		Aborts:      client.Aborts(),
		Monitor:     monitor,
	})
	if err != nil {
		return fmt.Errorf("wire session service: %w", err)
	}

	tasks := application.NewTaskRefreshCoordinator(wallet, marker, nil, settings.TaskPollInterval)

	*a = app{
		settings:   settings,
		profiles:   profiles,
		monitor:    monitor,
		requests:   requests,
		sessions:   sessions,
		accounts:   application.NewAccountService(wallet, sessions, nil, settings.AccountPollInterval),
		actions:    application.NewTaskActionService(wallet, sessions, tasks, nil),
		tasks:      tasks,
		prompter:   prompter,
		httpClient: httpClient,
		now:        time.Now,
	}

	return nil
}

// close stops background loops; it is safe on a partially wired app.
func (a *app) close(ctx context.Context) {
	if a.tasks != nil {
		a.tasks.Close(ctx)
	}
	if a.monitor != nil {
		a.monitor.StopMonitoring()
	}
	if a.requests != nil {
		stats := a.requests.Stats()
		log.Debug().Int64("hits", stats.Hits).Int64("misses", stats.Misses).Int("size", stats.Size).Msg("request cache")
	}
}

func configureLogging(output io.Writer, debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: output, NoColor: true, TimeFormat: time.Kitchen})
}
