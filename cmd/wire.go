package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	cachetoml "github.com/bnema/petit/internal/adapters/cache/toml"
	"github.com/bnema/petit/internal/adapters/feed/rest"
	chainstore "github.com/bnema/petit/internal/adapters/secrets/chain"
	"github.com/bnema/petit/internal/application"
	"github.com/bnema/petit/internal/config"
	"github.com/bnema/petit/internal/domain"
	"github.com/bnema/petit/internal/logger"
	"github.com/bnema/petit/internal/ports"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	errPleaseLogin      = errors.New("please login: run `petit login`")
	errBaseURLMissing   = errors.New("api base url is not set: add api.base_url to the config file or set PETIT_API_BASE_URL")
	errAppNotConfigured = errors.New("app is not configured")
)

// app holds everything the commands share. It is filled in by load once
// flags are parsed.
type app struct {
	configFile string
	verbose    bool

	cfg         config.Config
	logger      *slog.Logger
	logCloser   io.Closer
	credentials *application.CredentialService
	httpClient  *http.Client
	clock       ports.Clock
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(viper.New(), a.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var console io.Writer
	if a.verbose {
		console = cmd.ErrOrStderr()
	}
	log, closer, err := logger.New(logger.Options{Path: cfg.LogPath, Level: cfg.LogLevel, Console: console})
	if err != nil {
		return fmt.Errorf("wire logger: %w", err)
	}

	secretStore, err := chainstore.Open(cfg.SecretsBackend, cfg.SecretsDir)
	if err != nil {
		_ = closer.Close()
		return fmt.Errorf("wire secret store: %w", err)
	}

	a.cfg = cfg
	a.logger = log
	a.logCloser = closer
	a.clock = ports.SystemClock{}
	a.credentials = application.NewCredentialService(secretStore, a.clock)
	a.httpClient = http.DefaultClient

	return nil
}

func (a *app) close() error {
	if a.logCloser == nil {
		return nil
	}
	closer := a.logCloser
	a.logCloser = nil

	return closer.Close()
}

// newFeedClient requires stored credentials and a configured API.
func (a *app) newFeedClient(ctx context.Context) (*rest.Client, error) {
	if a.credentials == nil {
		return nil, errAppNotConfigured
	}

	creds, err := a.credentials.Credentials(ctx)
	if errors.Is(err, domain.ErrNotLoggedIn) {
		return nil, errPleaseLogin
	}
	if err != nil {
		return nil, err
	}
	if a.cfg.APIBaseURL == "" {
		return nil, errBaseURLMissing
	}

	client, err := rest.NewClient(ctx, rest.Options{
		BaseURL:        a.cfg.APIBaseURL,
		Credentials:    creds,
		HTTPClient:     a.httpClient,
		RequestTimeout: a.cfg.CallTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("wire feed client: %w", err)
	}

	return client, nil
}

func (a *app) newSession(ctx context.Context) (*application.TimelineSession, error) {
	client, err := a.newFeedClient(ctx)
	if err != nil {
		return nil, err
	}

	store, err := cachetoml.NewStore(a.cfg.Viper())
	if err != nil {
		return nil, fmt.Errorf("wire feed cache: %w", err)
	}

	return application.NewTimelineSession(client, store, a.clock, a.logger, application.SessionConfig{
		RefreshPeriod:   a.cfg.RefreshPeriod,
		FreshnessWindow: a.cfg.FreshnessWindow,
		FetchLimit:      a.cfg.FetchLimit,
		CallTimeout:     a.cfg.CallTimeout,
	}), nil
}
