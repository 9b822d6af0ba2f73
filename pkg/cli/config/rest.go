package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/filterschema/pkg/domain/interfaces"
	"github.com/secmon-lab/filterschema/pkg/service/rest"
	"github.com/urfave/cli/v3"
)

// REST holds CLI flags for the Testray REST backend that serves options
type REST struct {
	baseURL  string
	user     string
	password string
	token    string
	timeout  time.Duration
	cacheTTL time.Duration
}

// Flags returns CLI flags for REST backend configuration
func (r *REST) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "rest-base-url",
			Usage:       "Base URL of the REST backend, e.g. https://testray.example.com/o/c",
			Category:    "REST",
			Sources:     cli.EnvVars("FILTERSCHEMA_REST_BASE_URL"),
			Destination: &r.baseURL,
		},
		&cli.StringFlag{
			Name:        "rest-user",
			Usage:       "User for basic authentication",
			Category:    "REST",
			Sources:     cli.EnvVars("FILTERSCHEMA_REST_USER"),
			Destination: &r.user,
		},
		&cli.StringFlag{
			Name:        "rest-password",
			Usage:       "Password for basic authentication",
			Category:    "REST",
			Sources:     cli.EnvVars("FILTERSCHEMA_REST_PASSWORD"),
			Destination: &r.password,
		},
		&cli.StringFlag{
			Name:        "rest-token",
			Usage:       "Bearer token; takes precedence over basic authentication",
			Category:    "REST",
			Sources:     cli.EnvVars("FILTERSCHEMA_REST_TOKEN"),
			Destination: &r.token,
		},
		&cli.DurationFlag{
			Name:        "rest-timeout",
			Usage:       "Timeout of one REST request",
			Value:       30 * time.Second,
			Category:    "REST",
			Sources:     cli.EnvVars("FILTERSCHEMA_REST_TIMEOUT"),
			Destination: &r.timeout,
		},
		&cli.DurationFlag{
			Name:        "option-cache-ttl",
			Usage:       "How long loaded options are reused (0 disables the cache)",
			Value:       5 * time.Minute,
			Category:    "REST",
			Sources:     cli.EnvVars("FILTERSCHEMA_OPTION_CACHE_TTL"),
			Destination: &r.cacheTTL,
		},
	}
}

// LogValue implements slog.LogValuer
func (r REST) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("base_url", r.baseURL),
		slog.String("user", r.user),
		slog.Bool("token", r.token != ""),
		slog.Duration("timeout", r.timeout),
		slog.Duration("cache_ttl", r.cacheTTL),
	)
}

// CacheTTL returns the option cache lifetime
func (r *REST) CacheTTL() time.Duration {
	return r.cacheTTL
}

// Configure returns the REST client, or nil when no base URL was given
func (r *REST) Configure() (interfaces.RESTClient, error) {
	if r.baseURL == "" {
		return nil, nil
	}

	opts := []rest.Option{rest.WithTimeout(r.timeout)}
	switch {
	case r.token != "":
		opts = append(opts, rest.WithToken(r.token))
	case r.user != "":
		opts = append(opts, rest.WithBasicAuth(r.user, r.password))
	}

	client, err := rest.New(r.baseURL, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure REST client")
	}
	return client, nil
}
