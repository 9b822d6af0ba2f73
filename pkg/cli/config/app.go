package config

import (
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/filterschema/pkg/domain/model/filter"
	"github.com/secmon-lab/filterschema/pkg/i18n"
	"github.com/secmon-lab/filterschema/pkg/schema"
	"github.com/urfave/cli/v3"
)

// AppConfig holds CLI flags for the message bundle and extra views
type AppConfig struct {
	viewFiles    []string
	messageFiles []string
}

// Flags returns CLI flags for application configuration
func (a *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "views",
			Usage:       "TOML file with additional views (can be repeated)",
			Sources:     cli.EnvVars("FILTERSCHEMA_VIEWS"),
			Destination: &a.viewFiles,
		},
		&cli.StringSliceFlag{
			Name:        "messages",
			Usage:       "TOML file overriding captions (can be repeated, later files win)",
			Sources:     cli.EnvVars("FILTERSCHEMA_MESSAGES"),
			Destination: &a.messageFiles,
		},
	}
}

// LogValue implements slog.LogValuer
func (a AppConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("views", a.viewFiles),
		slog.Any("messages", a.messageFiles),
	)
}

// Configure loads the message bundle and builds the registry of built-in
// and file defined views
func (a *AppConfig) Configure() (i18n.Translator, *filter.Registry, error) {
	var opts []i18n.Option
	for _, path := range a.messageFiles {
		opts = append(opts, i18n.WithFile(path))
	}
	tr, err := i18n.New(opts...)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load messages")
	}

	var extra []filter.ViewDef
	for _, path := range a.viewFiles {
		file, err := LoadViewFile(path)
		if err != nil {
			return nil, nil, err
		}
		defs, err := file.ToViewDefs(tr)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "invalid view file", goerr.V(ConfigPathKey, path))
		}
		extra = append(extra, defs...)
	}

	registry, err := schema.NewRegistry(tr, extra...)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to build view registry")
	}

	return tr, registry, nil
}

// ParseContext converts key=value pairs into a resource context
func ParseContext(pairs []string) (filter.ResourceContext, error) {
	rc := filter.ResourceContext{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, goerr.Wrap(ErrInvalidContext, "expected key=value", goerr.V("pair", pair))
		}
		rc[key] = value
	}
	return rc, nil
}
