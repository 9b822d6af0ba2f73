package cli

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/filterschema/pkg/cli/config"
	"github.com/secmon-lab/filterschema/pkg/domain/model/filter"
	"github.com/secmon-lab/filterschema/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func cmdViews() *cli.Command {
	var appCfg config.AppConfig
	var pairs []string

	flags := appCfg.Flags()
	flags = append(flags, contextFlag(&pairs))

	return &cli.Command{
		Name:      "views",
		Usage:     "Print views as JSON; all views when no key is given",
		ArgsUsage: "[view key]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			_, registry, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load views")
			}

			rc, err := config.ParseContext(pairs)
			if err != nil {
				return err
			}

			var out any
			if key := c.Args().First(); key != "" {
				schema, err := registry.Get(types.ViewKey(key))
				if err != nil {
					return err
				}
				out = schema.Describe(rc)
			} else {
				var list []filter.SchemaDescriptor
				for _, schema := range registry.List() {
					list = append(list, schema.Describe(rc))
				}
				out = list
			}

			enc := json.NewEncoder(output)
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return goerr.Wrap(err, "failed to encode views")
			}
			return nil
		},
	}
}
