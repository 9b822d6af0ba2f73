package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/filterschema/pkg/cli/config"
	"github.com/secmon-lab/filterschema/pkg/repository/memory"
	"github.com/secmon-lab/filterschema/pkg/usecase"
	"github.com/secmon-lab/filterschema/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// ErrValidationFailed is returned when at least one view cannot be served
var ErrValidationFailed = goerr.New("validation failed")

var output io.Writer = os.Stdout

func cmdValidate() *cli.Command {
	var appCfg config.AppConfig
	var pairs []string

	flags := appCfg.Flags()
	flags = append(flags, contextFlag(&pairs))

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate views and check that the context satisfies every resource",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			tr, registry, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}

			rc, err := config.ParseContext(pairs)
			if err != nil {
				return err
			}

			uc := usecase.New(memory.New(), registry, tr)
			result := uc.Filter.ValidateRegistry(rc)

			ok := color.New(color.FgGreen).SprintFunc()
			ng := color.New(color.FgRed, color.Bold).SprintFunc()

			failed := map[string]usecase.ValidationIssue{}
			for _, issue := range result.Issues {
				failed[issue.View.String()] = issue
			}

			for _, key := range registry.Keys() {
				issue, found := failed[key.String()]
				if !found {
					_, _ = fmt.Fprintf(output, "%s %s\n", ok("OK"), key)
					continue
				}
				_, _ = fmt.Fprintf(output, "%s %s: missing %s\n",
					ng("NG"), key, strings.Join(issue.MissingKeys, ", "))
			}

			if result.HasIssues() {
				return goerr.Wrap(ErrValidationFailed, "views cannot be served with the given context",
					goerr.V("views", result.Views),
					goerr.V("issues", len(result.Issues)),
				)
			}

			logging.Default().Info("Validation passed", "views", result.Views)
			return nil
		},
	}
}
