/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/deid-recipes/pkg/defaults"
	"github.com/NVIDIA/deid-recipes/pkg/recipe/loader"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Check that recipe sources resolve and parse",
		ArgsUsage:             "SOURCE...",
		Description: `Resolve and parse each source independently, in parallel, and report
one result per source. A source that resolves to nothing (missing file,
unknown built-in, empty document) is reported as invalid.

The command exits non-zero when any source is invalid, after the report
has been written.

# Examples

  deidctl validate dicom site.deid 'recipes/**/*.deid'
  deidctl validate cm://deid/site-recipe -t json`,
		Flags: []cli.Flag{
			dataDirFlag(),
			kubeconfigFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cancel := context.WithTimeout(ctx, defaults.CLICommandTimeout)
			defer cancel()

			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			sources := cmd.Args().Slice()
			if len(sources) == 0 {
				return errors.New("at least one recipe source is required")
			}

			l, err := newLoader(cmd)
			if err != nil {
				return err
			}

			report := loader.NewValidationReport(version, l.Validate(ctx, sources...))

			if err := writeOutput(ctx, cmd, report); err != nil {
				return err
			}

			slog.Info("validation completed",
				"total", report.Summary.Total,
				"valid", report.Summary.Valid,
				"invalid", report.Summary.Invalid)

			if report.Summary.Invalid > 0 {
				return fmt.Errorf("%d of %d recipe source(s) failed validation",
					report.Summary.Invalid, report.Summary.Total)
			}
			return nil
		},
	}
}
