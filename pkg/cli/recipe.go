/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/deid-recipes/pkg/defaults"
	"github.com/NVIDIA/deid-recipes/pkg/recipe"
)

func recipeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "recipe",
		EnableShellCompletion: true,
		Usage:                 "Combine recipe sources and print the result",
		Description: `Combine one or more recipe sources into a single recipe.

Sources are applied lowest precedence first:
  - format: the last source that sets it wins
  - filter, values, fields: lists are replaced by name
  - header: actions of every source are concatenated in load order

The base recipe (--default-base, "dicom" unless overridden) is loaded
first when --base is set, or when no --recipe is given.

# Examples

Print the built-in DICOM recipe:
  deidctl recipe

Layer a site recipe over the base:
  deidctl recipe --base -r site.deid

Combine every recipe under a directory and publish to a ConfigMap:
  deidctl recipe -r 'recipes/**/*.deid' -o cm://deid/site-recipe

Print only the values section as JSON:
  deidctl recipe -r site.deid --section values -t json`,
		Flags: append(recipeFlags(),
			&cli.StringFlag{
				Name: "section",
				Usage: fmt.Sprintf("Print only this section (supported values: %s)",
					strings.Join(recipe.SupportedSections(), ", ")),
			},
			outputFlag(),
			formatFlag(),
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cancel := context.WithTimeout(ctx, defaults.CLICommandTimeout)
			defer cancel()

			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			section := recipe.SectionName(cmd.String("section"))
			if section != "" && !section.IsValid() {
				return fmt.Errorf("invalid section: %q, supported values: %s",
					section, strings.Join(recipe.SupportedSections(), ", "))
			}

			start := time.Now()
			r, err := loadRecipe(ctx, cmd)
			if err != nil {
				return err
			}

			slog.Info("recipe combined",
				"sources", r.Sources(),
				"actions", len(r.Actions("", "")),
				"duration", time.Since(start))

			if section == "" {
				return writeOutput(ctx, cmd, recipe.NewManifest(r))
			}

			value, ok := r.Section(section)
			if !ok {
				return fmt.Errorf("section %q is not defined by %s", section, describeSources(r))
			}
			return writeOutput(ctx, cmd, value)
		},
	}
}

func describeSources(r *recipe.Recipe) string {
	sources := r.Sources()
	if len(sources) == 0 {
		return "the recipe (no sources loaded)"
	}
	return strings.Join(sources, ", ")
}
