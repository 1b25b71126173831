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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/deid-recipes/pkg/defaults"
	"github.com/NVIDIA/deid-recipes/pkg/recipe"
)

func actionsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "actions",
		EnableShellCompletion: true,
		Usage:                 "List the header actions of a combined recipe",
		Description: `List header actions in recipe order, optionally filtered.

Both filters are case-insensitive and may be combined.

# Examples

All REMOVE actions of the base recipe:
  deidctl actions --action remove

Every action touching PatientName in a site recipe:
  deidctl actions --base -r site.deid --field PatientName -t table`,
		Flags: append(recipeFlags(),
			&cli.StringFlag{
				Name: "action",
				Usage: fmt.Sprintf("Only actions of this kind (e.g. %s)",
					strings.Join(recipe.SupportedActionKinds(), ", ")),
			},
			&cli.StringFlag{
				Name:  "field",
				Usage: "Only actions on this field",
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

			r, err := loadRecipe(ctx, cmd)
			if err != nil {
				return err
			}

			kind := recipe.ActionKind(cmd.String("action"))
			if kind != "" && !kind.IsKnown() {
				slog.Warn("filtering by unknown action kind",
					"action", kind,
					"supported", recipe.SupportedActionKinds())
			}

			actions := r.Actions(kind, cmd.String("field"))
			if actions == nil {
				actions = []recipe.Action{}
			}

			slog.Debug("actions selected",
				"action", kind,
				"field", cmd.String("field"),
				"count", len(actions))

			return writeOutput(ctx, cmd, actions)
		},
	}
}
