/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

func builtinsCmd() *cli.Command {
	return &cli.Command{
		Name:  "builtins",
		Usage: "List the built-in recipe names",
		Description: `List the names accepted as built-in recipe sources, including those
added or overridden by --data-dir.`,
		Flags: []cli.Flag{
			dataDirFlag(),
			outputFlag(),
			formatFlag(),
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			l, err := newLoader(cmd)
			if err != nil {
				return err
			}

			names, err := l.BuiltIns()
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, nonNil(names))
		},
	}
}
