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
	"github.com/NVIDIA/deid-recipes/pkg/recipe/loader"
	"github.com/NVIDIA/deid-recipes/pkg/serializer"
)

const (
	envRecipe  = "DEID_RECIPE"
	envBase    = "DEID_BASE"
	envDataDir = "DEID_DATA_DIR"
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage: `Output destination: file path, ConfigMap URI (cm://namespace/name), or stdout when empty.
	ConfigMap output stores the document under the recipe.yaml key.`,
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("Output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func kubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Aliases: []string{"k"},
		Usage:   "Path to kubeconfig for cm:// sources and output (default: in-cluster or ~/.kube/config)",
		Sources: cli.EnvVars("KUBECONFIG"),
	}
}

func dataDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory whose deid.<name>.yaml files override or extend the built-in recipes",
		Sources: cli.EnvVars(envDataDir),
	}
}

// recipeFlags are shared by every command that assembles a recipe.
func recipeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "recipe",
			Aliases: []string{"r"},
			Usage: `Recipe source, lowest precedence first (can be repeated).
	Supports: built-in names, file paths, glob patterns, HTTP/HTTPS URLs, or ConfigMap URIs (cm://namespace/name).`,
			Sources: cli.EnvVars(envRecipe),
		},
		&cli.BoolFlag{
			Name:    "base",
			Usage:   "Load the base recipe ahead of --recipe sources (default: on when no --recipe is given)",
			Sources: cli.EnvVars(envBase),
		},
		&cli.StringFlag{
			Name:  "default-base",
			Value: defaults.DefaultBase,
			Usage: "Source loaded as the base recipe",
		},
		dataDirFlag(),
		kubeconfigFlag(),
	}
}

// parseOutputFormat returns the --format value, rejecting unknown formats.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, supported values: %s",
			f, strings.Join(serializer.SupportedFormats(), ", "))
	}
	return f, nil
}

// newLoader builds a loader from --data-dir and --kubeconfig.
func newLoader(cmd *cli.Command) (*loader.Loader, error) {
	opts := []loader.Option{
		loader.WithKubeconfig(cmd.String("kubeconfig")),
	}

	if dir := cmd.String("data-dir"); dir != "" {
		provider, err := loader.NewLayeredDataProvider(loader.DefaultDataProvider(),
			loader.LayeredProviderConfig{ExternalDir: dir})
		if err != nil {
			return nil, fmt.Errorf("failed to load data directory %q: %w", dir, err)
		}
		opts = append(opts, loader.WithDataProvider(provider))
	}

	return loader.New(opts...), nil
}

// useBase reports whether the base recipe is loaded: --base when given,
// otherwise only when no --recipe sources are given.
func useBase(cmd *cli.Command) bool {
	if cmd.IsSet("base") {
		return cmd.Bool("base")
	}
	return len(cmd.StringSlice("recipe")) == 0
}

// loadRecipe assembles the recipe described by the recipe flags.
func loadRecipe(ctx context.Context, cmd *cli.Command) (*recipe.Recipe, error) {
	l, err := newLoader(cmd)
	if err != nil {
		return nil, err
	}

	sources := cmd.StringSlice("recipe")
	base := useBase(cmd)

	slog.Debug("loading recipe",
		"sources", sources,
		"base", base,
		"defaultBase", cmd.String("default-base"))

	r, err := recipe.New(ctx, l,
		recipe.WithSources(sources...),
		recipe.WithBase(base),
		recipe.WithDefaultBase(cmd.String("default-base")),
		recipe.WithVersion(version),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	return r, nil
}

// writeOutput serializes data to --output in --format.
func writeOutput(ctx context.Context, cmd *cli.Command, data any) error {
	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	ser, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"),
		serializer.WithConfigMapKubeconfig(cmd.String("kubeconfig")))
	if err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}
	defer func() {
		if err := serializer.Close(ser); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	if err := ser.Serialize(ctx, data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
