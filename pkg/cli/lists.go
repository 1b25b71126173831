/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/deid-recipes/pkg/defaults"
	"github.com/NVIDIA/deid-recipes/pkg/recipe"
)

// listNames is the output of deidctl lists without --section.
type listNames struct {
	Filter []string `json:"filter" yaml:"filter"`
	Values []string `json:"values" yaml:"values"`
	Fields []string `json:"fields" yaml:"fields"`
}

func listsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "lists",
		EnableShellCompletion: true,
		Usage:                 "List the named lists of a combined recipe",
		Description: `Show the names defined in the filter, values, and fields sections,
in definition order, or the contents of a single list.

# Examples

Names of every list:
  deidctl lists

Names in one section:
  deidctl lists --section fields

Contents of one list:
  deidctl lists --section fields --name patient_identifiers`,
		Flags: append(recipeFlags(),
			&cli.StringFlag{
				Name:  "section",
				Usage: "Named-list section (filter, values, fields)",
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "Print the contents of this list (requires --section)",
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
			listName := cmd.String("name")
			if section != "" && !section.IsNamedList() {
				return fmt.Errorf("invalid section: %q, supported values: %s, %s, %s",
					section, recipe.SectionFilter, recipe.SectionValues, recipe.SectionFields)
			}
			if listName != "" && section == "" {
				return errors.New("--name requires --section")
			}

			r, err := loadRecipe(ctx, cmd)
			if err != nil {
				return err
			}

			out, err := selectLists(r, section, listName)
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, out)
		},
	}
}

// selectLists picks what deidctl lists prints for the given flags.
func selectLists(r *recipe.Recipe, section recipe.SectionName, listName string) (any, error) {
	if section == "" {
		return listNames{
			Filter: nonNil(r.FilterNames()),
			Values: nonNil(r.ValuesListNames()),
			Fields: nonNil(r.FieldsListNames()),
		}, nil
	}

	if listName == "" {
		return nonNil(r.Names(section)), nil
	}

	var (
		list any
		ok   bool
	)
	switch section {
	case recipe.SectionFilter:
		list, ok = r.FilterSet(listName), r.Filters().Has(listName)
	case recipe.SectionValues:
		list, ok = r.ValuesList(listName), r.ValuesLists().Has(listName)
	case recipe.SectionFields:
		list, ok = r.FieldsList(listName), r.FieldsLists().Has(listName)
	}
	if !ok {
		return nil, fmt.Errorf("list %q is not defined in section %s", listName, section)
	}
	return list, nil
}

func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
