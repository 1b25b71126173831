/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/deid-recipes/pkg/recipe"
	"github.com/NVIDIA/deid-recipes/pkg/recipe/loader"
	"github.com/NVIDIA/deid-recipes/pkg/serializer"
)

const siteRecipe = `format: dicom
values:
  modalities: [US]
  site_codes: [A1, B2]
header:
  - action: REPLACE
    field: InstitutionName
    value: ANONYMIZED
`

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	return newRootCmd().Run(context.Background(), append([]string{name}, args...))
}

func writeTemp(t *testing.T, fileName, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), fileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func readOutput(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output %s: %v", path, err)
	}
	return data
}

func TestRootCmd_Structure(t *testing.T) {
	root := newRootCmd()

	want := []string{"recipe", "actions", "lists", "validate", "builtins"}
	if len(root.Commands) != len(want) {
		t.Fatalf("expected %d commands, got %d", len(want), len(root.Commands))
	}
	for i, c := range root.Commands {
		if c.Name != want[i] {
			t.Errorf("command[%d] = %q, want %q", i, c.Name, want[i])
		}
		if c.Action == nil {
			t.Errorf("command %q has no action", c.Name)
		}
		// -o cm://... needs a kubeconfig on every command that writes output
		for _, flagName := range []string{"format", "output", "kubeconfig"} {
			if !hasFlag(c, flagName) {
				t.Errorf("command %q is missing output flag %q", c.Name, flagName)
			}
		}
	}

	for _, cmdName := range []string{"recipe", "actions", "lists"} {
		c := root.Command(cmdName)
		for _, flagName := range []string{"recipe", "base", "default-base", "data-dir", "kubeconfig"} {
			if !hasFlag(c, flagName) {
				t.Errorf("command %q is missing flag %q", cmdName, flagName)
			}
		}
	}
}

func hasFlag(cmd *cli.Command, flagName string) bool {
	for _, f := range cmd.Flags {
		for _, n := range f.Names() {
			if n == flagName {
				return true
			}
		}
	}
	return false
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{name: "yaml", format: "yaml", wantFormat: serializer.FormatYAML},
		{name: "json", format: "json", wantFormat: serializer.FormatJSON},
		{name: "table", format: "table", wantFormat: serializer.FormatTable},
		{name: "xml", format: "xml", wantErr: true},
		{name: "empty", format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Value: tt.format},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if (err != nil) != tt.wantErr {
						t.Errorf("parseOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
						return nil
					}
					if !tt.wantErr && got != tt.wantFormat {
						t.Errorf("parseOutputFormat() = %v, want %v", got, tt.wantFormat)
					}
					return nil
				},
			}
			if err := cmd.Run(context.Background(), []string{"test"}); err != nil {
				t.Fatalf("failed to run command: %v", err)
			}
		})
	}
}

func TestUseBase(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{name: "no sources", args: []string{"test"}, want: true},
		{name: "sources only", args: []string{"test", "-r", "site.deid"}, want: false},
		{name: "sources with base", args: []string{"test", "--base", "-r", "site.deid"}, want: true},
		{name: "base disabled", args: []string{"test", "--base=false"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got bool
			cmd := &cli.Command{
				Flags: recipeFlags(),
				Action: func(_ context.Context, c *cli.Command) error {
					got = useBase(c)
					return nil
				},
			}
			if err := cmd.Run(context.Background(), tt.args); err != nil {
				t.Fatalf("failed to run command: %v", err)
			}
			if got != tt.want {
				t.Errorf("useBase() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecipeCmd(t *testing.T) {
	site := writeTemp(t, "site.deid", siteRecipe)
	out := filepath.Join(t.TempDir(), "recipe.yaml")

	if err := runCLI(t, "recipe", "--base", "-r", site, "-o", out); err != nil {
		t.Fatalf("recipe failed: %v", err)
	}

	data := readOutput(t, out)
	if !strings.Contains(string(data), "kind: DeidRecipe") {
		t.Errorf("output is missing the resource header:\n%s", data)
	}

	// output is itself a recipe source
	doc, err := loader.Parse(data)
	if err != nil {
		t.Fatalf("output does not parse: %v", err)
	}
	if got := doc.ValuesList("modalities"); len(got) != 1 || got[0] != "US" {
		t.Errorf("modalities = %v, want [US]", got)
	}
	if got := doc.ValuesList("site_codes"); len(got) != 2 {
		t.Errorf("site_codes = %v, want 2 entries", got)
	}
	if replace := doc.Actions(recipe.ActionReplace, "InstitutionName"); len(replace) == 0 {
		t.Error("site header action missing from combined recipe")
	}
	if remove := doc.Actions(recipe.ActionRemove, ""); len(remove) == 0 {
		t.Error("base header actions missing from combined recipe")
	}

	var m recipe.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatalf("failed to decode manifest: %v", err)
	}
	if len(m.Sources) != 2 || m.Sources[0] != "dicom" || m.Sources[1] != site {
		t.Errorf("sources = %v, want [dicom %s]", m.Sources, site)
	}
}

func TestRecipeCmd_Section(t *testing.T) {
	site := writeTemp(t, "site.deid", siteRecipe)
	out := filepath.Join(t.TempDir(), "values.json")

	if err := runCLI(t, "recipe", "-r", site, "--section", "values", "-t", "json", "-o", out); err != nil {
		t.Fatalf("recipe failed: %v", err)
	}

	var values map[string][]string
	if err := json.Unmarshal(readOutput(t, out), &values); err != nil {
		t.Fatalf("output is not a JSON values section: %v", err)
	}
	if len(values) != 2 || len(values["site_codes"]) != 2 {
		t.Errorf("values = %v", values)
	}

	// the site recipe has no fields section and no base was loaded
	err := runCLI(t, "recipe", "-r", site, "--section", "fields", "-o", out)
	if err == nil || !strings.Contains(err.Error(), "not defined") {
		t.Errorf("expected undefined section error, got %v", err)
	}
}

func TestRecipeCmd_Errors(t *testing.T) {
	bad := writeTemp(t, "bad.deid", "header:\n  - field: PatientName\n")

	tests := []struct {
		name    string
		args    []string
		errPart string
	}{
		{name: "unknown format", args: []string{"recipe", "-t", "xml"}, errPart: "unknown output format"},
		{name: "unknown section", args: []string{"recipe", "--section", "labels"}, errPart: "invalid section"},
		{name: "malformed source", args: []string{"recipe", "-r", bad}, errPart: "failed to load recipe"},
		{name: "missing data dir", args: []string{"recipe", "--data-dir", filepath.Join(t.TempDir(), "none")}, errPart: "data directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runCLI(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("error %q does not contain %q", err, tt.errPart)
			}
		})
	}
}

func TestActionsCmd(t *testing.T) {
	out := filepath.Join(t.TempDir(), "actions.yaml")

	if err := runCLI(t, "actions", "--action", "remove", "-o", out); err != nil {
		t.Fatalf("actions failed: %v", err)
	}

	var actions []recipe.Action
	if err := yaml.Unmarshal(readOutput(t, out), &actions); err != nil {
		t.Fatalf("output is not a list of actions: %v", err)
	}
	if len(actions) == 0 {
		t.Fatal("expected REMOVE actions from the base recipe")
	}
	for _, a := range actions {
		if !a.Action.Is(recipe.ActionRemove) {
			t.Errorf("unexpected action %q", a.Action)
		}
	}

	if err := runCLI(t, "actions", "--field", "NoSuchField", "-o", out); err != nil {
		t.Fatalf("actions failed: %v", err)
	}
	if got := strings.TrimSpace(string(readOutput(t, out))); got != "[]" {
		t.Errorf("expected empty list, got %q", got)
	}
}

func TestListsCmd(t *testing.T) {
	site := writeTemp(t, "site.deid", siteRecipe)
	dir := t.TempDir()

	out := filepath.Join(dir, "names.yaml")
	if err := runCLI(t, "lists", "-r", site, "-o", out); err != nil {
		t.Fatalf("lists failed: %v", err)
	}
	var names listNames
	if err := yaml.Unmarshal(readOutput(t, out), &names); err != nil {
		t.Fatalf("failed to decode names: %v", err)
	}
	if len(names.Values) != 2 || names.Values[0] != "modalities" || names.Values[1] != "site_codes" {
		t.Errorf("values names = %v, want [modalities site_codes]", names.Values)
	}
	if len(names.Filter) != 0 {
		t.Errorf("filter names = %v, want empty", names.Filter)
	}

	out = filepath.Join(dir, "list.json")
	if err := runCLI(t, "lists", "-r", site, "--section", "values", "--name", "site_codes", "-t", "json", "-o", out); err != nil {
		t.Fatalf("lists failed: %v", err)
	}
	var list []string
	if err := json.Unmarshal(readOutput(t, out), &list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(list) != 2 || list[0] != "A1" {
		t.Errorf("site_codes = %v, want [A1 B2]", list)
	}

	errTests := [][]string{
		{"lists", "--name", "site_codes"},
		{"lists", "--section", "header"},
		{"lists", "-r", site, "--section", "values", "--name", "unknown"},
	}
	for _, args := range errTests {
		if err := runCLI(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestSelectLists_Filter(t *testing.T) {
	r, err := recipe.New(context.Background(), loader.New(), recipe.WithBase(true))
	if err != nil {
		t.Fatalf("failed to load base: %v", err)
	}

	got, err := selectLists(r, recipe.SectionFilter, "blacklist")
	if err != nil {
		t.Fatalf("selectLists() error = %v", err)
	}
	if rules, ok := got.([]recipe.FilterRule); !ok || len(rules) == 0 {
		t.Errorf("expected filter rules, got %T %v", got, got)
	}

	got, err = selectLists(r, recipe.SectionFields, "")
	if err != nil {
		t.Fatalf("selectLists() error = %v", err)
	}
	if names, ok := got.([]string); !ok || len(names) == 0 {
		t.Errorf("expected field list names, got %v", got)
	}
}

func TestValidateCmd(t *testing.T) {
	good := writeTemp(t, "good.deid", siteRecipe)
	missing := filepath.Join(t.TempDir(), "missing.deid")
	out := filepath.Join(t.TempDir(), "report.yaml")

	if err := runCLI(t, "validate", "-o", out, "dicom", good); err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	var report loader.ValidationReport
	if err := yaml.Unmarshal(readOutput(t, out), &report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if report.Summary.Total != 2 || report.Summary.Valid != 2 {
		t.Errorf("summary = %+v, want 2 valid", report.Summary)
	}

	err := runCLI(t, "validate", "-o", out, good, missing)
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Errorf("expected validation failure, got %v", err)
	}
	// the report is written before failing
	if err := yaml.Unmarshal(readOutput(t, out), &report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if report.Summary.Invalid != 1 || report.Results[1].Source != missing {
		t.Errorf("unexpected report: %+v", report)
	}

	if err := runCLI(t, "validate"); err == nil {
		t.Error("expected error without sources")
	}
}

func TestBuiltinsCmd(t *testing.T) {
	dataDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dataDir, "deid.site.yaml"), []byte(siteRecipe), 0o600); err != nil {
		t.Fatalf("failed to write data file: %v", err)
	}
	out := filepath.Join(t.TempDir(), "builtins.json")

	if err := runCLI(t, "builtins", "--data-dir", dataDir, "-t", "json", "-o", out); err != nil {
		t.Fatalf("builtins failed: %v", err)
	}

	var names []string
	if err := json.Unmarshal(readOutput(t, out), &names); err != nil {
		t.Fatalf("failed to decode names: %v", err)
	}
	want := []string{"dicom", "dicom-minimal", "site"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("builtins = %v, want %v", names, want)
	}
}

func TestCommandLister(t *testing.T) {
	commandLister(context.Background(), nil)

	var buf bytes.Buffer
	root := &cli.Command{
		Name:   "root",
		Writer: &buf,
		Commands: []*cli.Command{
			{Name: "visible1"},
			{Name: "hidden", Hidden: true},
			{Name: "visible2"},
		},
	}
	commandLister(context.Background(), root)

	if got := buf.String(); got != "visible1\nvisible2\n" {
		t.Errorf("commandLister() wrote %q", got)
	}
}
