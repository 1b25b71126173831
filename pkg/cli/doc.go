// Package cli implements deidctl, the command-line interface for combining
// and inspecting de-identification recipes.
//
// # Commands
//
// recipe - Combine sources and print the result:
//
//	deidctl recipe [--base] [-r SOURCE]... [--section NAME] [-o DEST] [-t FORMAT]
//
// The output is a DeidRecipe document: a resource header, the sources that
// contributed, and the combined sections. It can be fed back to deidctl as a
// source, including from a ConfigMap written with -o cm://namespace/name.
//
// actions - List header actions, optionally filtered by kind and field:
//
//	deidctl actions --action REMOVE --field PatientName
//
// lists - List named-list names, or one list's contents:
//
//	deidctl lists --section fields --name patient_identifiers
//
// validate - Resolve and parse sources in parallel:
//
//	deidctl validate dicom site.deid 'recipes/**/*.deid'
//
// builtins - List built-in recipe names:
//
//	deidctl builtins --data-dir /etc/deid
//
// # Sources
//
// Every --recipe value is resolved by pkg/recipe/loader: ConfigMap URIs,
// HTTP(S) URLs, glob patterns, file paths, then built-in names. Sources
// that match nothing are skipped.
//
// # Flags and Environment Variables
//
//	--recipe, -r     DEID_RECIPE     Recipe sources, lowest precedence first
//	--base           DEID_BASE       Load the base recipe first
//	--default-base                   Base recipe source (default: dicom)
//	--data-dir       DEID_DATA_DIR   Directory overlaying the built-in recipes
//	--kubeconfig, -k KUBECONFIG      Kubeconfig for cm:// sources and output
//	--output, -o                     File, cm://namespace/name, or stdout
//	--format, -t                     yaml (default), json, table
//	--log-level      LOG_LEVEL       debug, info, warn, error
//
// # Exit Codes
//
//	0  Success
//	1  Invalid arguments, resolution failure, or failed validation
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/deid-recipes/pkg/cli.version=1.0.0'"
package cli
