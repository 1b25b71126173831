// Package recipe combines deid recipes and answers queries against the result.
//
// # Overview
//
// A deid recipe describes how header metadata (originally DICOM headers) is
// filtered and rewritten: which fields to remove, replace, keep, blank, or
// jitter, plus named lists of values and fields the actions refer to. Several
// recipes can be layered. A built-in base provides sensible defaults and user
// recipes override it.
//
// # Core Types
//
// Document: A parsed recipe, one typed field per section
//
//	type Document struct {
//	    Format string                   // header dialect, e.g. "dicom"
//	    Filter *NamedLists[FilterRule]  // filter-set name -> rules
//	    Values *NamedLists[string]      // value-list name -> values
//	    Fields *NamedLists[string]      // field-list name -> fields
//	    Header []Action                 // ordered header actions
//	}
//
// Action: A single header instruction
//
//	type Action struct {
//	    Action  ActionKind      // ADD, BLANK, JITTER, KEEP, REMOVE, REPLACE
//	    Field   string          // target field or field expression
//	    Value   string          // optional argument
//	    Options map[string]any  // executor-specific options
//	}
//
// Recipe: The combined document plus the sources that contributed to it
//
// # Combination
//
// Combine merges documents in order, later documents taking precedence:
//   - format: last document that defines it wins
//   - filter, values, fields: per name, later lists replace earlier ones in full
//   - header: actions are concatenated in document order
//
// Combination is deterministic. Named lists keep definition order and inputs
// are never modified.
//
// # Usage
//
// Build a recipe from the built-in base and two user recipes:
//
//	rec, err := recipe.New(ctx, resolver,
//	    recipe.WithBase(true),
//	    recipe.WithSources("site.yaml", "study.yaml"),
//	)
//	if err != nil {
//	    return fmt.Errorf("failed to build recipe: %w", err)
//	}
//
// Add another source with the highest precedence:
//
//	if err := rec.Load(ctx, "override.yaml"); err != nil {
//	    return err
//	}
//
// Query the result:
//
//	removals := rec.Actions(recipe.ActionRemove, "")
//	allowed := rec.ValuesList("whitelist")
//	names := rec.Names(recipe.SectionFields)
//
// # Permissive Reads
//
// Queries never return errors. A missing recipe, section, or list name yields
// an empty result: nil for an absent section, an empty slice for an unknown
// name in a present section. Failures surface only while resolving sources.
//
// # Sources
//
// Sources are resolved through the Resolver interface. A resolver returns
// (nil, nil) for identifiers that do not resolve, which New and Load skip.
// See the loader package for the file, glob, ConfigMap, and built-in
// resolver.
//
// # Concurrency
//
// Query methods are read-only and may run concurrently with each other. Load
// mutates the recipe and must be serialized by the caller.
//
// # Observability
//
// Prometheus metrics:
//   - deid_recipe_sources_total{result}: source resolutions by result
//     (resolved, missing, error)
//   - deid_recipe_combine_duration_seconds: combination latency
package recipe
