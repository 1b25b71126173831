// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package recipe

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/NVIDIA/deid-recipes/pkg/defaults"
	deiderrors "github.com/NVIDIA/deid-recipes/pkg/errors"
)

// Resolver turns a source identifier into a parsed recipe document.
//
// A nil document with a nil error means the identifier did not resolve (not
// found, or an empty recipe); callers skip it. Errors are reserved for
// malformed documents and backend failures.
type Resolver interface {
	Resolve(ctx context.Context, id string) (*Document, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, id string) (*Document, error)

// Resolve calls f(ctx, id).
func (f ResolverFunc) Resolve(ctx context.Context, id string) (*Document, error) {
	return f(ctx, id)
}

// Option is a functional option for configuring a Recipe.
type Option func(*Recipe)

// WithSources sets the source identifiers to load, lowest precedence first.
func WithSources(ids ...string) Option {
	return func(r *Recipe) {
		r.requested = append(r.requested, ids...)
	}
}

// WithBase enables loading the default base recipe ahead of the sources.
func WithBase(enabled bool) Option {
	return func(r *Recipe) {
		r.base = enabled
	}
}

// WithDefaultBase overrides the identifier loaded as the base recipe.
func WithDefaultBase(id string) Option {
	return func(r *Recipe) {
		if id != "" {
			r.defaultBase = id
		}
	}
}

// WithVersion records the tool version that produced the recipe.
func WithVersion(version string) Option {
	return func(r *Recipe) {
		r.version = version
	}
}

// Recipe holds the combined document of one or more recipe sources along
// with the identifiers that contributed to it.
//
// A Recipe is not safe for concurrent use: Load must not run concurrently
// with any other method. Query methods are read-only and may run
// concurrently with each other.
type Recipe struct {
	resolver    Resolver
	base        bool
	defaultBase string
	version     string
	requested   []string

	sources []string
	doc     *Document
}

// New builds a Recipe from the configured sources.
//
// When the base is enabled it is placed ahead of the explicit sources, so the
// sources override it. Identifiers that do not resolve are skipped. An error
// is returned only when the resolver fails.
func New(ctx context.Context, resolver Resolver, opts ...Option) (*Recipe, error) {
	if resolver == nil {
		return nil, deiderrors.New(deiderrors.ErrCodeInvalidRequest, "recipe resolver cannot be nil")
	}

	r := &Recipe{
		resolver:    resolver,
		defaultBase: defaults.DefaultBase,
	}
	for _, opt := range opts {
		opt(r)
	}

	ids := slices.Clone(r.requested)
	if r.base {
		ids = append([]string{r.defaultBase}, ids...)
	}

	docs := make([]*Document, 0, len(ids))
	for _, id := range ids {
		doc, err := r.resolve(ctx, id)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			continue
		}
		docs = append(docs, doc)
		r.addSource(id)
	}

	if len(r.sources) == 0 {
		slog.Info("no deid recipe loaded, additional sources can be added with Load",
			"requested", ids)
	}

	r.doc = combineTimed(docs...)

	slog.Debug("recipe initialized",
		"sources", r.sources,
		"base", r.base,
		"actions", len(r.doc.Actions("", "")))

	return r, nil
}

// Load resolves id and merges it over everything loaded so far. An identifier
// that does not resolve leaves the recipe unchanged.
func (r *Recipe) Load(ctx context.Context, id string) error {
	doc, err := r.resolve(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return nil
	}

	r.addSource(id)
	r.doc = combineTimed(r.doc, doc)

	slog.Debug("recipe source loaded",
		"source", id,
		"sources", len(r.sources))

	return nil
}

// Sources returns the de-duplicated identifiers that contributed to the
// recipe, in the order they were first loaded.
func (r *Recipe) Sources() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.sources)
}

// Version returns the tool version recorded with WithVersion.
func (r *Recipe) Version() string {
	if r == nil {
		return ""
	}
	return r.version
}

// Document returns the combined document, or nil when nothing is loaded.
// The document is a read-only view and must not be modified.
func (r *Recipe) Document() *Document {
	if r == nil {
		return nil
	}
	return r.doc
}

// String implements fmt.Stringer.
func (r *Recipe) String() string {
	return "[deid]"
}

func (r *Recipe) resolve(ctx context.Context, id string) (*Document, error) {
	select {
	case <-ctx.Done():
		return nil, deiderrors.WrapWithContext(
			deiderrors.ErrCodeTimeout,
			"recipe resolution cancelled",
			ctx.Err(),
			map[string]any{
				"source": id,
			},
		)
	default:
	}

	doc, err := r.resolver.Resolve(ctx, id)
	if err != nil {
		recipeSourcesTotal.WithLabelValues(sourceResultError).Inc()
		return nil, deiderrors.WrapWithContext(
			deiderrors.CodeOf(err),
			"failed to resolve recipe source",
			err,
			map[string]any{
				"source": id,
			},
		)
	}
	if doc == nil {
		recipeSourcesTotal.WithLabelValues(sourceResultMissing).Inc()
		slog.Debug("recipe source did not resolve, skipping", "source", id)
		return nil, nil
	}

	recipeSourcesTotal.WithLabelValues(sourceResultResolved).Inc()
	return doc, nil
}

func (r *Recipe) addSource(id string) {
	if !slices.Contains(r.sources, id) {
		r.sources = append(r.sources, id)
	}
}

func combineTimed(docs ...*Document) *Document {
	start := time.Now()
	defer func() {
		recipeCombineDuration.Observe(time.Since(start).Seconds())
	}()
	return Combine(docs...)
}
