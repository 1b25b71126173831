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

package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/NVIDIA/deid-recipes/pkg/defaults"
	deiderrors "github.com/NVIDIA/deid-recipes/pkg/errors"
	k8sclient "github.com/NVIDIA/deid-recipes/pkg/k8s/client"
	"github.com/NVIDIA/deid-recipes/pkg/recipe"
	"github.com/NVIDIA/deid-recipes/pkg/serializer"
	"github.com/bmatcuk/doublestar/v4"
	"k8s.io/client-go/kubernetes"
)

const (
	// builtInPrefix and builtInExt frame built-in recipe file names,
	// e.g. deid.dicom.yaml.
	builtInPrefix = "deid."
	builtInExt    = ".yaml"

	// globMeta are the characters that make an identifier a glob pattern.
	globMeta = "*?[{"
)

// Source kinds, used for logging and metrics.
const (
	kindConfigMap = "configmap"
	kindURL       = "url"
	kindGlob      = "glob"
	kindFile      = "file"
	kindBuiltIn   = "builtin"
)

// Option is a functional option for configuring a Loader.
type Option func(*Loader)

// WithDataProvider sets where built-in recipes are read from.
func WithDataProvider(p DataProvider) Option {
	return func(l *Loader) {
		if p != nil {
			l.provider = p
		}
	}
}

// WithKubeClient sets the client used for cm:// sources.
func WithKubeClient(c kubernetes.Interface) Option {
	return func(l *Loader) {
		l.kube = c
	}
}

// WithKubeconfig builds the client for cm:// sources from the given
// kubeconfig on first use. An empty path uses default discovery.
func WithKubeconfig(kubeconfig string) Option {
	return func(l *Loader) {
		l.kubeFactory = func() (kubernetes.Interface, error) {
			return k8sclient.GetKubeClient(kubeconfig)
		}
	}
}

// WithHTTPReader sets the reader used for http(s):// sources.
func WithHTTPReader(r *HTTPReader) Option {
	return func(l *Loader) {
		if r != nil {
			l.http = r
		}
	}
}

// WithMaxFileSize sets the largest recipe file the loader will read.
func WithMaxFileSize(n int64) Option {
	return func(l *Loader) {
		if n > 0 {
			l.maxFileSize = n
		}
	}
}

// Loader resolves recipe identifiers into parsed documents. It implements
// recipe.Resolver and is safe for concurrent use.
//
// Identifiers are tried in this order:
//  1. cm://namespace/name: a Kubernetes ConfigMap
//  2. http:// or https://: a remote document
//  3. a glob pattern (doublestar syntax): every matching file, combined in
//     lexical path order
//  4. an existing file path
//  5. a built-in recipe name, e.g. "dicom" for deid.dicom.yaml
type Loader struct {
	provider    DataProvider
	http        *HTTPReader
	maxFileSize int64

	kube        kubernetes.Interface
	kubeFactory func() (kubernetes.Interface, error)
	kubeOnce    sync.Once
	kubeErr     error
}

var _ recipe.Resolver = (*Loader)(nil)

// New creates a Loader. Without options it serves the embedded built-in
// recipes and discovers the Kubernetes configuration on first cm:// use.
func New(opts ...Option) *Loader {
	l := &Loader{
		provider:    DefaultDataProvider(),
		maxFileSize: defaults.MaxRecipeFileSize,
		kubeFactory: func() (kubernetes.Interface, error) {
			return k8sclient.GetKubeClient("")
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.http == nil {
		l.http = NewHTTPReader()
	}
	return l
}

// Resolve implements recipe.Resolver. Identifiers that match nothing, and
// recipes that define nothing, resolve to (nil, nil).
func (l *Loader) Resolve(ctx context.Context, id string) (*recipe.Document, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}

	kind := sourceKind(id)
	start := time.Now()
	defer func() {
		resolveDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}()

	slog.Debug("resolving recipe source", "source", id, "kind", kind)

	switch kind {
	case kindConfigMap:
		return l.resolveConfigMap(ctx, id)
	case kindURL:
		return l.resolveURL(ctx, id)
	case kindGlob:
		return l.resolveGlob(ctx, id)
	}

	doc, found, err := l.resolveFile(id)
	if found || err != nil {
		return doc, err
	}
	kind = kindBuiltIn
	return l.resolveBuiltIn(id)
}

func sourceKind(id string) string {
	switch {
	case strings.HasPrefix(id, serializer.ConfigMapURIScheme):
		return kindConfigMap
	case isHTTPURL(id):
		return kindURL
	case strings.ContainsAny(id, globMeta):
		return kindGlob
	default:
		return kindFile
	}
}

func (l *Loader) resolveURL(ctx context.Context, url string) (*recipe.Document, error) {
	data, err := l.http.ReadWithContext(ctx, url)
	if err != nil {
		if errors.Is(err, errRemoteNotFound) {
			slog.Debug("remote recipe not found", "url", url)
			return nil, nil
		}
		return nil, deiderrors.WrapWithContext(deiderrors.ErrCodeUnavailable,
			"failed to fetch remote recipe", err,
			map[string]any{"url": url})
	}
	return Parse(data)
}

// resolveGlob combines every file matching pattern, in lexical order.
func (l *Loader) resolveGlob(ctx context.Context, pattern string) (*recipe.Document, error) {
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, deiderrors.New(deiderrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid glob pattern: %s", pattern))
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, deiderrors.Wrap(deiderrors.ErrCodeInternal,
			fmt.Sprintf("failed to expand glob pattern: %s", pattern), err)
	}
	slices.Sort(matches)

	docs := make([]*recipe.Document, 0, len(matches))
	for _, path := range matches {
		if err := ctx.Err(); err != nil {
			return nil, deiderrors.Wrap(deiderrors.ErrCodeTimeout, "glob resolution cancelled", err)
		}
		doc, found, err := l.resolveFile(path)
		if err != nil {
			return nil, err
		}
		if !found {
			// directories match patterns too
			continue
		}
		if doc != nil {
			docs = append(docs, doc)
		}
	}

	slog.Debug("expanded recipe glob",
		"pattern", pattern,
		"matches", len(matches),
		"documents", len(docs))

	return recipe.Combine(docs...), nil
}

// resolveFile parses the regular file at path. found is false when nothing
// (or a directory) exists at path.
func (l *Loader) resolveFile(path string) (doc *recipe.Document, found bool, err error) {
	info, statErr := os.Stat(path)
	if statErr != nil || info.IsDir() {
		return nil, false, nil
	}

	if info.Size() > l.maxFileSize {
		return nil, true, deiderrors.NewWithContext(deiderrors.ErrCodeInvalidRequest,
			fmt.Sprintf("recipe file too large (%d bytes, max %d)", info.Size(), l.maxFileSize),
			map[string]any{"path": path})
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, true, deiderrors.Wrap(deiderrors.ErrCodeInternal,
			fmt.Sprintf("failed to open recipe file: %s", path), err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, l.maxFileSize))
	if err != nil {
		return nil, true, deiderrors.Wrap(deiderrors.ErrCodeInternal,
			fmt.Sprintf("failed to read recipe file: %s", path), err)
	}

	doc, err = Parse(data)
	if err != nil {
		return nil, true, deiderrors.WrapWithContext(deiderrors.CodeOf(err),
			"invalid recipe file", err,
			map[string]any{"path": path})
	}
	return doc, true, nil
}

// resolveBuiltIn looks name up among the built-in recipes, accepting both
// "dicom" and "deid.dicom".
func (l *Loader) resolveBuiltIn(name string) (*recipe.Document, error) {
	name = strings.TrimPrefix(name, builtInPrefix)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, nil
	}

	path := builtInPrefix + name + builtInExt
	data, err := l.provider.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("no built-in recipe with this name", "name", name)
			return nil, nil
		}
		return nil, deiderrors.Wrap(deiderrors.ErrCodeInternal,
			fmt.Sprintf("failed to read built-in recipe: %s", name), err)
	}

	slog.Debug("loaded built-in recipe", "name", name, "source", l.provider.Source(path))

	doc, err := Parse(data)
	if err != nil {
		return nil, deiderrors.WrapWithContext(deiderrors.CodeOf(err),
			"invalid built-in recipe", err,
			map[string]any{"name": name})
	}
	return doc, nil
}

// BuiltIns returns the sorted names of the available built-in recipes.
func (l *Loader) BuiltIns() ([]string, error) {
	var names []string
	err := l.provider.WalkDir("", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.Contains(path, "/") {
			return nil
		}
		if !strings.HasPrefix(path, builtInPrefix) || !strings.HasSuffix(path, builtInExt) {
			return nil
		}
		name := strings.TrimSuffix(strings.TrimPrefix(path, builtInPrefix), builtInExt)
		if name != "" && !slices.Contains(names, name) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, deiderrors.Wrap(deiderrors.ErrCodeInternal, "failed to list built-in recipes", err)
	}
	slices.Sort(names)
	return names, nil
}
