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
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/NVIDIA/deid-recipes/pkg/defaults"
	deiderrors "github.com/NVIDIA/deid-recipes/pkg/errors"
)

//go:embed data/*.yaml
var dataFS embed.FS

const (
	// sourceEmbedded is the source name for embedded files.
	sourceEmbedded = "embedded"

	// sourceExternal is the source name for external files.
	sourceExternal = "external"

	// dataPrefix is the embedded directory holding built-in recipes.
	dataPrefix = "data"
)

// DataProvider abstracts access to built-in recipe files.
// This allows layering an external directory over the embedded recipes.
type DataProvider interface {
	// ReadFile reads a file by path (relative to the data directory).
	ReadFile(path string) ([]byte, error)

	// WalkDir walks the directory tree rooted at root.
	WalkDir(root string, fn fs.WalkDirFunc) error

	// Source returns a description of where a file came from.
	Source(path string) string
}

// EmbeddedDataProvider serves built-in recipes from an embed.FS.
type EmbeddedDataProvider struct {
	fs     fs.FS
	prefix string
}

// NewEmbeddedDataProvider creates a provider from an embedded filesystem.
// prefix is stripped from every path handed to callers.
func NewEmbeddedDataProvider(efs fs.FS, prefix string) *EmbeddedDataProvider {
	return &EmbeddedDataProvider{
		fs:     efs,
		prefix: prefix,
	}
}

// DefaultDataProvider returns the provider for the recipes compiled into
// the binary.
func DefaultDataProvider() *EmbeddedDataProvider {
	return NewEmbeddedDataProvider(dataFS, dataPrefix)
}

// ReadFile reads a file from the embedded filesystem.
func (p *EmbeddedDataProvider) ReadFile(path string) ([]byte, error) {
	fullPath := p.prefix + "/" + path
	slog.Debug("reading built-in recipe", "path", path, "fullPath", fullPath)
	return fs.ReadFile(p.fs, fullPath)
}

// WalkDir walks the embedded filesystem.
func (p *EmbeddedDataProvider) WalkDir(root string, fn fs.WalkDirFunc) error {
	fullRoot := p.prefix
	if root != "" {
		fullRoot = p.prefix + "/" + root
	}
	return fs.WalkDir(p.fs, fullRoot, func(path string, d fs.DirEntry, err error) error {
		relPath := strings.TrimPrefix(path, p.prefix+"/")
		if relPath == p.prefix {
			relPath = ""
		}
		return fn(relPath, d, err)
	})
}

// Source returns "embedded" for all paths.
func (p *EmbeddedDataProvider) Source(string) string {
	return sourceEmbedded
}

// LayeredProviderConfig configures the layered data provider.
type LayeredProviderConfig struct {
	// ExternalDir is the path to the external data directory.
	ExternalDir string

	// MaxFileSize is the maximum allowed file size in bytes (default: 10MB).
	MaxFileSize int64

	// AllowSymlinks allows symlinks in the external directory (default: false).
	AllowSymlinks bool
}

// LayeredDataProvider overlays an external directory on top of the embedded
// recipes. An external file completely replaces the embedded file of the
// same name.
type LayeredDataProvider struct {
	embedded    DataProvider
	externalDir string

	// files discovered in the external directory, by relative path
	externalFiles map[string]bool
}

// NewLayeredDataProvider creates a provider that layers external data over
// embedded data. Returns an error if:
// - External directory doesn't exist or is not a directory
// - Path traversal or a disallowed symlink is detected
// - A file exceeds the size limit
func NewLayeredDataProvider(embedded DataProvider, config LayeredProviderConfig) (*LayeredDataProvider, error) {
	if config.MaxFileSize == 0 {
		config.MaxFileSize = defaults.MaxRecipeFileSize
	}

	info, err := os.Stat(config.ExternalDir)
	if err != nil {
		return nil, deiderrors.Wrap(deiderrors.ErrCodeNotFound,
			fmt.Sprintf("external data directory not found: %s", config.ExternalDir), err)
	}
	if !info.IsDir() {
		return nil, deiderrors.New(deiderrors.ErrCodeInvalidRequest,
			fmt.Sprintf("external data path is not a directory: %s", config.ExternalDir))
	}

	externalFiles := make(map[string]bool)
	err = filepath.WalkDir(config.ExternalDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		relPath, relErr := filepath.Rel(config.ExternalDir, path)
		if relErr != nil {
			return fmt.Errorf("failed to get relative path: %w", relErr)
		}
		relPath = filepath.ToSlash(relPath)

		if strings.Contains(relPath, "..") {
			return deiderrors.New(deiderrors.ErrCodeInvalidRequest,
				fmt.Sprintf("path traversal detected: %s", relPath))
		}

		if !config.AllowSymlinks && d.Type()&fs.ModeSymlink != 0 {
			return deiderrors.New(deiderrors.ErrCodeInvalidRequest,
				fmt.Sprintf("symlinks not allowed: %s", relPath))
		}

		fi, statErr := d.Info()
		if statErr != nil {
			return fmt.Errorf("failed to get file info: %w", statErr)
		}
		if fi.Size() > config.MaxFileSize {
			return deiderrors.New(deiderrors.ErrCodeInvalidRequest,
				fmt.Sprintf("file too large (%d bytes, max %d): %s", fi.Size(), config.MaxFileSize, relPath))
		}

		externalFiles[relPath] = true
		slog.Debug("discovered external recipe file", "path", relPath, "size", fi.Size())
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("layered data provider initialized",
		"external_dir", config.ExternalDir,
		"external_files", len(externalFiles))

	return &LayeredDataProvider{
		embedded:      embedded,
		externalDir:   config.ExternalDir,
		externalFiles: externalFiles,
	}, nil
}

// ReadFile reads a file, checking the external directory first.
func (p *LayeredDataProvider) ReadFile(path string) ([]byte, error) {
	if p.externalFiles[path] {
		data, err := os.ReadFile(filepath.Join(p.externalDir, filepath.FromSlash(path)))
		if err != nil {
			return nil, fmt.Errorf("failed to read external file %s: %w", path, err)
		}
		slog.Debug("read from external data directory", "path", path)
		return data, nil
	}
	return p.embedded.ReadFile(path)
}

// WalkDir walks the external directory and then the embedded data, skipping
// embedded paths already seen externally.
func (p *LayeredDataProvider) WalkDir(root string, fn fs.WalkDirFunc) error {
	visited := make(map[string]bool)

	externalRoot := filepath.Join(p.externalDir, filepath.FromSlash(root))
	if _, err := os.Stat(externalRoot); err == nil {
		err := filepath.WalkDir(externalRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			relPath, relErr := filepath.Rel(p.externalDir, path)
			if relErr != nil {
				return relErr
			}
			relPath = filepath.ToSlash(relPath)
			if relPath == "." {
				relPath = ""
			}
			visited[relPath] = true
			return fn(relPath, d, nil)
		})
		if err != nil {
			return err
		}
	}

	return p.embedded.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if visited[path] {
			slog.Debug("skipping embedded file (external takes precedence)", "path", path)
			return nil
		}
		return fn(path, d, nil)
	})
}

// Source returns "external" or "embedded" depending on where the file comes from.
func (p *LayeredDataProvider) Source(path string) string {
	if p.externalFiles[path] {
		return sourceExternal
	}
	return p.embedded.Source(path)
}
