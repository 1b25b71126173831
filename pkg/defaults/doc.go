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

// Package defaults provides centralized configuration constants for deid recipe tooling.
//
// This package defines the built-in base recipe name, timeout values, and
// limits used across the codebase. Centralizing these values ensures consistency
// and makes tuning easier.
//
// # Categories
//
//   - Recipe defaults: built-in base recipe, ConfigMap data keys
//   - Loader limits: file size and validation concurrency
//   - Kubernetes timeouts: for ConfigMap reads
//   - CLI timeouts: for whole-command execution
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/deid-recipes/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.ConfigMapReadTimeout)
//	defer cancel()
package defaults
