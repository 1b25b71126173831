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

package defaults

import "time"

// Recipe defaults.
const (
	// DefaultBase is the built-in recipe loaded when a base is requested
	// without naming one.
	DefaultBase = "dicom"

	// ConfigMapRecipeKey is the ConfigMap data key holding a recipe document.
	ConfigMapRecipeKey = "recipe.yaml"

	// ConfigMapLegacyRecipeKey is checked when ConfigMapRecipeKey is absent.
	ConfigMapLegacyRecipeKey = "deid"
)

// Loader limits.
const (
	// MaxRecipeFileSize is the largest recipe file the loader will read (10MB).
	MaxRecipeFileSize = 10 * 1024 * 1024

	// ValidateConcurrency bounds parallel parsing when validating many sources.
	ValidateConcurrency = 8
)

// Kubernetes timeouts for K8s API operations.
const (
	// ConfigMapReadTimeout is the timeout for reading a recipe ConfigMap.
	ConfigMapReadTimeout = 30 * time.Second

	// ConfigMapWriteTimeout is the timeout for publishing a recipe ConfigMap.
	ConfigMapWriteTimeout = 30 * time.Second
)

// HTTP client timeouts for remote recipe sources.
const (
	// HTTPClientTimeout is the total timeout for fetching a remote recipe.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second
)

// CLI timeouts for command-line operations.
const (
	// CLICommandTimeout bounds a single deidctl command.
	CLICommandTimeout = 2 * time.Minute
)
