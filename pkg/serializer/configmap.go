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

package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/NVIDIA/deid-recipes/pkg/defaults"
	"github.com/NVIDIA/deid-recipes/pkg/header"
	k8sclient "github.com/NVIDIA/deid-recipes/pkg/k8s/client"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"
)

const (
	// ConfigMapURIScheme prefixes ConfigMap locations: cm://namespace/name.
	ConfigMapURIScheme = "cm://"

	// FieldManager owns the fields deidctl applies to ConfigMaps.
	FieldManager = "deidctl"

	// Annotations recorded on published ConfigMaps.
	AnnotationFormat    = "deid.nvidia.com/format"
	AnnotationTimestamp = "deid.nvidia.com/timestamp"
)

// ConfigMapOption configures a ConfigMapWriter.
type ConfigMapOption func(*ConfigMapWriter)

// WithConfigMapClient sets the client used to apply the ConfigMap.
func WithConfigMapClient(c k8sclient.Interface) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.client = c
	}
}

// WithConfigMapKubeconfig sets the kubeconfig used when no client is set.
func WithConfigMapKubeconfig(path string) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.kubeconfig = path
	}
}

// ConfigMapWriter publishes serialized data to a Kubernetes ConfigMap under
// the defaults.ConfigMapRecipeKey key, so the result can be read back as a
// cm:// recipe source. The ConfigMap is created if it doesn't exist, or
// updated if it does.
type ConfigMapWriter struct {
	namespace  string
	name       string
	format     Format
	client     k8sclient.Interface
	kubeconfig string
}

// NewConfigMapWriter creates a new ConfigMapWriter that writes to the specified
// namespace and ConfigMap name in the given format.
func NewConfigMapWriter(namespace, name string, format Format, opts ...ConfigMapOption) *ConfigMapWriter {
	w := &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    normalizeFormat(format),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Serialize applies the ConfigMap with Server-Side Apply. Kind and version
// from a header-carrying value become labels; format and timestamp become
// annotations. Table output cannot be read back and is rejected.
func (w *ConfigMapWriter) Serialize(ctx context.Context, data any) error {
	if w.format == FormatTable {
		return fmt.Errorf("unsupported format for ConfigMap: %s", w.format)
	}

	content, err := marshal(w.format, data)
	if err != nil {
		return err
	}

	client := w.client
	if client == nil {
		client, err = k8sclient.GetKubeClient(w.kubeconfig)
		if err != nil {
			return fmt.Errorf("failed to get kubernetes client: %w", err)
		}
	}

	kind := "unknown"
	version := "unknown"
	timestamp := time.Now().UTC().Format(time.RFC3339)
	if h, ok := data.(interface {
		GetKind() header.Kind
		GetMetadata() map[string]string
	}); ok {
		if k := h.GetKind(); k != "" {
			kind = k.String()
		}
		md := h.GetMetadata()
		if v := md["version"]; v != "" {
			version = v
		}
		if ts := md["timestamp"]; ts != "" {
			timestamp = ts
		}
	}

	configMap := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":       "deid",
			"app.kubernetes.io/component":  kind,
			"app.kubernetes.io/version":    version,
			"app.kubernetes.io/managed-by": FieldManager,
		}).
		WithAnnotations(map[string]string{
			AnnotationFormat:    string(w.format),
			AnnotationTimestamp: timestamp,
		}).
		WithData(map[string]string{
			defaults.ConfigMapRecipeKey: string(content),
		})

	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"kind", kind,
		"format", w.format)

	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	// Force takes ownership from earlier field managers
	_, err = client.CoreV1().ConfigMaps(w.namespace).Apply(
		writeCtx,
		configMap,
		metav1.ApplyOptions{
			FieldManager: FieldManager,
			Force:        true,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}

	return nil
}

// Close is a no-op for ConfigMapWriter as there are no resources to release.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// ParseConfigMapURI parses a ConfigMap URI in the format cm://namespace/name
// and returns the namespace and name components.
func ParseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, ConfigMapURIScheme), "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])

	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name must be a single path segment")
	}

	return namespace, name, nil
}
