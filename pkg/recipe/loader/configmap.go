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
	"fmt"
	"log/slog"

	"github.com/NVIDIA/deid-recipes/pkg/defaults"
	deiderrors "github.com/NVIDIA/deid-recipes/pkg/errors"
	"github.com/NVIDIA/deid-recipes/pkg/recipe"
	"github.com/NVIDIA/deid-recipes/pkg/serializer"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// configMapRecipe picks the recipe document out of ConfigMap data: the
// recipe key, then the legacy key, then the only key when there is one.
func configMapRecipe(data map[string]string) (string, bool) {
	for _, key := range []string{defaults.ConfigMapRecipeKey, defaults.ConfigMapLegacyRecipeKey} {
		if content, ok := data[key]; ok {
			return content, true
		}
	}
	if len(data) == 1 {
		for _, content := range data {
			return content, true
		}
	}
	return "", false
}

// resolveConfigMap reads a recipe from cm://namespace/name. A missing
// ConfigMap is a resolution miss.
func (l *Loader) resolveConfigMap(ctx context.Context, uri string) (*recipe.Document, error) {
	namespace, name, err := serializer.ParseConfigMapURI(uri)
	if err != nil {
		return nil, deiderrors.Wrap(deiderrors.ErrCodeInvalidRequest, "invalid ConfigMap source", err)
	}

	client, err := l.kubeClient()
	if err != nil {
		return nil, deiderrors.Wrap(deiderrors.ErrCodeUnavailable, "failed to get kubernetes client", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.ConfigMapReadTimeout)
	defer cancel()

	cm, err := client.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			slog.Debug("recipe ConfigMap not found", "namespace", namespace, "name", name)
			return nil, nil
		}
		return nil, deiderrors.WrapWithContext(deiderrors.ErrCodeUnavailable,
			"failed to get ConfigMap", err,
			map[string]any{
				"namespace": namespace,
				"name":      name,
			})
	}

	if len(cm.Data) == 0 {
		return nil, nil
	}

	content, ok := configMapRecipe(cm.Data)
	if !ok {
		return nil, deiderrors.NewWithContext(deiderrors.ErrCodeInvalidRecipe,
			fmt.Sprintf("ConfigMap has no %s or %s key", defaults.ConfigMapRecipeKey, defaults.ConfigMapLegacyRecipeKey),
			map[string]any{
				"namespace": namespace,
				"name":      name,
			})
	}

	slog.Debug("reading recipe from ConfigMap",
		"namespace", namespace,
		"name", name,
		"size", len(content))

	return Parse([]byte(content))
}

// kubeClient returns the configured client, building it on first use.
func (l *Loader) kubeClient() (kubernetes.Interface, error) {
	l.kubeOnce.Do(func() {
		if l.kube != nil {
			return
		}
		if l.kubeFactory == nil {
			l.kubeErr = fmt.Errorf("no kubernetes client configured")
			return
		}
		l.kube, l.kubeErr = l.kubeFactory()
	})
	return l.kube, l.kubeErr
}
