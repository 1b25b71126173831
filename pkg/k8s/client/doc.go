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

// Package client builds and caches Kubernetes clients for reading recipe
// ConfigMaps.
//
// Clients are cached per kubeconfig path so repeated cm:// sources reuse one
// connection pool:
//
//	clientset, err := client.GetKubeClient("")
//	if err != nil {
//	    return fmt.Errorf("failed to get kubernetes client: %w", err)
//	}
//	cm, err := clientset.CoreV1().ConfigMaps("deid").Get(ctx, "site-recipe", metav1.GetOptions{})
//
// # Configuration Discovery
//
// With an empty path the configuration is discovered in order:
//  1. KUBECONFIG environment variable
//  2. ~/.kube/config (if it exists)
//  3. In-cluster service account
//
// Use BuildKubeClient to bypass the cache.
package client
