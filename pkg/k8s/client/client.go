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

package client

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// Interface is an alias for kubernetes.Interface so tests can pass
// fake.NewClientset().
type Interface = kubernetes.Interface

// cachedClient is one client build attempt, kept whether it succeeded or not.
type cachedClient struct {
	client Interface
	err    error
}

var (
	clientMu sync.Mutex
	clients  = make(map[string]cachedClient)
)

// GetKubeClient returns a client for kubeconfig, building it on the first
// call for that path. Later calls with the same path return the cached
// client or the cached error.
//
// An empty kubeconfig uses automatic discovery (see ResolveKubeconfig).
func GetKubeClient(kubeconfig string) (Interface, error) {
	clientMu.Lock()
	defer clientMu.Unlock()

	if c, ok := clients[kubeconfig]; ok {
		return c.client, c.err
	}

	var c cachedClient
	clientset, _, err := BuildKubeClient(kubeconfig)
	if err != nil {
		c.err = err
	} else {
		c.client = clientset
	}
	clients[kubeconfig] = c

	return c.client, c.err
}

// ResolveKubeconfig returns the kubeconfig path to use. An explicit path
// wins, then the KUBECONFIG environment variable, then ~/.kube/config when it
// exists. An empty result means in-cluster configuration.
func ResolveKubeconfig(kubeconfig string) string {
	if kubeconfig != "" {
		return kubeconfig
	}
	if env := os.Getenv("KUBECONFIG"); env != "" {
		return env
	}
	home := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(home); err == nil {
		return home
	}
	return ""
}

// BuildKubeClient creates a Kubernetes client from the given kubeconfig file,
// bypassing the cache.
//
// Example with custom kubeconfig:
//
//	clientset, config, err := client.BuildKubeClient("/path/to/custom/kubeconfig")
//	if err != nil {
//	    return fmt.Errorf("failed to build client: %w", err)
//	}
func BuildKubeClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	var config *rest.Config
	var err error

	path := ResolveKubeconfig(kubeconfig)

	// Use InClusterConfig directly when no kubeconfig is available
	// This avoids the warning: "Neither --kubeconfig nor --master was specified"
	if path == "" {
		config, err = rest.InClusterConfig()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get in-cluster config: %w", err)
		}
	} else {
		config, err = clientcmd.BuildConfigFromFlags("", path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build kube config from %s: %w", path, err)
		}
	}

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	slog.Debug("kubernetes client created", "kubeconfig", path, "host", config.Host)

	return client, config, nil
}
