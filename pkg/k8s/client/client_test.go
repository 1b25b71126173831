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
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func resetCache(t *testing.T) {
	t.Helper()
	clientMu.Lock()
	clients = make(map[string]cachedClient)
	clientMu.Unlock()
}

func TestResolveKubeconfig(t *testing.T) {
	t.Run("explicit path wins", func(t *testing.T) {
		t.Setenv("KUBECONFIG", "/from/env")
		if got := ResolveKubeconfig("/explicit"); got != "/explicit" {
			t.Errorf("ResolveKubeconfig() = %q, want /explicit", got)
		}
	})

	t.Run("env var", func(t *testing.T) {
		t.Setenv("KUBECONFIG", "/from/env")
		if got := ResolveKubeconfig(""); got != "/from/env" {
			t.Errorf("ResolveKubeconfig() = %q, want /from/env", got)
		}
	})

	t.Run("home config", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("KUBECONFIG", "")

		if got := ResolveKubeconfig(""); got != "" {
			t.Errorf("ResolveKubeconfig() = %q, want in-cluster (empty)", got)
		}

		cfg := filepath.Join(home, ".kube", "config")
		if err := os.MkdirAll(filepath.Dir(cfg), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(cfg, []byte("apiVersion: v1\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if got := ResolveKubeconfig(""); got != cfg {
			t.Errorf("ResolveKubeconfig() = %q, want %q", got, cfg)
		}
	})
}

func TestBuildKubeClient_InvalidConfig(t *testing.T) {
	tests := []struct {
		name       string
		kubeconfig func(t *testing.T) string
	}{
		{
			name: "missing file",
			kubeconfig: func(*testing.T) string {
				return "/nonexistent/path/to/kubeconfig"
			},
		},
		{
			name: "invalid content",
			kubeconfig: func(t *testing.T) string {
				p := filepath.Join(t.TempDir(), "invalid-kubeconfig")
				if err := os.WriteFile(p, []byte("invalid yaml content"), 0o600); err != nil {
					t.Fatal(err)
				}
				return p
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := BuildKubeClient(tt.kubeconfig(t))
			if err == nil {
				t.Fatal("BuildKubeClient() expected error")
			}
			if !strings.Contains(err.Error(), "failed to build kube config") {
				t.Errorf("BuildKubeClient() error = %v, want 'failed to build kube config'", err)
			}
		})
	}
}

func TestGetKubeClient_CachesPerPath(t *testing.T) {
	resetCache(t)
	t.Cleanup(func() { resetCache(t) })

	path := "/nonexistent/kubeconfig"

	const numGoroutines = 10
	errs := make([]error, numGoroutines)

	var wg sync.WaitGroup
	for i := range numGoroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = GetKubeClient(path)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err == nil {
			t.Fatalf("call %d: expected error for missing kubeconfig", i)
		}
		// nolint:errorlint // the cached error instance is shared
		if err != errs[0] {
			t.Errorf("call %d returned a different error instance", i)
		}
	}

	clientMu.Lock()
	n := len(clients)
	clientMu.Unlock()
	if n != 1 {
		t.Errorf("cache size = %d, want 1", n)
	}
}
