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

package header

import (
	"testing"
	"time"
)

func TestKind_IsValid(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindDeidRecipe, true},
		{KindValidationReport, true},
		{"Snapshot", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := tt.kind.IsValid(); got != tt.want {
			t.Errorf("Kind(%q).IsValid() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	h := New(
		WithKind(KindDeidRecipe),
		WithMetadata("source", "site.deid"),
	)

	if h.GetKind() != KindDeidRecipe {
		t.Errorf("Kind = %q, want %q", h.GetKind(), KindDeidRecipe)
	}
	if h.APIVersion != APIVersion {
		t.Errorf("APIVersion = %q, want %q", h.APIVersion, APIVersion)
	}
	if got := h.GetMetadata()["source"]; got != "site.deid" {
		t.Errorf("Metadata[source] = %q, want site.deid", got)
	}

	h = New(WithAPIVersion("v0"))
	if h.APIVersion != "v0" {
		t.Errorf("APIVersion = %q, want v0", h.APIVersion)
	}
}

func TestWithMetadata_NilMap(t *testing.T) {
	var h Header
	WithMetadata("k", "v")(&h)
	if h.Metadata["k"] != "v" {
		t.Errorf("Metadata[k] = %q, want v", h.Metadata["k"])
	}
}

func TestInit(t *testing.T) {
	h := Header{Metadata: map[string]string{"stale": "x"}}
	h.Init(KindValidationReport, "v1.2.3")

	if h.Kind != KindValidationReport {
		t.Errorf("Kind = %q, want %q", h.Kind, KindValidationReport)
	}
	if _, ok := h.Metadata["stale"]; ok {
		t.Error("Init should reset metadata")
	}
	if h.Metadata["version"] != "v1.2.3" {
		t.Errorf("version = %q, want v1.2.3", h.Metadata["version"])
	}
	if _, err := time.Parse(time.RFC3339, h.Metadata["timestamp"]); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", h.Metadata["timestamp"], err)
	}

	h.Init(KindDeidRecipe, "")
	if _, ok := h.Metadata["version"]; ok {
		t.Error("empty version should not be recorded")
	}
}
