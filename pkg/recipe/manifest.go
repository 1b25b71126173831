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

package recipe

import (
	"slices"

	"github.com/NVIDIA/deid-recipes/pkg/header"
)

// Manifest is a combined recipe as written by deidctl: a resource header,
// the sources that contributed, and the document sections inline.
//
//	kind: DeidRecipe
//	apiVersion: deid.nvidia.com/v1alpha1
//	metadata: {...}
//	sources: [dicom, site.deid]
//	format: dicom
//	header: [...]
//
// A Manifest parses back as a plain recipe document; the header and sources
// are ignored by Combine.
type Manifest struct {
	header.Header `json:",inline" yaml:",inline"`

	// Sources lists the recipe identifiers that contributed, in load order.
	Sources []string `json:"sources,omitempty" yaml:"sources,omitempty"`

	Document `json:",inline" yaml:",inline"`
}

// NewManifest wraps the combined document of r. A nil or empty recipe
// yields a manifest with no sections.
func NewManifest(r *Recipe) *Manifest {
	m := &Manifest{}
	m.Init(header.KindDeidRecipe, r.Version())
	m.Sources = r.Sources()
	if doc := r.Document(); doc != nil {
		m.Document = *doc
		m.Document.Header = slices.Clone(doc.Header)
	}
	return m
}
