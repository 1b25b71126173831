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

import "maps"

// SectionName identifies a top-level section of a recipe document.
type SectionName string

// Recognized recipe sections.
const (
	SectionFormat SectionName = "format"
	SectionFilter SectionName = "filter"
	SectionValues SectionName = "values"
	SectionFields SectionName = "fields"
	SectionHeader SectionName = "header"
)

// String returns the string representation of the SectionName.
func (s SectionName) String() string {
	return string(s)
}

// IsValid reports whether s is a recognized section.
func (s SectionName) IsValid() bool {
	switch s {
	case SectionFormat, SectionFilter, SectionValues, SectionFields, SectionHeader:
		return true
	default:
		return false
	}
}

// IsNamedList reports whether s holds name → list mappings.
func (s SectionName) IsNamedList() bool {
	switch s {
	case SectionFilter, SectionValues, SectionFields:
		return true
	default:
		return false
	}
}

// SupportedSections returns all recognized section names.
func SupportedSections() []string {
	return []string{
		SectionFormat.String(),
		SectionFilter.String(),
		SectionValues.String(),
		SectionFields.String(),
		SectionHeader.String(),
	}
}

// FilterRule is a single filter criterion. Its shape belongs to the filter
// engine; the recipe layer passes it through untouched.
type FilterRule map[string]any

func (r FilterRule) clone() FilterRule {
	return maps.Clone(r)
}

// Document is a parsed deid recipe. Each section has its own typed field and
// an unset field means the section is absent.
//
// Documents are treated as immutable once built: Combine never modifies its
// inputs, and query results are read-only views into the document.
type Document struct {
	// Format is the header dialect the recipe targets (e.g. "dicom").
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// Filter maps filter-set names to their rules.
	Filter *NamedLists[FilterRule] `json:"filter,omitempty" yaml:"filter,omitempty"`

	// Values maps value-list names to their values.
	Values *NamedLists[string] `json:"values,omitempty" yaml:"values,omitempty"`

	// Fields maps field-list names to field identifiers or expressions.
	Fields *NamedLists[string] `json:"fields,omitempty" yaml:"fields,omitempty"`

	// Header is the ordered list of header actions.
	Header []Action `json:"header,omitempty" yaml:"header,omitempty"`
}

// IsEmpty reports whether the document defines no section at all.
func (d *Document) IsEmpty() bool {
	return d == nil ||
		(d.Format == "" && d.Filter == nil && d.Values == nil && d.Fields == nil && d.Header == nil)
}
