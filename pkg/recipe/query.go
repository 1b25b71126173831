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

// Queries never fail. A missing document, section, or name yields an empty
// result. Returned slices and lists are read-only views into the document.

// Section returns the raw content of the named section. The concrete type is
// string for format, *NamedLists for filter, values and fields, and []Action
// for header.
func (d *Document) Section(name SectionName) (any, bool) {
	if d == nil {
		return nil, false
	}
	switch name {
	case SectionFormat:
		if d.Format != "" {
			return d.Format, true
		}
	case SectionFilter:
		if d.Filter != nil {
			return d.Filter, true
		}
	case SectionValues:
		if d.Values != nil {
			return d.Values, true
		}
	case SectionFields:
		if d.Fields != nil {
			return d.Fields, true
		}
	case SectionHeader:
		if d.Header != nil {
			return d.Header, true
		}
	}
	return nil, false
}

// Filters returns the whole filter section, or nil when absent.
func (d *Document) Filters() *NamedLists[FilterRule] {
	if d == nil {
		return nil
	}
	return d.Filter
}

// FilterSet returns the rules of the named filter set.
func (d *Document) FilterSet(name string) []FilterRule {
	return namedList(d.Filters(), name)
}

// ValuesLists returns the whole values section, or nil when absent.
func (d *Document) ValuesLists() *NamedLists[string] {
	if d == nil {
		return nil
	}
	return d.Values
}

// ValuesList returns the named value list.
func (d *Document) ValuesList(name string) []string {
	return namedList(d.ValuesLists(), name)
}

// FieldsLists returns the whole fields section, or nil when absent.
func (d *Document) FieldsLists() *NamedLists[string] {
	if d == nil {
		return nil
	}
	return d.Fields
}

// FieldsList returns the named field list.
func (d *Document) FieldsList(name string) []string {
	return namedList(d.FieldsLists(), name)
}

// Actions returns the header actions matching kind and field, compared
// case-insensitively. Empty arguments match everything; with neither set
// the header is returned unchanged.
func (d *Document) Actions(kind ActionKind, field string) []Action {
	if d == nil {
		return nil
	}
	if kind == "" && field == "" {
		return d.Header
	}

	matched := make([]Action, 0, len(d.Header))
	for _, a := range d.Header {
		if a.Matches(kind, field) {
			matched = append(matched, a)
		}
	}
	return matched
}

// HasActions reports whether the header section has at least one action.
func (d *Document) HasActions() bool {
	return len(d.Actions("", "")) > 0
}

// HasFilters reports whether the filter section defines at least one set.
func (d *Document) HasFilters() bool {
	return d.Filters().Len() > 0
}

// HasValuesLists reports whether the values section defines at least one list.
func (d *Document) HasValuesLists() bool {
	return d.ValuesLists().Len() > 0
}

// HasFieldsLists reports whether the fields section defines at least one list.
func (d *Document) HasFieldsLists() bool {
	return d.FieldsLists().Len() > 0
}

// Names returns the names defined under a named-list section in definition
// order. Other sections have no names.
func (d *Document) Names(section SectionName) []string {
	switch section {
	case SectionFilter:
		return d.Filters().Names()
	case SectionValues:
		return d.ValuesLists().Names()
	case SectionFields:
		return d.FieldsLists().Names()
	default:
		return nil
	}
}

// FilterNames returns the defined filter-set names.
func (d *Document) FilterNames() []string {
	return d.Names(SectionFilter)
}

// ValuesListNames returns the defined value-list names.
func (d *Document) ValuesListNames() []string {
	return d.Names(SectionValues)
}

// FieldsListNames returns the defined field-list names.
func (d *Document) FieldsListNames() []string {
	return d.Names(SectionFields)
}

// namedList returns the list under name. A present section with an unknown
// name yields an empty list, an absent section yields nil.
func namedList[T any](lists *NamedLists[T], name string) []T {
	if lists == nil {
		return nil
	}
	if list, ok := lists.Get(name); ok {
		return list
	}
	return []T{}
}

// Format returns the header dialect of the combined recipe.
func (r *Recipe) Format() (string, bool) {
	d := r.Document()
	if d == nil || d.Format == "" {
		return "", false
	}
	return d.Format, true
}

// Section returns the raw content of the named section.
func (r *Recipe) Section(name SectionName) (any, bool) {
	return r.Document().Section(name)
}

// Filters returns the whole filter section, or nil when absent.
func (r *Recipe) Filters() *NamedLists[FilterRule] {
	return r.Document().Filters()
}

// FilterSet returns the rules of the named filter set.
func (r *Recipe) FilterSet(name string) []FilterRule {
	return r.Document().FilterSet(name)
}

// ValuesLists returns the whole values section, or nil when absent.
func (r *Recipe) ValuesLists() *NamedLists[string] {
	return r.Document().ValuesLists()
}

// ValuesList returns the named value list.
func (r *Recipe) ValuesList(name string) []string {
	return r.Document().ValuesList(name)
}

// FieldsLists returns the whole fields section, or nil when absent.
func (r *Recipe) FieldsLists() *NamedLists[string] {
	return r.Document().FieldsLists()
}

// FieldsList returns the named field list.
func (r *Recipe) FieldsList(name string) []string {
	return r.Document().FieldsList(name)
}

// Actions returns the header actions matching kind and field.
func (r *Recipe) Actions(kind ActionKind, field string) []Action {
	return r.Document().Actions(kind, field)
}

// HasActions reports whether the combined recipe has header actions.
func (r *Recipe) HasActions() bool {
	return r.Document().HasActions()
}

// HasFilters reports whether the combined recipe defines filter sets.
func (r *Recipe) HasFilters() bool {
	return r.Document().HasFilters()
}

// HasValuesLists reports whether the combined recipe defines value lists.
func (r *Recipe) HasValuesLists() bool {
	return r.Document().HasValuesLists()
}

// HasFieldsLists reports whether the combined recipe defines field lists.
func (r *Recipe) HasFieldsLists() bool {
	return r.Document().HasFieldsLists()
}

// Names returns the names defined under a named-list section.
func (r *Recipe) Names(section SectionName) []string {
	return r.Document().Names(section)
}

// FilterNames returns the defined filter-set names.
func (r *Recipe) FilterNames() []string {
	return r.Document().FilterNames()
}

// ValuesListNames returns the defined value-list names.
func (r *Recipe) ValuesListNames() []string {
	return r.Document().ValuesListNames()
}

// FieldsListNames returns the defined field-list names.
func (r *Recipe) FieldsListNames() []string {
	return r.Document().FieldsListNames()
}
