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

// Combine merges documents in order into a new document. Later documents take
// precedence:
//
//   - format: the last document that defines one wins
//   - filter, values, fields: per name, the later list replaces the earlier one in full
//   - header: actions are concatenated in document order
//
// Nil documents are skipped. Combine returns nil when nothing was combined,
// which every query treats as "no recipe loaded". Inputs are never modified.
func Combine(docs ...*Document) *Document {
	var merged *Document

	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if merged == nil {
			merged = &Document{}
		}

		if doc.Format != "" {
			merged.Format = doc.Format
		}

		merged.Filter = mergeNamedLists(merged.Filter, doc.Filter, FilterRule.clone)
		merged.Values = mergeNamedLists(merged.Values, doc.Values, nil)
		merged.Fields = mergeNamedLists(merged.Fields, doc.Fields, nil)

		if doc.Header != nil {
			if merged.Header == nil {
				merged.Header = make([]Action, 0, len(doc.Header))
			}
			for _, a := range doc.Header {
				merged.Header = append(merged.Header, a.clone())
			}
		}
	}

	return merged
}
