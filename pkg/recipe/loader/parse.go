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
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	deiderrors "github.com/NVIDIA/deid-recipes/pkg/errors"
	"github.com/NVIDIA/deid-recipes/pkg/header"
	"github.com/NVIDIA/deid-recipes/pkg/recipe"
	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML (or JSON) recipe document.
//
// Documents written by deidctl carry a resource header and a sources list
// (see recipe.Manifest); both are accepted and dropped, but a header of any
// kind other than DeidRecipe is rejected.
//
// Input with no document, or a document that defines no section, yields
// (nil, nil). Unknown top-level keys, wrongly shaped sections, and header
// entries without an action or field are rejected with ErrCodeInvalidRecipe.
func Parse(data []byte) (*recipe.Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m recipe.Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			parseTotal.WithLabelValues(parseResultEmpty).Inc()
			return nil, nil
		}
		parseTotal.WithLabelValues(parseResultInvalid).Inc()
		return nil, deiderrors.Wrap(deiderrors.ErrCodeInvalidRecipe, "failed to parse recipe", err)
	}

	if m.Kind != "" && m.Kind != header.KindDeidRecipe {
		parseTotal.WithLabelValues(parseResultInvalid).Inc()
		return nil, deiderrors.NewWithContext(deiderrors.ErrCodeInvalidRecipe,
			fmt.Sprintf("unexpected resource kind %q", m.Kind),
			map[string]any{"expected": header.KindDeidRecipe.String()})
	}

	doc := m.Document
	if doc.IsEmpty() {
		parseTotal.WithLabelValues(parseResultEmpty).Inc()
		return nil, nil
	}

	if err := validateDocument(&doc); err != nil {
		parseTotal.WithLabelValues(parseResultInvalid).Inc()
		return nil, err
	}

	parseTotal.WithLabelValues(parseResultOK).Inc()
	return &doc, nil
}

// validateDocument checks what the query layer relies on: every header
// action names an action and a field.
func validateDocument(doc *recipe.Document) error {
	for i, a := range doc.Header {
		if a.Action == "" || a.Field == "" {
			return deiderrors.NewWithContext(
				deiderrors.ErrCodeInvalidRecipe,
				fmt.Sprintf("header entry %d requires both action and field", i),
				map[string]any{
					"index":  i,
					"action": a.Action.String(),
					"field":  a.Field,
				},
			)
		}

		if !a.Action.IsKnown() {
			slog.Warn("unknown header action, the executor may reject it",
				"index", i,
				"action", a.Action,
				"field", a.Field,
				"supported", recipe.SupportedActionKinds())
		}

		if a.Action.Is(recipe.ActionJitter) {
			if _, err := a.JitterOptions(); err != nil {
				return deiderrors.WrapWithContext(
					deiderrors.ErrCodeInvalidRecipe,
					"invalid jitter options",
					err,
					map[string]any{
						"index": i,
						"field": a.Field,
					},
				)
			}
		}
	}
	return nil
}
