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

// Package serializer writes deidctl output as JSON, YAML, or a flattened
// table, to stdout, a file, or a Kubernetes ConfigMap.
//
// # Formats
//
//   - yaml (default): the form recipes are authored in; key order of named
//     lists is preserved
//   - json: indented, same key order
//   - table: FIELD/VALUE rows with dotted keys such as
//     values.modalities.[0], for terminals
//
// # Destinations
//
// NewFileWriterOrStdout picks the destination from a path:
//
//	s, err := serializer.NewFileWriterOrStdout(serializer.FormatYAML, "cm://deid/site-recipe")
//	if err != nil {
//	    return err
//	}
//	defer serializer.Close(s)
//	return s.Serialize(ctx, manifest)
//
// ConfigMap output is applied with Server-Side Apply and stores the content
// under the recipe.yaml key, so the ConfigMap can be passed back to deidctl
// as a cm:// recipe source. Table output is rejected for ConfigMaps.
package serializer
