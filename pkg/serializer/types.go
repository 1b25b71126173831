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

package serializer

import "context"

// Serializer writes command output to a destination.
//
// The context parameter is used for cancellation and timeouts, which matters
// for implementations that talk to the Kubernetes API.
type Serializer interface {
	Serialize(ctx context.Context, data any) error
}

// Closer is implemented by Serializers that hold resources such as file
// handles.
type Closer interface {
	Close() error
}

// Close closes s when it implements Closer.
func Close(s Serializer) error {
	if c, ok := s.(Closer); ok {
		return c.Close()
	}
	return nil
}
