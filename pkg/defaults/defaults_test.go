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

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		{"ConfigMapReadTimeout", ConfigMapReadTimeout, 5 * time.Second, 60 * time.Second},
		{"ConfigMapWriteTimeout", ConfigMapWriteTimeout, 5 * time.Second, 60 * time.Second},
		{"CLICommandTimeout", CLICommandTimeout, 30 * time.Second, 10 * time.Minute},
		{"HTTPClientTimeout", HTTPClientTimeout, 5 * time.Second, 60 * time.Second},
		{"HTTPConnectTimeout", HTTPConnectTimeout, 1 * time.Second, 30 * time.Second},
		{"HTTPTLSHandshakeTimeout", HTTPTLSHandshakeTimeout, 1 * time.Second, 30 * time.Second},
		{"HTTPResponseHeaderTimeout", HTTPResponseHeaderTimeout, 1 * time.Second, 60 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) exceeds maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestTimeoutRelationships(t *testing.T) {
	if HTTPConnectTimeout >= HTTPClientTimeout {
		t.Errorf("HTTPConnectTimeout (%v) should be less than HTTPClientTimeout (%v)",
			HTTPConnectTimeout, HTTPClientTimeout)
	}

	// a single ConfigMap read has to fit inside a whole command
	if ConfigMapReadTimeout >= CLICommandTimeout {
		t.Errorf("ConfigMapReadTimeout (%v) should be less than CLICommandTimeout (%v)",
			ConfigMapReadTimeout, CLICommandTimeout)
	}
}

func TestLimits(t *testing.T) {
	if DefaultBase == "" {
		t.Error("DefaultBase must not be empty")
	}
	if ValidateConcurrency < 1 {
		t.Errorf("ValidateConcurrency must be positive, got %d", ValidateConcurrency)
	}
	if MaxRecipeFileSize <= 0 {
		t.Errorf("MaxRecipeFileSize must be positive, got %d", MaxRecipeFileSize)
	}
}
