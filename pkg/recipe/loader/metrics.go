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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	parseResultOK      = "ok"
	parseResultEmpty   = "empty"
	parseResultInvalid = "invalid"
)

var (
	// Recipe parsing metrics
	parseTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deid_loader_parse_total",
			Help: "Total number of recipe documents parsed by result",
		},
		[]string{"result"},
	)

	// Source resolution latency by source kind
	resolveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deid_loader_resolve_duration_seconds",
			Help:    "Duration of recipe source resolution in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
)
