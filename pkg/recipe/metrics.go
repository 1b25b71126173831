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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Source resolution results.
const (
	sourceResultResolved = "resolved"
	sourceResultMissing  = "missing"
	sourceResultError    = "error"
)

var (
	// Recipe source resolution metrics
	recipeSourcesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deid_recipe_sources_total",
			Help: "Total number of recipe source resolutions by result",
		},
		[]string{"result"},
	)

	// Recipe combination metrics
	recipeCombineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "deid_recipe_combine_duration_seconds",
			Help:    "Duration of recipe combination in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)
)
