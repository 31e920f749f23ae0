/*
 * Copyright (C) 2019-2025 Hedera Hashgraph, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package execute

import (
	"github.com/prometheus/client_golang/prometheus"
)

const application = "hedera-sdk-engine"

var (
	attemptCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hedera_sdk_engine_request_attempts",
		Help: "Number of node attempts by request and action taken after the attempt.",
	}, []string{"request", "action"})

	backoffHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hedera_sdk_engine_request_backoff",
		Buckets: []float64{.25, .5, 1, 2, 4, 8, 16, 32, 60},
		Help:    "Time (in seconds) spent backing off before retrying a request.",
	}, []string{"request"})

	requestDurationHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hedera_sdk_engine_request_duration",
		Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		Help:    "Time (in seconds) spent executing a request, retries included.",
	}, []string{"request", "outcome"})

	unhealthyCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hedera_sdk_engine_node_unhealthy",
		Help: "Number of times a node was marked unhealthy.",
	}, []string{"node"})
)

func init() {
	register := prometheus.WrapRegistererWith(prometheus.Labels{"application": application}, prometheus.DefaultRegisterer)
	register.MustRegister(attemptCounter)
	register.MustRegister(backoffHistogram)
	register.MustRegister(requestDurationHistogram)
	register.MustRegister(unhealthyCounter)
}
