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

package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/weaveworks/common/middleware"
)

const (
	application = "hedera-sdk-engine"
	metricsPath = "/metrics"
	namespace   = "hedera_sdk_engine"

	pingResultFailure = "failure"
	pingResultSuccess = "success"
)

// engineMetrics are the collectors of the engine daemon: the http routes it serves, the readiness pings it sends
// to consensus nodes and the topic messages it streams from the mirror node
type engineMetrics struct {
	gatherer prometheus.Gatherer

	httpRequestBytes    *prometheus.HistogramVec
	httpRequestDuration *prometheus.HistogramVec
	httpInflight        *prometheus.GaugeVec
	httpResponseBytes   *prometheus.HistogramVec

	healthyNodes   prometheus.Gauge
	readinessPings *prometheus.CounterVec
	topicMessages  *prometheus.CounterVec
	topicChunks    *prometheus.CounterVec
}

var defaultMetrics = newEngineMetrics(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)

func newEngineMetrics(registerer prometheus.Registerer, gatherer prometheus.Gatherer) *engineMetrics {
	sizeBuckets := []float64{512, 1024, 10 * 1024, 25 * 1024, 50 * 1024}
	m := &engineMetrics{
		gatherer: gatherer,
		httpRequestBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_bytes",
			Buckets:   sizeBuckets,
			Help:      "Size in bytes of the health and metrics requests received.",
		}, []string{"method", "route"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Buckets:   []float64{.01, .1, .5, 1, 5, 10},
			Help:      "Time in seconds spent serving a route, readiness includes the node pings.",
		}, []string{"method", "route", "status_code", "ws"}),
		httpInflight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_inflight",
			Help:      "Current number of requests being served per route.",
		}, []string{"method", "route"}),
		httpResponseBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "response_bytes",
			Buckets:   sizeBuckets,
			Help:      "Size in bytes of the responses sent.",
		}, []string{"method", "route"}),
		healthyNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "network",
			Name:      "healthy_nodes",
			Help:      "Number of nodes not in backoff at the last readiness check.",
		}),
		readinessPings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "readiness",
			Name:      "pings_total",
			Help:      "Readiness pings sent to consensus nodes by result.",
		}, []string{"node", "result"}),
		topicMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "topic",
			Name:      "messages_total",
			Help:      "Reassembled topic messages received from the mirror node.",
		}, []string{"topic"}),
		topicChunks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "topic",
			Name:      "chunks_total",
			Help:      "Chunks of the topic messages received from the mirror node.",
		}, []string{"topic"}),
	}

	register := prometheus.WrapRegistererWith(prometheus.Labels{"application": application}, registerer)
	register.MustRegister(
		m.httpRequestBytes,
		m.httpRequestDuration,
		m.httpInflight,
		m.httpResponseBytes,
		m.healthyNodes,
		m.readinessPings,
		m.topicMessages,
		m.topicChunks,
	)
	return m
}

func (m *engineMetrics) observePing(nodeAccountId types.AccountId, err error) {
	result := pingResultSuccess
	if err != nil {
		result = pingResultFailure
	}
	m.readinessPings.WithLabelValues(nodeAccountId.String(), result).Inc()
}

func (m *engineMetrics) observeTopicMessage(topicId types.EntityId, message types.TopicMessage) {
	chunks := len(message.Chunks)
	if chunks == 0 {
		chunks = 1
	}
	m.topicMessages.WithLabelValues(topicId.String()).Inc()
	m.topicChunks.WithLabelValues(topicId.String()).Add(float64(chunks))
}

// instrument labels each request with the name of the matched route
func (m *engineMetrics) instrument(router *mux.Router) http.Handler {
	return middleware.Instrument{
		Duration:         m.httpRequestDuration,
		InflightRequests: m.httpInflight,
		RequestBodySize:  m.httpRequestBytes,
		ResponseBodySize: m.httpResponseBytes,
		RouteMatcher:     router,
	}.Wrap(router)
}

// ObserveTopicMessage counts a message streamed from the topic and its chunks
func ObserveTopicMessage(topicId types.EntityId, message types.TopicMessage) {
	defaultMetrics.observeTopicMessage(topicId, message)
}

// metricsController serves the collectors of a gatherer
type metricsController struct {
	gatherer prometheus.Gatherer
}

// NewMetricsController constructs a new MetricsController object
func NewMetricsController() Router {
	return &metricsController{gatherer: defaultMetrics.gatherer}
}

// Routes returns the metrics controller routes
func (c *metricsController) Routes() Routes {
	return Routes{
		{
			"metrics",
			"GET",
			metricsPath,
			promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{}).ServeHTTP,
		},
	}
}

// MetricsMiddleware instruments the requests served by router
func MetricsMiddleware(router *mux.Router) http.Handler {
	return defaultMetrics.instrument(router)
}
