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
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pingsMetric = `hedera_sdk_engine_readiness_pings_total{application="hedera-sdk-engine",node="0.0.3",result=`

func newTestMetrics() *engineMetrics {
	registry := prometheus.NewRegistry()
	return newEngineMetrics(registry, registry)
}

func scrape(t *testing.T, metrics *engineMetrics) string {
	controller := &metricsController{gatherer: metrics.gatherer}
	recorder := httptest.NewRecorder()
	NewRouter(controller).ServeHTTP(recorder, httptest.NewRequest("GET", "http://localhost"+metricsPath, nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	return recorder.Body.String()
}

func TestMetricsObservePing(t *testing.T) {
	tests := []struct {
		name     string
		errs     []error
		expected []string
	}{
		{
			name:     "success",
			errs:     []error{nil},
			expected: []string{pingsMetric + `"success"} 1`},
		},
		{
			name:     "failure then success",
			errs:     []error{errors.New("unavailable"), errors.New("unavailable"), nil},
			expected: []string{pingsMetric + `"failure"} 2`, pingsMetric + `"success"} 1`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// given
			metrics := newTestMetrics()

			// when
			for _, err := range tt.errs {
				metrics.observePing(types.NewAccountId(0, 0, 3), err)
			}

			// then
			body := scrape(t, metrics)
			for _, line := range tt.expected {
				assert.Contains(t, body, line)
			}
		})
	}
}

func TestMetricsObserveTopicMessage(t *testing.T) {
	// given
	metrics := newTestMetrics()
	topicId := types.NewEntityId(0, 0, 5000)

	// when
	metrics.observeTopicMessage(topicId, types.TopicMessage{Contents: []byte("a")})
	metrics.observeTopicMessage(topicId, types.TopicMessage{Chunks: make([]types.TopicMessageChunk, 3)})

	// then
	body := scrape(t, metrics)
	assert.Contains(t, body, `hedera_sdk_engine_topic_messages_total{application="hedera-sdk-engine",topic="0.0.5000"} 2`)
	assert.Contains(t, body, `hedera_sdk_engine_topic_chunks_total{application="hedera-sdk-engine",topic="0.0.5000"} 4`)
}

func TestMetricsCheckNetwork(t *testing.T) {
	tests := []struct {
		name     string
		precheck services.ResponseCodeEnum
		result   string
		wantErr  bool
	}{
		{name: "ok", precheck: services.ResponseCodeEnum_OK, result: "success"},
		{name: "node fails", precheck: services.ResponseCodeEnum_INVALID_ACCOUNT_ID, result: "failure", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// given
			metrics := newTestMetrics()
			check := checkNetwork(newTestClient(t, tt.precheck), metrics)

			// when
			err := check(context.Background())

			// then
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			body := scrape(t, metrics)
			assert.Contains(t, body, `hedera_sdk_engine_network_healthy_nodes{application="hedera-sdk-engine"} 1`)
			assert.Contains(t, body, pingsMetric+`"`+tt.result+`"} 1`)
		})
	}
}

func TestMetricsRouteLabel(t *testing.T) {
	// given
	metrics := newTestMetrics()
	handler := metrics.instrument(NewRouter(&metricsController{gatherer: metrics.gatherer}))

	// when
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest("GET", "http://localhost"+metricsPath, nil))

	// then
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, scrape(t, metrics), `route="metrics"`)
}
