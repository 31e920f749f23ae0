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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/client"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/config"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/network"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/test/mocks"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"github.com/hellofresh/health-go/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, precheck services.ResponseCodeEnum) *client.Client {
	nodes, err := network.New(map[string]types.AccountId{"10.0.0.3:50211": types.NewAccountId(0, 0, 3)},
		network.DefaultHealthConfig)
	require.NoError(t, err)

	settings := client.DefaultSettings
	settings.InitialBackoff = time.Millisecond
	settings.MaxBackoff = 2 * time.Millisecond

	mockTransport := &mocks.MockTransport{}
	mockTransport.On("SubmitQuery", mock.Anything, "10.0.0.3:50211", transport.CryptoGetBalance, mock.Anything).
		Return(&services.Response{
			Response: &services.Response_CryptogetAccountBalance{
				CryptogetAccountBalance: &services.CryptoGetAccountBalanceResponse{
					Header:  &services.ResponseHeader{NodeTransactionPrecheckCode: precheck},
					Balance: 100,
				},
			},
		}, nil)

	return client.New(nodes, client.WithSettings(settings), client.WithTransport(mockTransport))
}

func serve(t *testing.T, controller Router, path string) (*tracingResponseWriter, health.Check) {
	req := httptest.NewRequest("GET", "http://localhost"+path, nil)
	recorder := httptest.NewRecorder()
	tracingResponseWriter := newTracingResponseWriter(recorder)
	tracingResponseWriter.statusCode = http.StatusBadGateway
	NewRouter(controller).ServeHTTP(tracingResponseWriter, req)

	var check health.Check
	require.NoError(t, json.Unmarshal(tracingResponseWriter.data, &check))
	return tracingResponseWriter, check
}

func TestLiveness(t *testing.T) {
	healthController, err := NewHealthController(&config.Config{}, newTestClient(t, services.ResponseCodeEnum_OK))
	require.NoError(t, err)

	tracingResponseWriter, check := serve(t, healthController, livenessPath)

	require.Equal(t, http.StatusOK, tracingResponseWriter.statusCode)
	require.Equal(t, "application/json", tracingResponseWriter.Header().Get("Content-Type"))
	require.Equal(t, health.StatusOK, check.Status)
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name       string
		precheck   services.ResponseCodeEnum
		status     health.Status
		httpStatus int
	}{
		{
			name:       "ok",
			precheck:   services.ResponseCodeEnum_OK,
			status:     health.StatusOK,
			httpStatus: http.StatusOK,
		},
		{
			name:       "node fails",
			precheck:   services.ResponseCodeEnum_INVALID_ACCOUNT_ID,
			status:     health.StatusUnavailable,
			httpStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			healthController, err := NewHealthController(&config.Config{}, newTestClient(t, tt.precheck))
			require.NoError(t, err)

			tracingResponseWriter, check := serve(t, healthController, readinessPath)

			require.Equal(t, "application/json", tracingResponseWriter.Header().Get("Content-Type"))
			require.Equal(t, tt.status, check.Status)
			require.Equal(t, tt.httpStatus, tracingResponseWriter.statusCode)
		})
	}
}

func TestReadinessDatabase(t *testing.T) {
	engineConfig := &config.Config{
		AddressBook: config.AddressBook{Source: config.AddressBookSourceDatabase},
		Db:          config.Db{Host: "127.0.0.1", Name: "mirror_node", Port: 1, Username: "nobody"},
	}
	healthController, err := NewHealthController(engineConfig, newTestClient(t, services.ResponseCodeEnum_OK))
	require.NoError(t, err)

	tracingResponseWriter, check := serve(t, healthController, readinessPath)

	require.Equal(t, health.StatusUnavailable, check.Status)
	require.Equal(t, http.StatusServiceUnavailable, tracingResponseWriter.statusCode)
	require.Contains(t, check.Failures, "postgresql")
}
