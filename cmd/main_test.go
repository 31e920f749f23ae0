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

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/client"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/config"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/mirror"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/network"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/test/mocks"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *client.Client {
	nodes, err := network.New(map[string]types.AccountId{"10.0.0.3:50211": types.NewAccountId(0, 0, 3)},
		network.DefaultHealthConfig)
	require.NoError(t, err)

	mockTransport := &mocks.MockTransport{}
	return client.New(nodes, client.WithTransport(mockTransport), client.WithMirrorTransport(mockTransport))
}

func TestConfigLogger(t *testing.T) {
	level := log.GetLevel()
	defer log.SetLevel(level)

	tests := []struct {
		level    string
		expected log.Level
	}{
		{level: "debug", expected: log.DebugLevel},
		{level: "warn", expected: log.WarnLevel},
		{level: "unknown", expected: log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			configLogger(tt.level)
			assert.Equal(t, tt.expected, log.GetLevel())
		})
	}
}

func TestNewAddressBookSource(t *testing.T) {
	c := newTestClient(t)

	source, err := newAddressBookSource(&config.Config{AddressBook: config.AddressBook{
		Source: config.AddressBookSourceStatic,
	}}, c)
	assert.NoError(t, err)
	assert.Nil(t, source)

	source, err = newAddressBookSource(&config.Config{AddressBook: config.AddressBook{
		Source: config.AddressBookSourceMirror,
	}}, c)
	assert.NoError(t, err)
	assert.IsType(t, &mirror.AddressBookSource{}, source)
}

func TestNewRouter(t *testing.T) {
	router, err := newRouter(&config.Config{}, newTestClient(t))
	require.NoError(t, err)

	tests := []struct {
		path   string
		status int
	}{
		{path: "/health/liveness", status: http.StatusOK},
		{path: "/metrics", status: http.StatusOK},
		{path: "/unknown", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest("GET", "http://localhost"+tt.path, nil))
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}

func TestStreamTopicInvalid(t *testing.T) {
	err := streamTopic(context.Background(), newTestClient(t), "topic")
	assert.Error(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	// given
	engineConfig := &config.Config{
		AddressBook: config.AddressBook{Source: config.AddressBookSourceStatic},
		Http:        config.Http{Port: 0},
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	// when
	go func() {
		done <- run(ctx, engineConfig, newTestClient(t), "")
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	// then
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run didn't stop")
	}
}

func TestRunFailsWithoutMirrorNetwork(t *testing.T) {
	engineConfig := &config.Config{AddressBook: config.AddressBook{Source: config.AddressBookSourceStatic}}

	err := run(context.Background(), engineConfig, newTestClient(t), "0.0.5000")

	assert.Error(t, err)
}
