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

package network

import (
	"testing"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	hErrors "github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	node3 = types.NewAccountId(0, 0, 3)
	node4 = types.NewAccountId(0, 0, 4)
	node5 = types.NewAccountId(0, 0, 5)
	node6 = types.NewAccountId(0, 0, 6)

	testHealthConfig = HealthConfig{MaxAttempts: 3, MaxBackoff: 2 * time.Second, MinBackoff: 250 * time.Millisecond}
)

func newTestNetwork(t *testing.T) *Network {
	n, err := New(map[string]types.AccountId{
		"10.0.0.3:50211": node3,
		"10.0.1.3:50211": node3,
		"10.0.0.4:50211": node4,
		"10.0.0.5:50211": node5,
		"10.0.0.6:50211": node6,
	}, testHealthConfig)
	require.NoError(t, err)
	return n
}

func TestNew(t *testing.T) {
	n := newTestNetwork(t)

	assert.Equal(t, 4, n.Len())
	assert.Equal(t, []types.AccountId{node3, node4, node5, node6}, n.NodeAccountIds())
	assert.Equal(t, []string{"10.0.0.3:50211", "10.0.1.3:50211"}, n.Addresses(node3))
	assert.Nil(t, n.Addresses(types.NewAccountId(0, 0, 7)))
	assert.True(t, n.Contains(node4))
	assert.False(t, n.Contains(types.NewAccountId(0, 0, 7)))
}

func TestNewError(t *testing.T) {
	tests := []struct {
		name      string
		addresses map[string]types.AccountId
	}{
		{name: "empty", addresses: map[string]types.AccountId{}},
		{name: "nil"},
		{
			name: "alias",
			addresses: map[string]types.AccountId{
				"10.0.0.3:50211": types.NewAccountIdFromEvmAddress(0, 0, [20]byte{1}),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := New(tt.addresses, testHealthConfig)
			assert.Error(t, err)
			assert.Nil(t, n)
		})
	}

	_, err := New(nil, testHealthConfig)
	assert.ErrorIs(t, err, hErrors.ErrEmptyNetwork)
}

func TestForName(t *testing.T) {
	tests := []struct {
		name      string
		nodeCount int
		firstHost string
	}{
		{name: Mainnet, nodeCount: 26, firstHost: "13.124.142.126:50211"},
		{name: Testnet, nodeCount: 7, firstHost: "0.testnet.hedera.com:50211"},
		{name: Previewnet, nodeCount: 7, firstHost: "0.previewnet.hedera.com:50211"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ForName(tt.name, DefaultHealthConfig)
			require.NoError(t, err)

			assert.Equal(t, tt.nodeCount, n.Len())
			assert.Equal(t, node3, n.NodeAccountIds()[0])
			assert.Equal(t, tt.firstHost, n.Addresses(node3)[0])

			mirrorNetwork, err := MirrorNetworkForName(tt.name)
			require.NoError(t, err)
			assert.Len(t, mirrorNetwork, 1)
		})
	}
}

func TestForNameUnknown(t *testing.T) {
	n, err := ForName("devnet", DefaultHealthConfig)
	assert.Error(t, err)
	assert.Nil(t, n)

	mirrorNetwork, err := MirrorNetworkForName("devnet")
	assert.Error(t, err)
	assert.Nil(t, mirrorNetwork)
}

func TestNodeHealth(t *testing.T) {
	// given
	n := newTestNetwork(t)
	now := time.Unix(1700000000, 0)

	// then
	assert.True(t, n.IsHealthy(node3, now))
	assert.False(t, n.RecentlyPinged(node3, now))

	// when
	n.MarkHealthy(node3, now)

	// then
	assert.True(t, n.IsHealthy(node3, now))
	assert.True(t, n.RecentlyPinged(node3, now.Add(time.Minute)))
	assert.False(t, n.RecentlyPinged(node3, now.Add(recentlyPingedWindow)))

	// when
	n.MarkUnhealthy(node3, now)

	// then
	assert.False(t, n.IsHealthy(node3, now))
	assert.True(t, n.RecentlyPinged(node3, now))
	assert.True(t, n.IsHealthy(node3, now.Add(250*time.Millisecond)))
	assert.False(t, n.RecentlyPinged(node3, now.Add(250*time.Millisecond)))
}

func TestNodeHealthBackoff(t *testing.T) {
	n := newTestNetwork(t)
	now := time.Unix(1700000000, 0)
	expected := []time.Duration{
		250 * time.Millisecond,
		500 * time.Millisecond,
		time.Second,
		2 * time.Second,
		2 * time.Second,
	}

	for _, interval := range expected {
		n.MarkUnhealthy(node4, now)
		assert.False(t, n.IsHealthy(node4, now.Add(interval-time.Nanosecond)))
		assert.True(t, n.IsHealthy(node4, now.Add(interval)))
	}

	// a success resets the backoff
	n.MarkHealthy(node4, now)
	n.MarkUnhealthy(node4, now)
	assert.True(t, n.IsHealthy(node4, now.Add(250*time.Millisecond)))
}

func TestUnknownNodeHealth(t *testing.T) {
	n := newTestNetwork(t)
	unknown := types.NewAccountId(0, 0, 100)
	now := time.Now()

	n.MarkHealthy(unknown, now)
	n.MarkUnhealthy(unknown, now)

	assert.False(t, n.IsHealthy(unknown, now))
	assert.False(t, n.RecentlyPinged(unknown, now))
}

func TestHealthyNodes(t *testing.T) {
	n := newTestNetwork(t)
	now := time.Now()

	n.MarkUnhealthy(node4, now)
	n.MarkUnhealthy(node6, now)

	assert.Equal(t, []types.AccountId{node3, node5}, n.HealthyNodes(now))
}

func TestSelectNodesExplicit(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name      string
		explicit  []types.AccountId
		unhealthy []types.AccountId
		expected  []types.AccountId
	}{
		{
			name:     "all healthy keeps order",
			explicit: []types.AccountId{node6, node3, node5},
			expected: []types.AccountId{node6, node3, node5},
		},
		{
			name:      "healthy subset",
			explicit:  []types.AccountId{node6, node3, node5},
			unhealthy: []types.AccountId{node3},
			expected:  []types.AccountId{node6, node5},
		},
		{
			name:      "none healthy",
			explicit:  []types.AccountId{node6, node3},
			unhealthy: []types.AccountId{node3, node6},
			expected:  []types.AccountId{node6, node3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newTestNetwork(t)
			for _, nodeAccountId := range tt.unhealthy {
				n.MarkUnhealthy(nodeAccountId, now)
			}

			actual, err := n.SelectNodes(tt.explicit, now)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestSelectNodesExplicitUnknown(t *testing.T) {
	n := newTestNetwork(t)
	unknown := types.NewAccountId(0, 0, 100)

	actual, err := n.SelectNodes([]types.AccountId{node3, unknown}, time.Now())

	var unknownErr *hErrors.NodeAccountUnknownError
	assert.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, unknown, unknownErr.NodeAccountId)
	assert.Nil(t, actual)
}

func TestSelectNodesRandom(t *testing.T) {
	n := newTestNetwork(t)
	now := time.Now()

	actual, err := n.SelectNodes(nil, now)
	require.NoError(t, err)
	assert.Len(t, actual, 2)
	assert.NotEqual(t, actual[0], actual[1])

	for _, nodeAccountId := range []types.AccountId{node3, node4, node5, node6} {
		n.MarkUnhealthy(nodeAccountId, now)
	}

	actual, err = n.SelectNodes(nil, now)
	assert.NoError(t, err)
	assert.Empty(t, actual)
}

func TestUpdateKeepsHealth(t *testing.T) {
	// given
	n := newTestNetwork(t)
	now := time.Now()
	n.MarkUnhealthy(node3, now)

	// when
	err := n.Update(map[string]types.AccountId{
		"10.0.0.3:50211": node3,
		"10.0.0.7:50211": types.NewAccountId(0, 0, 7),
	})

	// then
	require.NoError(t, err)
	assert.Equal(t, []types.AccountId{node3, types.NewAccountId(0, 0, 7)}, n.NodeAccountIds())
	assert.False(t, n.IsHealthy(node3, now))
	assert.True(t, n.IsHealthy(types.NewAccountId(0, 0, 7), now))
	assert.False(t, n.Contains(node4))
}

func TestUpdateEmpty(t *testing.T) {
	n := newTestNetwork(t)

	assert.ErrorIs(t, n.Update(nil), hErrors.ErrEmptyNetwork)
	assert.Equal(t, 4, n.Len())
}
