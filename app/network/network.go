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
	"math/rand/v2"
	"net"
	"sync"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	hErrors "github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/errors"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Network is the consensus node roster of a client together with the health of every node. It's safe for
// concurrent use
type Network struct {
	config   HealthConfig
	health   map[types.EntityId]*nodeHealth
	healthMu sync.RWMutex
	mu       sync.RWMutex
	nodes    map[types.EntityId]*node
}

type node struct {
	accountId types.AccountId
	addresses []string
}

// New creates a network from a map of node address host:port to node account id
func New(addresses map[string]types.AccountId, config HealthConfig) (*Network, error) {
	nodes, err := toNodes(addresses)
	if err != nil {
		return nil, err
	}

	n := &Network{
		config: config,
		health: make(map[types.EntityId]*nodeHealth, len(nodes)),
		nodes:  nodes,
	}
	for id := range nodes {
		n.health[id] = newNodeHealth(config)
	}

	return n, nil
}

// ForName creates the network of one of the public ledgers, mainnet, testnet or previewnet
func ForName(name string, config HealthConfig) (*Network, error) {
	addresses, err := AddressesForName(name)
	if err != nil {
		return nil, err
	}

	return New(addresses, config)
}

// AddressesForName returns the static node address map of a public ledger
func AddressesForName(name string) (map[string]types.AccountId, error) {
	staticNodes, ok := staticNetworks[name]
	if !ok {
		return nil, errors.Errorf("Unknown network name %s", name)
	}

	addresses := make(map[string]types.AccountId)
	for _, staticNode := range staticNodes {
		accountId := types.NewAccountId(0, 0, staticNode.num)
		for _, host := range staticNode.hosts {
			addresses[net.JoinHostPort(host, nodePort)] = accountId
		}
	}

	return addresses, nil
}

// MirrorNetworkForName returns the mirror node endpoints of a public ledger
func MirrorNetworkForName(name string) ([]string, error) {
	mirrorNetwork, ok := mirrorNetworks[name]
	if !ok {
		return nil, errors.Errorf("Unknown network name %s", name)
	}

	return slices.Clone(mirrorNetwork), nil
}

// Addresses returns the endpoints of the node, nil if the node isn't part of the network
func (n *Network) Addresses(nodeAccountId types.AccountId) []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if entry, ok := n.nodes[nodeKey(nodeAccountId)]; ok {
		return slices.Clone(entry.addresses)
	}
	return nil
}

func (n *Network) Contains(nodeAccountId types.AccountId) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()

	_, ok := n.nodes[nodeKey(nodeAccountId)]
	return ok
}

// NodeAccountIds returns the account ids of all nodes ordered by entity id
func (n *Network) NodeAccountIds() []types.AccountId {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.sortedAccountIds()
}

func (n *Network) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return len(n.nodes)
}

func (n *Network) IsHealthy(nodeAccountId types.AccountId, now time.Time) bool {
	n.healthMu.RLock()
	defer n.healthMu.RUnlock()

	if health, ok := n.health[nodeKey(nodeAccountId)]; ok {
		return health.isHealthy(now)
	}
	return false
}

// RecentlyPinged is true when the node served a request in the last 15 minutes or is still backing off
func (n *Network) RecentlyPinged(nodeAccountId types.AccountId, now time.Time) bool {
	n.healthMu.RLock()
	defer n.healthMu.RUnlock()

	if health, ok := n.health[nodeKey(nodeAccountId)]; ok {
		return health.recentlyPinged(now)
	}
	return false
}

func (n *Network) MarkHealthy(nodeAccountId types.AccountId, now time.Time) {
	n.healthMu.Lock()
	defer n.healthMu.Unlock()

	if health, ok := n.health[nodeKey(nodeAccountId)]; ok {
		health.markHealthy(now)
	}
}

func (n *Network) MarkUnhealthy(nodeAccountId types.AccountId, now time.Time) {
	n.healthMu.Lock()
	defer n.healthMu.Unlock()

	health, ok := n.health[nodeKey(nodeAccountId)]
	if !ok {
		return
	}

	interval := health.markUnhealthy(now)
	if health.attempts > n.config.MaxAttempts {
		log.Warnf("Node %s failed %d consecutive times, backing off for %s", nodeAccountId, health.attempts,
			interval)
	} else {
		log.Debugf("Marked node %s unhealthy for %s", nodeAccountId, interval)
	}
}

// HealthyNodes returns the account ids of the healthy nodes ordered by entity id
func (n *Network) HealthyNodes(now time.Time) []types.AccountId {
	n.mu.RLock()
	accountIds := n.sortedAccountIds()
	n.mu.RUnlock()

	return n.filterHealthy(accountIds, now)
}

// SelectNodes picks the nodes a request is sent to. Explicit nodes are kept in the given order, narrowed to the
// healthy ones when at least one is healthy. Without explicit nodes a random third of the healthy nodes is picked
func (n *Network) SelectNodes(explicit []types.AccountId, now time.Time) ([]types.AccountId, error) {
	if len(explicit) != 0 {
		for _, nodeAccountId := range explicit {
			if !n.Contains(nodeAccountId) {
				return nil, &hErrors.NodeAccountUnknownError{NodeAccountId: nodeAccountId}
			}
		}

		healthy := n.filterHealthy(explicit, now)
		if len(healthy) == 0 {
			return slices.Clone(explicit), nil
		}
		return healthy, nil
	}

	healthy := n.HealthyNodes(now)
	rand.Shuffle(len(healthy), func(i, j int) {
		healthy[i], healthy[j] = healthy[j], healthy[i]
	})

	return healthy[:(len(healthy)+2)/3], nil
}

// Update replaces the roster. Nodes that remain keep their health
func (n *Network) Update(addresses map[string]types.AccountId) error {
	nodes, err := toNodes(addresses)
	if err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.healthMu.Lock()
	defer n.healthMu.Unlock()

	health := make(map[types.EntityId]*nodeHealth, len(nodes))
	for id := range nodes {
		if existing, ok := n.health[id]; ok {
			health[id] = existing
		} else {
			health[id] = newNodeHealth(n.config)
		}
	}

	n.health = health
	n.nodes = nodes
	log.Infof("Updated network to %d nodes", len(nodes))
	return nil
}

func (n *Network) filterHealthy(accountIds []types.AccountId, now time.Time) []types.AccountId {
	n.healthMu.RLock()
	defer n.healthMu.RUnlock()

	healthy := make([]types.AccountId, 0, len(accountIds))
	for _, accountId := range accountIds {
		if health, ok := n.health[nodeKey(accountId)]; ok && health.isHealthy(now) {
			healthy = append(healthy, accountId)
		}
	}

	return healthy
}

func (n *Network) sortedAccountIds() []types.AccountId {
	ids := maps.Keys(n.nodes)
	slices.SortFunc(ids, types.EntityId.Compare)

	accountIds := make([]types.AccountId, 0, len(ids))
	for _, id := range ids {
		accountIds = append(accountIds, n.nodes[id].accountId)
	}

	return accountIds
}

func toNodes(addresses map[string]types.AccountId) (map[types.EntityId]*node, error) {
	if len(addresses) == 0 {
		return nil, hErrors.ErrEmptyNetwork
	}

	nodes := make(map[types.EntityId]*node)
	for address, accountId := range addresses {
		if accountId.HasAlias() {
			return nil, errors.Errorf("Node account id %s for %s must not be an alias", accountId, address)
		}

		id := nodeKey(accountId)
		if _, ok := nodes[id]; !ok {
			nodes[id] = &node{accountId: accountId}
		}
		nodes[id].addresses = append(nodes[id].addresses, address)
	}

	for _, entry := range nodes {
		slices.Sort(entry.addresses)
	}

	return nodes, nil
}

func nodeKey(accountId types.AccountId) types.EntityId {
	return accountId.EntityId().WithoutChecksum()
}
