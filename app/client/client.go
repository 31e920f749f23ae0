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

package client

import (
	"sync"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/config"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	hErrors "github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/network"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	"github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

const defaultNetworkUpdatePeriod = 24 * time.Hour

// Operator is the account paying for transactions and query payments, with the signer of its key
type Operator struct {
	AccountId types.AccountId
	Signer    types.Signer
}

// Settings are the request defaults of a client
type Settings struct {
	AutoValidateChecksums    bool
	ChunkSize                int
	DefaultMaxQueryPayment   types.HbarAmount
	DefaultMaxTransactionFee types.HbarAmount
	FileAppendChunkSize      int
	GrpcDeadline             time.Duration
	InitialBackoff           time.Duration
	MaxAttempts              int
	MaxBackoff               time.Duration
	MaxChunks                int
	NetworkUpdatePeriod      time.Duration
	RegenerateTransactionId  bool
	RequestTimeout           time.Duration
	SubscriptionTimeout      time.Duration
	ValidDuration            time.Duration
}

// DefaultSettings are the settings of a client that isn't built from configuration
var DefaultSettings = Settings{
	ChunkSize:                1024,
	DefaultMaxQueryPayment:   types.NewHbar(1),
	DefaultMaxTransactionFee: types.NewHbar(2),
	FileAppendChunkSize:      4096,
	GrpcDeadline:             10 * time.Second,
	InitialBackoff:           500 * time.Millisecond,
	MaxAttempts:              10,
	MaxBackoff:               time.Minute,
	MaxChunks:                20,
	NetworkUpdatePeriod:      defaultNetworkUpdatePeriod,
	RegenerateTransactionId:  true,
	RequestTimeout:           15 * time.Minute,
	SubscriptionTimeout:      15 * time.Minute,
	ValidDuration:            120 * time.Second,
}

// Client holds the consensus network, the mirror network, the operator and the request defaults. It's shared by
// concurrent requests
type Client struct {
	ledgerId        types.LedgerId
	mirrorNetwork   []string
	mirrorTransport transport.MirrorTransport
	mu              sync.RWMutex
	network         *network.Network
	operator        *Operator
	settings        Settings
	transport       transport.Transport
}

type Option func(c *Client)

func WithLedgerId(ledgerId types.LedgerId) Option {
	return func(c *Client) {
		c.ledgerId = ledgerId
	}
}

func WithMirrorNetwork(mirrorNetwork []string) Option {
	return func(c *Client) {
		c.mirrorNetwork = slices.Clone(mirrorNetwork)
	}
}

func WithMirrorTransport(mirrorTransport transport.MirrorTransport) Option {
	return func(c *Client) {
		c.mirrorTransport = mirrorTransport
	}
}

func WithOperator(accountId types.AccountId, signer types.Signer) Option {
	return func(c *Client) {
		c.operator = &Operator{AccountId: accountId, Signer: signer}
	}
}

func WithSettings(settings Settings) Option {
	return func(c *Client) {
		c.settings = settings
	}
}

func WithTransport(nodeTransport transport.Transport) Option {
	return func(c *Client) {
		c.transport = nodeTransport
	}
}

// New creates a client for the network. Without a transport option both transports are grpc
func New(nodes *network.Network, options ...Option) *Client {
	c := &Client{network: nodes, settings: DefaultSettings}
	for _, option := range options {
		option(c)
	}

	if c.transport == nil || c.mirrorTransport == nil {
		grpcTransport := transport.NewGrpc()
		if c.transport == nil {
			c.transport = grpcTransport
		}
		if c.mirrorTransport == nil {
			c.mirrorTransport = grpcTransport
		}
	}

	return c
}

// ForName creates a client for mainnet, testnet or previewnet. The ledger id and the mirror network are set
func ForName(name string) (*Client, error) {
	nodes, err := network.ForName(name, network.DefaultHealthConfig)
	if err != nil {
		return nil, err
	}

	mirrorNetwork, err := network.MirrorNetworkForName(name)
	if err != nil {
		return nil, err
	}

	ledgerId, err := types.LedgerIdFromString(name)
	if err != nil {
		return nil, err
	}

	return New(nodes, WithLedgerId(ledgerId), WithMirrorNetwork(mirrorNetwork)), nil
}

// NewFromConfig creates a client from the application configuration. Configured nodes take precedence over the
// static roster of the named network
func NewFromConfig(engineConfig *config.Config) (*Client, error) {
	healthConfig := network.HealthConfig{
		MaxAttempts: engineConfig.Node.MaxAttempts,
		MaxBackoff:  engineConfig.Node.MaxBackoff,
		MinBackoff:  engineConfig.Node.MinBackoff,
	}

	addresses := map[string]types.AccountId(engineConfig.Nodes)
	if len(addresses) == 0 {
		if engineConfig.Network == config.NetworkLocal {
			return nil, errors.Errorf("Nodes must be configured for the %s network", config.NetworkLocal)
		}

		var err error
		if addresses, err = network.AddressesForName(engineConfig.Network); err != nil {
			return nil, err
		}
	}

	nodes, err := network.New(addresses, healthConfig)
	if err != nil {
		return nil, err
	}

	mirrorNetwork := engineConfig.MirrorNetwork
	if len(mirrorNetwork) == 0 && engineConfig.Network != config.NetworkLocal {
		if mirrorNetwork, err = network.MirrorNetworkForName(engineConfig.Network); err != nil {
			return nil, err
		}
	}

	ledgerId := engineConfig.LedgerId
	if ledgerId.IsEmpty() && engineConfig.Network != config.NetworkLocal {
		if ledgerId, err = types.LedgerIdFromString(engineConfig.Network); err != nil {
			return nil, err
		}
	}

	var transportOptions []transport.Option
	if engineConfig.Client.Tls {
		transportOptions = append(transportOptions, transport.WithTls())
	}
	grpcTransport := transport.NewGrpc(transportOptions...)

	options := []Option{
		WithLedgerId(ledgerId),
		WithMirrorNetwork(mirrorNetwork),
		WithMirrorTransport(grpcTransport),
		WithSettings(settingsFromConfig(engineConfig)),
		WithTransport(grpcTransport),
	}

	if engineConfig.Operator.IsSet() {
		operatorOption, err := operatorFromConfig(engineConfig.Operator)
		if err != nil {
			return nil, err
		}
		options = append(options, operatorOption)
	}

	log.Infof("Created client for %s network with %d nodes", engineConfig.Network, nodes.Len())
	return New(nodes, options...), nil
}

func (c *Client) LedgerId() types.LedgerId {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ledgerId
}

// MirrorNetwork returns the mirror node endpoints, ErrNoMirrorNetwork when none is configured
func (c *Client) MirrorNetwork() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.mirrorNetwork) == 0 {
		return nil, hErrors.ErrNoMirrorNetwork
	}
	return slices.Clone(c.mirrorNetwork), nil
}

func (c *Client) MirrorTransport() transport.MirrorTransport {
	return c.mirrorTransport
}

func (c *Client) Network() *network.Network {
	return c.network
}

// Operator returns the operator, nil if the client has none
func (c *Client) Operator() *Operator {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.operator
}

func (c *Client) SetOperator(accountId types.AccountId, signer types.Signer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.operator = &Operator{AccountId: accountId, Signer: signer}
}

// Settings returns a snapshot of the request defaults
func (c *Client) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

func (c *Client) SetSettings(settings Settings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings = settings
}

func (c *Client) Transport() transport.Transport {
	return c.transport
}

// Close releases the connections of the grpc transports
func (c *Client) Close() {
	if closer, ok := c.transport.(interface{ Close() }); ok {
		closer.Close()
	}

	if any(c.mirrorTransport) != any(c.transport) {
		if closer, ok := c.mirrorTransport.(interface{ Close() }); ok {
			closer.Close()
		}
	}
}

func operatorFromConfig(operator config.Operator) (Option, error) {
	accountId, err := types.AccountIdFromString(operator.AccountId)
	if err != nil {
		return nil, errors.Wrap(err, "Invalid operator account id")
	}

	privateKey, err := hedera.PrivateKeyFromString(operator.PrivateKey)
	if err != nil {
		return nil, errors.Wrap(err, "Invalid operator private key")
	}

	return WithOperator(accountId, types.NewPrivateKeySigner(privateKey)), nil
}

func settingsFromConfig(engineConfig *config.Config) Settings {
	clientConfig := engineConfig.Client
	return Settings{
		AutoValidateChecksums:    clientConfig.AutoValidateChecksums,
		ChunkSize:                engineConfig.Transaction.ChunkSize,
		DefaultMaxQueryPayment:   clientConfig.DefaultMaxQueryPayment,
		DefaultMaxTransactionFee: clientConfig.DefaultMaxTransactionFee,
		FileAppendChunkSize:      engineConfig.Transaction.FileAppendChunkSize,
		GrpcDeadline:             clientConfig.GrpcDeadline,
		InitialBackoff:           clientConfig.InitialBackoff,
		MaxAttempts:              clientConfig.MaxAttempts,
		MaxBackoff:               clientConfig.MaxBackoff,
		MaxChunks:                engineConfig.Transaction.MaxChunks,
		NetworkUpdatePeriod:      clientConfig.NetworkUpdatePeriod,
		RegenerateTransactionId:  clientConfig.RegenerateTransactionId,
		RequestTimeout:           clientConfig.RequestTimeout,
		SubscriptionTimeout:      engineConfig.Mirror.SubscriptionTimeout,
		ValidDuration:            engineConfig.Transaction.ValidDuration,
	}
}
