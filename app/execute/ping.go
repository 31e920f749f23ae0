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
	"context"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/client"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/codec"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	hErrors "github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Ping queries the balance of the node's own account on the node, a free query that proves the node serves requests
func Ping(ctx context.Context, c *client.Client, nodeAccountId types.AccountId) error {
	_, err := ExecuteQuery[types.HbarAmount](ctx, c, &pingQuery{nodeAccountId: nodeAccountId}, 0)
	return err
}

// PingAll pings every node of the network concurrently and returns the first failure
func PingAll(ctx context.Context, c *client.Client) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, nodeAccountId := range c.Network().NodeAccountIds() {
		g.Go(func() error {
			return Ping(gctx, c, nodeAccountId)
		})
	}

	return g.Wait()
}

// pingOnce makes a single ping attempt without retries, the node health is updated by the attempt
func pingOnce(ctx context.Context, c *client.Client, settings client.Settings, nodeAccountId types.AccountId) error {
	e := &execution[*services.Query, *services.Response, types.HbarAmount]{
		client:     c,
		executable: &pingQuery{nodeAccountId: nodeAccountId},
		settings:   settings,
	}

	start := time.Now()
	_, a, err := e.attempt(ctx, nodeAccountId)
	attemptCounter.WithLabelValues(e.executable.Name(), a.String()).Inc()
	if a != actionRespond {
		return err
	}

	log.Debugf("Pinged node %s in %s", nodeAccountId, time.Since(start))
	return nil
}

type pingQuery struct {
	nodeAccountId types.AccountId
}

func (p *pingQuery) Name() string {
	return "ping"
}

func (p *pingQuery) NodeAccountIds() []types.AccountId {
	return []types.AccountId{p.nodeAccountId}
}

func (p *pingQuery) TransactionId() *types.TransactionId {
	return nil
}

func (p *pingQuery) RequiresTransactionId() bool {
	return false
}

func (p *pingQuery) RegenerateTransactionId() *bool {
	return nil
}

func (p *pingQuery) IsPaid() bool {
	return false
}

func (p *pingQuery) ValidateChecksums(types.LedgerId) error {
	return nil
}

func (p *pingQuery) MakeRequest(*types.TransactionId, types.AccountId) (*services.Query, error) {
	return &services.Query{
		Query: &services.Query_CryptogetAccountBalance{
			CryptogetAccountBalance: &services.CryptoGetAccountBalanceQuery{
				Header: codec.NewQueryHeader(nil, false),
				BalanceSource: &services.CryptoGetAccountBalanceQuery_AccountID{
					AccountID: p.nodeAccountId.ToProto(),
				},
			},
		},
	}, nil
}

func (p *pingQuery) Execute(
	ctx context.Context,
	nodeTransport transport.Transport,
	address string,
	request *services.Query,
) (*services.Response, error) {
	return nodeTransport.SubmitQuery(ctx, address, transport.CryptoGetBalance, request)
}

func (p *pingQuery) PrecheckStatus(response *services.Response) types.Status {
	return codec.QueryPrecheck(response)
}

func (p *pingQuery) ShouldRetryPrecheck(types.Status) bool {
	return false
}

func (p *pingQuery) ShouldRetry(*services.Response) bool {
	return false
}

func (p *pingQuery) MakeResponse(response *services.Response, _ *services.Query, _ types.AccountId,
	_ *types.TransactionId) (types.HbarAmount, error) {
	return types.HbarFromTinybars(int64(response.GetCryptogetAccountBalance().GetBalance())), nil
}

func (p *pingQuery) MakeErrorPrecheck(status types.Status, _ *types.TransactionId, _ *services.Response) error {
	return &hErrors.PrecheckError{Kind: hErrors.PrecheckQueryNoPayment, Status: status}
}
