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

package query

import (
	"context"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/client"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
)

// AccountBalanceQuery gets the hbar balance of an account, it's free
type AccountBalanceQuery struct {
	Query
	accountId types.AccountId
}

func NewAccountBalanceQuery(accountId types.AccountId) *AccountBalanceQuery {
	return &AccountBalanceQuery{accountId: accountId}
}

func (q *AccountBalanceQuery) AccountId() types.AccountId {
	return q.accountId
}

func (q *AccountBalanceQuery) Execute(ctx context.Context, c *client.Client) (types.HbarAmount, error) {
	return run[types.HbarAmount](ctx, c, &q.Query, q, 0)
}

func (q *AccountBalanceQuery) GetCost(ctx context.Context, c *client.Client) (types.HbarAmount, error) {
	return getCost[types.HbarAmount](ctx, c, &q.Query, q, 0)
}

func (q *AccountBalanceQuery) name() string {
	return "AccountBalanceQuery"
}

func (q *AccountBalanceQuery) method() transport.QueryMethod {
	return transport.CryptoGetBalance
}

func (q *AccountBalanceQuery) isPaymentRequired() bool {
	return false
}

func (q *AccountBalanceQuery) toQuery(header *services.QueryHeader) *services.Query {
	return &services.Query{
		Query: &services.Query_CryptogetAccountBalance{
			CryptogetAccountBalance: &services.CryptoGetAccountBalanceQuery{
				Header:        header,
				BalanceSource: &services.CryptoGetAccountBalanceQuery_AccountID{AccountID: q.accountId.ToProto()},
			},
		},
	}
}

func (q *AccountBalanceQuery) shouldRetryPrecheck(types.Status) bool {
	return false
}

func (q *AccountBalanceQuery) shouldRetry(*services.Response) bool {
	return false
}

func (q *AccountBalanceQuery) makeResponse(response *services.Response) (types.HbarAmount, error) {
	return types.HbarFromTinybars(int64(response.GetCryptogetAccountBalance().GetBalance())), nil
}

func (q *AccountBalanceQuery) transactionId() *types.TransactionId {
	return nil
}

func (q *AccountBalanceQuery) validateChecksums(ledgerId types.LedgerId) error {
	return q.accountId.ValidateChecksum(ledgerId)
}
